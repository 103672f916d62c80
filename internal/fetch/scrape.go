// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/safety-digest/internal/httputil"
	"github.com/pdiddy/safety-digest/pkg/types"
)

const (
	minTitleLen = 10
	maxTitleLen = 250
)

// containerClassRe picks out listing-item containers on pages that don't use
// semantic <article> markup.
var containerClassRe = regexp.MustCompile(`(?i)\b(post|card|item|entry|article|publication|research)\b`)

// junkTitles are link texts that look like titles to a naive scraper.
var junkTitles = map[string]bool{
	"read more": true, "learn more": true, "continue reading": true,
	"view all": true, "see all": true, "more": true, "home": true,
	"blog": true, "research": true, "publications": true, "news": true,
}

// listNumberRe strips a leading ordinal from scraped titles ("3. Title").
var listNumberRe = regexp.MustCompile(`^\d{1,3}[.)]\s+`)

// ScrapeSource extracts papers from an organization's listing page when no
// feed exists. It works off structural heuristics, so it degrades to an empty
// result rather than an error when a publisher redesigns their page.
type ScrapeSource struct {
	cfg    types.ScrapeSource
	client *http.Client
}

func NewScrapeSource(cfg types.ScrapeSource, httpCfg types.HTTPConfig) *ScrapeSource {
	return &ScrapeSource{cfg: cfg, client: &http.Client{Timeout: httpCfg.Timeout}}
}

// Name identifies the scraper in logs.
func (s *ScrapeSource) Name() string { return "scrape:" + s.cfg.Name }

// Fetch downloads the listing page and extracts one paper per article
// container. Items without a parseable date are dropped at the source; an
// undated scrape result cannot be windowed and is stale more often than not.
func (s *ScrapeSource) Fetch(ctx context.Context) ([]types.Paper, error) {
	resp, err := httputil.Get(ctx, s.client, s.cfg.URL, 2)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", s.cfg.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: HTTP %d", s.cfg.URL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.cfg.URL, err)
	}

	base, err := url.Parse(s.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL %s: %w", s.cfg.URL, err)
	}

	now := time.Now().UTC()
	seen := make(map[string]bool)
	var papers []types.Paper
	s.containers(doc).Each(func(_ int, sel *goquery.Selection) {
		p, ok := s.extractPaper(sel, base, now)
		if !ok || seen[p.URL] {
			return
		}
		seen[p.URL] = true
		papers = append(papers, p)
	})
	return papers, nil
}

// containers locates the listing items, trying the configured class first,
// then semantic <article> tags, then class-name heuristics, and finally
// falling back to headings that wrap links.
func (s *ScrapeSource) containers(doc *goquery.Document) *goquery.Selection {
	if s.cfg.ArticleClass != "" {
		if sel := doc.Find("." + s.cfg.ArticleClass); sel.Length() > 0 {
			return sel
		}
	}
	if sel := doc.Find("article"); sel.Length() > 0 {
		return sel
	}
	sel := doc.Find("div[class], li[class]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		return containerClassRe.MatchString(class)
	})
	if sel.Length() > 0 {
		return sel
	}
	return doc.Find("h1, h2, h3").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Find("a[href]").Length() > 0
	})
}

// extractPaper pulls title, link, date and abstract out of one container.
func (s *ScrapeSource) extractPaper(sel *goquery.Selection, base *url.URL, now time.Time) (types.Paper, bool) {
	title := s.extractTitle(sel)
	if title == "" {
		return types.Paper{}, false
	}

	link := s.extractLink(sel, base)
	if link == "" {
		return types.Paper{}, false
	}
	if s.cfg.LinkMustContain != "" && !strings.Contains(link, s.cfg.LinkMustContain) {
		return types.Paper{}, false
	}

	text := sel.Text()
	if len(s.cfg.Keywords) > 0 && !matchesAnyKeyword(text, s.cfg.Keywords) {
		return types.Paper{}, false
	}

	published := ParseDate(text, now)
	if published.IsZero() {
		return types.Paper{}, false
	}

	return types.Paper{
		Title:         title,
		Authors:       []string{s.cfg.Org},
		Organization:  s.cfg.Org,
		Abstract:      firstParagraph(sel),
		URL:           link,
		PublishedDate: published,
		SourceType:    types.SourceScrape,
		SourceURL:     s.cfg.URL,
		FetchedAt:     now,
	}, true
}

func (s *ScrapeSource) extractTitle(sel *goquery.Selection) string {
	candidates := []string{"h1", "h2", "h3", "h4", "a"}
	for _, tag := range candidates {
		raw := sel.Find(tag).First().Text()
		if tag == "a" && sel.Is("h1, h2, h3") {
			raw = sel.Text()
		}
		title := cleanTitle(raw)
		if title != "" {
			return title
		}
	}
	return ""
}

// cleanTitle normalizes a candidate title and rejects navigation junk.
func cleanTitle(raw string) string {
	title := strings.Join(strings.Fields(raw), " ")
	title = listNumberRe.ReplaceAllString(title, "")
	if len(title) < minTitleLen || len(title) > maxTitleLen {
		return ""
	}
	if junkTitles[strings.ToLower(title)] {
		return ""
	}
	return title
}

func (s *ScrapeSource) extractLink(sel *goquery.Selection, base *url.URL) string {
	href, ok := sel.Find("a[href]").First().Attr("href")
	if !ok {
		return ""
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}

// firstParagraph returns the container's first non-trivial paragraph as the
// provisional abstract. Enrichment improves it later when it is too thin.
func firstParagraph(sel *goquery.Selection) string {
	var found string
	sel.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := strings.Join(strings.Fields(p.Text()), " ")
		if len(text) >= 40 {
			found = text
			return false
		}
		return true
	})
	return found
}

func matchesAnyKeyword(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
