// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich fills in missing or thin abstracts by fetching the paper's
// page and extracting summary text, with a synthetic fallback composed from
// metadata when every extraction strategy fails.
package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/safety-digest/internal/httputil"
	"github.com/pdiddy/safety-digest/pkg/types"
)

// lesswrongGraphQLBase is swappable for tests.
var lesswrongGraphQLBase = "https://www.lesswrong.com/graphql"

const (
	// An abstract below either bound is considered thin and worth a
	// network round-trip to improve.
	minAbstractChars = 100
	minAbstractWords = 20

	defaultWorkers = 5
)

// NeedsEnrichment reports whether a paper's abstract is missing or too thin
// to be useful.
func NeedsEnrichment(p types.Paper) bool {
	abstract := strings.TrimSpace(p.Abstract)
	return len(abstract) < minAbstractChars || len(strings.Fields(abstract)) < minAbstractWords
}

// Enricher fetches pages and extracts abstracts concurrently.
type Enricher struct {
	client *http.Client
	cfg    types.EnrichConfig
	log    io.Writer
}

// New builds an Enricher. The log writer receives per-paper progress lines.
func New(cfg types.EnrichConfig, log io.Writer) *Enricher {
	return &Enricher{
		client: &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
		log:    log,
	}
}

// EnrichAll improves thin abstracts in place and returns the number of papers
// whose abstracts changed. Papers are processed by a fixed-size worker pool;
// each worker writes only to its own index, so no locking is needed, and a
// failure on one paper never affects the others.
func (e *Enricher) EnrichAll(ctx context.Context, papers []types.Paper) int {
	var todo []int
	for i, p := range papers {
		if NeedsEnrichment(p) {
			todo = append(todo, i)
		}
	}
	if len(todo) == 0 {
		return 0
	}
	fmt.Fprintf(e.log, "enrich: %d of %d papers need better abstracts\n", len(todo), len(papers))

	before := make(map[int]string, len(todo))
	for _, idx := range todo {
		before[idx] = papers[idx].Abstract
	}

	workers := e.cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	if workers > len(todo) {
		workers = len(todo)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				papers[idx].Abstract = e.enrichOne(ctx, papers[idx])
			}
		}()
	}
	for _, idx := range todo {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	changed := 0
	for _, idx := range todo {
		if papers[idx].Abstract != before[idx] {
			changed++
		}
	}
	fmt.Fprintf(e.log, "enrich: improved %d abstracts\n", changed)
	return changed
}

// enrichOne runs the strategy chain for a single paper. The existing abstract
// is kept if every strategy fails to beat it; the synthetic fallback
// guarantees a non-empty result.
func (e *Enricher) enrichOne(ctx context.Context, p types.Paper) string {
	if text := e.fromLessWrong(ctx, p.URL); text != "" {
		return text
	}
	if text := e.fromPage(ctx, p.URL); text != "" {
		return text
	}
	if existing := Clean(p.Abstract); existing != "" {
		return existing
	}
	return Synthesize(p)
}

// fromPage fetches the paper's page and runs the extraction strategies.
// arXiv PDF and HTML URLs are rewritten to the abs page first; other PDF
// links are skipped since there is no HTML to parse.
func (e *Enricher) fromPage(ctx context.Context, url string) string {
	url = arxivAbsURL(url)
	if strings.HasSuffix(strings.ToLower(url), ".pdf") {
		return ""
	}

	resp, err := httputil.Get(ctx, e.client, url, e.cfg.MaxRetries)
	if err != nil {
		fmt.Fprintf(e.log, "enrich: warning: fetch %s: %v\n", url, err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(e.log, "enrich: warning: fetch %s: status %d\n", url, resp.StatusCode)
		return ""
	}
	if ct := resp.Header.Get("Content-Type"); strings.Contains(ct, "application/pdf") {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		fmt.Fprintf(e.log, "enrich: warning: parse %s: %v\n", url, err)
		return ""
	}
	return extractFromPage(doc)
}

var arxivURLRe = regexp.MustCompile(`^(https?://arxiv\.org)/(?:pdf|html)/([^\s?#]+?)(v\d+)?(?:\.pdf)?$`)

// arxivAbsURL rewrites arXiv PDF and HTML links to the abs page, which
// carries the abstract in a parseable blockquote.
func arxivAbsURL(url string) string {
	m := arxivURLRe.FindStringSubmatch(url)
	if m == nil {
		return url
	}
	return m[1] + "/abs/" + m[2] + m[3]
}

// lesswrongPostRe extracts the post ID from a LessWrong or Alignment Forum
// post URL.
var lesswrongPostRe = regexp.MustCompile(`(?:lesswrong\.com|alignmentforum\.org)/posts/([A-Za-z0-9]+)`)

// fromLessWrong fetches a post body over the forum's GraphQL API, which is
// far more reliable than scraping the rendered page.
func (e *Enricher) fromLessWrong(ctx context.Context, url string) string {
	m := lesswrongPostRe.FindStringSubmatch(url)
	if m == nil {
		return ""
	}

	query := fmt.Sprintf(`{post(input:{selector:{_id:%q}}){result{htmlBody}}}`, m[1])
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, lesswrongGraphQLBase, bytes.NewReader(body))
	if err != nil {
		return ""
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", httputil.UserAgent(url))

	resp, err := httputil.DoWithRetry(ctx, e.client, req, e.cfg.MaxRetries)
	if err != nil {
		fmt.Fprintf(e.log, "enrich: warning: lesswrong api: %v\n", err)
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}

	var result struct {
		Data struct {
			Post struct {
				Result struct {
					HTMLBody string `json:"htmlBody"`
				} `json:"result"`
			} `json:"post"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return ""
	}

	text := Clean(result.Data.Post.Result.HTMLBody)
	if len(text) < minUsefulLength {
		return ""
	}
	return text
}

// Synthesize composes a placeholder abstract from metadata. Used when every
// extraction strategy fails, so downstream stages never see an empty
// abstract.
func Synthesize(p types.Paper) string {
	var b strings.Builder
	org := p.Organization
	if org == "" {
		org = "an unknown source"
	}
	fmt.Fprintf(&b, "Research from %s titled %q.", org, p.Title)
	if !p.PublishedDate.IsZero() {
		fmt.Fprintf(&b, " Published %s.", p.PublishedDate.Format("2006-01-02"))
	}
	if named := realAuthors(p.Authors); len(named) > 0 {
		if len(named) <= 3 {
			fmt.Fprintf(&b, " Authors: %s.", strings.Join(named, ", "))
		} else {
			fmt.Fprintf(&b, " Authors: %s and %d others.", strings.Join(named[:3], ", "), len(named)-3)
		}
	}
	return b.String()
}

func realAuthors(authors []string) []string {
	var named []string
	for _, a := range authors {
		a = strings.TrimSpace(a)
		if a != "" && !strings.EqualFold(a, "unknown") {
			named = append(named, a)
		}
	}
	return named
}
