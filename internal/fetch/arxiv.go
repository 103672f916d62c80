// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/safety-digest/internal/httputil"
	"github.com/pdiddy/safety-digest/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// ArxivSource queries the arXiv export API for recent submissions matching
// the configured keywords and categories.
type ArxivSource struct {
	cfg    types.ArxivSource
	client *http.Client
}

func NewArxivSource(cfg types.ArxivSource, httpCfg types.HTTPConfig) *ArxivSource {
	return &ArxivSource{cfg: cfg, client: &http.Client{Timeout: httpCfg.Timeout}}
}

// Name identifies the source in logs.
func (s *ArxivSource) Name() string { return "arxiv" }

// Fetch queries the API sorted by submission date, newest first.
func (s *ArxivSource) Fetch(ctx context.Context) ([]types.Paper, error) {
	maxResults := s.cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 40
	}

	query := buildArxivQuery(s.cfg.Keywords, s.cfg.Categories)
	reqURL := fmt.Sprintf("%s?search_query=%s&start=0&max_results=%d&sortBy=submittedDate&sortOrder=descending",
		arxivAPIBase, url.QueryEscape(query), maxResults)

	resp, err := httputil.Get(ctx, s.client, reqURL, 2)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	now := time.Now().UTC()
	var papers []types.Paper
	for _, entry := range feed.Entries {
		title := strings.Join(strings.Fields(entry.Title), " ")
		if title == "" || entry.ID == "" {
			continue
		}

		p := types.Paper{
			Title:        title,
			Organization: "arXiv",
			Abstract:     strings.TrimSpace(entry.Summary),
			URL:          entry.ID,
			SourceType:   types.SourceArxiv,
			SourceURL:    arxivAPIBase,
			FetchedAt:    now,
		}
		for _, a := range entry.Authors {
			if name := strings.TrimSpace(a.Name); name != "" {
				p.Authors = append(p.Authors, name)
			}
		}
		if t, parseErr := time.Parse(time.RFC3339, entry.Published); parseErr == nil {
			p.PublishedDate = t.UTC()
		}
		papers = append(papers, p)
	}
	return papers, nil
}

// buildArxivQuery builds the search_query parameter:
// (ti:"kw1" OR ti:"kw2" ...) AND (cat:c1 OR cat:c2 ...).
// Keywords match titles; a title mention is a much stronger signal than an
// abstract mention at arXiv's submission volume.
func buildArxivQuery(keywords, categories []string) string {
	var kwParts []string
	for _, kw := range keywords {
		kwParts = append(kwParts, fmt.Sprintf("ti:%q", kw))
	}
	var catParts []string
	for _, c := range categories {
		catParts = append(catParts, "cat:"+c)
	}

	switch {
	case len(kwParts) > 0 && len(catParts) > 0:
		return "(" + strings.Join(kwParts, " OR ") + ") AND (" + strings.Join(catParts, " OR ") + ")"
	case len(kwParts) > 0:
		return "(" + strings.Join(kwParts, " OR ") + ")"
	default:
		return "(" + strings.Join(catParts, " OR ") + ")"
	}
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID        string        `xml:"id"`
	Title     string        `xml:"title"`
	Summary   string        `xml:"summary"`
	Published string        `xml:"published"`
	Authors   []arxivAuthor `xml:"author"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}
