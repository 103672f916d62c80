// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/safety-digest/internal/httputil"
	"github.com/pdiddy/safety-digest/internal/relevance"
	"github.com/pdiddy/safety-digest/pkg/types"
)

// hnAPIBase is the Algolia Hacker News search endpoint. Swappable for tests.
var hnAPIBase = "https://hn.algolia.com/api/v1/search"

// researchDomains are hosts whose stories pass without the heuristic title
// check: a link to one of these is research content by construction.
var researchDomains = []string{
	"arxiv.org", "anthropic.com", "openai.com", "deepmind.google",
	"lesswrong.com", "alignmentforum.org", "transformer-circuits.pub",
	"epoch.ai", "metr.org",
}

// TrendingSource surfaces research links trending on Hacker News.
type TrendingSource struct {
	cfg        types.TrendingSource
	client     *http.Client
	windowDays int
}

func NewTrendingSource(cfg types.TrendingSource, httpCfg types.HTTPConfig, windowDays int) *TrendingSource {
	if windowDays <= 0 {
		windowDays = 7
	}
	return &TrendingSource{
		cfg:        cfg,
		client:     &http.Client{Timeout: httpCfg.Timeout},
		windowDays: windowDays,
	}
}

// Name identifies the source in logs.
func (s *TrendingSource) Name() string { return "hackernews" }

// Fetch runs one Algolia search per configured query, restricted to stories
// above the points bar inside the window, then keeps the hits that look like
// research rather than product or company news.
func (s *TrendingSource) Fetch(ctx context.Context) ([]types.Paper, error) {
	minPoints := s.cfg.MinPoints
	if minPoints <= 0 {
		minPoints = 50
	}
	hits := s.cfg.HitsPerPage
	if hits <= 0 {
		hits = 10
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -s.windowDays).Unix()

	now := time.Now().UTC()
	seen := make(map[string]bool)
	var papers []types.Paper
	for _, query := range s.cfg.Queries {
		stories, err := s.search(ctx, query, minPoints, hits, cutoff)
		if err != nil {
			return nil, fmt.Errorf("query %q: %w", query, err)
		}
		for _, story := range stories {
			p, ok := s.toPaper(story, now)
			if !ok || seen[p.URL] {
				continue
			}
			seen[p.URL] = true
			papers = append(papers, p)
		}
	}
	return papers, nil
}

type hnStory struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	ObjectID  string `json:"objectID"`
	Points    int    `json:"points"`
	CreatedAt string `json:"created_at"`
}

func (s *TrendingSource) search(ctx context.Context, query string, minPoints, hits int, cutoff int64) ([]hnStory, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("tags", "story")
	params.Set("hitsPerPage", fmt.Sprintf("%d", hits))
	params.Set("numericFilters", fmt.Sprintf("points>%d,created_at_i>%d", minPoints, cutoff))

	resp, err := httputil.Get(ctx, s.client, hnAPIBase+"?"+params.Encode(), 2)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HN API returned HTTP %d", resp.StatusCode)
	}

	var result struct {
		Hits []hnStory `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("parsing HN response: %w", err)
	}
	return result.Hits, nil
}

// toPaper converts a story, filtering out non-research links. Stories without
// an outbound URL fall back to the HN discussion page.
func (s *TrendingSource) toPaper(story hnStory, now time.Time) (types.Paper, bool) {
	if story.Title == "" {
		return types.Paper{}, false
	}

	link := story.URL
	if link == "" {
		link = "https://news.ycombinator.com/item?id=" + story.ObjectID
	}

	if !isResearchStory(story.Title, link) {
		return types.Paper{}, false
	}

	p := types.Paper{
		Title:        story.Title,
		Authors:      []string{"Unknown"},
		Organization: "Hacker News",
		Abstract:     fmt.Sprintf("Trending on Hacker News with %d points.", story.Points),
		URL:          link,
		SourceType:   types.SourceRSS,
		SourceURL:    hnAPIBase,
		FetchedAt:    now,
	}
	if t, err := time.Parse(time.RFC3339, story.CreatedAt); err == nil {
		p.PublishedDate = t.UTC()
	}
	return p, true
}

// isResearchStory keeps links to known research hosts unconditionally and
// otherwise requires the title to score on the research vocabulary.
func isResearchStory(title, link string) bool {
	lower := strings.ToLower(link)
	for _, domain := range researchDomains {
		if strings.Contains(lower, domain) {
			return true
		}
	}
	return relevance.Score(title) >= 1
}
