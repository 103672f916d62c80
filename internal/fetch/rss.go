// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/pdiddy/safety-digest/internal/httputil"
	"github.com/pdiddy/safety-digest/internal/relevance"
	"github.com/pdiddy/safety-digest/pkg/types"
)

// defaultFeedKeywords filters keyword-less feeds. Broad on purpose: the
// relevance stage makes the real call later, this only drops obvious
// off-topic items (release notes, event pages) from mixed feeds.
var defaultFeedKeywords = []string{
	"safety", "alignment", "interpretability", "research", "paper",
	"model", "evaluation", "benchmark", "red team", "capability",
	"training", "rlhf", "oversight", "governance", "risk",
}

// RSSSource reads one RSS or Atom feed.
type RSSSource struct {
	cfg    types.FeedSource
	client *http.Client
	parser *gofeed.Parser
}

// NewRSSSource builds a feed source. The parser carries a rotated browser
// user agent since several publishers block default Go clients.
func NewRSSSource(cfg types.FeedSource, httpCfg types.HTTPConfig) *RSSSource {
	parser := gofeed.NewParser()
	parser.UserAgent = httputil.UserAgent(cfg.URL)
	return &RSSSource{
		cfg:    cfg,
		client: &http.Client{Timeout: httpCfg.Timeout},
		parser: parser,
	}
}

// Name identifies the feed in logs.
func (s *RSSSource) Name() string { return "rss:" + s.cfg.Name }

// Fetch downloads and parses the feed, returning one paper per relevant item.
func (s *RSSSource) Fetch(ctx context.Context) ([]types.Paper, error) {
	s.parser.Client = s.client
	feed, err := s.parser.ParseURLWithContext(s.cfg.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parsing feed %s: %w", s.cfg.URL, err)
	}

	now := time.Now().UTC()
	var papers []types.Paper
	for _, item := range feed.Items {
		if item.Title == "" || item.Link == "" {
			continue
		}
		if !s.wantItem(item) {
			continue
		}

		papers = append(papers, types.Paper{
			Title:         strings.TrimSpace(item.Title),
			Authors:       itemAuthors(item, feed),
			Organization:  s.cfg.Org,
			Abstract:      itemAbstract(item),
			URL:           item.Link,
			PublishedDate: itemDate(item),
			SourceType:    types.SourceRSS,
			SourceURL:     s.cfg.URL,
			FetchedAt:     now,
		})
	}
	return papers, nil
}

// wantItem applies the per-feed keyword filter. Feeds with explicit keywords
// are hard-filtered on them; keyword-less feeds fall back to the default
// list, with items from known research organizations passing regardless.
func (s *RSSSource) wantItem(item *gofeed.Item) bool {
	text := strings.ToLower(item.Title + " " + item.Description)

	if len(s.cfg.Keywords) > 0 {
		for _, kw := range s.cfg.Keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				return true
			}
		}
		return false
	}

	for _, kw := range defaultFeedKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return relevance.ResearchOrgs[strings.ToLower(s.cfg.Org)]
}

// itemAuthors extracts author names, falling back to the feed title and then
// a placeholder so the field is never empty.
func itemAuthors(item *gofeed.Item, feed *gofeed.Feed) []string {
	var names []string
	for _, a := range item.Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) > 0 {
		return names
	}
	if feed.Title != "" {
		return []string{strings.TrimSpace(feed.Title)}
	}
	return []string{"Unknown"}
}

// itemAbstract prefers the item description, falling back to full content.
func itemAbstract(item *gofeed.Item) string {
	if desc := strings.TrimSpace(item.Description); desc != "" {
		return desc
	}
	return strings.TrimSpace(item.Content)
}

// itemDate returns the item's publication time, preferring the published
// field over updated. Zero when the feed carries neither.
func itemDate(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.UTC()
	}
	if item.UpdatedParsed != nil {
		return item.UpdatedParsed.UTC()
	}
	return time.Time{}
}
