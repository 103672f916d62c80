// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pdiddy/safety-digest/internal/httputil"
	"github.com/pdiddy/safety-digest/pkg/types"
)

// lesswrongAPIBase is swappable for tests.
var lesswrongAPIBase = "https://www.lesswrong.com/graphql"

// LessWrongSource pulls top recent posts over the forum's GraphQL API.
type LessWrongSource struct {
	cfg        types.LessWrongSource
	client     *http.Client
	windowDays int
}

func NewLessWrongSource(cfg types.LessWrongSource, httpCfg types.HTTPConfig, windowDays int) *LessWrongSource {
	if windowDays <= 0 {
		windowDays = 7
	}
	return &LessWrongSource{
		cfg:        cfg,
		client:     &http.Client{Timeout: httpCfg.Timeout},
		windowDays: windowDays,
	}
}

// Name identifies the source in logs.
func (s *LessWrongSource) Name() string { return "lesswrong" }

// Fetch queries the top posts inside the window and keeps those above the
// karma bar. The post body is not requested here; enrichment fetches it only
// for the posts that survive filtering.
func (s *LessWrongSource) Fetch(ctx context.Context) ([]types.Paper, error) {
	limit := s.cfg.MaxResults
	if limit <= 0 {
		limit = 20
	}
	after := time.Now().UTC().AddDate(0, 0, -s.windowDays).Format("2006-01-02")

	query := fmt.Sprintf(
		`{posts(input:{terms:{after:%q,limit:%d,sortedBy:"top"}}){results{title pageUrl postedAt baseScore user{displayName}}}}`,
		after, limit)
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("encoding query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, lesswrongAPIBase, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", httputil.UserAgent(lesswrongAPIBase))

	resp, err := httputil.DoWithRetry(ctx, s.client, req, 2)
	if err != nil {
		return nil, fmt.Errorf("LessWrong API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("LessWrong API returned HTTP %d", resp.StatusCode)
	}

	var result struct {
		Data struct {
			Posts struct {
				Results []struct {
					Title     string  `json:"title"`
					PageURL   string  `json:"pageUrl"`
					PostedAt  string  `json:"postedAt"`
					BaseScore float64 `json:"baseScore"`
					User      struct {
						DisplayName string `json:"displayName"`
					} `json:"user"`
				} `json:"results"`
			} `json:"posts"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("parsing LessWrong response: %w", err)
	}

	now := time.Now().UTC()
	var papers []types.Paper
	for _, post := range result.Data.Posts.Results {
		if post.Title == "" || post.PageURL == "" {
			continue
		}
		if int(post.BaseScore) < s.cfg.MinKarma {
			continue
		}

		author := post.User.DisplayName
		if author == "" {
			author = "Unknown"
		}

		p := types.Paper{
			Title:        post.Title,
			Authors:      []string{author},
			Organization: "LessWrong",
			Abstract:     fmt.Sprintf("Community post with %d karma.", int(post.BaseScore)),
			URL:          post.PageURL,
			SourceType:   types.SourceRSS,
			SourceURL:    lesswrongAPIBase,
			FetchedAt:    now,
		}
		if t, parseErr := time.Parse(time.RFC3339, post.PostedAt); parseErr == nil {
			p.PublishedDate = t.UTC()
		}
		papers = append(papers, p)
	}
	return papers, nil
}
