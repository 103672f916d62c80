// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/safety-digest/pkg/types"
)

const trendingFixture = `{"hits":[
  {"title":"Show HN: Interpretability benchmark for open models","url":"https://bench.example/launch","objectID":"101","points":230,"created_at":"2026-01-05T12:00:00Z"},
  {"title":"New arXiv preprint on gradient routing","url":"https://arxiv.org/abs/2601.05555","objectID":"102","points":120,"created_at":"2026-01-04T12:00:00Z"},
  {"title":"Our startup got acquired","url":"https://corp.example/exit","objectID":"103","points":500,"created_at":"2026-01-03T12:00:00Z"},
  {"title":"Ask HN: interpretability reading list","url":"","objectID":"104","points":90,"created_at":"2026-01-02T12:00:00Z"}
]}`

func TestTrendingFetch(t *testing.T) {
	var gotFilters, gotTags string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFilters = r.URL.Query().Get("numericFilters")
		gotTags = r.URL.Query().Get("tags")
		fmt.Fprint(w, trendingFixture)
	}))
	defer ts.Close()

	orig := hnAPIBase
	hnAPIBase = ts.URL
	defer func() { hnAPIBase = orig }()

	src := NewTrendingSource(types.TrendingSource{
		Enabled: true, Queries: []string{"interpretability"}, MinPoints: 80, HitsPerPage: 10,
	}, types.HTTPConfig{Timeout: 5 * time.Second}, 7)

	papers, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, papers, 3)

	assert.Equal(t, "story", gotTags)
	assert.True(t, strings.HasPrefix(gotFilters, "points>80,created_at_i>"), gotFilters)

	// Research-keyword title passes the heuristic.
	assert.Equal(t, "Show HN: Interpretability benchmark for open models", papers[0].Title)
	assert.Equal(t, "Hacker News", papers[0].Organization)
	assert.Equal(t, "Trending on Hacker News with 230 points.", papers[0].Abstract)

	// Known research domain passes regardless of title wording.
	assert.Equal(t, "https://arxiv.org/abs/2601.05555", papers[1].URL)

	// No outbound URL: link to the HN discussion instead.
	assert.Equal(t, "https://news.ycombinator.com/item?id=104", papers[2].URL)

	// The acquisition story is filtered despite its points.
	for _, p := range papers {
		assert.NotContains(t, p.Title, "acquired")
	}
}

func TestTrendingFetchDeduplicatesAcrossQueries(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		fmt.Fprint(w, `{"hits":[{"title":"An interpretability benchmark","url":"https://bench.example/one","objectID":"1","points":100,"created_at":"2026-01-05T12:00:00Z"}]}`)
	}))
	defer ts.Close()

	orig := hnAPIBase
	hnAPIBase = ts.URL
	defer func() { hnAPIBase = orig }()

	src := NewTrendingSource(types.TrendingSource{
		Enabled: true, Queries: []string{"interpretability", "alignment"},
	}, types.HTTPConfig{Timeout: 5 * time.Second}, 7)

	papers, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Len(t, papers, 1)
}
