// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/safety-digest/pkg/types"
)

// fakeSource returns canned papers after an optional delay, for exercising
// the fan-out.
type fakeSource struct {
	name   string
	papers []types.Paper
	err    error
	delay  time.Duration
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(_ context.Context) ([]types.Paper, error) {
	time.Sleep(f.delay)
	return f.papers, f.err
}

func TestAllPreservesSourceOrder(t *testing.T) {
	// The slowest source comes first; its papers must still lead the output.
	sources := []Source{
		&fakeSource{name: "slow", delay: 30 * time.Millisecond, papers: []types.Paper{{Title: "first"}}},
		&fakeSource{name: "fast", papers: []types.Paper{{Title: "second"}, {Title: "third"}}},
	}

	got := All(context.Background(), sources, bytes.NewBuffer(nil))
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Title)
	assert.Equal(t, "second", got[1].Title)
	assert.Equal(t, "third", got[2].Title)
}

func TestAllIsolatesFailures(t *testing.T) {
	var log bytes.Buffer
	sources := []Source{
		&fakeSource{name: "broken", err: errors.New("connection refused")},
		&fakeSource{name: "healthy", papers: []types.Paper{{Title: "survives"}}},
	}

	got := All(context.Background(), sources, &log)
	require.Len(t, got, 1)
	assert.Equal(t, "survives", got[0].Title)
	assert.Contains(t, log.String(), "warning: broken")
	assert.Contains(t, log.String(), "connection refused")
}

func TestAllNoSources(t *testing.T) {
	got := All(context.Background(), nil, bytes.NewBuffer(nil))
	assert.Empty(t, got)
}

func TestBuildSourceSet(t *testing.T) {
	cfg := &types.Config{
		Feeds: []types.FeedSource{
			{Name: "blog-a", URL: "https://a.example/feed", Org: "A"},
			{Name: "blog-b", URL: "https://b.example/feed", Org: "B"},
		},
		Arxiv: types.ArxivSource{
			Keywords:   []string{"alignment"},
			Categories: []string{"cs.AI"},
		},
		Scrapers: []types.ScrapeSource{
			{Name: "lab-c", URL: "https://c.example/research", Org: "C"},
		},
		LessWrong: types.LessWrongSource{Enabled: true},
		Trending:  types.TrendingSource{Enabled: true, Queries: []string{"interpretability"}},
	}

	sources := Build(cfg)
	require.Len(t, sources, 6)

	var names []string
	for _, s := range sources {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{
		"rss:blog-a", "rss:blog-b", "arxiv", "scrape:lab-c", "lesswrong", "hackernews",
	}, names)
}

func TestBuildSkipsDisabledSources(t *testing.T) {
	sources := Build(&types.Config{})
	assert.Empty(t, sources)
}
