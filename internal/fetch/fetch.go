// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch collects papers from the configured sources: RSS and Atom
// feeds, the arXiv API, organization blogs without feeds, LessWrong, and
// Hacker News. Sources run concurrently; a failing source is reported and
// skipped, never fatal.
package fetch

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/pdiddy/safety-digest/pkg/types"
)

// Source is a single paper provider.
type Source interface {
	// Name identifies the source in logs.
	Name() string
	// Fetch returns the papers currently visible at the source.
	Fetch(ctx context.Context) ([]types.Paper, error)
}

// All fans out over the sources concurrently and concatenates their results
// in source order, so the combined list is deterministic regardless of which
// source finishes first. Per-source failures are written to w as warnings.
func All(ctx context.Context, sources []Source, w io.Writer) []types.Paper {
	results := make([][]types.Paper, len(sources))
	errs := make([]error, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			results[i], errs[i] = src.Fetch(ctx)
		}(i, src)
	}
	wg.Wait()

	var papers []types.Paper
	for i, src := range sources {
		if errs[i] != nil {
			fmt.Fprintf(w, "fetch: warning: %s: %v\n", src.Name(), errs[i])
			continue
		}
		fmt.Fprintf(w, "fetch: %s: %d papers\n", src.Name(), len(results[i]))
		papers = append(papers, results[i]...)
	}
	fmt.Fprintf(w, "fetch: %d papers total\n", len(papers))
	return papers
}

// Build assembles the source list from config, in a fixed order: feeds,
// arXiv, scrapers, LessWrong, Hacker News.
func Build(cfg *types.Config) []Source {
	var sources []Source
	for _, feed := range cfg.Feeds {
		sources = append(sources, NewRSSSource(feed, cfg.HTTPConfig))
	}
	if cfg.Arxiv.Enabled() {
		sources = append(sources, NewArxivSource(cfg.Arxiv, cfg.HTTPConfig))
	}
	for _, sc := range cfg.Scrapers {
		sources = append(sources, NewScrapeSource(sc, cfg.HTTPConfig))
	}
	if cfg.LessWrong.Enabled {
		sources = append(sources, NewLessWrongSource(cfg.LessWrong, cfg.HTTPConfig, cfg.WindowDays))
	}
	if cfg.Trending.Enabled {
		sources = append(sources, NewTrendingSource(cfg.Trending, cfg.HTTPConfig, cfg.WindowDays))
	}
	return sources
}
