// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the collection stages in order: fetch, window,
// dedup, relevance filter, enrichment, cleanup, sort, snapshot. Each stage
// reports its input and output counts so a run is auditable from its log.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/pdiddy/safety-digest/internal/dedup"
	"github.com/pdiddy/safety-digest/internal/enrich"
	"github.com/pdiddy/safety-digest/internal/fetch"
	"github.com/pdiddy/safety-digest/internal/relevance"
	"github.com/pdiddy/safety-digest/pkg/types"
)

// Result summarizes one pipeline run.
type Result struct {
	Fetched  int
	Kept     int
	Enriched int
	Snapshot string
}

// Run executes the full pipeline and writes the snapshot. Source failures
// and enrichment failures degrade the result instead of aborting it; only a
// snapshot write failure is fatal, since that loses the run's output.
func Run(ctx context.Context, cfg *types.Config, now time.Time, w io.Writer) (Result, error) {
	sources := fetch.Build(cfg)
	papers := fetch.All(ctx, sources, w)
	return Process(ctx, cfg, papers, now, w)
}

// Process runs every stage after collection on an already-fetched batch.
// Split from Run so re-processing an existing batch needs no live sources.
func Process(ctx context.Context, cfg *types.Config, papers []types.Paper, now time.Time, w io.Writer) (Result, error) {
	fetched := len(papers)

	papers = Window(papers, now, cfg.WindowDays, w)
	papers = dedup.Deduplicate(papers, cfg.Dedup, w)
	papers = relevance.NewFilter(cfg.Relevance).Apply(papers, w)

	enricher := enrich.New(cfg.Enrich, w)
	enriched := enricher.EnrichAll(ctx, papers)
	for i := range papers {
		papers[i].Abstract = enrich.Clean(papers[i].Abstract)
	}

	sortByDateDesc(papers)

	if err := WriteSnapshot(cfg.Output.Snapshot, papers); err != nil {
		return Result{}, err
	}
	fmt.Fprintf(w, "pipeline: wrote %d papers to %s\n", len(papers), cfg.Output.Snapshot)

	return Result{
		Fetched:  fetched,
		Kept:     len(papers),
		Enriched: enriched,
		Snapshot: cfg.Output.Snapshot,
	}, nil
}

// sortByDateDesc orders papers newest first. The sort is stable so papers
// sharing a date keep their dedup-stage order and repeat runs produce
// identical snapshots.
func sortByDateDesc(papers []types.Paper) {
	sort.SliceStable(papers, func(i, j int) bool {
		return papers[i].PublishedDate.After(papers[j].PublishedDate)
	})
}
