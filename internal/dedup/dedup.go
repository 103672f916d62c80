// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dedup collapses records describing the same publication.
//
// Deduplication runs in two order-dependent passes: an exact pass grouping
// papers by normalized title, then a fuzzy pass comparing the survivors
// pairwise with a sequence-similarity ratio. The fuzzy pass is O(n²) in the
// number of exact-pass survivors, which is acceptable for a weekly batch of
// tens to low hundreds of records; bucketing by first token would be the
// escape hatch if input size ever grows materially.
package dedup

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/pdiddy/safety-digest/pkg/types"
)

// NormalizeTitle returns a lowercased, punctuation-stripped, whitespace-
// collapsed version of the title, used as the exact-match dedup key.
func NormalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Deduplicate removes duplicate and near-duplicate papers. Within a group of
// duplicates the paper with the longest abstract survives; ties go to the
// first-seen paper, so the result is deterministic for a given input order.
// Progress statistics are written to w.
func Deduplicate(papers []types.Paper, cfg types.DedupConfig, w io.Writer) []types.Paper {
	if len(papers) == 0 {
		return nil
	}

	threshold := cfg.SimilarityThreshold
	if threshold <= 0 {
		threshold = 0.85
	}

	// Pass 1: exact match on normalized title, keeping first-seen order.
	byKey := make(map[string]int)
	var unique []types.Paper
	exactDupes := 0
	for _, p := range papers {
		key := NormalizeTitle(p.Title)
		if idx, ok := byKey[key]; ok {
			exactDupes++
			if len(p.Abstract) > len(unique[idx].Abstract) {
				unique[idx] = p
			}
			continue
		}
		byKey[key] = len(unique)
		unique = append(unique, p)
	}
	if exactDupes > 0 {
		fmt.Fprintf(w, "dedup: removed %d exact-title duplicates\n", exactDupes)
	}

	// Pass 2: pairwise near-duplicate detection over the survivors.
	// Similar pairs union transitively, so A~B and B~C land in one cluster
	// even when A and C are not themselves similar.
	keys := make([]string, len(unique))
	for i, p := range unique {
		keys[i] = dedupText(p, cfg)
	}

	parent := make([]int, len(unique))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}

	for i := 0; i < len(unique); i++ {
		for j := i + 1; j < len(unique); j++ {
			if Ratio(keys[i], keys[j]) > threshold {
				ri, rj := find(i), find(j)
				if ri != rj {
					parent[rj] = ri
				}
			}
		}
	}

	// One survivor per cluster: longest abstract, first-seen on ties.
	best := make(map[int]int)
	for i := range unique {
		root := find(i)
		b, ok := best[root]
		if !ok || len(unique[i].Abstract) > len(unique[b].Abstract) {
			best[root] = i
		}
	}

	result := make([]types.Paper, 0, len(unique))
	for i, p := range unique {
		if best[find(i)] == i {
			result = append(result, p)
		}
	}
	if nearDupes := len(unique) - len(result); nearDupes > 0 {
		fmt.Fprintf(w, "dedup: removed %d near-duplicates (ratio > %.2f)\n", nearDupes, threshold)
	}
	fmt.Fprintf(w, "dedup: %d -> %d papers\n", len(papers), len(result))
	return result
}

// dedupText returns the text the fuzzy pass compares. Title-only by default;
// the abstract is appended only when configured.
func dedupText(p types.Paper, cfg types.DedupConfig) string {
	if cfg.IncludeAbstract {
		return NormalizeTitle(p.Title + " " + p.Abstract)
	}
	return NormalizeTitle(p.Title)
}
