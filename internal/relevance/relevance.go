// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package relevance decides which papers are research content worth keeping.
// Scoring counts distinct vocabulary terms in the title and abstract; papers
// from known research organizations pass with a lower threshold, arXiv papers
// pass unconditionally, and titles matching news or hiring phrasing are
// rejected before any scoring happens.
package relevance

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"

	"github.com/pdiddy/safety-digest/pkg/types"
)

var (
	termPatterns []*regexp.Regexp
	denyPatterns []*regexp.Regexp
	compileOnce  sync.Once
)

// wordPattern matches term as whole words, tolerating a plural "s", so that
// "gpt" matches "GPT-4 evaluation" but not "egypt", and "benchmark" matches
// "benchmarks". The same boundary rule keeps "valuation" from firing inside
// "evaluation" on the deny side.
func wordPattern(term string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `s?\b`)
}

func compilePatterns() {
	termPatterns = make([]*regexp.Regexp, len(ResearchTerms))
	for i, term := range ResearchTerms {
		termPatterns[i] = wordPattern(term)
	}
	denyPatterns = make([]*regexp.Regexp, len(nonResearchPhrases))
	for i, phrase := range nonResearchPhrases {
		denyPatterns[i] = wordPattern(phrase)
	}
}

// Score returns the number of distinct vocabulary terms found in the text.
func Score(text string) int {
	compileOnce.Do(compilePatterns)
	count := 0
	for _, pat := range termPatterns {
		if pat.MatchString(text) {
			count++
		}
	}
	return count
}

// Filter applies the relevance policy to a batch of papers.
type Filter struct {
	orgs             map[string]bool
	defaultThreshold int
	orgThreshold     int
}

// NewFilter builds a Filter from config. ExtraOrgs extends the built-in
// organization allowlist.
func NewFilter(cfg types.RelevanceConfig) *Filter {
	orgs := make(map[string]bool, len(ResearchOrgs)+len(cfg.ExtraOrgs))
	for org := range ResearchOrgs {
		orgs[org] = true
	}
	for _, org := range cfg.ExtraOrgs {
		orgs[strings.ToLower(org)] = true
	}

	defaultThreshold := cfg.DefaultThreshold
	if defaultThreshold <= 0 {
		defaultThreshold = 2
	}
	orgThreshold := cfg.OrgThreshold
	if orgThreshold <= 0 {
		orgThreshold = 1
	}
	return &Filter{orgs: orgs, defaultThreshold: defaultThreshold, orgThreshold: orgThreshold}
}

// Relevant reports whether a single paper passes the policy.
func (f *Filter) Relevant(p types.Paper) bool {
	compileOnce.Do(compilePatterns)
	for _, pat := range denyPatterns {
		if pat.MatchString(p.Title) {
			return false
		}
	}

	if p.SourceType == types.SourceArxiv {
		return true
	}

	score := Score(p.Title + " " + p.Abstract)
	if f.orgs[strings.ToLower(p.Organization)] {
		return score >= f.orgThreshold
	}
	return score >= f.defaultThreshold
}

// Apply filters the batch, preserving input order, and writes a summary to w.
func (f *Filter) Apply(papers []types.Paper, w io.Writer) []types.Paper {
	kept := make([]types.Paper, 0, len(papers))
	for _, p := range papers {
		if f.Relevant(p) {
			kept = append(kept, p)
		}
	}
	fmt.Fprintf(w, "relevance: %d -> %d papers\n", len(papers), len(kept))
	return kept
}
