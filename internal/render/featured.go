// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/safety-digest/internal/relevance"
	"github.com/pdiddy/safety-digest/pkg/types"
)

// thinAbstractChars is the length below which an abstract is penalized as
// uninformative.
const thinAbstractChars = 20

// featuredTitleTermCap bounds the title-vocabulary contribution; past three
// terms a title is keyword-stuffed, not more relevant.
const featuredTitleTermCap = 3

// Score rates a paper's fitness for the hero section. Authority, abstract
// richness, title vocabulary, named authorship, preprint provenance and
// recency add; community provenance and thin abstracts subtract.
func Score(p types.Paper, now time.Time, cfg types.FeaturedConfig) float64 {
	var score float64

	org := strings.TrimSpace(p.Organization)
	switch {
	case IsTopTier(org):
		score += cfg.TopTierWeight
	case orgRank(org) < len(priorityOrgs) && !IsCommunity(org):
		score += cfg.PriorityWeight
	case org != "" && !IsCommunity(org):
		score += cfg.NamedOrgWeight
	}

	abstract := strings.TrimSpace(p.Abstract)
	score += math.Min(float64(len(abstract))/100, cfg.AbstractWeightCap)

	terms := relevance.Score(p.Title)
	if terms > featuredTitleTermCap {
		terms = featuredTitleTermCap
	}
	score += cfg.TitleTermWeight * float64(terms)

	if hasNamedAuthor(p.Authors) {
		score += cfg.AuthorWeight
	}
	if p.SourceType == types.SourceArxiv {
		score += cfg.ArxivBoost
	}

	if !p.PublishedDate.IsZero() {
		days := now.Sub(p.PublishedDate).Hours() / 24
		if days < 0 {
			days = 0
		}
		score += cfg.RecencyWeight * math.Exp(-cfg.RecencyDecay*days)
	}

	if IsCommunity(org) {
		score -= cfg.CommunityPenalty
	}
	if len(abstract) < thinAbstractChars {
		score -= cfg.ThinAbstractPenalty
	}
	return score
}

// SelectFeatured picks the hero papers: highest scoring first, at most one
// per organization, none below the score floor, capped at MaxCount. Ties
// resolve by input position, so the selection is deterministic.
func SelectFeatured(papers []types.Paper, now time.Time, cfg types.FeaturedConfig) []types.Paper {
	type scored struct {
		idx   int
		score float64
	}
	ranked := make([]scored, len(papers))
	for i, p := range papers {
		ranked[i] = scored{idx: i, score: Score(p, now, cfg)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	maxCount := cfg.MaxCount
	if maxCount <= 0 {
		maxCount = 3
	}

	seenOrg := make(map[string]bool)
	var featured []types.Paper
	for _, r := range ranked {
		if r.score < cfg.MinScore {
			break
		}
		org := strings.ToLower(strings.TrimSpace(papers[r.idx].Organization))
		if seenOrg[org] {
			continue
		}
		seenOrg[org] = true
		featured = append(featured, papers[r.idx])
		if len(featured) == maxCount {
			break
		}
	}
	return featured
}

func hasNamedAuthor(authors []string) bool {
	for _, a := range authors {
		a = strings.TrimSpace(a)
		if a != "" && !strings.EqualFold(a, "unknown") {
			return true
		}
	}
	return false
}
