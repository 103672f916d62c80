// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import "strings"

// topTierOrgs are the frontier labs whose publications anchor the digest.
var topTierOrgs = map[string]bool{
	"anthropic":       true,
	"openai":          true,
	"google deepmind": true,
}

// priorityOrgs fixes the section order on the rendered page. Organizations
// not listed here are appended alphabetically after these.
var priorityOrgs = []string{
	"Anthropic",
	"OpenAI",
	"Google DeepMind",
	"Microsoft Research",
	"arXiv",
	"Redwood Research",
	"METR",
	"Apollo Research",
	"UK AISI",
	"Epoch AI",
	"MIRI",
	"Alignment Forum",
	"LessWrong",
	"Hacker News",
}

// communityOrgs are aggregators and forums: valuable leads, but their posts
// are penalized in featured scoring because they carry no institutional
// endorsement. arXiv belongs here too: it hosts unreviewed preprints from
// anyone, so the aggregator label itself confers no authority even though
// preprint provenance earns a separate boost.
var communityOrgs = map[string]bool{
	"lesswrong":       true,
	"alignment forum": true,
	"hacker news":     true,
	"arxiv":           true,
}

// IsTopTier reports whether org is a frontier lab.
func IsTopTier(org string) bool { return topTierOrgs[strings.ToLower(org)] }

// IsCommunity reports whether org is a community aggregator.
func IsCommunity(org string) bool { return communityOrgs[strings.ToLower(org)] }

// orgRank returns the position of org in the priority list, or its length
// when unlisted.
func orgRank(org string) int {
	for i, p := range priorityOrgs {
		if strings.EqualFold(p, org) {
			return i
		}
	}
	return len(priorityOrgs)
}
