// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"html"
	"regexp"
	"strings"
)

const (
	maxAbstractWords = 150
	// Preferred cut point when truncating: a sentence ending past this
	// fraction of the word budget.
	sentenceCutFraction = 0.6
)

var (
	tagRe        = regexp.MustCompile(`<[^>]+>`)
	whitespaceRe = regexp.MustCompile(`\s+`)

	// Boilerplate lead-ins that feeds and scrapers prepend to abstracts.
	prefixRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^\s*(abstract|summary|tl;dr|tldr)\s*[:.\-]\s*`),
		regexp.MustCompile(`(?i)^\s*(published|posted)\s+(on\s+)?\w+\s+\d{1,2},?\s+\d{4}\s*[:.\-—]?\s*`),
		regexp.MustCompile(`^\s*\w{3,9}\s+\d{1,2},?\s+\d{4}\s*[—\-–]\s*`),
		regexp.MustCompile(`^\s*\d{4}-\d{2}-\d{2}\s*[—\-–]\s*`),
	}

	// Call-to-action tails that add nothing to an abstract. A bare trailing
	// ellipsis is deliberately not stripped here: truncateWords appends one,
	// and removing it on the next pass would break idempotence.
	suffixRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\s*(read\s+(the\s+)?(full\s+)?(post|paper|article|more)|continue\s+reading|learn\s+more|subscribe\s+.*|sign\s+up\s+.*|click\s+here\s*.*)[.!…]*\s*$`),
	}
)

// Clean normalizes a raw abstract: HTML tags and entities removed, whitespace
// collapsed, boilerplate lead-ins and call-to-action tails stripped, and the
// text capped at 150 words. Clean(Clean(s)) == Clean(s) for any input, so the
// pipeline may re-run over an already-cleaned snapshot safely.
func Clean(raw string) string {
	s := html.UnescapeString(raw)
	s = tagRe.ReplaceAllString(s, " ")
	// Entities can appear inside stripped tags' text too.
	s = html.UnescapeString(s)
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	for _, re := range prefixRes {
		s = re.ReplaceAllString(s, "")
	}
	for _, re := range suffixRes {
		s = re.ReplaceAllString(s, "")
	}
	s = strings.TrimSpace(s)

	return truncateWords(s, maxAbstractWords)
}

// truncateWords caps s at limit words, preferring to cut at a sentence
// boundary when one exists past sentenceCutFraction of the budget. A hard cut
// appends an ellipsis; that ellipsis is not itself a word, so the function is
// stable under repeated application.
func truncateWords(s string, limit int) string {
	words := strings.Fields(s)
	if len(words) <= limit {
		return s
	}
	words = words[:limit]

	minCut := int(float64(limit) * sentenceCutFraction)
	for i := len(words) - 1; i >= minCut; i-- {
		if strings.HasSuffix(words[i], ".") || strings.HasSuffix(words[i], "!") || strings.HasSuffix(words[i], "?") {
			return strings.Join(words[:i+1], " ")
		}
	}
	return strings.Join(words, " ") + "..."
}
