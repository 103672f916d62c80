// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"regexp"
	"strings"
	"time"
)

// Date shapes found on publisher pages, most specific first. Each pattern
// pairs a regex locating the date inside surrounding text with the layouts
// that can parse the match.
var datePatterns = []struct {
	re      *regexp.Regexp
	layouts []string
}{
	{
		regexp.MustCompile(`\b([A-Z][a-z]+ \d{1,2},? \d{4})\b`),
		[]string{"January 2, 2006", "January 2 2006", "Jan 2, 2006", "Jan 2 2006"},
	},
	{
		regexp.MustCompile(`\b(\d{1,2} [A-Z][a-z]+ \d{4})\b`),
		[]string{"2 January 2006", "2 Jan 2006"},
	},
	{
		regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`),
		[]string{"2006-01-02"},
	},
	{
		regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{4})\b`),
		[]string{"1/2/2006"},
	},
}

// monthYearRe matches a bare "January 2026" mention, used as a last resort.
var monthYearRe = regexp.MustCompile(`\b([A-Z][a-z]+ \d{4})\b`)

// ParseDate finds and parses the first recognizable date in text. A bare
// month-year mention resolves to the first of that month, but only when the
// month is not in the future relative to now. Returns the zero time when no
// date is found.
func ParseDate(text string, now time.Time) time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}
	}

	for _, pat := range datePatterns {
		m := pat.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		for _, layout := range pat.layouts {
			if t, err := time.Parse(layout, m[1]); err == nil {
				return t.UTC()
			}
		}
	}

	if m := monthYearRe.FindStringSubmatch(text); m != nil {
		if t, err := time.Parse("January 2006", m[1]); err == nil {
			t = t.UTC()
			if !t.After(now) {
				return t
			}
		}
	}
	return time.Time{}
}
