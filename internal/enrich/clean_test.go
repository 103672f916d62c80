// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"strings"
	"testing"
)

func TestCleanStripsMarkup(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"html tags", "<p>We propose a <b>new</b> method.</p>", "We propose a new method."},
		{"entities", "Scaling &amp; safety &mdash; a survey", "Scaling & safety — a survey"},
		{"whitespace", "too   much\n\nwhitespace\there", "too much whitespace here"},
		{"abstract prefix", "Abstract: We propose a method.", "We propose a method."},
		{"summary prefix", "Summary - We propose a method.", "We propose a method."},
		{"tldr prefix", "TL;DR: it works", "it works"},
		{"date prefix", "Jan 5, 2026 — We propose a method.", "We propose a method."},
		{"iso date prefix", "2026-01-05 - We propose a method.", "We propose a method."},
		{"read more suffix", "We propose a method. Read the full post", "We propose a method."},
		{"continue reading suffix", "We propose a method. Continue reading...", "We propose a method."},
		{"empty", "", ""},
		{"only markup", "<div><span></span></div>", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanCapsAtWordLimit(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("word ", 200))
	got := Clean(long)
	words := strings.Fields(got)
	if len(words) > maxAbstractWords {
		t.Errorf("word count = %d, want <= %d", len(words), maxAbstractWords)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("hard cut should end with ellipsis, got %q", got[len(got)-20:])
	}
}

func TestCleanPrefersSentenceBoundary(t *testing.T) {
	// 120 words ending in a period, then 80 more words with no period.
	head := strings.TrimSpace(strings.Repeat("alpha ", 119)) + " omega."
	tail := strings.TrimSpace(strings.Repeat("beta ", 80))
	got := Clean(head + " " + tail)

	if !strings.HasSuffix(got, "omega.") {
		t.Errorf("expected cut at sentence boundary, got tail %q", got[len(got)-20:])
	}
	if len(strings.Fields(got)) != 120 {
		t.Errorf("word count = %d, want 120", len(strings.Fields(got)))
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"<p>Abstract: We propose a method for scaling &amp; safety.</p>",
		strings.TrimSpace(strings.Repeat("word ", 200)),
		strings.TrimSpace(strings.Repeat("alpha ", 119)) + " omega. " + strings.TrimSpace(strings.Repeat("beta ", 80)),
		"plain short text",
	}
	for _, input := range inputs {
		once := Clean(input)
		twice := Clean(once)
		if once != twice {
			t.Errorf("not idempotent:\nonce:  %q\ntwice: %q", once, twice)
		}
	}
}

// A hard truncation appends "..."; re-cleaning the snapshot must not strip
// that marker and must leave the text byte-identical.
func TestCleanKeepsTruncationMarkerOnReclean(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("word ", 200))
	once := Clean(long)
	if !strings.HasSuffix(once, "...") {
		t.Fatalf("expected hard-cut marker, got tail %q", once[len(once)-10:])
	}

	twice := Clean(once)
	if twice != once {
		t.Errorf("re-clean changed the text:\nonce:  %q\ntwice: %q", once[len(once)-30:], twice[len(twice)-30:])
	}
}
