// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dedup

import (
	"io"
	"math"
	"reflect"
	"testing"

	"github.com/pdiddy/safety-digest/pkg/types"
)

func testCfg() types.DedupConfig {
	return types.DedupConfig{SimilarityThreshold: 0.85}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Attention Is All You Need", "attention is all you need"},
		{"attention is all you need!", "attention is all you need"},
		{"  BERT:  Pre-training  ", "bert pretraining"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeTitle(tt.input); got != tt.want {
				t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "abcdef", "abcdef", 1.0},
		{"empty both", "", "", 1.0},
		{"disjoint", "abc", "xyz", 0.0},
		{"classic", "abcd", "bcde", 0.75},
		{"prefix", "scaling laws", "scaling laws extended", 2.0 * 12 / 33},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ratio(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Ratio(%q, %q) = %f, want %f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRatioSymmetricOrderOfMagnitude(t *testing.T) {
	a := "scaling laws for neural language models"
	b := "scaling laws for neural language models 2024 update"
	if got := Ratio(a, b); got <= 0.85 {
		t.Errorf("Ratio = %f, want > 0.85 for near-duplicate titles", got)
	}
}

func TestDeduplicateExactKeepsLongestAbstract(t *testing.T) {
	papers := []types.Paper{
		{Title: "Sleeper Agents", Abstract: "short"},
		{Title: "sleeper agents!", Abstract: "a much longer abstract with detail"},
	}

	got := Deduplicate(papers, testCfg(), io.Discard)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Abstract != "a much longer abstract with detail" {
		t.Errorf("kept abstract %q, want the longer one", got[0].Abstract)
	}
}

func TestDeduplicateExactTieKeepsFirstSeen(t *testing.T) {
	papers := []types.Paper{
		{Title: "Sleeper Agents", Abstract: "12345", Organization: "first"},
		{Title: "Sleeper Agents", Abstract: "abcde", Organization: "second"},
	}

	got := Deduplicate(papers, testCfg(), io.Discard)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Organization != "first" {
		t.Errorf("tie should keep first-seen paper, got %q", got[0].Organization)
	}
}

func TestDeduplicateFuzzyPair(t *testing.T) {
	papers := []types.Paper{
		{Title: "Scaling Laws for Neural Language Models", Abstract: "short one"},
		{Title: "Scaling Laws for Neural Language Models (2024 update)", Abstract: "this abstract is clearly the longer of the two"},
	}

	got := Deduplicate(papers, testCfg(), io.Discard)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Title != "Scaling Laws for Neural Language Models (2024 update)" {
		t.Errorf("kept %q, want the longer-abstract variant", got[0].Title)
	}
}

func TestDeduplicateTransitiveCluster(t *testing.T) {
	// A is similar to B and B to C, but A and C are not directly similar.
	// The chain still forms one cluster with a single survivor.
	papers := []types.Paper{
		{Title: "Scaling Laws for Neural Language Models", Abstract: "the longest abstract of the three papers in this cluster"},
		{Title: "Scaling Laws for Neural Language Models (2024 update)", Abstract: "mid"},
		{Title: "Scaling Laws for Neural Language Models (2024 update, revised)", Abstract: "tiny"},
	}

	got := Deduplicate(papers, testCfg(), io.Discard)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Title != "Scaling Laws for Neural Language Models" {
		t.Errorf("kept %q, want the longest-abstract member", got[0].Title)
	}
}

func TestDeduplicateUnrelatedSurvive(t *testing.T) {
	papers := []types.Paper{
		{Title: "Constitutional AI", Abstract: "a"},
		{Title: "Towards Monosemanticity", Abstract: "b"},
		{Title: "Weak-to-Strong Generalization", Abstract: "c"},
	}

	got := Deduplicate(papers, testCfg(), io.Discard)
	if len(got) != 3 {
		t.Errorf("len = %d, want 3", len(got))
	}
}

func TestDeduplicateIdempotent(t *testing.T) {
	papers := []types.Paper{
		{Title: "Scaling Laws for Neural Language Models", Abstract: "short"},
		{Title: "Scaling Laws for Neural Language Models (2024 update)", Abstract: "long enough to win the cluster"},
		{Title: "Constitutional AI", Abstract: "unrelated"},
		{Title: "constitutional ai", Abstract: "unrelated but longer text"},
	}

	once := Deduplicate(papers, testCfg(), io.Discard)
	twice := Deduplicate(once, testCfg(), io.Discard)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Deduplicate is not idempotent:\nonce:  %v\ntwice: %v", once, twice)
	}
}

func TestDeduplicateEmpty(t *testing.T) {
	if got := Deduplicate(nil, testCfg(), io.Discard); len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestDeduplicatePreservesInputOrder(t *testing.T) {
	papers := []types.Paper{
		{Title: "Weak-to-Strong Generalization", Abstract: "c"},
		{Title: "Towards Monosemanticity", Abstract: "a"},
		{Title: "Gradient Routing", Abstract: "b"},
	}

	got := Deduplicate(papers, testCfg(), io.Discard)
	want := []string{"Weak-to-Strong Generalization", "Towards Monosemanticity", "Gradient Routing"}
	for i, title := range want {
		if got[i].Title != title {
			t.Errorf("got[%d].Title = %q, want %q", i, got[i].Title, title)
		}
	}
}
