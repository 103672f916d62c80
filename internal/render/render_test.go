// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/safety-digest/pkg/types"
)

var renderNow = time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

func renderBatch() []types.Paper {
	return []types.Paper{
		{
			Title:         "Probing for Deception at Scale",
			Authors:       []string{"A. One", "B. Two"},
			Organization:  "Anthropic",
			Abstract:      strings.Repeat("A substantial finding about probes. ", 20),
			URL:           "https://anthropic.example/probing",
			PublishedDate: renderNow.AddDate(0, 0, -1),
			SourceType:    types.SourceRSS,
		},
		{
			Title:         "Weekly musings on alignment",
			Authors:       []string{"forum_user"},
			Organization:  "LessWrong",
			Abstract:      "Community post with 180 karma.",
			URL:           "https://lesswrong.example/musings",
			PublishedDate: renderNow.AddDate(0, 0, -2),
			SourceType:    types.SourceRSS,
		},
		{
			Title:         "An Evaluation Harness for Oversight",
			Organization:  "Unlisted Lab",
			Abstract:      "A short abstract of reasonable length describing the harness design.",
			URL:           "https://unlisted.example/harness",
			PublishedDate: renderNow.AddDate(0, 0, -3),
			SourceType:    types.SourceScrape,
		},
	}
}

func TestRenderPage(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, renderBatch(), renderNow, 7, types.DefaultFeaturedConfig())
	require.NoError(t, err)
	html := buf.String()

	assert.Contains(t, html, "AI Safety Research Digest")
	assert.Contains(t, html, "Jan 3, 2026")
	assert.Contains(t, html, "Jan 10, 2026")
	assert.Contains(t, html, "Probing for Deception at Scale")
	assert.Contains(t, html, "A. One, B. Two")
	assert.Contains(t, html, `href="https://anthropic.example/probing"`)

	// The Anthropic paper scores past the floor and is featured.
	assert.Contains(t, html, `class="featured"`)

	// Priority ordering: Anthropic's section before LessWrong's, unlisted
	// orgs after listed ones.
	anthropic := strings.Index(html, "<h2>Anthropic</h2>")
	lesswrong := strings.Index(html, "<h2>LessWrong</h2>")
	unlisted := strings.Index(html, "<h2>Unlisted Lab</h2>")
	require.NotEqual(t, -1, anthropic)
	require.NotEqual(t, -1, lesswrong)
	require.NotEqual(t, -1, unlisted)
	assert.Less(t, anthropic, lesswrong)
	assert.Less(t, lesswrong, unlisted)
}

func TestRenderEmptyBatch(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, nil, renderNow, 7, types.DefaultFeaturedConfig())
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "0 papers")
	assert.NotContains(t, html, `class="featured"`)
}

func TestRenderEscapesUntrustedText(t *testing.T) {
	papers := []types.Paper{{
		Title:         "Injection <script>alert(1)</script> attempt",
		Organization:  "Anthropic",
		Abstract:      "An abstract long enough to render in the section body of the page.",
		URL:           "https://anthropic.example/x",
		PublishedDate: renderNow,
		SourceType:    types.SourceRSS,
	}}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, papers, renderNow, 7, types.DefaultFeaturedConfig()))
	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
}

func TestRenderMissingOptionalFields(t *testing.T) {
	papers := []types.Paper{{
		Title:      "Bare Minimum Record Here",
		URL:        "https://example.com/bare",
		SourceType: types.SourceRSS,
	}}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, papers, renderNow, 7, types.DefaultFeaturedConfig()))
	assert.Contains(t, buf.String(), "Bare Minimum Record Here")
	assert.Contains(t, buf.String(), "<h2>Other</h2>")
}

func TestWriteSiteCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site", "index.html")
	err := WriteSite(path, renderBatch(), renderNow, 7, types.DefaultFeaturedConfig())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<!DOCTYPE html>")
}

func TestGroupByOrgKeepsInputOrderWithinGroup(t *testing.T) {
	papers := []types.Paper{
		{Title: "newer", Organization: "Anthropic", PublishedDate: renderNow},
		{Title: "older", Organization: "Anthropic", PublishedDate: renderNow.AddDate(0, 0, -3)},
	}
	groups := groupByOrg(papers)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Papers, 2)
	assert.Equal(t, "newer", groups[0].Papers[0].Title)
}
