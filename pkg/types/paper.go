// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// SourceType identifies the provenance shape of a Paper. It drives trust
// scoring and enrichment strategy selection.
type SourceType string

const (
	// SourceRSS marks records syndicated from RSS/Atom feeds (including
	// API-backed feeds such as LessWrong and Hacker News).
	SourceRSS SourceType = "rss"

	// SourceArxiv marks records fetched from the arXiv export API.
	SourceArxiv SourceType = "arxiv"

	// SourceScrape marks records extracted from scraped HTML pages.
	SourceScrape SourceType = "scrape"
)

// Valid reports whether s is one of the known source types.
func (s SourceType) Valid() bool {
	switch s {
	case SourceRSS, SourceArxiv, SourceScrape:
		return true
	}
	return false
}

// Paper is one candidate publication or post, normalized to the shared
// schema every source adapter produces. A Paper flows through the pipeline
// stages in order; each stage may drop it but never resurrects a dropped
// one. Stages mutate only Abstract (enrichment and cleaning).
type Paper struct {
	// Title is the primary identity signal. Non-empty after filtering.
	Title string `json:"title" yaml:"title"`

	// Authors lists author names in source order; may be empty.
	Authors []string `json:"authors" yaml:"authors"`

	// Organization labels the producing institution. Used for trust-tier
	// scoring and featured-set diversity.
	Organization string `json:"organization" yaml:"organization"`

	// Abstract is the summary text. May be empty or very short at fetch
	// time; after enrichment every surviving paper has a non-trivial or
	// synthetic abstract, never an empty one.
	Abstract string `json:"abstract" yaml:"abstract"`

	// URL is the canonical locator for the paper itself.
	URL string `json:"url" yaml:"url"`

	// PublishedDate is the publication date. Zero when the source could
	// not determine one; such papers are dropped by the window filter.
	PublishedDate time.Time `json:"published_date" yaml:"published_date"`

	// SourceType identifies the provenance shape.
	SourceType SourceType `json:"source_type" yaml:"source_type"`

	// SourceURL is the collection endpoint the paper came from, as
	// opposed to the paper's own URL.
	SourceURL string `json:"source_url" yaml:"source_url"`

	// FetchedAt is the ingestion timestamp, kept for auditability.
	FetchedAt time.Time `json:"fetched_at" yaml:"fetched_at"`
}
