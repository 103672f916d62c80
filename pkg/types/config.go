// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with API requests
	// (e.g. "safety-digest/0.1"). Scrape and enrichment requests rotate
	// browser agents instead; see internal/httputil.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// FeedSource defines one RSS/Atom feed to collect.
type FeedSource struct {
	// Name is a human-readable label used in progress output.
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// URL is the feed endpoint.
	URL string `json:"url" yaml:"url" mapstructure:"url"`

	// Org is the organization label stamped on every paper from this feed.
	Org string `json:"org" yaml:"org" mapstructure:"org"`

	// Keywords, when set, is a hard filter: entries matching none of the
	// keywords in title+summary are skipped. When empty, the default
	// research keyword list applies (soft for known research orgs).
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty" mapstructure:"keywords"`
}

// ArxivSource defines the arXiv export API query.
type ArxivSource struct {
	// Keywords are matched against paper titles (ti: clauses).
	Keywords []string `json:"keywords" yaml:"keywords" mapstructure:"keywords"`

	// Categories restricts results to arXiv categories (e.g. "cs.AI").
	Categories []string `json:"categories" yaml:"categories" mapstructure:"categories"`

	// MaxResults caps the number of entries requested (default 40).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// Enabled reports whether the arXiv source is configured at all.
func (a ArxivSource) Enabled() bool {
	return len(a.Keywords) > 0 && len(a.Categories) > 0
}

// ScrapeSource defines one HTML listing page to scrape.
type ScrapeSource struct {
	Name string `json:"name" yaml:"name" mapstructure:"name"`
	URL  string `json:"url" yaml:"url" mapstructure:"url"`
	Org  string `json:"org" yaml:"org" mapstructure:"org"`

	// ArticleClass, when set, overrides article-element discovery with an
	// explicit CSS class.
	ArticleClass string `json:"article_class,omitempty" yaml:"article_class,omitempty" mapstructure:"article_class"`

	// LinkMustContain restricts results to links containing the substring.
	LinkMustContain string `json:"link_must_contain,omitempty" yaml:"link_must_contain,omitempty" mapstructure:"link_must_contain"`

	// Keywords, when set, skips items matching none of them.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty" mapstructure:"keywords"`
}

// LessWrongSource defines the LessWrong GraphQL collection parameters.
type LessWrongSource struct {
	// Enabled turns the source on.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// MinKarma drops posts below this score (default 150).
	MinKarma int `json:"min_karma" yaml:"min_karma" mapstructure:"min_karma"`

	// MaxResults caps the number of posts requested (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// TrendingSource defines the Hacker News trending search parameters.
type TrendingSource struct {
	// Enabled turns the source on.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Queries are the search strings issued against the Algolia API.
	Queries []string `json:"queries" yaml:"queries" mapstructure:"queries"`

	// MinPoints drops stories at or below this score (default 50).
	MinPoints int `json:"min_points" yaml:"min_points" mapstructure:"min_points"`

	// HitsPerPage caps results per query (default 10).
	HitsPerPage int `json:"hits_per_page" yaml:"hits_per_page" mapstructure:"hits_per_page"`
}

// DedupConfig holds settings for the deduplication stage.
type DedupConfig struct {
	// SimilarityThreshold is the sequence-similarity ratio above which two
	// normalized titles are considered the same publication (default 0.85).
	SimilarityThreshold float64 `json:"similarity_threshold" yaml:"similarity_threshold" mapstructure:"similarity_threshold"`

	// IncludeAbstract, when true, computes the fuzzy ratio over
	// title+abstract instead of title only. Off by default.
	IncludeAbstract bool `json:"include_abstract" yaml:"include_abstract" mapstructure:"include_abstract"`
}

// RelevanceConfig holds settings for the research relevance filter.
type RelevanceConfig struct {
	// ExtraOrgs extends the built-in research organization allowlist.
	ExtraOrgs []string `json:"extra_orgs,omitempty" yaml:"extra_orgs,omitempty" mapstructure:"extra_orgs"`

	// DefaultThreshold is the minimum distinct-term score for papers from
	// unlisted organizations (default 2).
	DefaultThreshold int `json:"default_threshold" yaml:"default_threshold" mapstructure:"default_threshold"`

	// OrgThreshold is the minimum score for allowlisted organizations (default 1).
	OrgThreshold int `json:"org_threshold" yaml:"org_threshold" mapstructure:"org_threshold"`
}

// EnrichConfig holds settings for the abstract enrichment stage.
type EnrichConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Workers is the bounded worker pool size (default 5).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// MaxRetries is the retry budget per fetch on 5xx or timeout (default 2).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// FeaturedConfig holds the featured-ranker policy. The weights are a tuning
// surface; the defaults reproduce the documented scoring scale.
type FeaturedConfig struct {
	// MinScore is the absolute threshold a paper must exceed (default 12.0).
	MinScore float64 `json:"min_score" yaml:"min_score" mapstructure:"min_score"`

	// MaxCount caps the featured set size (default 3).
	MaxCount int `json:"max_count" yaml:"max_count" mapstructure:"max_count"`

	// TopTierWeight is the authority score for top-tier organizations (default 20).
	TopTierWeight float64 `json:"top_tier_weight" yaml:"top_tier_weight" mapstructure:"top_tier_weight"`

	// PriorityWeight is the authority score for priority organizations (default 12).
	PriorityWeight float64 `json:"priority_weight" yaml:"priority_weight" mapstructure:"priority_weight"`

	// NamedOrgWeight is the authority score for other named organizations (default 5).
	NamedOrgWeight float64 `json:"named_org_weight" yaml:"named_org_weight" mapstructure:"named_org_weight"`

	// AbstractWeightCap caps the abstract-richness contribution (default 5;
	// one point per 100 characters up to the cap).
	AbstractWeightCap float64 `json:"abstract_weight_cap" yaml:"abstract_weight_cap" mapstructure:"abstract_weight_cap"`

	// TitleTermWeight is the per-term bonus for research vocabulary in the
	// title, up to three terms (default 1).
	TitleTermWeight float64 `json:"title_term_weight" yaml:"title_term_weight" mapstructure:"title_term_weight"`

	// AuthorWeight is the bonus for at least one named author (default 2).
	AuthorWeight float64 `json:"author_weight" yaml:"author_weight" mapstructure:"author_weight"`

	// ArxivBoost is the fixed bonus for preprint-API provenance (default 3).
	ArxivBoost float64 `json:"arxiv_boost" yaml:"arxiv_boost" mapstructure:"arxiv_boost"`

	// RecencyWeight scales the exponential recency term (default 10).
	RecencyWeight float64 `json:"recency_weight" yaml:"recency_weight" mapstructure:"recency_weight"`

	// RecencyDecay is the per-day exponential decay rate (default 0.2,
	// a half-life of roughly 3.5 days).
	RecencyDecay float64 `json:"recency_decay" yaml:"recency_decay" mapstructure:"recency_decay"`

	// CommunityPenalty is subtracted for community/aggregator organizations (default 5).
	CommunityPenalty float64 `json:"community_penalty" yaml:"community_penalty" mapstructure:"community_penalty"`

	// ThinAbstractPenalty is subtracted when the abstract is under 20
	// characters (default 3).
	ThinAbstractPenalty float64 `json:"thin_abstract_penalty" yaml:"thin_abstract_penalty" mapstructure:"thin_abstract_penalty"`
}

// OutputConfig holds the pipeline output paths.
type OutputConfig struct {
	// Snapshot is the JSON snapshot path (default "data/papers.json").
	Snapshot string `json:"snapshot" yaml:"snapshot" mapstructure:"snapshot"`

	// Site is the rendered HTML path (default "site/index.html").
	Site string `json:"site" yaml:"site" mapstructure:"site"`
}

// Config groups all pipeline configuration, loaded once at startup.
type Config struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// WindowDays is the recency window length in days (default 7).
	WindowDays int `json:"window_days" yaml:"window_days" mapstructure:"window_days"`

	Feeds     []FeedSource    `json:"feeds" yaml:"feeds" mapstructure:"feeds"`
	Arxiv     ArxivSource     `json:"arxiv" yaml:"arxiv" mapstructure:"arxiv"`
	Scrapers  []ScrapeSource  `json:"scrapers" yaml:"scrapers" mapstructure:"scrapers"`
	LessWrong LessWrongSource `json:"lesswrong" yaml:"lesswrong" mapstructure:"lesswrong"`
	Trending  TrendingSource  `json:"trending" yaml:"trending" mapstructure:"trending"`

	Dedup     DedupConfig     `json:"dedup" yaml:"dedup" mapstructure:"dedup"`
	Relevance RelevanceConfig `json:"relevance" yaml:"relevance" mapstructure:"relevance"`
	Enrich    EnrichConfig    `json:"enrich" yaml:"enrich" mapstructure:"enrich"`
	Featured  FeaturedConfig  `json:"featured" yaml:"featured" mapstructure:"featured"`
	Output    OutputConfig    `json:"output" yaml:"output" mapstructure:"output"`
}

// ApplyDefaults fills zero-valued settings with their documented defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	if c.UserAgent == "" {
		c.UserAgent = "safety-digest/0.1 (+https://github.com/pdiddy/safety-digest)"
	}
	if c.WindowDays <= 0 {
		c.WindowDays = 7
	}
	if c.Arxiv.MaxResults <= 0 {
		c.Arxiv.MaxResults = 40
	}
	if c.LessWrong.MinKarma <= 0 {
		c.LessWrong.MinKarma = 150
	}
	if c.LessWrong.MaxResults <= 0 {
		c.LessWrong.MaxResults = 20
	}
	if c.Trending.MinPoints <= 0 {
		c.Trending.MinPoints = 50
	}
	if c.Trending.HitsPerPage <= 0 {
		c.Trending.HitsPerPage = 10
	}
	if c.Dedup.SimilarityThreshold <= 0 {
		c.Dedup.SimilarityThreshold = 0.85
	}
	if c.Relevance.DefaultThreshold <= 0 {
		c.Relevance.DefaultThreshold = 2
	}
	if c.Relevance.OrgThreshold <= 0 {
		c.Relevance.OrgThreshold = 1
	}
	if c.Enrich.Timeout <= 0 {
		c.Enrich.Timeout = 10 * time.Second
	}
	if c.Enrich.UserAgent == "" {
		c.Enrich.UserAgent = c.UserAgent
	}
	if c.Enrich.Workers <= 0 {
		c.Enrich.Workers = 5
	}
	if c.Enrich.MaxRetries <= 0 {
		c.Enrich.MaxRetries = 2
	}
	if c.Featured == (FeaturedConfig{}) {
		c.Featured = DefaultFeaturedConfig()
	}
	if c.Output.Snapshot == "" {
		c.Output.Snapshot = "data/papers.json"
	}
	if c.Output.Site == "" {
		c.Output.Site = "site/index.html"
	}
}

// DefaultFeaturedConfig returns the documented featured-scoring weights.
func DefaultFeaturedConfig() FeaturedConfig {
	return FeaturedConfig{
		MinScore:            12.0,
		MaxCount:            3,
		TopTierWeight:       20,
		PriorityWeight:      12,
		NamedOrgWeight:      5,
		AbstractWeightCap:   5,
		TitleTermWeight:     1,
		AuthorWeight:        2,
		ArxivBoost:          3,
		RecencyWeight:       10,
		RecencyDecay:        0.2,
		CommunityPenalty:    5,
		ThinAbstractPenalty: 3,
	}
}

// Validate reports configuration errors that must stop the pipeline before
// any fetch begins. A misconfigured source is an operator error, not a
// data-quality issue.
func (c *Config) Validate() error {
	for i, f := range c.Feeds {
		if f.URL == "" {
			return fmt.Errorf("feeds[%d]: missing url", i)
		}
		if f.Org == "" {
			return fmt.Errorf("feeds[%d] (%s): missing org", i, f.URL)
		}
	}
	for i, s := range c.Scrapers {
		if s.URL == "" {
			return fmt.Errorf("scrapers[%d]: missing url", i)
		}
		if s.Org == "" {
			return fmt.Errorf("scrapers[%d] (%s): missing org", i, s.URL)
		}
	}
	if c.Trending.Enabled && len(c.Trending.Queries) == 0 {
		return fmt.Errorf("trending: enabled but no queries configured")
	}
	return nil
}
