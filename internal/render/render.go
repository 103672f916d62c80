// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns a paper snapshot into a static HTML digest: a
// featured hero section followed by papers grouped per organization in a
// fixed priority order.
package render

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/safety-digest/pkg/types"
)

//go:embed digest.html.tmpl
var digestTemplate string

var tmpl = template.Must(template.New("digest").Funcs(template.FuncMap{
	"join": strings.Join,
	"date": func(t time.Time) string { return t.Format("Jan 2, 2006") },
}).Parse(digestTemplate))

// Page is the template's root data.
type Page struct {
	WeekStart   string
	WeekEnd     string
	GeneratedAt string
	Total       int
	Featured    []types.Paper
	Groups      []OrgGroup
}

// OrgGroup is one organization's section.
type OrgGroup struct {
	Org    string
	Papers []types.Paper
}

// Render writes the digest HTML for the batch. Featured selection and
// grouping both derive from the input here, so a snapshot plus a clock fully
// determines the page.
func Render(w io.Writer, papers []types.Paper, now time.Time, windowDays int, cfg types.FeaturedConfig) error {
	if windowDays <= 0 {
		windowDays = 7
	}
	page := Page{
		WeekStart:   now.AddDate(0, 0, -windowDays).Format("Jan 2, 2006"),
		WeekEnd:     now.Format("Jan 2, 2006"),
		GeneratedAt: now.Format("Jan 2, 2006 15:04 MST"),
		Total:       len(papers),
		Featured:    SelectFeatured(papers, now, cfg),
		Groups:      groupByOrg(papers),
	}
	return tmpl.Execute(w, page)
}

// WriteSite renders the digest to a file, creating parent directories.
func WriteSite(path string, papers []types.Paper, now time.Time, windowDays int, cfg types.FeaturedConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating site directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating site file: %w", err)
	}
	if err := Render(f, papers, now, windowDays, cfg); err != nil {
		f.Close()
		return fmt.Errorf("rendering digest: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing site file: %w", err)
	}
	return nil
}

// groupByOrg buckets papers per organization, ordered by the priority list
// and then alphabetically. Paper order within a group follows the input, so
// a date-sorted snapshot yields date-sorted sections. Papers without an
// organization group under "Other".
func groupByOrg(papers []types.Paper) []OrgGroup {
	byOrg := make(map[string]*OrgGroup)
	var order []string
	for _, p := range papers {
		org := strings.TrimSpace(p.Organization)
		if org == "" {
			org = "Other"
		}
		g, ok := byOrg[org]
		if !ok {
			g = &OrgGroup{Org: org}
			byOrg[org] = g
			order = append(order, org)
		}
		g.Papers = append(g.Papers, p)
	}

	sort.SliceStable(order, func(i, j int) bool {
		ri, rj := orgRank(order[i]), orgRank(order[j])
		if ri != rj {
			return ri < rj
		}
		return order[i] < order[j]
	})

	groups := make([]OrgGroup, 0, len(order))
	for _, org := range order {
		groups = append(groups, *byOrg[org])
	}
	return groups
}
