// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/safety-digest/pkg/types"
)

// Window keeps papers published inside the inclusive [now-days, now] range.
// Papers without a publication date are dropped: an undatable record cannot
// be proven fresh and stale items are worse than missing ones in a weekly
// digest.
func Window(papers []types.Paper, now time.Time, days int, w io.Writer) []types.Paper {
	if days <= 0 {
		days = 7
	}
	cutoff := now.AddDate(0, 0, -days)

	kept := make([]types.Paper, 0, len(papers))
	for _, p := range papers {
		if p.PublishedDate.IsZero() {
			continue
		}
		if p.PublishedDate.Before(cutoff) || p.PublishedDate.After(now) {
			continue
		}
		kept = append(kept, p)
	}
	fmt.Fprintf(w, "window: %d -> %d papers (last %d days)\n", len(papers), len(kept), days)
	return kept
}
