// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/safety-digest/internal/pipeline"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Collect papers and write the snapshot",
	Long: `Fetch runs the full collection pipeline: every configured source is
queried concurrently, then the batch is windowed to recent papers,
deduplicated, relevance-filtered and abstract-enriched before the ordered
JSON snapshot is written. Individual source failures are reported and
skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		result, err := pipeline.Run(cmd.Context(), cfg, time.Now().UTC(), os.Stderr)
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "fetched %d, kept %d (enriched %d): %s\n",
			result.Fetched, result.Kept, result.Enriched, result.Snapshot)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
