// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/safety-digest/internal/enrich"
	"github.com/pdiddy/safety-digest/internal/pipeline"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Improve abstracts in an existing snapshot",
	Long: `Enrich re-reads the JSON snapshot, retries abstract extraction for every
paper whose abstract is still missing or thin, cleans the results, and
rewrites the snapshot in place. Useful after a fetch run with transient
page failures, without re-querying the sources.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		papers, err := pipeline.ReadSnapshot(cfg.Output.Snapshot)
		if err != nil {
			return err
		}

		enricher := enrich.New(cfg.Enrich, os.Stderr)
		changed := enricher.EnrichAll(cmd.Context(), papers)
		for i := range papers {
			papers[i].Abstract = enrich.Clean(papers[i].Abstract)
		}

		if err := pipeline.WriteSnapshot(cfg.Output.Snapshot, papers); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "enriched %d of %d papers: %s\n", changed, len(papers), cfg.Output.Snapshot)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(enrichCmd)
}
