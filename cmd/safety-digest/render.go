// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/safety-digest/internal/pipeline"
	"github.com/pdiddy/safety-digest/internal/render"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the static HTML digest from the snapshot",
	Long: `Render reads the JSON snapshot and writes the static digest page:
featured papers first, then every paper grouped by organization in
priority order. The page is fully determined by the snapshot, so render
can run repeatedly without touching the network.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		papers, err := pipeline.ReadSnapshot(cfg.Output.Snapshot)
		if err != nil {
			return err
		}

		if err := render.WriteSite(cfg.Output.Site, papers, time.Now().UTC(), cfg.WindowDays, cfg.Featured); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "rendered %d papers: %s\n", len(papers), cfg.Output.Site)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
}
