// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the safety-digest CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/safety-digest/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the safety-digest CLI.
var rootCmd = &cobra.Command{
	Use:   "safety-digest",
	Short: "Aggregate and publish AI safety research",
	Long: `safety-digest collects recent AI safety publications from RSS feeds, the
arXiv API, organization sites, LessWrong and Hacker News, cleans the batch
through windowing, deduplication, relevance filtering and abstract
enrichment, and publishes a JSON snapshot plus a static HTML digest.

Each stage boundary is a subcommand: fetch runs the collection pipeline,
enrich re-processes an existing snapshot, and render produces the site.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./safety-digest.yaml or ~/.config/safety-digest/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("safety-digest")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "safety-digest"))
		}
	}

	viper.SetEnvPrefix("SAFETY_DIGEST")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig unmarshals the merged viper state, applies defaults, and
// validates it. Commands call this after cobra has run initConfig.
func loadConfig() (*types.Config, error) {
	cfg := &types.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
