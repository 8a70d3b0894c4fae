package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/etfmatcher/etfv-cli/internal/vectorconfig"
)

var configsCmd = &cobra.Command{
	Use:   "configs",
	Short: "List the ticker-vector configurations in the catalog",
	Long: `Fetch the remote catalog manifest and list every named configuration
with its resource path and, when declared, description and feature count.

Example:
  etfv configs`,
	Args: cobra.NoArgs,
	RunE: runConfigs,
}

var configsTimeout time.Duration

func init() {
	configsCmd.Flags().DurationVar(&configsTimeout, "timeout", 0, "Overall timeout for network operations (default: configured http_timeout)")
	rootCmd.AddCommand(configsCmd)
}

func runConfigs(cmd *cobra.Command, _ []string) error {
	client, _, timeout, err := newClient(configsTimeout)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	configs, err := client.Configs(ctx)
	if err != nil {
		return err
	}

	printSection(fmt.Sprintf("Catalog (%d configurations)", len(configs)))
	for _, key := range sortedKeys(configs) {
		cfg := configs[key]
		line := cfg.Path
		if cfg.Description != nil {
			line += " — " + *cfg.Description
		}
		if cfg.Features != nil {
			line += fmt.Sprintf(" (%d features)", *cfg.Features)
		}
		printInfo(key, line)
	}
	return nil
}

// sortedKeys orders catalog keys with a numeric-aware collator so that
// "v10-..." lists after "v5-..." instead of between "v1" and "v2".
func sortedKeys(configs vectorconfig.ConfigMap) []string {
	keys := make([]string, 0, len(configs))
	for k := range configs {
		keys = append(keys, k)
	}
	collate.New(language.English, collate.Numeric).SortStrings(keys)
	return keys
}
