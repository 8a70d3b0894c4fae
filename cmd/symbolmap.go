package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var symbolmapCmd = &cobra.Command{
	Use:   "symbolmap",
	Short: "Download the ticker symbol map",
	Long: `Download the binary map from ticker symbols to the identifiers used
across vector collections.

The symbol map is published independently of the catalog, so its coverage may
lag behind the most recently added collections.

Example:
  etfv symbolmap --output /tmp/symbols.bin`,
	Args: cobra.NoArgs,
	RunE: runSymbolMap,
}

var symbolmapOpts fetchFlags

func init() {
	symbolmapCmd.Flags().StringVarP(&symbolmapOpts.output, "output", "o", "", "Destination file (default: <data_dir>/<symbol map file name>)")
	symbolmapCmd.Flags().DurationVar(&symbolmapOpts.timeout, "timeout", 0, "Overall timeout for network operations (default: configured http_timeout)")
	symbolmapCmd.Flags().BoolVarP(&symbolmapOpts.quiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.AddCommand(symbolmapCmd)
}

func runSymbolMap(cmd *cobra.Command, _ []string) error {
	client, cfg, timeout, err := newClient(symbolmapOpts.timeout)
	if err != nil {
		return err
	}

	dest := symbolmapOpts.output
	if dest == "" {
		dest = filepath.Join(cfg.DataDir, filepath.Base(client.SymbolMapURL()))
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	n, err := downloadToFile(ctx, client, client.SymbolMapURL(), dest, symbolmapOpts.quiet)
	if err != nil {
		return err
	}

	printOK("", fmt.Sprintf("downloaded symbol map (%s) to %s", humanBytes(n), dest))
	return nil
}
