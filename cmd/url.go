package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var urlCmd = &cobra.Command{
	Use:   "url <path>",
	Short: "Print the download URL for a resource path or catalog key",
	Long: `Resolve a relative resource path to its fully qualified download URL.

With --key, the argument is treated as a catalog key: the catalog is fetched
and the key's resource path is resolved instead.

Examples:
  etfv url dataset.bin
  etfv url --key v5-sma-lstm-stacks`,
	Args: cobra.ExactArgs(1),
	RunE: runURL,
}

var (
	urlAsKey   bool
	urlTimeout time.Duration
)

func init() {
	urlCmd.Flags().BoolVar(&urlAsKey, "key", false, "Treat the argument as a catalog key instead of a resource path")
	urlCmd.Flags().DurationVar(&urlTimeout, "timeout", 0, "Overall timeout for network operations (default: configured http_timeout)")
	rootCmd.AddCommand(urlCmd)
}

func runURL(cmd *cobra.Command, args []string) error {
	client, _, timeout, err := newClient(urlTimeout)
	if err != nil {
		return err
	}

	path := args[0]
	if urlAsKey {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		cfg, err := client.ConfigByKey(ctx, path)
		if err != nil {
			return err
		}
		path = cfg.Path
	}

	fmt.Println(client.ResourceURL(path))
	return nil
}
