package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/etfmatcher/etfv-cli/internal/config"
	"github.com/etfmatcher/etfv-cli/internal/fetch"
)

var rootCmd = &cobra.Command{
	Use:          "etfv",
	Short:        "etfv CLI — ETF Matcher ticker-vector dataset loader",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `etfv resolves named ticker-vector configurations from the ETF Matcher
catalog and downloads the binary vector collections they point at.`,
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newClient builds a fetch.Client from the effective settings, with an
// optional per-command timeout override (0 keeps the configured value).
// The effective timeout is returned so commands can derive a deadline
// context for their network calls.
func newClient(timeout time.Duration) (*fetch.Client, *config.Settings, time.Duration, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, 0, fmt.Errorf("cannot load config: %w", err)
	}
	if timeout <= 0 {
		timeout = time.Duration(cfg.HTTPTimeout)
	}
	client := fetch.NewClient(fetch.Options{
		BaseURL:     cfg.BaseURL,
		ManifestURL: cfg.ManifestURL,
		Timeout:     timeout,
	})
	return client, cfg, timeout, nil
}
