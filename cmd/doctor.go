package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/etfmatcher/etfv-cli/internal/vectorconfig"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run pre-flight environment checks",
	Long: `Check that etfv's configuration and the remote endpoint are usable.
Run this command when something seems wrong, or before filing a bug report.`,
	RunE: runDoctor,
}

var doctorTimeout time.Duration

func init() {
	doctorCmd.Flags().DurationVar(&doctorTimeout, "timeout", 0, "Overall timeout for network operations (default: configured http_timeout)")
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	allOK := true

	printSection("etfv doctor")

	// ── Configuration ─────────────────────────────────────────────────────────
	fmt.Println("\n[ Configuration ]")
	client, cfg, timeout, err := newClient(doctorTimeout)
	if err != nil {
		printErr("", err.Error())
		printInfo("", "Run 'etfv init' to create a default configuration.")
		return fmt.Errorf("doctor found problems")
	}
	printOK("", fmt.Sprintf("base URL: %s", cfg.BaseURL))
	printOK("", fmt.Sprintf("http timeout: %s", cfg.HTTPTimeout))

	// ── Data directory ────────────────────────────────────────────────────────
	fmt.Println("\n[ Data directory ]")
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		printErr("", fmt.Sprintf("cannot create data dir %s: %v", cfg.DataDir, err))
		allOK = false
	} else {
		probe := filepath.Join(cfg.DataDir, ".etfv-probe-tmp")
		if err := os.WriteFile(probe, []byte(""), 0o644); err != nil {
			printErr("", fmt.Sprintf("data dir is not writable: %s", cfg.DataDir))
			allOK = false
		} else {
			_ = os.Remove(probe)
			printOK("", fmt.Sprintf("data dir writable: %s", cfg.DataDir))
		}
	}

	// ── Catalog ───────────────────────────────────────────────────────────────
	fmt.Println("\n[ Catalog ]")
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	configs, err := client.Configs(ctx)
	if err != nil {
		printErr("", fmt.Sprintf("catalog manifest unreachable or invalid: %v", err))
		allOK = false
	} else {
		printOK("", fmt.Sprintf("manifest loaded: %d configurations", len(configs)))
		if _, ok := vectorconfig.Lookup(configs, vectorconfig.DefaultKey); ok {
			printOK("", fmt.Sprintf("%q entry present", vectorconfig.DefaultKey))
		} else {
			printWarn("", fmt.Sprintf("catalog has no %q entry; callers relying on the fallback key will fail", vectorconfig.DefaultKey))
		}
	}

	fmt.Println()
	if !allOK {
		return fmt.Errorf("doctor found problems")
	}
	printOK("", "all checks passed")
	return nil
}
