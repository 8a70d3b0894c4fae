package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/etfmatcher/etfv-cli/internal/fetch"
)

// Set at build time via -ldflags "-X github.com/etfmatcher/etfv-cli/cmd.version=...".
var (
	version   = "dev"
	commit    = ""
	buildDate = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show etfv version and build information",
	Run: func(*cobra.Command, []string) {
		fmt.Println(versionLine())
		fmt.Printf("  endpoint: %s\n", fetch.BaseURL)
		fmt.Printf("  runtime:  %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// versionLine assembles the one-line identity string, e.g.
// "etfv 1.2.0 (a1b2c3d, 2026-08-30)". Build metadata that was not stamped
// in via ldflags is simply omitted.
func versionLine() string {
	var b strings.Builder
	b.WriteString("etfv ")
	b.WriteString(version)

	var meta []string
	if commit != "" {
		meta = append(meta, commit)
	}
	if buildDate != "" {
		meta = append(meta, buildDate)
	}
	if len(meta) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(meta, ", "))
	}
	return b.String()
}
