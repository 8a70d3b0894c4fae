package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/etfmatcher/etfv-cli/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create ~/.etfv/ with a default configuration",
	Long: `Create the etfv configuration directory with a default etfv.yaml and a
.env template. Existing files are left untouched.

Example:
  etfv init`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	dir, err := config.EtfvDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", dir, err)
	}

	printSection("etfv init")

	path, err := config.ConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		printSkip("", fmt.Sprintf("config already exists: %s", path))
	} else if os.IsNotExist(err) {
		defaults := config.Defaults()
		if err := config.Save(&defaults); err != nil {
			return err
		}
		printOK("", fmt.Sprintf("created %s", path))
	} else {
		return fmt.Errorf("cannot stat config %s: %w", path, err)
	}

	if err := config.EnsureDotEnvTemplate(); err != nil {
		return err
	}
	dotenvPath, err := config.DotEnvPath()
	if err != nil {
		return err
	}
	printOK("", fmt.Sprintf("dotenv template ready: %s", dotenvPath))

	printInfo("", "Run 'etfv configs' to list the catalog.")
	return nil
}
