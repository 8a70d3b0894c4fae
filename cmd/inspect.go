package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/etfmatcher/etfv-cli/internal/vectorconfig"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <key>",
	Short: "Show the full metadata of one configuration",
	Long: `Display every field of a catalog entry. Fields the manifest does not
declare are shown as n/a — absent means "unknown", not zero.

Example:
  etfv inspect v5-sma-lstm-stacks
  etfv inspect default`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

var inspectTimeout time.Duration

func init() {
	inspectCmd.Flags().DurationVar(&inspectTimeout, "timeout", 0, "Overall timeout for network operations (default: configured http_timeout)")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	key := args[0]

	client, _, timeout, err := newClient(inspectTimeout)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	cfg, err := client.ConfigByKey(ctx, key)
	if err != nil {
		if errors.Is(err, vectorconfig.ErrConfigNotFound) {
			return fmt.Errorf("%w\nRun 'etfv configs' to list available keys.", err)
		}
		return err
	}

	printSection(key)
	fmt.Printf("  Path:                     %s\n", cfg.Path)
	fmt.Printf("  URL:                      %s\n", client.ResourceURL(cfg.Path))
	fmt.Printf("  Description:              %s\n", strNA(cfg.Description))
	fmt.Printf("  Proto Notebook:           %s\n", strNA(cfg.ProtoNotebook))
	fmt.Printf("  Last Training Time:       %s\n", strNA(cfg.LastTrainingTime))
	fmt.Printf("  Features:                 %s\n", uintNA(cfg.Features))
	fmt.Printf("  Vector Dimensions:        %s\n", uintNA(cfg.VectorDimensions))
	fmt.Printf("  Training Sequence Length: %s\n", uintNA(cfg.TrainingSequenceLength))
	fmt.Printf("  Training Data Sources:    %s\n", sourcesNA(cfg.TrainingDataSources))
	return nil
}

func strNA(p *string) string {
	if p == nil {
		return "n/a"
	}
	return *p
}

func uintNA(p *uint32) string {
	if p == nil {
		return "n/a"
	}
	return fmt.Sprintf("%d", *p)
}

func sourcesNA(sources []string) string {
	if len(sources) == 0 {
		return "n/a"
	}
	return strings.Join(sources, ", ")
}
