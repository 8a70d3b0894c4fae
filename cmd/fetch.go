package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/etfmatcher/etfv-cli/internal/fetch"
)

// fetchFlags holds flag values for the `etfv fetch` command.
type fetchFlags struct {
	output  string
	timeout time.Duration
	quiet   bool
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <key>",
	Short: "Download the vector collection for a configuration key",
	Long: `Resolve <key> through the catalog and download the binary ticker-vector
collection it points at.

By default the file is written into the configured data directory under the
resource path's base name. A per-destination lock prevents two concurrent
fetches from clobbering the same file.

Examples:
  etfv fetch default
  etfv fetch v5-sma-lstm-stacks --output /tmp/stacks.bin`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

var fetchOpts fetchFlags

func init() {
	fetchCmd.Flags().StringVarP(&fetchOpts.output, "output", "o", "", "Destination file (default: <data_dir>/<path base name>)")
	fetchCmd.Flags().DurationVar(&fetchOpts.timeout, "timeout", 0, "Overall timeout for network operations (default: configured http_timeout)")
	fetchCmd.Flags().BoolVarP(&fetchOpts.quiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	key := args[0]

	client, cfg, timeout, err := newClient(fetchOpts.timeout)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	record, err := client.ConfigByKey(ctx, key)
	if err != nil {
		return err
	}

	dest := fetchOpts.output
	if dest == "" {
		dest = filepath.Join(cfg.DataDir, filepath.Base(record.Path))
	}

	url := client.ResourceURL(record.Path)
	n, err := downloadToFile(ctx, client, url, dest, fetchOpts.quiet)
	if err != nil {
		return err
	}

	printOK(key, fmt.Sprintf("downloaded %s to %s", humanBytes(n), dest))
	return nil
}

// downloadToFile streams url into dest under a per-destination file lock,
// creating the destination directory when needed.
func downloadToFile(ctx context.Context, client *fetch.Client, url, dest string, quiet bool) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return 0, fmt.Errorf("cannot create destination directory: %w", err)
	}

	unlock, err := acquireDestLock(ctx, dest)
	if err != nil {
		return 0, err
	}
	defer unlock()

	progress := printDownloadProgress
	if quiet {
		progress = nil
	}
	n, err := client.Download(ctx, url, dest, progress)
	if !quiet {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		// Don't leave a truncated payload behind.
		_ = os.Remove(dest)
		return 0, err
	}
	return n, nil
}

// lockWaitDefault bounds the wait for a contended destination lock when the
// caller's context carries no deadline of its own.
const lockWaitDefault = 30 * time.Second

// acquireDestLock obtains an advisory lock guarding dest, polling until the
// context deadline (or lockWaitDefault, whichever is sooner) when another
// fetch holds it. The lock file itself is left in place after unlock:
// unlinking it would let a waiter lock a file a third process re-creates,
// leaving two fetches that both believe they hold the lock.
func acquireDestLock(ctx context.Context, dest string) (func(), error) {
	lockPath := dest + ".lock"
	l := flock.New(lockPath)

	deadline := time.Now().Add(lockWaitDefault)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	for {
		locked, err := l.TryLock()
		if err != nil {
			return nil, fmt.Errorf("cannot acquire download lock %s: %w", lockPath, err)
		}
		if locked {
			return func() { _ = l.Unlock() }, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("another download of %s is in progress (lock: %s)", dest, lockPath)
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("another download of %s is in progress (lock: %s)", dest, lockPath)
		case <-time.After(200 * time.Millisecond):
		}
	}
}

// printDownloadProgress renders a single-line progress indicator to stderr.
func printDownloadProgress(downloaded, total int64) {
	if total > 0 {
		pct := float64(downloaded) / float64(total) * 100
		fmt.Fprintf(os.Stderr, "\rDownloading... %s / %s (%.1f%%)", humanBytes(downloaded), humanBytes(total), pct)
		return
	}
	fmt.Fprintf(os.Stderr, "\rDownloading... %s", humanBytes(downloaded))
}

// humanBytes formats a byte count in a human-friendly binary unit.
func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	prefix := "KMGTPE"[exp]
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), prefix)
}
