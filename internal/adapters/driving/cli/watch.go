package cli

import (
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// watchOnce syncs the directory and exits without watching.
var watchOnce bool

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Keep a directory ingested",
	Long: `Ingests every file under the directory, then watches it and re-ingests
files as they are created or modified. Deleted files are removed from the store.
Hidden files and directories are skipped.

Each file is stored under an ID derived from its path, so restarting the watcher
replaces documents instead of duplicating them. Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchOnce, "once", false, "sync the directory once and exit")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchService == nil {
		return errors.New("watch service not configured")
	}

	report := func(event domain.WatchEvent) {
		if event.Err != nil {
			cmd.PrintErrf("%s %s %s: %v\n", failure("failed"), event.Change.Type, event.Change.Path, event.Err)
			return
		}
		if event.Change.Type == domain.ChangeDeleted {
			cmd.Printf("%s %s\n", faint("removed"), event.Change.Path)
			return
		}
		cmd.Printf("%s %s (%d chunks)\n", success("ingested"), event.Change.Path, event.Chunks)
	}

	if watchOnce {
		sum, err := watchService.Sync(cmd.Context(), args[0], report)
		if err != nil {
			return err
		}
		cmd.Printf("Synced %d files: %d ingested, %d failed.\n", sum.Files, sum.Ingested, sum.Failed)
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", args[0])
	return watchService.Watch(ctx, args[0], report)
}
