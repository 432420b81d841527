package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/arkival-labs/arkival-cli/internal/connectors/filesystem"
	"github.com/arkival-labs/arkival-cli/internal/core/domain"
	"github.com/arkival-labs/arkival-cli/internal/logger"
)

// watchDebounce batches a burst of filesystem events into one rerun.
const watchDebounce = 2 * time.Second

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the raw tree and rerun the pipeline on changes",
	Long: `Runs the full pipeline, then watches the raw source tree and reruns
it whenever files change. Events are debounced so a burst of copies
triggers a single rerun. Stop with Ctrl-C.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	// One runner for the whole watch, so its lock serialises reruns.
	runner := a.runner()
	rerun := func() {
		if _, err := a.preparer().Prepare(ctx); err != nil {
			logger.Warn("Prepare failed: %v", err)
			return
		}
		summary, err := runner.Run(ctx)
		switch {
		case errors.Is(err, domain.ErrRunInProgress):
			logger.Debug("Run already in progress, skipping")
		case errors.Is(err, context.Canceled):
		case err != nil:
			logger.Warn("Run failed: %v", err)
		default:
			printRunSummary(cmd, summary)
		}
	}

	rerun()
	cmd.Printf("Watching %s for changes...\n", a.settings.RawDir)

	events := make(chan string, 64)
	watchErr := make(chan error, 1)
	go func() {
		watchErr <- filesystem.New(a.settings.RawDir).Watch(ctx, func(path string) {
			select {
			case events <- path:
			default:
				// A full buffer means a rerun is already pending.
			}
		})
	}()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case err := <-watchErr:
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err

		case path := <-events:
			logger.Debug("Change detected: %s", path)
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
				fire = timer.C
			} else {
				timer.Reset(watchDebounce)
			}

		case <-fire:
			timer = nil
			fire = nil
			rerun()
			cmd.Printf("Watching %s for changes...\n", a.settings.RawDir)
		}
	}
}
