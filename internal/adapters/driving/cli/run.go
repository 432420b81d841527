package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arkival-labs/arkival-cli/internal/core/domain"
)

var runSkipPrepare bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline",
	Long: `Runs every pipeline phase in order: prepare the raw tree, extract
text, classify documents and produce chunks. Unchanged documents are
skipped; orphaned artifacts are cleaned up after each stage.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runSkipPrepare, "skip-prepare", false, "skip raw tree preparation")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	if !runSkipPrepare {
		report, err := a.preparer().Prepare(ctx)
		if err != nil {
			return fmt.Errorf("prepare failed: %w", err)
		}
		printPrepareReport(cmd, report)
	}

	summary, err := a.runner().Run(ctx)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	printRunSummary(cmd, summary)
	return nil
}

func printRunSummary(cmd *cobra.Command, summary *domain.RunSummary) {
	cmd.Printf("Run %s\n", summary.RunID)
	for _, s := range summary.Stages {
		cmd.Printf("  %-9s %d found, %d processed, %d skipped, %d failed, %d orphans deleted\n",
			s.Stage, s.Found, s.Processed, s.Skipped, s.Failed, s.OrphansDeleted)
	}
	if failed := summary.TotalFailed(); failed > 0 {
		cmd.Printf("Completed with %d failed documents; they will be retried next run.\n", failed)
	} else {
		cmd.Println("Completed.")
	}
}
