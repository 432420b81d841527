package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arkival-labs/arkival-cli/internal/core/domain"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract text from the prepared source tree",
	Long: `Walks the prepared source tree and writes one processed document
record per eligible file. Unchanged files are skipped; artifacts of
removed files are deleted.`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	summary, err := a.extractStage().Run(ctx)
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}

	printStageSummary(cmd, summary)
	return nil
}

func printStageSummary(cmd *cobra.Command, s *domain.StageSummary) {
	cmd.Printf("%s: %d found, %d processed, %d skipped, %d failed, %d orphans deleted\n",
		s.Stage, s.Found, s.Processed, s.Skipped, s.Failed, s.OrphansDeleted)
}
