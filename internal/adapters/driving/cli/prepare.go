package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arkival-labs/arkival-cli/internal/core/ports/driving"
)

var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Prepare the raw source tree",
	Long: `Prepares the raw source tree for extraction: expands zip archives
into sibling folders, converts legacy Office formats when LibreOffice
is available, and renames files and folders to portable ASCII names.`,
	RunE: runPrepare,
}

func init() {
	rootCmd.AddCommand(prepareCmd)
}

func runPrepare(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := a.preparer().Prepare(ctx)
	if err != nil {
		return fmt.Errorf("prepare failed: %w", err)
	}

	printPrepareReport(cmd, report)
	return nil
}

func printPrepareReport(cmd *cobra.Command, report *driving.PrepareReport) {
	cmd.Printf("Prepared: %d archives expanded, %d files converted, %d renamed",
		report.ArchivesExpanded, report.FilesConverted, report.FilesRenamed)
	if report.Errors > 0 {
		cmd.Printf(", %d errors", report.Errors)
	}
	cmd.Println()
}
