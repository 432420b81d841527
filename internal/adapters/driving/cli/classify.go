package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arkival-labs/arkival-cli/internal/core/domain"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify processed documents",
	Long: `Sends each processed document's text to the configured classifier
and writes a classified record with the structured labels. Documents
whose text is unchanged are skipped.

Requires a classifier provider in the config file and its API key in
the environment (GOOGLE_API_KEY or OPENAI_API_KEY).`,
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	summary, err := a.classifyStage().Run(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrClassifierUnavailable) {
			return errors.New("no classifier configured; set classifier.provider in the config file")
		}
		return fmt.Errorf("classify failed: %w", err)
	}

	printStageSummary(cmd, summary)
	return nil
}
