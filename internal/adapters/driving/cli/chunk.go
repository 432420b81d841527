package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var chunkCmd = &cobra.Command{
	Use:   "chunk",
	Short: "Split documents into retrieval chunks",
	Long: `Splits each document's text into retrieval-sized chunks and writes
one JSON artifact per chunk. Text documents use a separator-aware
sliding window with overlap; tabular documents are split into row
batches that each repeat the header line.

Classified records are chunked when a classifier is configured,
processed records otherwise.`,
	RunE: runChunk,
}

func init() {
	rootCmd.AddCommand(chunkCmd)
}

func runChunk(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	summary, err := a.chunkStage().Run(ctx)
	if err != nil {
		return fmt.Errorf("chunk failed: %w", err)
	}

	printStageSummary(cmd, summary)
	return nil
}
