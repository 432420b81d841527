package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arkival-labs/arkival-cli/internal/core/domain"
	"github.com/arkival-labs/arkival-cli/internal/postprocessors"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <chunk-id>",
	Short: "Print one chunk record as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	chunkID := args[0]

	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	chunk, err := a.lookupChunk(ctx, chunkID)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(chunk, "", "    ")
	if err != nil {
		return fmt.Errorf("encode chunk: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// lookupChunk prefers the catalog and falls back to the chunk artifact
// folder when no catalog is open.
func (a *app) lookupChunk(ctx context.Context, chunkID string) (*domain.ChunkRecord, error) {
	if a.catalog != nil {
		return a.catalog.GetChunk(ctx, chunkID)
	}

	var chunk domain.ChunkRecord
	if err := a.chunks.ReadJSON(postprocessors.ChunkFilename(chunkID), &chunk); err != nil {
		return nil, fmt.Errorf("%w: chunk %s", domain.ErrNotFound, chunkID)
	}
	return &chunk, nil
}
