package cli

import (
	"github.com/spf13/cobra"

	"github.com/arkival-labs/arkival-cli/internal/adapters/driven/artifacts"
	"github.com/arkival-labs/arkival-cli/internal/core/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show pipeline folders and artifact counts",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	cmd.Println("Folders")
	cmd.Printf("  raw:        %s\n", a.settings.RawDir)
	cmd.Printf("  processed:  %s\n", a.settings.ProcessedDir)
	cmd.Printf("  classified: %s\n", a.settings.ClassifiedDir)
	cmd.Printf("  chunks:     %s\n", a.settings.ChunkDir)
	cmd.Println()

	cmd.Println("Artifacts")
	cmd.Printf("  processed documents:  %d\n", artifactCount(a.processed))
	cmd.Printf("  classified documents: %d\n", artifactCount(a.classified))
	cmd.Printf("  chunks:               %d\n", artifactCount(a.chunks))

	if a.catalog != nil {
		docs, chunks, err := a.catalog.Counts(ctx)
		if err != nil {
			return err
		}
		cmd.Println()
		cmd.Println("Catalog")
		cmd.Printf("  documents: %d\n", docs)
		cmd.Printf("  chunks:    %d\n", chunks)
	}
	return nil
}

// artifactCount counts a store's JSON artifacts, excluding its manifest.
func artifactCount(store *artifacts.Store) int {
	names, err := store.List()
	if err != nil {
		return 0
	}
	count := 0
	for _, name := range names {
		if name != domain.ManifestFilename {
			count++
		}
	}
	return count
}
