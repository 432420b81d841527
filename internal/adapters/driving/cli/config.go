package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	configfile "github.com/arkival-labs/arkival-cli/internal/adapters/driven/config/file"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the pipeline configuration",
	RunE:  runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the current defaults",
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	cmd.Printf("Config file: %s\n\n", flagConfig)
	cmd.Println("[Folders]")
	cmd.Printf("  data:       %s\n", settings.DataDir)
	cmd.Printf("  raw:        %s\n", settings.RawDir)
	cmd.Printf("  processed:  %s\n", settings.ProcessedDir)
	cmd.Printf("  classified: %s\n", settings.ClassifiedDir)
	cmd.Printf("  chunks:     %s\n", settings.ChunkDir)
	cmd.Printf("  catalog:    %s\n", settings.CatalogPath)
	cmd.Println()
	cmd.Println("[Chunking]")
	cmd.Printf("  text size:       %d\n", settings.TextChunkSize)
	cmd.Printf("  text overlap:    %d\n", settings.TextChunkOverlap)
	cmd.Printf("  table threshold: %d\n", settings.TableSingleChunkThreshold)
	cmd.Printf("  table rows:      %d\n", settings.TableRowsPerChunk)
	cmd.Println()
	cmd.Println("[Classifier]")
	if settings.Classifier == "" {
		cmd.Println("  provider: (none, classify stage is skipped)")
	} else {
		cmd.Printf("  provider:  %s\n", settings.Classifier)
		cmd.Printf("  model:     %s\n", orDefault(settings.ClassifierModel, "(adapter default)"))
		cmd.Printf("  max chars: %d\n", settings.MaxClassifyChars)
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	if _, err := os.Stat(flagConfig); err == nil {
		return fmt.Errorf("config file %s already exists", flagConfig)
	}

	store := configfile.NewSettingsStore(flagConfig, flagDataDir)
	settings, err := store.Load()
	if err != nil {
		return err
	}
	if err := store.Save(settings); err != nil {
		return err
	}

	cmd.Printf("Wrote %s\n", store.Path())
	return nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
