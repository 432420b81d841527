// Package cli implements the command-line interface.
package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/arkival-labs/arkival-cli/internal/logger"
)

// version is injected by Execute.
var version = "dev"

var (
	flagConfig  string
	flagDataDir string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "arkival",
	Short: "Prepare document folders for retrieval",
	Long: `arkival turns a folder of mixed source documents into a
retrieval-ready corpus: it normalises and expands the raw tree,
extracts text, classifies each document and splits the text into
overlapping chunks.

Every stage is incremental. Unchanged documents are skipped, changed
documents are reprocessed, and artifacts belonging to removed documents
are cleaned up.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
		// A .env file may hold provider API keys.
		_ = godotenv.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "arkival.toml", "path to the TOML config file")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "data", "working directory for pipeline folders")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command with the build version.
func Execute(v string) error {
	version = v
	return rootCmd.Execute()
}
