package domain

import "path/filepath"

// Default chunking parameters.
const (
	// DefaultTextChunkSize is the target characters per text chunk.
	DefaultTextChunkSize = 1000

	// DefaultTextChunkOverlap is the character overlap between
	// consecutive text chunks.
	DefaultTextChunkOverlap = 150

	// DefaultTableSingleChunkThreshold keeps small table renderings as
	// one chunk.
	DefaultTableSingleChunkThreshold = 2000

	// DefaultTableRowsPerChunk is the data rows per table chunk.
	DefaultTableRowsPerChunk = 10
)

// ManifestFilename is the manifest file kept inside each artifact
// directory. The reconciler never deletes it.
const ManifestFilename = "_manifest.json"

// Settings is the immutable pipeline configuration. It is constructed
// once (from the config file plus flag overrides) and passed into each
// component; components never consult process-wide state.
type Settings struct {
	// DataDir is the working root. All stage folders live beneath it
	// unless overridden individually.
	DataDir string

	// RawDir holds the untouched source tree.
	RawDir string

	// ProcessedDir receives extracted DocumentRecord JSON.
	ProcessedDir string

	// ClassifiedDir receives classified DocumentRecord JSON.
	ClassifiedDir string

	// ChunkDir receives chunk JSON artifacts.
	ChunkDir string

	// CatalogPath is the SQLite chunk catalog file. Empty disables the
	// catalog.
	CatalogPath string

	// TextChunkSize is the target characters per text chunk.
	TextChunkSize int

	// TextChunkOverlap is the character overlap between text chunks.
	TextChunkOverlap int

	// TableSingleChunkThreshold keeps short table text as one chunk.
	TableSingleChunkThreshold int

	// TableRowsPerChunk is the data rows grouped per table chunk.
	TableRowsPerChunk int

	// Classifier selects the classification adapter: "gemini",
	// "openai" or "" to skip the classify stage.
	Classifier string

	// ClassifierModel overrides the adapter's default model name.
	ClassifierModel string

	// MaxClassifyChars truncates document text sent to the classifier.
	MaxClassifyChars int
}

// DefaultSettings returns the settings for a data directory, with every
// stage folder in its conventional place.
func DefaultSettings(dataDir string) Settings {
	return Settings{
		DataDir:                   dataDir,
		RawDir:                    filepath.Join(dataDir, "raw_docs"),
		ProcessedDir:              filepath.Join(dataDir, "processed_texts"),
		ClassifiedDir:             filepath.Join(dataDir, "classified_texts"),
		ChunkDir:                  filepath.Join(dataDir, "document_chunks"),
		CatalogPath:               filepath.Join(dataDir, "catalog.db"),
		TextChunkSize:             DefaultTextChunkSize,
		TextChunkOverlap:          DefaultTextChunkOverlap,
		TableSingleChunkThreshold: DefaultTableSingleChunkThreshold,
		TableRowsPerChunk:         DefaultTableRowsPerChunk,
		MaxClassifyChars:          28000,
	}
}

// ChunkParameters returns the parameter map folded into content
// signatures. Every knob that affects derived output must appear here
// so a parameter change invalidates every signature.
func (s Settings) ChunkParameters() map[string]any {
	return map[string]any{
		"text_chunk_size":      s.TextChunkSize,
		"text_chunk_overlap":   s.TextChunkOverlap,
		"table_threshold":      s.TableSingleChunkThreshold,
		"table_rows_per_chunk": s.TableRowsPerChunk,
	}
}
