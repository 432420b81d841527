package domain

import "time"

// DocumentRecord represents one source file after text extraction.
// It is the canonical representation written to the processed and
// classified artifact folders, one JSON file per document.
type DocumentRecord struct {
	// Identifier is the stable logical key for this document. It is a
	// pure function of the file's normalised relative path and never
	// changes when only the file's bytes change.
	Identifier string `json:"identifier"`

	// FileName is the original (pre-normalisation) file name.
	FileName string `json:"file_name"`

	// FileType is the lower-case extension tag ("pdf", "docx", "csv", ...).
	FileType string `json:"file_type"`

	// Text is the extracted text content. May be empty when extraction
	// produced nothing (e.g. image-only PDF with OCR disabled).
	Text string `json:"text"`

	// ContentHash is the sha256 hex digest of Text.
	ContentHash string `json:"content_hash"`

	// SourcePathInRaw is the path of the originating file relative to
	// the raw source tree.
	SourcePathInRaw string `json:"source_path_in_raw"`

	// ExtractedAt is when the text was extracted.
	ExtractedAt time.Time `json:"extracted_at"`

	// Classifications holds the structured labels attached by the
	// classification stage. Nil until classified.
	Classifications *Classification `json:"classifications_p1_lite,omitempty"`

	// ClassificationStatus records the classification outcome:
	// "success", "skipped_no_text_content", "llm_processing_error" or
	// "api_call_failed". Empty before the classify stage runs.
	ClassificationStatus string `json:"classification_p1_lite_status,omitempty"`
}

// Chunking strategy tags recorded in chunk metadata.
const (
	// StrategyTextRecursive is the separator-aware sliding-window split.
	StrategyTextRecursive = "text_recursive"

	// StrategyTableRows is the header-repeating row-batch split.
	StrategyTableRows = "table_rows"

	// StrategyUnknownSingle keeps an unrecognised document as one chunk.
	StrategyUnknownSingle = "unknown_as_single"
)

// ChunkRecord is one retrieval-sized unit of a document's text.
// Chunk records are regenerated wholesale whenever their parent is
// reprocessed; stale sequence numbers never survive a rerun.
type ChunkRecord struct {
	// ChunkID is "{parent}_chunk_{sequence:03d}".
	ChunkID string `json:"chunk_id"`

	// ParentIdentifier links to the parent DocumentRecord.
	ParentIdentifier string `json:"parent_document_identifier"`

	// OriginalFilename is inherited from the parent.
	OriginalFilename string `json:"original_filename"`

	// SourcePathInRaw is inherited from the parent.
	SourcePathInRaw string `json:"source_path_in_raw"`

	// Text is the chunk content, non-empty after trimming.
	Text string `json:"chunk_text"`

	// Classifications are inherited from the parent, unmodified.
	Classifications *Classification `json:"classifications_p1_lite,omitempty"`

	// Metadata carries sequence and provenance information.
	Metadata ChunkMetadata `json:"chunk_metadata"`
}

// ChunkMetadata describes a chunk's position and provenance.
type ChunkMetadata struct {
	// Sequence is the 1-based, gapless position within the parent.
	Sequence int `json:"chunk_sequence"`

	// ParentFileType is the parent document's file type tag.
	ParentFileType string `json:"parent_file_type"`

	// Strategy is one of the Strategy* constants.
	Strategy string `json:"chunking_strategy"`

	// Producer identifies the tool that generated the chunk.
	Producer string `json:"producer"`
}

// SourceFile is one eligible file discovered in the prepared source tree.
type SourceFile struct {
	// Path is the absolute path on disk.
	Path string

	// RelPath is the path relative to the source root, using slashes.
	RelPath string

	// Kind is the resolved file kind.
	Kind FileKind
}
