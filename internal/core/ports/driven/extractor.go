package driven

import (
	"context"

	"github.com/arkival-labs/arkival-cli/internal/core/domain"
)

// TextExtractor extracts text from one family of file formats. An
// implementation may fall back internally (e.g. OCR for image-only
// PDFs); that fallback is opaque to the core.
type TextExtractor interface {
	// Kinds returns the file kinds this extractor handles.
	Kinds() []domain.FileKind

	// Extract returns the text content of the file at path. A failure
	// is reported per file; the orchestrator isolates it and continues
	// the batch.
	Extract(ctx context.Context, path string, kind domain.FileKind) (string, error)
}

// ExtractorRegistry selects the extractor for a file kind.
type ExtractorRegistry interface {
	// Extract dispatches to the registered extractor for kind.
	// Returns domain.ErrUnsupportedType when no extractor handles it.
	Extract(ctx context.Context, path string, kind domain.FileKind) (string, error)

	// Supports reports whether any extractor handles kind.
	Supports(kind domain.FileKind) bool
}
