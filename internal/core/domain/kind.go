package domain

import (
	"path/filepath"
	"strings"
)

// FileKind groups file types by the processing strategy they take.
type FileKind int

const (
	// KindUnknown is any extension the pipeline has no strategy for.
	KindUnknown FileKind = iota

	// KindText covers prose and markup formats split by the recursive
	// text chunker.
	KindText

	// KindTable covers tabular formats split row-wise with a repeated
	// header.
	KindTable

	// KindBinaryDocument covers formats that need a parser (and possibly
	// OCR) before their text is available: pdf, docx, pptx, images.
	KindBinaryDocument

	// KindArchive covers container formats expanded during preparation.
	KindArchive
)

// textExtensions are chunked with the recursive text splitter.
var textExtensions = map[string]bool{
	"txt": true, "md": true, "html": true, "htm": true, "xml": true,
	"json": true, "py": true, "js": true, "java": true, "c": true,
	"cpp": true, "h": true, "go": true, "rst": true,
}

// tableExtensions are chunked row-wise with a repeated header.
var tableExtensions = map[string]bool{
	"csv": true, "xlsx": true, "ods": true, "tsv": true,
}

// binaryDocumentExtensions need docconv (or OCR) extraction. Their
// extracted text is chunked with the recursive text splitter.
var binaryDocumentExtensions = map[string]bool{
	"pdf": true, "docx": true, "pptx": true,
	"png": true, "jpg": true, "jpeg": true, "tiff": true,
}

// archiveExtensions are expanded in place during preparation.
var archiveExtensions = map[string]bool{
	"zip": true,
}

// FileTypeOf returns the lower-case extension tag for a path, without
// the leading dot.
func FileTypeOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// KindOf resolves the processing kind for a file path.
func KindOf(path string) FileKind {
	ext := FileTypeOf(path)
	switch {
	case textExtensions[ext]:
		return KindText
	case tableExtensions[ext]:
		return KindTable
	case binaryDocumentExtensions[ext]:
		return KindBinaryDocument
	case archiveExtensions[ext]:
		return KindArchive
	default:
		return KindUnknown
	}
}

// ChunkStrategyFor maps a file type tag to the chunking strategy applied
// to its extracted text. Binary document formats yield prose, so they
// take the text strategy.
func ChunkStrategyFor(fileType string) string {
	switch {
	case textExtensions[fileType], binaryDocumentExtensions[fileType]:
		return StrategyTextRecursive
	case tableExtensions[fileType]:
		return StrategyTableRows
	default:
		return StrategyUnknownSingle
	}
}

// Eligible reports whether a file kind is processed by the extract stage.
func (k FileKind) Eligible() bool {
	return k == KindText || k == KindTable || k == KindBinaryDocument
}

// String returns the kind name for logging.
func (k FileKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindTable:
		return "table"
	case KindBinaryDocument:
		return "binary-document"
	case KindArchive:
		return "archive"
	default:
		return "unknown"
	}
}
