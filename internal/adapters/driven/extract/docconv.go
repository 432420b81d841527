package extract

import (
	"context"
	"fmt"
	"strings"

	"code.sajari.com/docconv"

	"github.com/arkival-labs/arkival-cli/internal/core/domain"
	"github.com/arkival-labs/arkival-cli/internal/core/ports/driven"
	"github.com/arkival-labs/arkival-cli/internal/logger"
)

var _ driven.TextExtractor = (*Docconv)(nil)

// Docconv extracts text from binary document formats (PDF, DOCX, PPTX,
// HTML, RTF and friends) via the docconv conversion library. Image
// files and scanned pages go through tesseract when the library is
// built with OCR support.
type Docconv struct {
	warnEmpty bool
}

// NewDocconv creates the docconv-backed extractor. When warnEmpty is
// true, conversions that yield no text are logged; the empty result is
// still returned so the caller can record the document as text-free.
func NewDocconv(warnEmpty bool) *Docconv {
	return &Docconv{warnEmpty: warnEmpty}
}

// Kinds reports the file kinds this extractor handles.
func (d *Docconv) Kinds() []domain.FileKind {
	return []domain.FileKind{domain.KindBinaryDocument}
}

// Extract converts the document to plain text.
func (d *Docconv) Extract(ctx context.Context, path string, _ domain.FileKind) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	res, err := docconv.ConvertPath(path)
	if err != nil {
		return "", fmt.Errorf("%w: convert %s: %v", domain.ErrExtractionFailed, path, err)
	}

	text := strings.TrimSpace(res.Body)
	if text == "" && d.warnEmpty {
		logger.Warn("No text extracted from %s", path)
	}
	return text, nil
}
