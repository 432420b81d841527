package extract

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/arkival-labs/arkival-cli/internal/core/domain"
	"github.com/arkival-labs/arkival-cli/internal/core/ports/driven"
)

var _ driven.TextExtractor = (*PlainText)(nil)

// utf8BOM is stripped from the front of text files that carry it.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// PlainText reads text files verbatim.
type PlainText struct{}

// NewPlainText creates the plain-text extractor.
func NewPlainText() *PlainText {
	return &PlainText{}
}

// Kinds reports the file kinds this extractor handles.
func (p *PlainText) Kinds() []domain.FileKind {
	return []domain.FileKind{domain.KindText}
}

// Extract returns the file contents as a string, with a UTF-8 byte
// order mark stripped when present.
func (p *PlainText) Extract(ctx context.Context, path string, _ domain.FileKind) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", domain.ErrExtractionFailed, path, err)
	}
	return string(bytes.TrimPrefix(data, utf8BOM)), nil
}
