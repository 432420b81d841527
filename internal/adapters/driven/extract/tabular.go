package extract

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"code.sajari.com/docconv"

	"github.com/arkival-labs/arkival-cli/internal/core/domain"
	"github.com/arkival-labs/arkival-cli/internal/core/ports/driven"
)

var _ driven.TextExtractor = (*Tabular)(nil)

// Tabular renders tabular files as line-per-row text so the table
// chunker can split them with a repeated header. CSV and TSV parse
// natively; spreadsheet formats go through docconv's converters.
type Tabular struct{}

// NewTabular creates the tabular extractor.
func NewTabular() *Tabular {
	return &Tabular{}
}

// Kinds reports the file kinds this extractor handles.
func (t *Tabular) Kinds() []domain.FileKind {
	return []domain.FileKind{domain.KindTable}
}

// Extract renders the table as text, one row per line with cells joined
// by ", ".
func (t *Tabular) Extract(ctx context.Context, path string, _ domain.FileKind) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch domain.FileTypeOf(path) {
	case "csv":
		return renderDelimited(path, ',')
	case "tsv":
		return renderDelimited(path, '\t')
	default:
		res, err := docconv.ConvertPath(path)
		if err != nil {
			return "", fmt.Errorf("%w: convert %s: %v", domain.ErrExtractionFailed, path, err)
		}
		return strings.TrimSpace(res.Body), nil
	}
}

// renderDelimited parses a delimited file and joins each record's cells
// with ", ". Ragged rows are tolerated; a parse error past the first
// record keeps what was read so a trailing bad line does not discard
// the whole table.
func renderDelimited(path string, delimiter rune) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %v", domain.ErrExtractionFailed, path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var lines []string
	for {
		record, err := reader.Read()
		if err != nil {
			if len(lines) == 0 && !errors.Is(err, io.EOF) {
				return "", fmt.Errorf("%w: parse %s: %v", domain.ErrExtractionFailed, path, err)
			}
			break
		}
		lines = append(lines, strings.Join(record, ", "))
	}
	return strings.Join(lines, "\n"), nil
}
