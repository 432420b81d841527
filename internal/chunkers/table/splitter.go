// Package table provides the header-repeating row-batch splitter for
// tabular text renderings.
package table

import "strings"

// DefaultSingleChunkThreshold keeps small tables as one chunk.
const DefaultSingleChunkThreshold = 2000

// DefaultRowsPerChunk is the default data rows per chunk.
const DefaultRowsPerChunk = 10

// Splitter cuts a table rendering into row batches, repeating the
// header line on every batch. Duplicating header bytes across chunks is
// deliberate: each chunk stays independently interpretable.
//
// Known limitation: only the first non-blank line is treated as the
// header. Multi-row headers (hierarchical columns, index names on their
// own line) are not detected; callers with such tables need a product
// decision on header-detection semantics first.
type Splitter struct {
	singleChunkThreshold int
	rowsPerChunk         int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithSingleChunkThreshold sets the length at or below which the whole
// table is returned as one chunk.
func WithSingleChunkThreshold(threshold int) Option {
	return func(s *Splitter) {
		s.singleChunkThreshold = threshold
	}
}

// WithRowsPerChunk sets the data rows per chunk.
func WithRowsPerChunk(rows int) Option {
	return func(s *Splitter) {
		if rows > 0 {
			s.rowsPerChunk = rows
		}
	}
}

// New creates a table splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		singleChunkThreshold: DefaultSingleChunkThreshold,
		rowsPerChunk:         DefaultRowsPerChunk,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Split cuts tableText into chunks. Short tables come back whole; a
// header with no data rows comes back as just the header; otherwise
// every chunk is the header plus up to rowsPerChunk data rows.
func (s *Splitter) Split(tableText string) []string {
	if strings.TrimSpace(tableText) == "" {
		return nil
	}

	if len(tableText) <= s.singleChunkThreshold {
		return []string{tableText}
	}

	var lines []string
	for _, line := range strings.Split(tableText, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	header := lines[0]
	rows := lines[1:]
	if len(rows) == 0 {
		return []string{header}
	}

	chunks := make([]string, 0, (len(rows)+s.rowsPerChunk-1)/s.rowsPerChunk)
	for start := 0; start < len(rows); start += s.rowsPerChunk {
		end := start + s.rowsPerChunk
		if end > len(rows) {
			end = len(rows)
		}
		chunks = append(chunks, header+"\n"+strings.Join(rows[start:end], "\n"))
	}
	return chunks
}
