// Package text provides the separator-aware sliding-window text splitter.
package text

import (
	"strings"
	"unicode/utf8"
)

// DefaultChunkSize is the default target characters per chunk.
const DefaultChunkSize = 1000

// DefaultOverlap is the default character overlap between chunks.
const DefaultOverlap = 150

// DefaultSeparators are tried coarse-to-fine: paragraph break, line
// break, sentence-ending punctuation, clause punctuation, plain space.
var DefaultSeparators = []string{"\n\n", "\n", ". ", "! ", "? ", "; ", ": ", " "}

// Splitter cuts long text into bounded, overlapping chunks. Within each
// window it cuts immediately after the LAST occurrence of the first
// separator (in priority order) found inside the window, maximising
// chunk size while respecting the boundary; with no separator in the
// window it hard-cuts at the window edge.
type Splitter struct {
	chunkSize  int
	overlap    int
	separators []string
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the target chunk size in characters (runes).
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters (runes).
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		s.overlap = overlap
	}
}

// WithSeparators replaces the separator hierarchy.
func WithSeparators(separators []string) Option {
	return func(s *Splitter) {
		if len(separators) > 0 {
			s.separators = separators
		}
	}
}

// New creates a splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		chunkSize:  DefaultChunkSize,
		overlap:    DefaultOverlap,
		separators: DefaultSeparators,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// effectiveOverlap clamps the configured overlap to something that can
// make progress: overlap >= chunk size falls back to half the chunk
// size (0 when the chunk size is 1), negatives to 0.
func (s *Splitter) effectiveOverlap() int {
	overlap := s.overlap
	if overlap >= s.chunkSize {
		if s.chunkSize > 1 {
			overlap = s.chunkSize / 2
		} else {
			overlap = 0
		}
	}
	if overlap < 0 {
		overlap = 0
	}
	return overlap
}

// Split cuts text into ordered, trimmed, non-empty chunks. Empty or
// whitespace-only input yields nil. The scan is gapless: every
// character of the input falls inside at least one window, though
// characters in the overlap region appear twice.
//
// Sizes are counted in runes so multi-byte text never splits inside a
// code point.
func (s *Splitter) Split(input string) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}

	overlap := s.effectiveOverlap()
	runes := []rune(input)
	textLen := len(runes)

	var chunks []string
	pos := 0

	for pos < textLen {
		end := pos + s.chunkSize
		if end > textLen {
			end = textLen
		}
		window := string(runes[pos:end])

		// Hard cut at the window edge unless a separator is found.
		cut := end

		// Only search for a boundary when the window is full; a final
		// short window already ends at the text end.
		if end < textLen || end-pos == s.chunkSize {
			for _, sep := range s.separators {
				if sep == "" {
					continue
				}
				byteIdx := strings.LastIndex(window, sep)
				if byteIdx < 0 {
					continue
				}
				offset := utf8.RuneCountInString(window[:byteIdx]) + utf8.RuneCountInString(sep)
				if offset > 0 {
					cut = pos + offset
				}
				break
			}
		}

		chunk := strings.TrimSpace(string(runes[pos:cut]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		if cut >= textLen {
			break
		}

		// Advance with overlap; force forward progress when the chunk
		// was shorter than the overlap.
		next := cut - overlap
		if next <= pos {
			next = cut
			if next <= pos {
				next = pos + 1
			}
		}
		pos = next

		// Safety valve: a chunk count the text length cannot justify
		// means a pathological parameter combination. Degrade to one
		// whole-text chunk instead of looping.
		if len(chunks) > textLen+10 {
			return []string{strings.TrimSpace(input)}
		}
	}

	return chunks
}
