package text

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSplit_Empty tests that empty and whitespace-only input yields nothing
func TestSplit_Empty(t *testing.T) {
	s := New()

	assert.Nil(t, s.Split(""))
	assert.Nil(t, s.Split("   \n\t  "))
}

// TestSplit_ShortText tests that text within one chunk comes back whole
func TestSplit_ShortText(t *testing.T) {
	s := New(WithChunkSize(100), WithOverlap(10))

	chunks := s.Split("A single short sentence.")

	require.Len(t, chunks, 1)
	assert.Equal(t, "A single short sentence.", chunks[0])
}

// TestSplit_ParagraphBoundaries tests that paragraph breaks are preferred
// over finer separators
func TestSplit_ParagraphBoundaries(t *testing.T) {
	input := "Paragraph one.\n\nParagraph two.\n\nParagraph three."
	s := New(WithChunkSize(20), WithOverlap(5))

	chunks := s.Split(input)

	require.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), 20)
		assert.NotEmpty(t, chunk)
		assert.Equal(t, strings.TrimSpace(chunk), chunk)
		assert.NotContains(t, chunk, "\n\n")
	}

	// Each full paragraph must appear as its own chunk, in order.
	wantOrder := []string{"Paragraph one.", "Paragraph two.", "Paragraph three."}
	last := -1
	for _, want := range wantOrder {
		found := -1
		for i, chunk := range chunks {
			if chunk == want && i > last {
				found = i
				break
			}
		}
		require.GreaterOrEqual(t, found, 0, "missing chunk %q", want)
		last = found
	}
}

// TestSplit_SeparatorPriority tests the coarse-to-fine separator order
func TestSplit_SeparatorPriority(t *testing.T) {
	tests := []struct {
		name  string
		input string
		size  int
		first string
	}{
		{
			name:  "newline beats sentence",
			input: "one. two\nthree. four five six seven",
			size:  15,
			first: "one. two",
		},
		{
			name:  "sentence beats space",
			input: "one two. three four five six seven",
			size:  15,
			first: "one two.",
		},
		{
			name:  "space as last resort",
			input: "alpha beta gamma delta epsilon",
			size:  12,
			first: "alpha beta",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(WithChunkSize(tt.size), WithOverlap(0))
			chunks := s.Split(tt.input)
			require.NotEmpty(t, chunks)
			assert.Equal(t, tt.first, chunks[0])
		})
	}
}

// TestSplit_LastSeparatorInWindow tests that the cut lands after the LAST
// occurrence of the chosen separator, maximising chunk size
func TestSplit_LastSeparatorInWindow(t *testing.T) {
	// Window of 20 holds "aa bb cc dd ee ff gg"; the cut must use the
	// last space inside the window, not the first.
	input := "aa bb cc dd ee ff gg hh"
	s := New(WithChunkSize(20), WithOverlap(0))

	chunks := s.Split(input)

	require.NotEmpty(t, chunks)
	assert.Equal(t, "aa bb cc dd ee ff", chunks[0])
}

// TestSplit_NoSeparator tests hard cuts on separator-free input
func TestSplit_NoSeparator(t *testing.T) {
	input := strings.Repeat("x", 25)
	s := New(WithChunkSize(10), WithOverlap(0))

	chunks := s.Split(input)

	assert.Equal(t, []string{
		strings.Repeat("x", 10),
		strings.Repeat("x", 10),
		strings.Repeat("x", 5),
	}, chunks)
}

// TestSplit_Overlap tests that consecutive chunks share the overlap region
func TestSplit_Overlap(t *testing.T) {
	input := strings.Repeat("x", 30)
	s := New(WithChunkSize(10), WithOverlap(4))

	chunks := s.Split(input)

	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), 10)
	}
	// With hard cuts every 10 and a 4-rune overlap, each step advances 6.
	assert.Equal(t, strings.Repeat("x", 10), chunks[0])
	assert.Equal(t, strings.Repeat("x", 10), chunks[1])
}

// TestSplit_Bounds tests the size invariant over mixed content
func TestSplit_Bounds(t *testing.T) {
	input := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 40)
	s := New(WithChunkSize(80), WithOverlap(20))

	chunks := s.Split(input)

	require.NotEmpty(t, chunks)
	for i, chunk := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), 80, "chunk %d too long", i)
		assert.NotEmpty(t, strings.TrimSpace(chunk))
		assert.Equal(t, strings.TrimSpace(chunk), chunk)
	}
}

// TestSplit_MultiByte tests that rune counting never splits a code point
func TestSplit_MultiByte(t *testing.T) {
	input := strings.Repeat("é", 25)
	s := New(WithChunkSize(10), WithOverlap(0))

	chunks := s.Split(input)

	require.Len(t, chunks, 3)
	for _, chunk := range chunks {
		assert.True(t, utf8.ValidString(chunk))
	}
	assert.Equal(t, 10, utf8.RuneCountInString(chunks[0]))
	assert.Equal(t, 5, utf8.RuneCountInString(chunks[2]))
}

// TestSplit_Deterministic tests that repeated splits agree
func TestSplit_Deterministic(t *testing.T) {
	input := strings.Repeat("Some sentences here. And more over there! Plus extras; with clauses: done. ", 20)
	s := New(WithChunkSize(90), WithOverlap(15))

	first := s.Split(input)
	second := s.Split(input)

	assert.Equal(t, first, second)
}

// TestEffectiveOverlap tests the overlap clamping rules
func TestEffectiveOverlap(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
		want    int
	}{
		{"normal", 100, 20, 20},
		{"equal to size", 100, 100, 50},
		{"larger than size", 100, 150, 50},
		{"size one", 1, 5, 0},
		{"negative", 100, -3, 0},
		{"zero", 100, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(WithChunkSize(tt.size), WithOverlap(tt.overlap))
			assert.Equal(t, tt.want, s.effectiveOverlap())
		})
	}
}

// TestSplit_OverlapLargerThanSize tests that a pathological overlap still
// terminates and covers the input
func TestSplit_OverlapLargerThanSize(t *testing.T) {
	input := strings.Repeat("word ", 50)
	s := New(WithChunkSize(10), WithOverlap(10))

	chunks := s.Split(input)

	require.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), 10)
	}
}
