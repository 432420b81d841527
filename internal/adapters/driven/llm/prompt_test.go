package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkival-labs/arkival-cli/internal/core/ports/driven"
)

// TestClassificationPrompt tests that the prompt embeds the document
// text and the response schema
func TestClassificationPrompt(t *testing.T) {
	prompt := ClassificationPrompt("lockout tagout procedure")

	assert.Contains(t, prompt, "lockout tagout procedure")
	assert.Contains(t, prompt, `"primary_category"`)
	assert.Contains(t, prompt, `"is_safety_critical"`)
	assert.Contains(t, prompt, "single, valid JSON object")
}

// TestScrubFences tests markdown fence stripping
func TestScrubFences(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bare json", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"plain fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  \n{\"a\": 1}\n  ", `{"a": 1}`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScrubFences(tt.raw))
		})
	}
}

// TestParseClassification tests decoding a well-formed response
func TestParseClassification(t *testing.T) {
	raw := "```json\n" + `{
        "primary_category": "Safety",
        "document_type_tags": ["SOP", "Checklist"],
        "is_safety_critical": true,
        "detected_language": "en",
        "brief_summary": "A lockout procedure.",
        "key_entities_simple": {
            "machines_components": ["press 4"]
        }
    }` + "\n```"

	c, err := ParseClassification(raw)

	require.NoError(t, err)
	assert.Equal(t, "Safety", c.PrimaryCategory)
	assert.Equal(t, []string{"SOP", "Checklist"}, c.DocumentTypeTags)
	assert.True(t, c.SafetyCritical)
	assert.Equal(t, []string{"press 4"}, c.KeyEntities.MachinesComponents)
}

// TestParseClassification_Invalid tests that an undecodable response
// yields a ParseError carrying the raw text
func TestParseClassification_Invalid(t *testing.T) {
	raw := "Sorry, I cannot classify this document."

	_, err := ParseClassification(raw)

	require.Error(t, err)
	var parseErr *driven.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, raw, parseErr.Raw)
}
