// Package llm holds the classification prompt and response decoding
// shared by the provider adapters.
package llm

import (
	"encoding/json"
	"strings"

	"github.com/arkival-labs/arkival-cli/internal/core/domain"
	"github.com/arkival-labs/arkival-cli/internal/core/ports/driven"
)

// schemaGuidance describes the JSON object the model must return. Field
// names here must stay in lockstep with domain.Classification's tags.
const schemaGuidance = `{
    "primary_category": "string (e.g., Maintenance, Operations, Safety, Quality, Logistics, General Procedure, Technical Document)",
    "document_type_tags": ["string", "string"],
    "target_roles": ["string", "string"],
    "relevant_plant_areas_or_equipment": ["string", "string"],
    "is_safety_critical": "boolean (true or false)",
    "detected_language": "string (e.g., pt, en, mixed)",
    "brief_summary": "string (1-2 sentence summary)",
    "key_entities_simple": {
        "machines_components": ["string", "string"],
        "materials_products": ["string", "string"]
    },
    "llm_notes_or_confidence": "string (any notes on confidence or ambiguity)"
}`

// ClassificationPrompt builds the single-shot prompt for a document's
// text. The caller truncates text to its budget before calling.
func ClassificationPrompt(text string) string {
	var b strings.Builder
	b.Grow(len(schemaGuidance) + len(text) + 512)
	b.WriteString("Analyze the following document text and return a single, valid JSON object")
	b.WriteString(" containing classifications based on the structure and examples provided below. ")
	b.WriteString("Do not include any explanatory text or markdown formatting (like ```json or ```) before or after the JSON object.\n\n")
	b.WriteString("Desired JSON Structure and examples:\n")
	b.WriteString(schemaGuidance)
	b.WriteString("\n\nDocument Text:\n")
	b.WriteString("---------------------\n")
	b.WriteString(text)
	b.WriteString("\n---------------------\n")
	b.WriteString("Provide your classifications as a single, valid JSON object only:")
	return b.String()
}

// ScrubFences strips a markdown code fence the model may have wrapped
// around the JSON despite instructions.
func ScrubFences(raw string) string {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

// ParseClassification decodes a model response into a Classification.
// An undecodable response returns a driven.ParseError carrying the raw
// text so the failure can be recorded verbatim.
func ParseClassification(raw string) (*domain.Classification, error) {
	clean := ScrubFences(raw)

	var c domain.Classification
	if err := json.Unmarshal([]byte(clean), &c); err != nil {
		return nil, &driven.ParseError{Raw: raw, Err: err}
	}
	return &c, nil
}
