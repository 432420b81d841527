package domain

// Classification is the structured label set the classifier attaches to
// a document. Chunks inherit it from their parent unmodified.
type Classification struct {
	// PrimaryCategory is the single dominant category, e.g.
	// "Maintenance", "Operations", "Safety", "Quality", "Logistics".
	PrimaryCategory string `json:"primary_category"`

	// DocumentTypeTags describe the document form, e.g. ["SOP", "Manual"].
	DocumentTypeTags []string `json:"document_type_tags"`

	// TargetRoles lists the audiences the document addresses.
	TargetRoles []string `json:"target_roles"`

	// RelevantAreas lists plant areas or equipment the document covers.
	RelevantAreas []string `json:"relevant_plant_areas_or_equipment"`

	// SafetyCritical flags documents with safety-critical content.
	SafetyCritical bool `json:"is_safety_critical"`

	// DetectedLanguage is "pt", "en" or "mixed".
	DetectedLanguage string `json:"detected_language"`

	// BriefSummary is a one-to-two sentence summary.
	BriefSummary string `json:"brief_summary"`

	// KeyEntities holds simple high-value entity extraction results.
	KeyEntities KeyEntities `json:"key_entities_simple"`

	// Notes carries the model's own confidence or ambiguity remarks.
	Notes string `json:"llm_notes_or_confidence,omitempty"`
}

// KeyEntities groups the entity lists extracted by the classifier.
type KeyEntities struct {
	// MachinesComponents lists specific machine or component names.
	MachinesComponents []string `json:"machines_components"`

	// MaterialsProducts lists material codes or product names.
	MaterialsProducts []string `json:"materials_products"`
}

// Classification status values recorded on DocumentRecord.
const (
	ClassificationSuccess      = "success"
	ClassificationSkippedEmpty = "skipped_no_text_content"
	ClassificationParseError   = "llm_processing_error"
	ClassificationCallFailed   = "api_call_failed"
)
