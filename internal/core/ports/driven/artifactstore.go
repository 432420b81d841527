package driven

// ArtifactStore persists derived JSON artifacts for one pipeline stage.
// Artifacts are UTF-8 JSON files named relative to the store's
// directory; the store is derived state, reconciled against the
// manifest and never treated as authoritative on its own.
type ArtifactStore interface {
	// WriteJSON marshals v and writes it as name.
	WriteJSON(name string, v any) error

	// ReadJSON reads name and unmarshals it into v.
	ReadJSON(name string, v any) error

	// Exists reports whether name is present.
	Exists(name string) bool

	// List returns every .json filename in the store, in
	// directory-listing order.
	List() ([]string, error)

	// Remove deletes name. Removing a missing file is not an error.
	Remove(name string) error

	// Dir returns the store's directory for logging.
	Dir() string
}
