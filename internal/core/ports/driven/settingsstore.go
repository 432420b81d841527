package driven

import "github.com/arkival-labs/arkival-cli/internal/core/domain"

// SettingsStore loads and persists pipeline configuration.
type SettingsStore interface {
	// Load returns the stored settings merged over defaults.
	Load() (domain.Settings, error)

	// Save persists the settings.
	Save(s domain.Settings) error

	// Path returns the backing file path for logging.
	Path() string
}
