package driving

import "github.com/custodia-labs/digestpdf/internal/core/domain"

// SettingsService manages persisted defaults for runs.
type SettingsService interface {
	// Get returns defaults overlaid with persisted configuration.
	Get() (domain.Settings, error)

	// Set validates and persists one configuration key.
	// Returns domain.ErrInvalidInput for unknown keys or bad values.
	Set(key, value string) error

	// Keys returns the configuration keys understood by Set.
	Keys() []string

	// Path returns the configuration file path.
	Path() string
}
