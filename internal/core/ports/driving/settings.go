package driving

import (
	"github.com/refbase-labs/refbase-cli/internal/core/domain"
)

// SettingsService manages application settings.
type SettingsService interface {
	// Clustering returns the effective clustering settings,
	// falling back to built-in defaults for unset keys.
	Clustering() domain.ClusteringSettings

	// SaveClustering persists clustering settings.
	SaveClustering(settings domain.ClusteringSettings) error

	// BaseSlug returns the configured Base slug.
	BaseSlug() string

	// BaseID returns the configured Base identifier, generating and
	// persisting one on first use.
	BaseID() (string, error)
}
