package driven

import (
	"github.com/refbase-labs/refbase-cli/internal/core/domain"
)

// ScopeStore persists per-profile scope settings.
// Settings live in a small standalone file so scope changes never
// touch the profile artifact or its canonical hash.
type ScopeStore interface {
	// Load returns the settings for all profile types, falling back to
	// ThisBase defaults for types never configured.
	Load() ([]domain.ScopeSetting, error)

	// Get returns the setting for one profile type, defaulting to
	// ThisBase when never configured.
	Get(t domain.ProfileType) (domain.ScopeSetting, error)

	// Set updates the setting for one profile type and persists it.
	Set(t domain.ProfileType, mode domain.ScopeMode, allowedBases []string) (domain.ScopeSetting, error)
}
