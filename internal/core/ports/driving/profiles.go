package driving

import (
	"context"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
)

// ProfileService governs the Base's AI-maintained profiles:
// read, audit, export, delete, scope control and regeneration.
type ProfileService interface {
	// Get returns the profile artifact, creating a default-seeded one
	// on first read. Returns domain.ErrScopeDisabled when the profile
	// is disabled for this Base.
	Get(ctx context.Context, t domain.ProfileType) (domain.Profile, error)

	// Audit returns the chronological governance view of a profile.
	Audit(ctx context.Context, t domain.ProfileType) (*domain.ProfileAuditLog, error)

	// Export bundles the profile artifacts into a zip archive.
	// destination may be a .zip path, a directory, or empty for the
	// default exports directory. A concurrent export fails immediately
	// with domain.ErrExportInProgress.
	Export(ctx context.Context, t domain.ProfileType, destination string, includeHistory bool) (*domain.ProfileExportResult, error)

	// Delete removes the profile artifacts. confirmPhrase must equal
	// "DELETE {slug}" case-insensitively or the call fails with
	// domain.ErrConfirmPhrase. History survives; replay stays possible.
	Delete(ctx context.Context, t domain.ProfileType, confirmPhrase string) (*domain.ProfileDeleteResult, error)

	// ScopeStatus returns the current scope setting without mutation.
	ScopeStatus(ctx context.Context, t domain.ProfileType) (domain.ScopeSetting, error)

	// UpdateScope changes the scope setting and logs a ScopeChange
	// event. Non-shared modes clear the allow list; shared mode
	// deduplicates and sorts it case-insensitively.
	UpdateScope(ctx context.Context, t domain.ProfileType, mode domain.ScopeMode, allowedBases []string) (*domain.ProfileScopeStatus, error)

	// RegenerateFromHistory rebuilds the profile artifacts by replaying
	// the Base's snapshot events. Returns domain.ErrNoHistory when the
	// log holds no replayable snapshots for the type.
	RegenerateFromHistory(ctx context.Context, t domain.ProfileType) (*domain.ProfileRegenerateOutcome, error)

	// RegenerateFromArchive rebuilds the profile artifacts from an
	// export archive produced by Export.
	RegenerateFromArchive(ctx context.Context, t domain.ProfileType, archivePath string) (*domain.ProfileRegenerateOutcome, error)
}
