package driven

import (
	"github.com/refbase-labs/refbase-cli/internal/core/domain"
)

// ProfileStore persists profile artifacts: the pretty-printed JSON
// representation and its HTML summary. Serialization happens in the
// core; the store moves bytes.
type ProfileStore interface {
	// ReadJSON returns the JSON artifact for a profile type.
	// Returns domain.ErrNotFound when the artifact does not exist.
	ReadJSON(t domain.ProfileType) ([]byte, error)

	// WriteJSON stores the JSON artifact for a profile type.
	WriteJSON(t domain.ProfileType, data []byte) error

	// ReadHTML returns the HTML summary for a profile type.
	// Returns domain.ErrNotFound when the summary does not exist.
	ReadHTML(t domain.ProfileType) ([]byte, error)

	// WriteHTML stores the HTML summary for a profile type.
	WriteHTML(t domain.ProfileType, data []byte) error

	// Remove deletes both artifacts and returns the removed paths.
	// Returns domain.ErrNotFound when neither artifact exists.
	Remove(t domain.ProfileType) ([]string, error)

	// JSONPath returns where the JSON artifact lives, whether or not
	// it exists yet. Used for user-facing messages.
	JSONPath(t domain.ProfileType) string

	// ExportsDir returns the directory export archives default to.
	ExportsDir() string

	// AcquireExportLock takes the Base's advisory export lock using
	// create-new-file semantics. Returns domain.ErrExportInProgress
	// when another export holds it. The returned release function is
	// safe to call exactly once, typically via defer.
	AcquireExportLock() (release func(), err error)
}
