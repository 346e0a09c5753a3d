package domain

import "time"

// ProfileAuditLog is the chronological governance view of one profile.
type ProfileAuditLog struct {
	// ProfileType names the audited profile.
	ProfileType ProfileType `json:"profile_type"`

	// GeneratedAt is when the audit view was assembled.
	GeneratedAt time.Time `json:"generated_at"`

	// Entries lists matching events in original log order.
	Entries []ProfileAuditEntry `json:"entries"`
}

// ProfileAuditEntry is one audited change, stripped of its snapshot.
type ProfileAuditEntry struct {
	// EventID identifies the underlying orchestration event.
	EventID string `json:"event_id"`

	// Timestamp is when the event was recorded.
	Timestamp time.Time `json:"timestamp"`

	// ChangeKind names the mutation.
	ChangeKind ProfileChangeKind `json:"change_kind"`

	// DiffSummary holds the event's human-readable change lines.
	DiffSummary []string `json:"diff_summary,omitempty"`

	// HashAfter is the canonical hash recorded after the change.
	HashAfter string `json:"hash_after,omitempty"`

	// UndoToken is passed through for the chat layer, when present.
	UndoToken string `json:"undo_token,omitempty"`
}

// ProfileExportResult reports a completed export.
type ProfileExportResult struct {
	// ProfileType names the exported profile.
	ProfileType ProfileType

	// ArchivePath is where the zip bundle was written.
	ArchivePath string

	// Hash is the SHA-256 of the archive contents.
	Hash string

	// EventID identifies the logged Export event.
	EventID string
}

// ProfileDeleteResult reports a completed artifact deletion.
// Deletion removes artifacts only; the event history survives and the
// profile remains reconstructable via replay.
type ProfileDeleteResult struct {
	// ProfileType names the deleted profile.
	ProfileType ProfileType

	// FilesRemoved lists the artifact paths that were deleted.
	FilesRemoved []string

	// EventID identifies the logged Delete event.
	EventID string
}

// ProfileScopeStatus reports a scope read or update.
type ProfileScopeStatus struct {
	// Setting is the effective scope setting.
	Setting ScopeSetting

	// EventID identifies the logged ScopeChange event, empty for reads.
	EventID string
}

// ProfileRegenerateOutcome reports a completed regeneration.
type ProfileRegenerateOutcome struct {
	// ProfileType names the regenerated profile.
	ProfileType ProfileType

	// ReplayedEvents counts the snapshot events replayed (history mode)
	// or the history entries embedded in the archive (archive mode).
	ReplayedEvents int

	// HashAfter is the canonical hash of the regenerated artifact.
	HashAfter string

	// EventID identifies the logged Regenerate event.
	EventID string
}
