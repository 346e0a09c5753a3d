package domain

import (
	"encoding/json"
	"time"
)

// EventType classifies entries in the orchestration log.
type EventType string

const (
	// EventProfileChange marks any profile mutation or governance action.
	EventProfileChange EventType = "profile_change"

	// EventProposalBatch marks a completed category proposal run.
	EventProposalBatch EventType = "proposal_batch_generated"
)

// ProfileChangeKind is the taxonomy of profile mutations.
type ProfileChangeKind string

const (
	ChangeCreate     ProfileChangeKind = "create"
	ChangeInterview  ProfileChangeKind = "interview"
	ChangeManualEdit ProfileChangeKind = "manual_edit"
	ChangeScope      ProfileChangeKind = "scope_change"
	ChangeExport     ProfileChangeKind = "export"
	ChangeDelete     ProfileChangeKind = "delete"
	ChangeRegenerate ProfileChangeKind = "regenerate"
)

// ProfileEventClass separates replayable snapshots from bookkeeping.
// The class is an explicit tag rather than a payload-presence
// convention so a reader never has to guess replay eligibility.
type ProfileEventClass string

const (
	// EventClassSnapshot marks events carrying a full profile snapshot.
	// Only these participate in replay.
	EventClassSnapshot ProfileEventClass = "snapshot"

	// EventClassGovernance marks metadata-only events (export, delete,
	// scope change, regenerate). The replayer skips them; regenerate
	// events in particular must never feed their own future replays.
	EventClassGovernance ProfileEventClass = "governance"
)

// OrchestrationEvent is one entry in a Base's append-only event log.
type OrchestrationEvent struct {
	// EventID is the unique identifier for the event.
	EventID string `json:"event_id"`

	// BaseID identifies the owning Base.
	BaseID string `json:"base_id"`

	// EventType classifies the event.
	EventType EventType `json:"event_type"`

	// Timestamp is when the event was recorded.
	Timestamp time.Time `json:"timestamp"`

	// Details is the type-specific payload, e.g. ProfileEventDetails.
	Details json.RawMessage `json:"details"`
}

// ProfileEventDetails is the structured payload logged for every
// profile mutation and governance action.
type ProfileEventDetails struct {
	// ProfileType names the affected profile.
	ProfileType ProfileType `json:"profile_type"`

	// ChangeKind names the mutation.
	ChangeKind ProfileChangeKind `json:"change_kind"`

	// Class tags the event as replayable snapshot or governance metadata.
	Class ProfileEventClass `json:"class"`

	// DiffSummary holds human-readable change lines.
	DiffSummary []string `json:"diff_summary,omitempty"`

	// HashBefore is the canonical hash before the change, when known.
	HashBefore string `json:"hash_before,omitempty"`

	// HashAfter is the canonical hash after the change, when known.
	HashAfter string `json:"hash_after,omitempty"`

	// UndoToken allows the chat layer to offer an undo, when available.
	UndoToken string `json:"undo_token,omitempty"`

	// Snapshot embeds the full profile state for snapshot-class events.
	Snapshot json.RawMessage `json:"snapshot,omitempty"`

	// Payload carries any extra change-specific context.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Replayable reports whether the event feeds profile replay.
func (d *ProfileEventDetails) Replayable() bool {
	return d.Class == EventClassSnapshot && len(d.Snapshot) > 0
}
