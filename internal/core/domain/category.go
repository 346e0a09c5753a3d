package domain

import (
	"strings"
	"time"
)

// CategoryOrigin records how a category came to exist.
type CategoryOrigin string

const (
	// OriginProposed marks categories created by the clustering worker.
	OriginProposed CategoryOrigin = "proposed"

	// OriginManual marks categories created directly by the user.
	OriginManual CategoryOrigin = "manual"
)

// CategoryDefinition describes a category within a Base.
type CategoryDefinition struct {
	// CategoryID is the unique identifier for the category.
	CategoryID string `json:"category_id"`

	// BaseID identifies the owning Base.
	BaseID string `json:"base_id"`

	// Name is the human-readable category name.
	Name string `json:"name"`

	// Slug is the filesystem-safe form of the name.
	Slug string `json:"slug"`

	// Description is a one-sentence summary of the category contents.
	Description string `json:"description"`

	// Confidence is the clustering cohesion score in (0, 1].
	// Nil exactly when Origin is OriginManual: manual categories carry
	// no clustering evidence. This is a cohesion score, not a probability.
	Confidence *float64 `json:"confidence,omitempty"`

	// RepresentativePapers holds up to five member entry IDs in
	// cluster-encounter order. A simplification, not a relevance ranking.
	RepresentativePapers []string `json:"representative_papers,omitempty"`

	// Origin records whether the category was proposed or manual.
	Origin CategoryOrigin `json:"origin"`

	// CreatedAt is when the category was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the category was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate enforces the confidence/origin invariant.
func (d *CategoryDefinition) Validate() error {
	if d.Origin == OriginManual && d.Confidence != nil {
		return ErrInvalidInput
	}
	if d.Origin == OriginProposed && d.Confidence == nil {
		return ErrInvalidInput
	}
	return nil
}

// CategoryNarrative carries the prose companion to a category definition.
type CategoryNarrative struct {
	// NarrativeID is the unique identifier for the narrative.
	NarrativeID string `json:"narrative_id"`

	// CategoryID links to the described category.
	CategoryID string `json:"category_id"`

	// Summary is the generated description of the grouping.
	Summary string `json:"summary"`

	// References holds up to three member entry IDs cited by the summary.
	References []string `json:"references,omitempty"`

	// LastUpdatedAt is when the narrative was last regenerated.
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

// CategoryProposalPreview is one clustering result surfaced for human
// review. Previews are immutable once generated; the next proposal run
// supersedes them rather than mutating them.
type CategoryProposalPreview struct {
	// ProposalID is the unique identifier for this preview.
	ProposalID string `json:"proposal_id"`

	// Definition is the candidate category.
	Definition CategoryDefinition `json:"definition"`

	// Narrative is the candidate prose summary.
	Narrative CategoryNarrative `json:"narrative"`

	// MemberEntryIDs lists every member paper in cluster-encounter order.
	MemberEntryIDs []string `json:"member_entry_ids"`

	// GeneratedAt is when the preview was produced.
	GeneratedAt time.Time `json:"generated_at"`
}

// CategoryProposalBatch groups the previews of a single worker run.
// Batches are append-only; the latest by GeneratedAt is "current".
type CategoryProposalBatch struct {
	// BatchID is the unique identifier for the batch.
	BatchID string `json:"batch_id"`

	// BaseID identifies the Base the batch was computed for.
	BaseID string `json:"base_id"`

	// GeneratedAt is when the worker run completed.
	GeneratedAt time.Time `json:"generated_at"`

	// DurationMS is the wall-clock cost of the run in milliseconds.
	DurationMS int64 `json:"duration_ms"`

	// Proposals holds the previews sorted descending by confidence.
	Proposals []CategoryProposalPreview `json:"proposals"`
}

// ProposalOptions configures a category proposal run.
type ProposalOptions struct {
	// MaxClusters caps the cluster count; clamped to at least 1.
	MaxClusters int

	// MinClusterSize drops smaller clusters from the output.
	MinClusterSize int

	// Timeout bounds the clustering wall clock. Exceeding it discards
	// the run's results (fail-empty), it does not raise an error.
	Timeout time.Duration
}

// Slugify converts a category name into a filesystem-safe slug.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
