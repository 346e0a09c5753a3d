package driven

import (
	"context"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
)

// ProposalStore persists category proposal batches.
// The store is append-only: a new batch supersedes, never mutates,
// earlier ones. The latest batch by generation time is "current".
type ProposalStore interface {
	// SaveBatch stores a proposal batch.
	SaveBatch(ctx context.Context, batch *domain.CategoryProposalBatch) error

	// LatestBatch returns the most recent batch by generation time.
	// Returns domain.ErrNotFound when no batch exists.
	LatestBatch(ctx context.Context) (*domain.CategoryProposalBatch, error)

	// ListBatches returns all batches ordered oldest first.
	ListBatches(ctx context.Context) ([]domain.CategoryProposalBatch, error)
}
