package driving

import (
	"context"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
)

// ProposalService generates and serves category proposals.
type ProposalService interface {
	// Generate runs one clustering pass over the Base's papers and
	// returns proposal previews sorted descending by confidence.
	// Fails empty (nil, no error) on too few papers or timeout.
	// It has no side effects; nothing is persisted.
	Generate(ctx context.Context, opts domain.ProposalOptions) ([]domain.CategoryProposalPreview, error)

	// GenerateAndStore runs Generate and persists the outcome as a new
	// proposal batch, which becomes the current batch.
	GenerateAndStore(ctx context.Context, opts domain.ProposalOptions) (*domain.CategoryProposalBatch, error)

	// LatestBatch returns the current proposal batch.
	// Returns domain.ErrNotFound when no batch has been generated.
	LatestBatch(ctx context.Context) (*domain.CategoryProposalBatch, error)
}
