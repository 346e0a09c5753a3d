package memory

import (
	"context"
	"sync"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
	"github.com/refbase-labs/refbase-cli/internal/core/ports/driven"
)

// Ensure ProposalStore implements the interface.
var _ driven.ProposalStore = (*ProposalStore)(nil)

// ProposalStore is an in-memory implementation of driven.ProposalStore.
type ProposalStore struct {
	mu      sync.RWMutex
	batches []domain.CategoryProposalBatch
}

// NewProposalStore creates a new in-memory proposal store.
func NewProposalStore() *ProposalStore {
	return &ProposalStore{}
}

// SaveBatch appends a proposal batch.
func (s *ProposalStore) SaveBatch(_ context.Context, batch *domain.CategoryProposalBatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches = append(s.batches, *batch)
	return nil
}

// LatestBatch returns the most recent batch by generation time.
func (s *ProposalStore) LatestBatch(_ context.Context) (*domain.CategoryProposalBatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.batches) == 0 {
		return nil, domain.ErrNotFound
	}
	latest := s.batches[0]
	for _, batch := range s.batches[1:] {
		if batch.GeneratedAt.After(latest.GeneratedAt) {
			latest = batch
		}
	}
	return &latest, nil
}

// ListBatches returns all batches ordered oldest first.
func (s *ProposalStore) ListBatches(_ context.Context) ([]domain.CategoryProposalBatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CategoryProposalBatch, len(s.batches))
	copy(out, s.batches)
	return out, nil
}
