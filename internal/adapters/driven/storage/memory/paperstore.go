package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
	"github.com/refbase-labs/refbase-cli/internal/core/ports/driven"
)

// Ensure PaperStore implements the interface.
var _ driven.PaperStore = (*PaperStore)(nil)

// PaperStore is an in-memory implementation of driven.PaperStore.
type PaperStore struct {
	mu     sync.RWMutex
	papers map[string]domain.Paper
}

// NewPaperStore creates a new in-memory paper store.
func NewPaperStore() *PaperStore {
	return &PaperStore{papers: make(map[string]domain.Paper)}
}

// SavePaper stores or updates a paper.
func (s *PaperStore) SavePaper(_ context.Context, paper *domain.Paper) error {
	if err := paper.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.papers[paper.EntryID] = *paper
	return nil
}

// GetPaper retrieves a paper by entry ID.
func (s *PaperStore) GetPaper(_ context.Context, id string) (*domain.Paper, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	paper, ok := s.papers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &paper, nil
}

// ListPapers returns all papers ordered by when they were added, oldest
// first, with entry ID as the tiebreaker.
func (s *PaperStore) ListPapers(_ context.Context) ([]domain.Paper, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Paper, 0, len(s.papers))
	for id := range s.papers {
		result = append(result, s.papers[id])
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].AddedAt.Equal(result[j].AddedAt) {
			return result[i].AddedAt.Before(result[j].AddedAt)
		}
		return result[i].EntryID < result[j].EntryID
	})
	return result, nil
}

// DeletePaper removes a paper by entry ID.
func (s *PaperStore) DeletePaper(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.papers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.papers, id)
	return nil
}
