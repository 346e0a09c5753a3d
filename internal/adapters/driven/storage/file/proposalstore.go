package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
	"github.com/refbase-labs/refbase-cli/internal/core/ports/driven"
	"github.com/refbase-labs/refbase-cli/internal/logger"
)

// Ensure ProposalStore implements the interface.
var _ driven.ProposalStore = (*ProposalStore)(nil)

// ProposalStore stores each proposal batch as one JSON file named
// <timestamp>-<batch_id>.json so a directory listing sorts
// chronologically.
type ProposalStore struct {
	mu  sync.Mutex
	dir string
}

// NewProposalStore creates a proposal store rooted at dir.
func NewProposalStore(dir string) (*ProposalStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating proposals directory: %w", err)
	}
	return &ProposalStore{dir: dir}, nil
}

// SaveBatch stores a proposal batch.
func (s *ProposalStore) SaveBatch(_ context.Context, batch *domain.CategoryProposalBatch) error {
	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal batch: %w", err)
	}
	name := fmt.Sprintf("%s-%s.json", batch.GeneratedAt.UTC().Format("20060102T150405Z"), batch.BatchID)

	s.mu.Lock()
	defer s.mu.Unlock()
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing batch %s: %w", path, err)
	}
	return nil
}

// LatestBatch returns the most recent batch by generation time.
func (s *ProposalStore) LatestBatch(ctx context.Context) (*domain.CategoryProposalBatch, error) {
	batches, err := s.ListBatches(ctx)
	if err != nil {
		return nil, err
	}
	if len(batches) == 0 {
		return nil, domain.ErrNotFound
	}
	return &batches[len(batches)-1], nil
}

// ListBatches returns all batches ordered oldest first.
func (s *ProposalStore) ListBatches(_ context.Context) ([]domain.CategoryProposalBatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading proposals directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var batches []domain.CategoryProposalBatch
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			return nil, fmt.Errorf("reading batch %s: %w", name, err)
		}
		var batch domain.CategoryProposalBatch
		if err := json.Unmarshal(data, &batch); err != nil {
			logger.Warn("Skipping malformed batch file %s: %v", name, err)
			continue
		}
		batches = append(batches, batch)
	}
	return batches, nil
}
