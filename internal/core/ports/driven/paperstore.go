package driven

import (
	"context"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
)

// PaperStore persists the Base's library entries.
// Backed by SQLite for metadata storage.
type PaperStore interface {
	// SavePaper stores or updates a paper.
	SavePaper(ctx context.Context, paper *domain.Paper) error

	// GetPaper retrieves a paper by entry ID.
	GetPaper(ctx context.Context, entryID string) (*domain.Paper, error)

	// ListPapers returns every paper ordered by insertion time.
	// The order is significant: clustering is order-preserving.
	ListPapers(ctx context.Context) ([]domain.Paper, error)

	// DeletePaper removes a paper by entry ID.
	DeletePaper(ctx context.Context, entryID string) error
}
