package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
	"github.com/refbase-labs/refbase-cli/internal/core/ports/driven"
)

// PaperStore returns a PaperStore interface backed by this store.
func (s *Store) PaperStore() driven.PaperStore {
	return &paperStore{store: s}
}

// paperStore implements driven.PaperStore.
type paperStore struct {
	store *Store
}

var _ driven.PaperStore = (*paperStore)(nil)

// SavePaper stores or updates a paper.
func (s *paperStore) SavePaper(ctx context.Context, paper *domain.Paper) error {
	if err := paper.Validate(); err != nil {
		return err
	}
	authorsJSON, err := json.Marshal(paper.Authors)
	if err != nil {
		return fmt.Errorf("marshalling authors: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO papers (entry_id, title, authors, venue, year, added_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(entry_id) DO UPDATE SET
			title = excluded.title,
			authors = excluded.authors,
			venue = excluded.venue,
			year = excluded.year
	`, paper.EntryID, paper.Title, string(authorsJSON), paper.Venue, paper.Year, paper.AddedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving paper: %w", err)
	}
	return nil
}

// GetPaper retrieves a paper by entry ID.
func (s *paperStore) GetPaper(ctx context.Context, id string) (*domain.Paper, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT entry_id, title, authors, venue, year, added_at
		FROM papers WHERE entry_id = ?
	`, id)

	paper, err := scanPaper(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting paper: %w", err)
	}
	return paper, nil
}

// ListPapers returns all papers ordered by when they were added, oldest
// first, with entry ID as the tiebreaker.
func (s *paperStore) ListPapers(ctx context.Context) ([]domain.Paper, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT entry_id, title, authors, venue, year, added_at
		FROM papers ORDER BY added_at, entry_id
	`)
	if err != nil {
		return nil, fmt.Errorf("listing papers: %w", err)
	}
	defer rows.Close()

	var papers []domain.Paper
	for rows.Next() {
		paper, err := scanPaper(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning paper: %w", err)
		}
		papers = append(papers, *paper)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating papers: %w", err)
	}
	return papers, nil
}

// DeletePaper removes a paper by entry ID.
func (s *paperStore) DeletePaper(ctx context.Context, id string) error {
	result, err := s.store.db.ExecContext(ctx, `DELETE FROM papers WHERE entry_id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting paper: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanner abstracts sql.Row and sql.Rows for scanPaper.
type scanner interface {
	Scan(dest ...any) error
}

func scanPaper(row scanner) (*domain.Paper, error) {
	var paper domain.Paper
	var authorsJSON string
	if err := row.Scan(&paper.EntryID, &paper.Title, &authorsJSON, &paper.Venue, &paper.Year, &paper.AddedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(authorsJSON), &paper.Authors); err != nil {
		return nil, fmt.Errorf("parsing authors: %w", err)
	}
	return &paper, nil
}
