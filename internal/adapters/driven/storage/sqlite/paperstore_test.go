package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPaperStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	papers := store.PaperStore()
	ctx := context.Background()

	added := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	paper := &domain.Paper{
		EntryID: "entry-1",
		Title:   "Attention Is All You Need",
		Authors: []string{"Ashish Vaswani", "Noam Shazeer"},
		Venue:   "NeurIPS",
		Year:    2017,
		AddedAt: added,
	}
	require.NoError(t, papers.SavePaper(ctx, paper))

	got, err := papers.GetPaper(ctx, "entry-1")
	require.NoError(t, err)
	assert.Equal(t, paper.Title, got.Title)
	assert.Equal(t, paper.Authors, got.Authors)
	assert.Equal(t, 2017, got.Year)
	assert.True(t, got.AddedAt.Equal(added))

	// Upsert keeps the original added_at.
	paper.Title = "Attention Is All You Need (v2)"
	paper.AddedAt = added.Add(time.Hour)
	require.NoError(t, papers.SavePaper(ctx, paper))
	got, err = papers.GetPaper(ctx, "entry-1")
	require.NoError(t, err)
	assert.Equal(t, "Attention Is All You Need (v2)", got.Title)
	assert.True(t, got.AddedAt.Equal(added))
}

func TestPaperStoreListOrder(t *testing.T) {
	store := newTestStore(t)
	papers := store.PaperStore()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, papers.SavePaper(ctx, &domain.Paper{EntryID: "b", Title: "Tie B", AddedAt: base}))
	require.NoError(t, papers.SavePaper(ctx, &domain.Paper{EntryID: "a", Title: "Tie A", AddedAt: base}))
	require.NoError(t, papers.SavePaper(ctx, &domain.Paper{EntryID: "c", Title: "Later", AddedAt: base.Add(time.Hour)}))

	list, err := papers.ListPapers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "a", list[0].EntryID)
	assert.Equal(t, "b", list[1].EntryID)
	assert.Equal(t, "c", list[2].EntryID)
}

func TestPaperStoreDelete(t *testing.T) {
	store := newTestStore(t)
	papers := store.PaperStore()
	ctx := context.Background()

	require.NoError(t, papers.SavePaper(ctx, &domain.Paper{EntryID: "x", Title: "Doomed", AddedAt: time.Now().UTC()}))
	require.NoError(t, papers.DeletePaper(ctx, "x"))

	_, err := papers.GetPaper(ctx, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, papers.DeletePaper(ctx, "x"), domain.ErrNotFound)
}

func TestPaperStoreValidation(t *testing.T) {
	store := newTestStore(t)
	err := store.PaperStore().SavePaper(context.Background(), &domain.Paper{EntryID: "", Title: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
