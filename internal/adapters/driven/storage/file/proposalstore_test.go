package file

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
)

func TestProposalStoreRoundTrip(t *testing.T) {
	store, err := NewProposalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.LatestBatch(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	base := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	confidence := 0.8
	require.NoError(t, store.SaveBatch(ctx, &domain.CategoryProposalBatch{
		BatchID:     "batch-1",
		BaseID:      "base-1",
		GeneratedAt: base,
		DurationMS:  12,
		Proposals: []domain.CategoryProposalPreview{{
			ProposalID: "prop-1",
			Definition: domain.CategoryDefinition{
				CategoryID: "cat-1",
				BaseID:     "base-1",
				Name:       "graphs / networks",
				Slug:       "graphs-networks",
				Confidence: &confidence,
				Origin:     domain.OriginProposed,
			},
			MemberEntryIDs: []string{"p1", "p2"},
			GeneratedAt:    base,
		}},
	}))
	require.NoError(t, store.SaveBatch(ctx, &domain.CategoryProposalBatch{
		BatchID:     "batch-2",
		BaseID:      "base-1",
		GeneratedAt: base.Add(time.Hour),
	}))

	latest, err := store.LatestBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "batch-2", latest.BatchID)

	batches, err := store.ListBatches(ctx)
	require.NoError(t, err)
	require.Len(t, batches, 2)
	assert.Equal(t, "batch-1", batches[0].BatchID)
	require.Len(t, batches[0].Proposals, 1)
	assert.Equal(t, []string{"p1", "p2"}, batches[0].Proposals[0].MemberEntryIDs)
	require.NotNil(t, batches[0].Proposals[0].Definition.Confidence)
	assert.Equal(t, 0.8, *batches[0].Proposals[0].Definition.Confidence)
}
