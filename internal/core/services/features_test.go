package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
)

func testPaper(id, title, venue string, authors ...string) domain.Paper {
	return domain.Paper{
		EntryID: id,
		Title:   title,
		Authors: authors,
		Venue:   venue,
		Year:    2024,
		AddedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

// TestFeatureVectorBuilderBuild checks tokenization, weighting and
// embedding shape on a small batch.
func TestFeatureVectorBuilderBuild(t *testing.T) {
	builder := NewFeatureVectorBuilder(domain.DefaultEmbeddingDims)
	papers := []domain.Paper{
		testPaper("p1", "Deep Learning for Graphs", "NeurIPS", "Ada Lovelace"),
		testPaper("p2", "Graphs and Deep Networks", "ICML", "Alan Turing"),
	}

	vectors := builder.Build(papers)
	require.Len(t, vectors, 2)

	assert.Equal(t, "p1", vectors[0].EntryID)
	assert.Equal(t, "p2", vectors[1].EntryID)
	assert.Len(t, vectors[0].Embedding, domain.DefaultEmbeddingDims)

	// "for" and "and" are stop words, "Ada" is too short.
	assert.NotContains(t, vectors[0].Terms, "for")
	assert.NotContains(t, vectors[1].Terms, "and")
	assert.NotContains(t, vectors[0].Terms, "ada")
	assert.Contains(t, vectors[0].Terms, "deep")
	assert.Contains(t, vectors[0].Terms, "neurips")
	assert.Contains(t, vectors[0].Terms, "lovelace")

	// "learning" appears only in p1, "deep" in both, so the rarer term
	// carries more weight at equal term frequency.
	assert.Greater(t, vectors[0].Terms["learning"], vectors[0].Terms["deep"])
}

// TestFeatureVectorBuilderDeterministic verifies identical batches
// produce identical vectors.
func TestFeatureVectorBuilderDeterministic(t *testing.T) {
	builder := NewFeatureVectorBuilder(domain.DefaultEmbeddingDims)
	papers := []domain.Paper{
		testPaper("p1", "Quantum Error Correction", "PRL", "Grace Hopper"),
		testPaper("p2", "Topological Quantum Computing", "Nature", "Emmy Noether"),
		testPaper("p3", "Protein Structure Prediction", "Science", "Barbara McClintock"),
	}

	first := builder.Build(papers)
	second := builder.Build(papers)
	assert.Equal(t, first, second)
}

func TestFeatureVectorBuilderEmptyBatch(t *testing.T) {
	builder := NewFeatureVectorBuilder(domain.DefaultEmbeddingDims)
	assert.Nil(t, builder.Build(nil))
	assert.Nil(t, builder.Build([]domain.Paper{}))
}

// TestFeatureVectorBuilderClampsDims verifies widths below the floor
// are raised to it.
func TestFeatureVectorBuilderClampsDims(t *testing.T) {
	builder := NewFeatureVectorBuilder(2)
	vectors := builder.Build([]domain.Paper{
		testPaper("p1", "Sparse Coding", "JMLR"),
	})
	require.Len(t, vectors, 1)
	assert.Len(t, vectors[0].Embedding, domain.MinEmbeddingDims)
}

// TestFeatureVectorBuilderNoTokens checks a paper whose metadata is all
// stop words still yields a vector instead of panicking on a zero total.
func TestFeatureVectorBuilderNoTokens(t *testing.T) {
	builder := NewFeatureVectorBuilder(domain.DefaultEmbeddingDims)
	vectors := builder.Build([]domain.Paper{
		testPaper("p1", "Of The And", ""),
		testPaper("p2", "Neural Rendering", ""),
	})
	require.Len(t, vectors, 2)
	assert.Empty(t, vectors[0].Terms)
	assert.Len(t, vectors[0].Embedding, domain.DefaultEmbeddingDims)
}
