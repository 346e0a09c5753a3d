package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
	"github.com/refbase-labs/refbase-cli/internal/core/ports/driven"
	"github.com/refbase-labs/refbase-cli/internal/core/ports/driving"
	"github.com/refbase-labs/refbase-cli/internal/logger"
)

// maxKeywordsPerCluster caps the emphasized terms in a proposal name.
const maxKeywordsPerCluster = 3

// maxRepresentativePapers caps the entry IDs kept on a definition.
const maxRepresentativePapers = 5

// maxNarrativeReferences caps the entry IDs cited by a narrative.
const maxNarrativeReferences = 3

// ProposalService clusters the Base's papers into category proposals.
// Runs are deterministic for a fixed paper set and options, and fail
// empty rather than erroring when the batch is too small or too slow.
type ProposalService struct {
	papers        driven.PaperStore
	proposals     driven.ProposalStore
	baseID        string
	embeddingDims int
}

// Compile-time check that ProposalService implements the driving port.
var _ driving.ProposalService = (*ProposalService)(nil)

// NewProposalService creates a proposal service for the given Base.
func NewProposalService(papers driven.PaperStore, proposals driven.ProposalStore, baseID string, embeddingDims int) *ProposalService {
	return &ProposalService{
		papers:        papers,
		proposals:     proposals,
		baseID:        baseID,
		embeddingDims: embeddingDims,
	}
}

// Generate runs one clustering pass and returns previews sorted
// descending by confidence. Nothing is persisted.
func (s *ProposalService) Generate(ctx context.Context, opts domain.ProposalOptions) ([]domain.CategoryProposalPreview, error) {
	logger.Section("Category Proposal Run")

	papers, err := s.papers.ListPapers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing papers: %w", err)
	}
	logger.Debug("Papers in Base: %d", len(papers))
	if len(papers) < 2 {
		logger.Debug("Too few papers to cluster, returning no proposals")
		return nil, nil
	}

	builder := NewFeatureVectorBuilder(s.embeddingDims)
	vectors := builder.Build(papers)
	if len(vectors) < 2 {
		return nil, nil
	}

	maxClusters := opts.MaxClusters
	if maxClusters < 1 {
		maxClusters = 1
	}
	targetK := maxClusters
	if targetK > len(vectors) {
		targetK = len(vectors)
	}
	minClusterSize := opts.MinClusterSize
	if minClusterSize < 1 {
		minClusterSize = domain.DefaultMinClusterSize
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = time.Duration(domain.DefaultTimeoutMS) * time.Millisecond
	}
	logger.Debug("Clustering %d vectors into up to %d clusters", len(vectors), targetK)

	dense := make([][]float64, len(vectors))
	for i := range vectors {
		dense[i] = vectors[i].Embedding
	}

	started := time.Now()
	assignments, centroids := kmeans(dense, targetK)
	if elapsed := time.Since(started); elapsed > timeout {
		logger.Warn("Clustering exceeded %s budget (%s), discarding run", timeout, elapsed)
		return nil, nil
	}

	previews := s.synthesize(vectors, assignments, centroids, minClusterSize)
	logger.Info("Generated %d proposals from %d papers", len(previews), len(papers))
	return previews, nil
}

// GenerateAndStore runs Generate and persists the outcome as the new
// current batch. An empty run still records a batch so callers can see
// when the worker last looked at the library.
func (s *ProposalService) GenerateAndStore(ctx context.Context, opts domain.ProposalOptions) (*domain.CategoryProposalBatch, error) {
	started := time.Now()
	previews, err := s.Generate(ctx, opts)
	if err != nil {
		return nil, err
	}

	batch := &domain.CategoryProposalBatch{
		BatchID:     uuid.NewString(),
		BaseID:      s.baseID,
		GeneratedAt: time.Now().UTC(),
		DurationMS:  time.Since(started).Milliseconds(),
		Proposals:   previews,
	}
	if err := s.proposals.SaveBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("saving proposal batch: %w", err)
	}
	return batch, nil
}

// LatestBatch returns the current proposal batch.
func (s *ProposalService) LatestBatch(ctx context.Context) (*domain.CategoryProposalBatch, error) {
	return s.proposals.LatestBatch(ctx)
}

// synthesize turns raw cluster assignments into reviewable previews.
// Clusters are visited by index so the output order is reproducible
// before the final confidence sort.
func (s *ProposalService) synthesize(vectors []domain.FeatureVector, assignments []int, centroids [][]float64, minClusterSize int) []domain.CategoryProposalPreview {
	members := make(map[int][]int)
	for idx, clusterID := range assignments {
		members[clusterID] = append(members[clusterID], idx)
	}

	now := time.Now().UTC()
	var previews []domain.CategoryProposalPreview
	for clusterID := range centroids {
		indices := members[clusterID]
		if len(indices) < minClusterSize {
			continue
		}

		entryIDs := make([]string, len(indices))
		for i, idx := range indices {
			entryIDs[i] = vectors[idx].EntryID
		}
		keywords := topKeywords(vectors, indices, maxKeywordsPerCluster)
		confidence := scoreCluster(vectors, indices, centroids[clusterID])

		name := strings.Join(keywords, " / ")
		if name == "" {
			name = fmt.Sprintf("Cluster %d", len(previews)+1)
		}
		description := fmt.Sprintf("Contains %d papers.", len(indices))
		if len(keywords) > 0 {
			description = fmt.Sprintf("Contains %d papers emphasizing %s.", len(indices), strings.Join(keywords, ", "))
		}

		categoryID := uuid.NewString()
		definition := domain.CategoryDefinition{
			CategoryID:           categoryID,
			BaseID:               s.baseID,
			Name:                 name,
			Slug:                 domain.Slugify(name),
			Description:          description,
			Confidence:           &confidence,
			RepresentativePapers: headOf(entryIDs, maxRepresentativePapers),
			Origin:               domain.OriginProposed,
			CreatedAt:            now,
			UpdatedAt:            now,
		}
		narrative := domain.CategoryNarrative{
			NarrativeID:   uuid.NewString(),
			CategoryID:    categoryID,
			Summary:       fmt.Sprintf("Auto-proposed grouping with %d papers driven by %v.", len(indices), keywords),
			References:    headOf(entryIDs, maxNarrativeReferences),
			LastUpdatedAt: now,
		}
		previews = append(previews, domain.CategoryProposalPreview{
			ProposalID:     uuid.NewString(),
			Definition:     definition,
			Narrative:      narrative,
			MemberEntryIDs: entryIDs,
			GeneratedAt:    now,
		})
	}

	sort.SliceStable(previews, func(i, j int) bool {
		return *previews[i].Definition.Confidence > *previews[j].Definition.Confidence
	})
	return previews
}

// topKeywords sums term weights across the cluster members and returns
// the strongest tokens. Ties break on the token itself so equal-weight
// vocabularies come out in a stable order.
func topKeywords(vectors []domain.FeatureVector, indices []int, limit int) []string {
	weights := make(map[string]float64)
	for _, idx := range indices {
		for token, weight := range vectors[idx].Terms {
			weights[token] += weight
		}
	}
	if len(weights) == 0 {
		return nil
	}

	tokens := make([]string, 0, len(weights))
	for token := range weights {
		tokens = append(tokens, token)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if weights[tokens[i]] != weights[tokens[j]] {
			return weights[tokens[i]] > weights[tokens[j]]
		}
		return tokens[i] < tokens[j]
	})
	if len(tokens) > limit {
		tokens = tokens[:limit]
	}
	return tokens
}

// scoreCluster computes the cohesion score 1/(1+d) where d is the mean
// member distance to the centroid. Always in (0, 1]; a singleton
// cluster sitting on its centroid scores exactly 1.
func scoreCluster(vectors []domain.FeatureVector, indices []int, centroid []float64) float64 {
	if len(indices) == 0 {
		return 0
	}
	var total float64
	for _, idx := range indices {
		total += math.Sqrt(squaredDistance(vectors[idx].Embedding, centroid))
	}
	mean := total / float64(len(indices))
	return 1 / (1 + mean)
}

func headOf(ids []string, limit int) []string {
	if len(ids) <= limit {
		return ids
	}
	return ids[:limit]
}
