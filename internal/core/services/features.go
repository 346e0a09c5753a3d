package services

import (
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
)

// stopWords are dropped during tokenization. Short function words plus
// two terms so common in paper titles they carry no signal.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "or": {}, "to": {}, "of": {},
	"in": {}, "on": {}, "for": {}, "with": {}, "the": {}, "this": {},
	"that": {}, "by": {}, "from": {}, "via": {}, "study": {}, "analysis": {},
}

// FeatureVectorBuilder converts paper metadata into TF-IDF weighted
// term maps and hashed dense embeddings for clustering.
//
// The embedding is a toy: each term's weight is summed into the bucket
// hash(token) mod dims. Collisions are an accepted trade-off. The
// builder is pure; identical input batches always yield identical
// vectors, so a future swap to real embeddings only touches embed.
type FeatureVectorBuilder struct {
	embeddingDims int
}

// NewFeatureVectorBuilder creates a builder with the given embedding
// width. Widths below domain.MinEmbeddingDims are clamped up.
func NewFeatureVectorBuilder(embeddingDims int) *FeatureVectorBuilder {
	if embeddingDims < domain.MinEmbeddingDims {
		embeddingDims = domain.MinEmbeddingDims
	}
	return &FeatureVectorBuilder{embeddingDims: embeddingDims}
}

// Build converts a library slice into feature vectors, one per paper,
// order-preserving. An empty batch yields an empty result.
func (b *FeatureVectorBuilder) Build(papers []domain.Paper) []domain.FeatureVector {
	if len(papers) == 0 {
		return nil
	}

	// Document frequency counts presence per paper, not occurrences.
	docFreq := make(map[string]int)
	tokenized := make([][]string, len(papers))
	for i := range papers {
		tokens := b.tokenize(&papers[i])
		seen := make(map[string]struct{}, len(tokens))
		for _, token := range tokens {
			if _, ok := seen[token]; !ok {
				seen[token] = struct{}{}
				docFreq[token]++
			}
		}
		tokenized[i] = tokens
	}

	docCount := float64(len(papers))
	vectors := make([]domain.FeatureVector, len(papers))
	for i := range papers {
		tf := make(map[string]int, len(tokenized[i]))
		for _, token := range tokenized[i] {
			tf[token]++
		}
		total := float64(len(tokenized[i]))
		if total == 0 {
			total = 1
		}
		terms := make(map[string]float64, len(tf))
		for token, count := range tf {
			df := float64(docFreq[token])
			tfWeight := float64(count) / total
			idf := math.Log((docCount+1)/(df+1)) + 1
			terms[token] = tfWeight * idf
		}
		vectors[i] = domain.FeatureVector{
			EntryID:   papers[i].EntryID,
			Terms:     terms,
			Embedding: b.embed(terms),
		}
	}
	return vectors
}

func (b *FeatureVectorBuilder) tokenize(paper *domain.Paper) []string {
	var buf []string
	buf = appendTextTokens(buf, paper.Title)
	buf = appendTextTokens(buf, paper.Venue)
	for _, author := range paper.Authors {
		buf = appendTextTokens(buf, author)
	}
	return buf
}

func appendTextTokens(buf []string, text string) []string {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, word := range words {
		token := strings.ToLower(word)
		if len(token) <= 2 {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		buf = append(buf, token)
	}
	return buf
}

func (b *FeatureVectorBuilder) embed(terms map[string]float64) []float64 {
	embedding := make([]float64, b.embeddingDims)
	for token, weight := range terms {
		embedding[b.slotForToken(token)] += weight
	}
	return embedding
}

func (b *FeatureVectorBuilder) slotForToken(token string) int {
	h := fnv.New64a()
	h.Write([]byte(token)) //nolint:errcheck // fnv never fails
	return int(h.Sum64() % uint64(b.embeddingDims))
}
