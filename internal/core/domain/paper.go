package domain

import (
	"strings"
	"time"
)

// Paper represents a library entry in a Base.
// It carries only the metadata the clustering pipeline consumes;
// full-text content and file artifacts live with the ingestion collaborator.
type Paper struct {
	// EntryID is the unique identifier for the paper.
	EntryID string `json:"entry_id"`

	// Title is the paper title as recorded in the library.
	Title string `json:"title"`

	// Authors lists the author display names in citation order.
	Authors []string `json:"authors,omitempty"`

	// Venue is the publication venue, empty when unknown.
	Venue string `json:"venue,omitempty"`

	// Year is the publication year, zero when unknown.
	Year int `json:"year,omitempty"`

	// AddedAt is when the paper was added to the Base.
	AddedAt time.Time `json:"added_at"`
}

// Validate checks the paper carries the minimum metadata for storage.
func (p *Paper) Validate() error {
	if p.EntryID == "" || strings.TrimSpace(p.Title) == "" {
		return ErrInvalidInput
	}
	return nil
}

// FeatureVector is the clustering representation of a paper.
// Terms hold TF-IDF weights per token; Embedding is the fixed-width
// hashed projection of those weights. Vectors are ephemeral and rebuilt
// from scratch on every clustering run.
type FeatureVector struct {
	// EntryID links back to the source Paper.
	EntryID string

	// Terms maps token to TF-IDF weight within this run's batch.
	Terms map[string]float64

	// Embedding is the dense fixed-width projection used by k-means.
	Embedding []float64
}
