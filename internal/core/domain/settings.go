package domain

import "time"

// Default clustering parameters. They mirror the worker's internal
// floors: dims below 8 and cluster caps below 1 are clamped.
const (
	DefaultMaxClusters    = 5
	DefaultMinClusterSize = 2
	DefaultTimeoutMS      = 2000
	DefaultEmbeddingDims  = 32
	MinEmbeddingDims      = 8
)

// ClusteringSettings configures the category proposal worker.
type ClusteringSettings struct {
	// MaxClusters caps the number of clusters per run.
	MaxClusters int

	// MinClusterSize drops smaller clusters from the output.
	MinClusterSize int

	// TimeoutMS bounds the clustering wall clock in milliseconds.
	TimeoutMS int

	// EmbeddingDims is the hashed embedding width.
	EmbeddingDims int
}

// DefaultClusteringSettings returns the built-in defaults.
func DefaultClusteringSettings() ClusteringSettings {
	return ClusteringSettings{
		MaxClusters:    DefaultMaxClusters,
		MinClusterSize: DefaultMinClusterSize,
		TimeoutMS:      DefaultTimeoutMS,
		EmbeddingDims:  DefaultEmbeddingDims,
	}
}

// Options converts the settings into per-run proposal options.
func (s ClusteringSettings) Options() ProposalOptions {
	return ProposalOptions{
		MaxClusters:    s.MaxClusters,
		MinClusterSize: s.MinClusterSize,
		Timeout:        time.Duration(s.TimeoutMS) * time.Millisecond,
	}
}
