package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
	"github.com/refbase-labs/refbase-cli/internal/core/ports/driven"
	"github.com/refbase-labs/refbase-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyBaseID         = "base.id"
	keyBaseSlug       = "base.slug"
	keyMaxClusters    = "clustering.max_clusters"
	keyMinClusterSize = "clustering.min_cluster_size"
	keyClusterTimeout = "clustering.timeout_ms"
	keyEmbeddingDims  = "clustering.embedding_dims"

	defaultBaseSlug = "main"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Clustering returns the effective clustering settings, falling back to
// built-in defaults for unset keys.
func (s *SettingsService) Clustering() domain.ClusteringSettings {
	defaults := domain.DefaultClusteringSettings()
	return domain.ClusteringSettings{
		MaxClusters:    s.getInt(keyMaxClusters, defaults.MaxClusters),
		MinClusterSize: s.getInt(keyMinClusterSize, defaults.MinClusterSize),
		TimeoutMS:      s.getInt(keyClusterTimeout, defaults.TimeoutMS),
		EmbeddingDims:  s.getInt(keyEmbeddingDims, defaults.EmbeddingDims),
	}
}

// SaveClustering persists clustering settings.
func (s *SettingsService) SaveClustering(settings domain.ClusteringSettings) error {
	if settings.MaxClusters < 1 || settings.MinClusterSize < 1 || settings.TimeoutMS < 1 {
		return fmt.Errorf("clustering settings must be positive: %w", domain.ErrInvalidInput)
	}
	if err := s.configStore.Set(keyMaxClusters, settings.MaxClusters); err != nil {
		return fmt.Errorf("save max_clusters: %w", err)
	}
	if err := s.configStore.Set(keyMinClusterSize, settings.MinClusterSize); err != nil {
		return fmt.Errorf("save min_cluster_size: %w", err)
	}
	if err := s.configStore.Set(keyClusterTimeout, settings.TimeoutMS); err != nil {
		return fmt.Errorf("save timeout_ms: %w", err)
	}
	if err := s.configStore.Set(keyEmbeddingDims, settings.EmbeddingDims); err != nil {
		return fmt.Errorf("save embedding_dims: %w", err)
	}
	return nil
}

// BaseSlug returns the configured Base slug.
func (s *SettingsService) BaseSlug() string {
	if slug := s.configStore.GetString(keyBaseSlug); slug != "" {
		return slug
	}
	return defaultBaseSlug
}

// BaseID returns the configured Base identifier, generating and
// persisting one on first use.
func (s *SettingsService) BaseID() (string, error) {
	if id := s.configStore.GetString(keyBaseID); id != "" {
		return id, nil
	}
	id := uuid.NewString()
	if err := s.configStore.Set(keyBaseID, id); err != nil {
		return "", fmt.Errorf("save base id: %w", err)
	}
	return id, nil
}

func (s *SettingsService) getInt(key string, fallback int) int {
	if value, ok := s.configStore.Get(key); ok {
		if n, ok := toInt(value); ok && n > 0 {
			return n
		}
	}
	return fallback
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}
