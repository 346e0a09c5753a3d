package memory

import (
	"sync"
	"time"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
	"github.com/refbase-labs/refbase-cli/internal/core/ports/driven"
)

// Ensure ScopeStore implements the interface.
var _ driven.ScopeStore = (*ScopeStore)(nil)

// ScopeStore is an in-memory implementation of driven.ScopeStore.
type ScopeStore struct {
	mu       sync.RWMutex
	settings map[domain.ProfileType]domain.ScopeSetting
}

// NewScopeStore creates a new in-memory scope store.
func NewScopeStore() *ScopeStore {
	return &ScopeStore{settings: make(map[domain.ProfileType]domain.ScopeSetting)}
}

// Load returns the settings for all profile types.
func (s *ScopeStore) Load() ([]domain.ScopeSetting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ScopeSetting, 0, len(domain.AllProfileTypes()))
	for _, t := range domain.AllProfileTypes() {
		if setting, ok := s.settings[t]; ok {
			out = append(out, setting)
			continue
		}
		out = append(out, domain.DefaultScopeSetting(t, time.Now().UTC()))
	}
	return out, nil
}

// Get returns the setting for one profile type.
func (s *ScopeStore) Get(t domain.ProfileType) (domain.ScopeSetting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if setting, ok := s.settings[t]; ok {
		return setting, nil
	}
	return domain.DefaultScopeSetting(t, time.Now().UTC()), nil
}

// Set updates the setting for one profile type.
func (s *ScopeStore) Set(t domain.ProfileType, mode domain.ScopeMode, allowedBases []string) (domain.ScopeSetting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	setting := domain.ScopeSetting{
		ProfileType:  t,
		ScopeMode:    mode,
		AllowedBases: allowedBases,
		UpdatedAt:    time.Now().UTC(),
	}
	s.settings[t] = setting
	return setting, nil
}
