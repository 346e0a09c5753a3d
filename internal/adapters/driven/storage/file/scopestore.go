package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
	"github.com/refbase-labs/refbase-cli/internal/core/ports/driven"
)

// Ensure ScopeStore implements the interface.
var _ driven.ScopeStore = (*ScopeStore)(nil)

// ScopeStore persists scope settings in one small JSON file, separate
// from the profile artifacts so scope changes never move their hashes.
type ScopeStore struct {
	mu   sync.Mutex
	path string
}

// NewScopeStore creates a scope store at path.
func NewScopeStore(path string) (*ScopeStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating scope directory: %w", err)
	}
	return &ScopeStore{path: path}, nil
}

// Load returns the settings for all profile types, defaulting types
// never configured.
func (s *ScopeStore) Load() ([]domain.ScopeSetting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, err := s.readAll()
	if err != nil {
		return nil, err
	}
	out := make([]domain.ScopeSetting, 0, len(domain.AllProfileTypes()))
	for _, t := range domain.AllProfileTypes() {
		if setting, ok := stored[t]; ok {
			out = append(out, setting)
			continue
		}
		out = append(out, domain.DefaultScopeSetting(t, time.Now().UTC()))
	}
	return out, nil
}

// Get returns the setting for one profile type.
func (s *ScopeStore) Get(t domain.ProfileType) (domain.ScopeSetting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, err := s.readAll()
	if err != nil {
		return domain.ScopeSetting{}, err
	}
	if setting, ok := stored[t]; ok {
		return setting, nil
	}
	return domain.DefaultScopeSetting(t, time.Now().UTC()), nil
}

// Set updates the setting for one profile type and persists the file.
func (s *ScopeStore) Set(t domain.ProfileType, mode domain.ScopeMode, allowedBases []string) (domain.ScopeSetting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, err := s.readAll()
	if err != nil {
		return domain.ScopeSetting{}, err
	}
	setting := domain.ScopeSetting{
		ProfileType:  t,
		ScopeMode:    mode,
		AllowedBases: allowedBases,
		UpdatedAt:    time.Now().UTC(),
	}
	stored[t] = setting

	settings := make([]domain.ScopeSetting, 0, len(stored))
	for _, st := range domain.AllProfileTypes() {
		if v, ok := stored[st]; ok {
			settings = append(settings, v)
		}
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return domain.ScopeSetting{}, fmt.Errorf("marshal scope settings: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return domain.ScopeSetting{}, fmt.Errorf("writing scope settings: %w", err)
	}
	return setting, nil
}

func (s *ScopeStore) readAll() (map[domain.ProfileType]domain.ScopeSetting, error) {
	out := make(map[domain.ProfileType]domain.ScopeSetting)
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return out, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading scope settings: %w", err)
	}
	var settings []domain.ScopeSetting
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parsing scope settings: %w", err)
	}
	for _, setting := range settings {
		out[setting.ProfileType] = setting
	}
	return out, nil
}
