package memory

import (
	"sync"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
	"github.com/refbase-labs/refbase-cli/internal/core/ports/driven"
)

// Ensure ProfileStore implements the interface.
var _ driven.ProfileStore = (*ProfileStore)(nil)

// ProfileStore is an in-memory implementation of driven.ProfileStore.
// The export lock is a plain flag guarded by the store mutex, which
// mirrors the create-new-file semantics of the file adapter.
type ProfileStore struct {
	mu       sync.Mutex
	jsonData map[domain.ProfileType][]byte
	htmlData map[domain.ProfileType][]byte
	locked   bool
}

// NewProfileStore creates a new in-memory profile store.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		jsonData: make(map[domain.ProfileType][]byte),
		htmlData: make(map[domain.ProfileType][]byte),
	}
}

// ReadJSON returns the JSON artifact for a profile type.
func (s *ProfileStore) ReadJSON(t domain.ProfileType) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.jsonData[t]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return data, nil
}

// WriteJSON stores the JSON artifact for a profile type.
func (s *ProfileStore) WriteJSON(t domain.ProfileType, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jsonData[t] = data
	return nil
}

// ReadHTML returns the HTML summary for a profile type.
func (s *ProfileStore) ReadHTML(t domain.ProfileType) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.htmlData[t]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return data, nil
}

// WriteHTML stores the HTML summary for a profile type.
func (s *ProfileStore) WriteHTML(t domain.ProfileType, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.htmlData[t] = data
	return nil
}

// Remove deletes both artifacts and returns the removed paths.
func (s *ProfileStore) Remove(t domain.ProfileType) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed []string
	if _, ok := s.jsonData[t]; ok {
		removed = append(removed, "memory://"+t.Slug()+".json")
		delete(s.jsonData, t)
	}
	if _, ok := s.htmlData[t]; ok {
		removed = append(removed, "memory://"+t.Slug()+".html")
		delete(s.htmlData, t)
	}
	if len(removed) == 0 {
		return nil, domain.ErrNotFound
	}
	return removed, nil
}

// JSONPath returns a synthetic path for user-facing messages.
func (s *ProfileStore) JSONPath(t domain.ProfileType) string {
	return "memory://" + t.Slug() + ".json"
}

// ExportsDir returns a synthetic exports directory.
func (s *ProfileStore) ExportsDir() string {
	return "memory://exports"
}

// AcquireExportLock takes the advisory export lock.
func (s *ProfileStore) AcquireExportLock() (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked {
		return nil, domain.ErrExportInProgress
	}
	s.locked = true
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.locked = false
		})
	}, nil
}
