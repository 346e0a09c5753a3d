package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
	"github.com/refbase-labs/refbase-cli/internal/core/ports/driven"
	"github.com/refbase-labs/refbase-cli/internal/logger"
)

// exportLockName is the advisory lock file guarding concurrent exports.
const exportLockName = ".profile_export.lock"

// Ensure ProfileStore implements the interface.
var _ driven.ProfileStore = (*ProfileStore)(nil)

// ProfileStore persists profile artifacts under a profiles directory:
// <dir>/<slug>.json, <dir>/<slug>.html and <dir>/exports/ for archives.
type ProfileStore struct {
	dir string
}

// NewProfileStore creates a profile store rooted at dir, creating the
// directory tree on first use.
func NewProfileStore(dir string) (*ProfileStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, "exports"), 0o700); err != nil {
		return nil, fmt.Errorf("creating profiles directory: %w", err)
	}
	return &ProfileStore{dir: dir}, nil
}

// ReadJSON returns the JSON artifact for a profile type.
func (s *ProfileStore) ReadJSON(t domain.ProfileType) ([]byte, error) {
	return s.read(s.JSONPath(t))
}

// WriteJSON stores the JSON artifact for a profile type.
func (s *ProfileStore) WriteJSON(t domain.ProfileType, data []byte) error {
	return s.write(s.JSONPath(t), data)
}

// ReadHTML returns the HTML summary for a profile type.
func (s *ProfileStore) ReadHTML(t domain.ProfileType) ([]byte, error) {
	return s.read(s.htmlPath(t))
}

// WriteHTML stores the HTML summary for a profile type.
func (s *ProfileStore) WriteHTML(t domain.ProfileType, data []byte) error {
	return s.write(s.htmlPath(t), data)
}

// Remove deletes both artifacts and returns the removed paths.
func (s *ProfileStore) Remove(t domain.ProfileType) ([]string, error) {
	var removed []string
	for _, path := range []string{s.JSONPath(t), s.htmlPath(t)} {
		err := os.Remove(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return removed, fmt.Errorf("removing %s: %w", path, err)
		}
		removed = append(removed, path)
	}
	if len(removed) == 0 {
		return nil, domain.ErrNotFound
	}
	return removed, nil
}

// JSONPath returns where the JSON artifact lives.
func (s *ProfileStore) JSONPath(t domain.ProfileType) string {
	return filepath.Join(s.dir, t.Slug()+".json")
}

// ExportsDir returns the default directory for export archives.
func (s *ProfileStore) ExportsDir() string {
	return filepath.Join(s.dir, "exports")
}

// AcquireExportLock takes the Base's export lock by creating the lock
// file with O_EXCL. A stale lock from a crashed process must be removed
// by hand; the error message names the file for that reason.
func (s *ProfileStore) AcquireExportLock() (func(), error) {
	lockPath := filepath.Join(s.ExportsDir(), exportLockName)
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if errors.Is(err, fs.ErrExist) {
		return nil, fmt.Errorf("lock file %s exists: %w", lockPath, domain.ErrExportInProgress)
	}
	if err != nil {
		return nil, fmt.Errorf("creating lock file: %w", err)
	}
	if err := f.Close(); err != nil {
		logger.Warn("Closing export lock file: %v", err)
	}
	return func() {
		if err := os.Remove(lockPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("Releasing export lock: %v", err)
		}
	}, nil
}

func (s *ProfileStore) htmlPath(t domain.ProfileType) string {
	return filepath.Join(s.dir, t.Slug()+".html")
}

func (s *ProfileStore) read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func (s *ProfileStore) write(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("renaming %s: %w", tmp, err)
	}
	return nil
}
