// Package zip implements the export archiver on top of archive/zip.
package zip

import (
	"archive/zip"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
	"github.com/refbase-labs/refbase-cli/internal/core/ports/driven"
)

// Ensure Archiver implements the interface.
var _ driven.Archiver = (*Archiver)(nil)

// Archiver creates and reads zip export bundles.
type Archiver struct{}

// NewArchiver creates a zip archiver.
func NewArchiver() *Archiver {
	return &Archiver{}
}

// Create writes a new archive containing the given entries and returns
// the SHA-256 hex digest of the finished file. The digest is computed
// while writing, so the file is never read back.
func (a *Archiver) Create(path string, entries []driven.ArchiveEntry) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("creating archive directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating archive: %w", err)
	}

	hasher := sha256.New()
	w := zip.NewWriter(io.MultiWriter(f, hasher))
	for _, entry := range entries {
		ew, err := w.Create(entry.Name)
		if err != nil {
			f.Close()
			return "", fmt.Errorf("creating entry %s: %w", entry.Name, err)
		}
		if _, err := ew.Write(entry.Data); err != nil {
			f.Close()
			return "", fmt.Errorf("writing entry %s: %w", entry.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		f.Close()
		return "", fmt.Errorf("finalizing archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing archive: %w", err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// ReadEntry extracts one entry from an existing archive.
func (a *Archiver) ReadEntry(path, name string) ([]byte, error) {
	r, err := zip.OpenReader(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("archive %s: %w", path, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("archive %s: %v: %w", path, err, domain.ErrCorruptArchive)
	}
	defer r.Close()

	for _, file := range r.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("opening entry %s: %w", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("reading entry %s: %w", name, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("entry %s missing: %w", name, domain.ErrCorruptArchive)
}
