package zip

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
	"github.com/refbase-labs/refbase-cli/internal/core/ports/driven"
)

func TestArchiverRoundTrip(t *testing.T) {
	archiver := NewArchiver()
	path := filepath.Join(t.TempDir(), "nested", "bundle.zip")

	hash, err := archiver.Create(path, []driven.ArchiveEntry{
		{Name: "work.json", Data: []byte(`{"metadata":{}}`)},
		{Name: "work.html", Data: []byte("<html></html>")},
	})
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	// The digest matches the bytes on disk.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, domain.HashBytes(raw), hash)

	data, err := archiver.ReadEntry(path, "work.json")
	require.NoError(t, err)
	assert.Equal(t, `{"metadata":{}}`, string(data))
}

func TestArchiverMissingArchive(t *testing.T) {
	archiver := NewArchiver()
	_, err := archiver.ReadEntry(filepath.Join(t.TempDir(), "absent.zip"), "work.json")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestArchiverMissingEntry(t *testing.T) {
	archiver := NewArchiver()
	path := filepath.Join(t.TempDir(), "bundle.zip")
	_, err := archiver.Create(path, []driven.ArchiveEntry{{Name: "work.json", Data: []byte("{}")}})
	require.NoError(t, err)

	_, err = archiver.ReadEntry(path, "user.json")
	assert.ErrorIs(t, err, domain.ErrCorruptArchive)
}

func TestArchiverCorruptFile(t *testing.T) {
	archiver := NewArchiver()
	path := filepath.Join(t.TempDir(), "bad.zip")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o600))

	_, err := archiver.ReadEntry(path, "work.json")
	assert.ErrorIs(t, err, domain.ErrCorruptArchive)
}
