package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
)

func TestProfileStoreRoundTrip(t *testing.T) {
	store, err := NewProfileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.ReadJSON(domain.ProfileUser)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.WriteJSON(domain.ProfileUser, []byte(`{"x":1}`)))
	require.NoError(t, store.WriteHTML(domain.ProfileUser, []byte("<p>hi</p>")))

	data, err := store.ReadJSON(domain.ProfileUser)
	require.NoError(t, err)
	assert.Equal(t, `{"x":1}`, string(data))

	assert.Equal(t, "user.json", filepath.Base(store.JSONPath(domain.ProfileUser)))
}

func TestProfileStoreRemove(t *testing.T) {
	store, err := NewProfileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Remove(domain.ProfileWork)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.WriteJSON(domain.ProfileWork, []byte(`{}`)))
	removed, err := store.Remove(domain.ProfileWork)
	require.NoError(t, err)
	require.Len(t, removed, 1)
	assert.NoFileExists(t, removed[0])
}

// TestProfileStoreExportLock uses create-new semantics on the lock
// file: a pre-existing file means another export is running.
func TestProfileStoreExportLock(t *testing.T) {
	dir := t.TempDir()
	store, err := NewProfileStore(dir)
	require.NoError(t, err)

	release, err := store.AcquireExportLock()
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "exports", exportLockName))

	_, err = store.AcquireExportLock()
	assert.ErrorIs(t, err, domain.ErrExportInProgress)

	release()
	assert.NoFileExists(t, filepath.Join(dir, "exports", exportLockName))

	release2, err := store.AcquireExportLock()
	require.NoError(t, err)
	release2()
}

// TestProfileStoreStaleLock simulates a crashed exporter leaving the
// lock behind.
func TestProfileStoreStaleLock(t *testing.T) {
	dir := t.TempDir()
	store, err := NewProfileStore(dir)
	require.NoError(t, err)

	lockPath := filepath.Join(dir, "exports", exportLockName)
	require.NoError(t, os.WriteFile(lockPath, nil, 0o600))

	_, err = store.AcquireExportLock()
	assert.ErrorIs(t, err, domain.ErrExportInProgress)
}
