package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
)

func TestScopeStoreDefaults(t *testing.T) {
	store := NewScopeStore()

	setting, err := store.Get(domain.ProfileUser)
	require.NoError(t, err)
	assert.Equal(t, domain.ScopeThisBase, setting.ScopeMode)

	all, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, all, len(domain.AllProfileTypes()))
}

func TestScopeStoreSet(t *testing.T) {
	store := NewScopeStore()

	saved, err := store.Set(domain.ProfileWriting, domain.ScopeShared, []string{"alpha"})
	require.NoError(t, err)
	assert.Equal(t, domain.ScopeShared, saved.ScopeMode)

	got, err := store.Get(domain.ProfileWriting)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha"}, got.AllowedBases)
}
