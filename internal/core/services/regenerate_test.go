package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
)

func workProfileAt(t *testing.T, focus string, at time.Time) *domain.WorkProfile {
	t.Helper()
	profile, err := domain.NewProfile(domain.ProfileWork, at)
	require.NoError(t, err)
	work := profile.(*domain.WorkProfile)
	work.Fields.FocusStatement = focus
	return work
}

// TestRegenerateFromHistory replays the snapshot chain and restores the
// last snapshot as the artifact.
func TestRegenerateFromHistory(t *testing.T) {
	f := newProfileFixture()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	f.appendSnapshot(t, workProfileAt(t, "first draft", base), base)
	f.appendSnapshot(t, workProfileAt(t, "final focus", base.Add(time.Hour)), base.Add(time.Hour))

	outcome, err := f.svc.RegenerateFromHistory(context.Background(), domain.ProfileWork)
	require.NoError(t, err)
	assert.Equal(t, domain.ProfileWork, outcome.ProfileType)
	assert.Equal(t, 2, outcome.ReplayedEvents)
	assert.NotEmpty(t, outcome.HashAfter)

	jsonData, err := f.store.ReadJSON(domain.ProfileWork)
	require.NoError(t, err)
	var rebuilt domain.WorkProfile
	require.NoError(t, json.Unmarshal(jsonData, &rebuilt))
	assert.Equal(t, "final focus", rebuilt.Fields.FocusStatement)
	assert.Equal(t, base.Add(time.Hour), rebuilt.Meta.LastUpdated)

	// The history chain carries one ref per replayed event and its
	// final hash matches the artifact's canonical hash.
	require.Len(t, rebuilt.History, 2)
	artifactHash, err := domain.CanonicalHashJSON(jsonData)
	require.NoError(t, err)
	assert.Equal(t, artifactHash, rebuilt.History[1].HashAfter)
	assert.Equal(t, artifactHash, outcome.HashAfter)

	// HTML summary was regenerated too.
	htmlData, err := f.store.ReadHTML(domain.ProfileWork)
	require.NoError(t, err)
	assert.Contains(t, string(htmlData), "final focus")
}

// TestRegenerateIdempotent runs regeneration twice and expects the same
// artifact hash both times. The Regenerate events logged in between are
// governance-class and must not change the replay input.
func TestRegenerateIdempotent(t *testing.T) {
	f := newProfileFixture()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	f.appendSnapshot(t, workProfileAt(t, "steady", base), base)

	first, err := f.svc.RegenerateFromHistory(context.Background(), domain.ProfileWork)
	require.NoError(t, err)
	second, err := f.svc.RegenerateFromHistory(context.Background(), domain.ProfileWork)
	require.NoError(t, err)

	assert.Equal(t, first.HashAfter, second.HashAfter)
	assert.Equal(t, first.ReplayedEvents, second.ReplayedEvents)
}

// TestRegenerateRecordsPriorHash regenerates twice and expects the
// second Regenerate event to carry the first artifact's canonical hash
// as hash_before.
func TestRegenerateRecordsPriorHash(t *testing.T) {
	f := newProfileFixture()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	f.appendSnapshot(t, workProfileAt(t, "steady", base), base)

	first, err := f.svc.RegenerateFromHistory(context.Background(), domain.ProfileWork)
	require.NoError(t, err)
	_, err = f.svc.RegenerateFromHistory(context.Background(), domain.ProfileWork)
	require.NoError(t, err)

	var details domain.ProfileEventDetails
	last := f.events.events[len(f.events.events)-1]
	require.NoError(t, json.Unmarshal(last.Details, &details))
	assert.Equal(t, domain.ChangeRegenerate, details.ChangeKind)
	assert.Equal(t, first.HashAfter, details.HashBefore)

	// With no pre-existing artifact the field stays empty.
	var firstDetails domain.ProfileEventDetails
	require.NoError(t, json.Unmarshal(f.events.events[1].Details, &firstDetails))
	assert.Equal(t, domain.ChangeRegenerate, firstDetails.ChangeKind)
	assert.Empty(t, firstDetails.HashBefore)
}

func TestRegenerateNoHistory(t *testing.T) {
	f := newProfileFixture()
	_, err := f.svc.RegenerateFromHistory(context.Background(), domain.ProfileWork)
	assert.ErrorIs(t, err, domain.ErrNoHistory)
}

// TestRegenerateSkipsGovernanceEvents seeds a governance event with a
// stray snapshot-less payload and expects it to be ignored.
func TestRegenerateSkipsGovernanceEvents(t *testing.T) {
	f := newProfileFixture()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	f.appendSnapshot(t, workProfileAt(t, "only real snapshot", base), base)

	_, err := f.svc.UpdateScope(context.Background(), domain.ProfileWork, domain.ScopeDisabled, nil)
	require.NoError(t, err)

	outcome, err := f.svc.RegenerateFromHistory(context.Background(), domain.ProfileWork)
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.ReplayedEvents)
}

// TestRegenerateFromArchive restores a profile from an export bundle.
func TestRegenerateFromArchive(t *testing.T) {
	f := newProfileFixture()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	f.appendSnapshot(t, workProfileAt(t, "exported focus", base), base)

	_, err := f.svc.RegenerateFromHistory(context.Background(), domain.ProfileWork)
	require.NoError(t, err)
	exported, err := f.svc.Export(context.Background(), domain.ProfileWork, "", false)
	require.NoError(t, err)

	// Wipe the artifacts, then restore from the archive.
	_, err = f.svc.Delete(context.Background(), domain.ProfileWork, "DELETE work")
	require.NoError(t, err)

	outcome, err := f.svc.RegenerateFromArchive(context.Background(), domain.ProfileWork, exported.ArchivePath)
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.ReplayedEvents)

	jsonData, err := f.store.ReadJSON(domain.ProfileWork)
	require.NoError(t, err)
	var restored domain.WorkProfile
	require.NoError(t, json.Unmarshal(jsonData, &restored))
	assert.Equal(t, "exported focus", restored.Fields.FocusStatement)
}

func TestRegenerateFromArchiveMissing(t *testing.T) {
	f := newProfileFixture()
	_, err := f.svc.RegenerateFromArchive(context.Background(), domain.ProfileWork, "/nope.zip")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegenerateFromArchiveCorrupt(t *testing.T) {
	f := newProfileFixture()
	f.archiver.archives["/bad.zip"] = map[string][]byte{"work.json": []byte("not json")}

	_, err := f.svc.RegenerateFromArchive(context.Background(), domain.ProfileWork, "/bad.zip")
	assert.ErrorIs(t, err, domain.ErrCorruptArchive)

	// An archive missing the profile entry entirely is corrupt too.
	f.archiver.archives["/empty.zip"] = map[string][]byte{}
	_, err = f.svc.RegenerateFromArchive(context.Background(), domain.ProfileWork, "/empty.zip")
	assert.ErrorIs(t, err, domain.ErrCorruptArchive)
}
