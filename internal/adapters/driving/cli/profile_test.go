package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
)

func TestProfileShow(t *testing.T) {
	profile, err := domain.NewProfile(domain.ProfileWork, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	profileService = &mockProfileService{profile: profile}
	defer func() { profileService = nil }()

	out, err := executeCommand(t, "profile", "show", "work")

	require.NoError(t, err)
	assert.Contains(t, out, "Work profile")
	assert.Contains(t, out, "work-profile")
}

func TestProfileShow_Disabled(t *testing.T) {
	profileService = &mockProfileService{err: domain.ErrScopeDisabled}
	defer func() { profileService = nil }()

	_, err := executeCommand(t, "profile", "show", "work")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disabled")
}

func TestProfileShow_UnknownType(t *testing.T) {
	profileService = &mockProfileService{}
	defer func() { profileService = nil }()

	_, err := executeCommand(t, "profile", "show", "bogus")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown profile type")
}

func TestProfileAudit(t *testing.T) {
	profileService = &mockProfileService{
		audit: &domain.ProfileAuditLog{
			ProfileType: domain.ProfileUser,
			Entries: []domain.ProfileAuditEntry{
				{
					EventID:     "evt-1",
					Timestamp:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
					ChangeKind:  domain.ChangeCreate,
					DiffSummary: []string{"profile created"},
					HashAfter:   "abcdef0123456789",
				},
			},
		},
	}
	defer func() { profileService = nil }()

	out, err := executeCommand(t, "profile", "audit", "user")

	require.NoError(t, err)
	assert.Contains(t, out, "1 changes to the user profile")
	assert.Contains(t, out, "evt-1")
	assert.Contains(t, out, "profile created")
	assert.Contains(t, out, "hash abcdef012345")
}

func TestProfileAudit_Empty(t *testing.T) {
	profileService = &mockProfileService{
		audit: &domain.ProfileAuditLog{ProfileType: domain.ProfileUser},
	}
	defer func() { profileService = nil }()

	out, err := executeCommand(t, "profile", "audit", "user")

	require.NoError(t, err)
	assert.Contains(t, out, "No recorded changes")
}

func TestProfileExport(t *testing.T) {
	mock := &mockProfileService{
		export: &domain.ProfileExportResult{
			ProfileType: domain.ProfileWriting,
			ArchivePath: "/tmp/writing-20260301T090000Z.zip",
			Hash:        "deadbeef",
		},
	}
	profileService = mock
	defer func() { profileService = nil }()

	out, err := executeCommand(t, "profile", "export", "writing", "--output", "/tmp")

	require.NoError(t, err)
	assert.Equal(t, "/tmp", mock.lastDest)
	assert.Contains(t, out, "writing-20260301T090000Z.zip")
	assert.Contains(t, out, "deadbeef")
}

func TestProfileExport_Contention(t *testing.T) {
	profileService = &mockProfileService{err: domain.ErrExportInProgress}
	defer func() { profileService = nil }()

	_, err := executeCommand(t, "profile", "export", "writing")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "another export is running")
}

func TestProfileDelete_WithConfirmFlag(t *testing.T) {
	mock := &mockProfileService{
		deleteResult: &domain.ProfileDeleteResult{
			ProfileType:  domain.ProfileKnowledge,
			FilesRemoved: []string{"knowledge.json", "knowledge.html"},
		},
	}
	profileService = mock
	defer func() { profileService = nil }()

	out, err := executeCommand(t, "profile", "delete", "knowledge", "--confirm", "DELETE knowledge")

	require.NoError(t, err)
	assert.Equal(t, "DELETE knowledge", mock.lastConfirm)
	assert.Contains(t, out, "Deleted 2 artifacts")
	assert.Contains(t, out, "History preserved")
}

func TestProfileDelete_WrongPhrase(t *testing.T) {
	profileService = &mockProfileService{err: domain.ErrConfirmPhrase}
	defer func() { profileService = nil }()

	_, err := executeCommand(t, "profile", "delete", "knowledge", "--confirm", "DELETE wrong")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing deleted")
}

func TestProfileDelete_NothingToDelete(t *testing.T) {
	profileService = &mockProfileService{
		deleteResult: &domain.ProfileDeleteResult{ProfileType: domain.ProfileKnowledge},
	}
	defer func() { profileService = nil }()

	out, err := executeCommand(t, "profile", "delete", "knowledge", "--confirm", "DELETE knowledge")

	require.NoError(t, err)
	assert.Contains(t, out, "No stored artifacts")
}

func TestProfileScope_Show(t *testing.T) {
	profileService = &mockProfileService{
		scope: domain.ScopeSetting{
			ProfileType: domain.ProfileUser,
			ScopeMode:   domain.ScopeThisBase,
		},
	}
	defer func() { profileService = nil }()

	out, err := executeCommand(t, "profile", "scope", "user")

	require.NoError(t, err)
	assert.Contains(t, out, "user profile scope: this_base")
}

func TestProfileScope_Update(t *testing.T) {
	mock := &mockProfileService{
		scopeStatus: &domain.ProfileScopeStatus{
			Setting: domain.ScopeSetting{
				ProfileType:  domain.ProfileUser,
				ScopeMode:    domain.ScopeShared,
				AllowedBases: []string{"alpha", "beta"},
			},
			EventID: "evt-9",
		},
	}
	profileService = mock
	defer func() { profileService = nil }()

	out, err := executeCommand(t, "profile", "scope", "user",
		"--mode", "shared", "--allow", "beta", "--allow", "alpha")

	require.NoError(t, err)
	assert.Equal(t, domain.ScopeShared, mock.lastMode)
	assert.Equal(t, []string{"beta", "alpha"}, mock.lastAllowed)
	assert.Contains(t, out, "Scope updated")
	assert.Contains(t, out, "alpha, beta")
}

func TestProfileScope_CheckBase(t *testing.T) {
	profileService = &mockProfileService{
		scope: domain.ScopeSetting{
			ProfileType:  domain.ProfileWork,
			ScopeMode:    domain.ScopeShared,
			AllowedBases: []string{"lab-notes"},
		},
	}
	settingsService = &mockSettingsService{}
	defer func() {
		profileService = nil
		settingsService = nil
	}()

	// Earlier runs leave --mode set on the shared command instance, so
	// reset it explicitly.
	out, err := executeCommand(t, "profile", "scope", "work",
		"--mode", "", "--check-base", "Lab-Notes")
	require.NoError(t, err)
	assert.Contains(t, out, `Base "Lab-Notes" may read this profile.`)

	out, err = executeCommand(t, "profile", "scope", "work",
		"--mode", "", "--check-base", "other-base")
	require.NoError(t, err)
	assert.Contains(t, out, `Base "other-base" may not read this profile.`)
}

func TestProfileRegenerate_FromHistory(t *testing.T) {
	profileService = &mockProfileService{
		outcome: &domain.ProfileRegenerateOutcome{
			ProfileType:    domain.ProfileWork,
			ReplayedEvents: 4,
			HashAfter:      "0123456789abcdef",
		},
	}
	defer func() { profileService = nil }()

	out, err := executeCommand(t, "profile", "regenerate", "work")

	require.NoError(t, err)
	assert.Contains(t, out, "Regenerated work profile from 4 events")
	assert.Contains(t, out, "0123456789ab")
}

func TestProfileRegenerate_FromArchive(t *testing.T) {
	mock := &mockProfileService{
		outcome: &domain.ProfileRegenerateOutcome{
			ProfileType:    domain.ProfileWork,
			ReplayedEvents: 2,
			HashAfter:      "feedface",
		},
	}
	profileService = mock
	defer func() { profileService = nil }()

	_, err := executeCommand(t, "profile", "regenerate", "work",
		"--from-archive", "/tmp/work-20260301T090000Z.zip")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/work-20260301T090000Z.zip", mock.lastArchive)
}

func TestProfileRegenerate_NoHistory(t *testing.T) {
	profileService = &mockProfileService{err: domain.ErrNoHistory}
	defer func() { profileService = nil }()

	// The from-archive flag persists between runs; clear it explicitly.
	_, err := executeCommand(t, "profile", "regenerate", "work", "--from-archive", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no replayable history")
}
