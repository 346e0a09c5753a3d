package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
	"github.com/refbase-labs/refbase-cli/internal/core/ports/driven"
	"github.com/refbase-labs/refbase-cli/internal/logger"
)

// exportTimestampLayout names export archives down to the second, UTC.
const exportTimestampLayout = "20060102T150405Z"

// Audit returns the chronological governance view of a profile.
func (s *ProfileService) Audit(ctx context.Context, t domain.ProfileType) (*domain.ProfileAuditLog, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("profile type %q: %w", t, domain.ErrInvalidInput)
	}
	events, details, err := s.profileEvents(ctx, t)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.ProfileAuditEntry, len(events))
	for i := range events {
		entries[i] = domain.ProfileAuditEntry{
			EventID:     events[i].EventID,
			Timestamp:   events[i].Timestamp,
			ChangeKind:  details[i].ChangeKind,
			DiffSummary: details[i].DiffSummary,
			HashAfter:   details[i].HashAfter,
			UndoToken:   details[i].UndoToken,
		}
	}
	return &domain.ProfileAuditLog{
		ProfileType: t,
		GeneratedAt: time.Now().UTC(),
		Entries:     entries,
	}, nil
}

// Export bundles the profile artifacts into a zip archive. Only one
// export may run at a time per Base; a second caller fails immediately
// with domain.ErrExportInProgress instead of queueing.
func (s *ProfileService) Export(ctx context.Context, t domain.ProfileType, destination string, includeHistory bool) (*domain.ProfileExportResult, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("profile type %q: %w", t, domain.ErrInvalidInput)
	}
	jsonData, err := s.profiles.ReadJSON(t)
	if err != nil {
		return nil, fmt.Errorf("reading %s profile: %w", t, err)
	}

	release, err := s.profiles.AcquireExportLock()
	if err != nil {
		return nil, err
	}
	defer release()

	archivePath := s.resolveExportPath(t, destination)
	entries := []driven.ArchiveEntry{
		{Name: t.Slug() + ".json", Data: jsonData},
	}
	if htmlData, err := s.profiles.ReadHTML(t); err == nil {
		entries = append(entries, driven.ArchiveEntry{Name: t.Slug() + ".html", Data: htmlData})
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("reading %s summary: %w", t, err)
	}
	if includeHistory {
		audit, err := s.Audit(ctx, t)
		if err != nil {
			return nil, err
		}
		auditData, err := json.MarshalIndent(audit, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal audit log: %w", err)
		}
		entries = append(entries, driven.ArchiveEntry{Name: "audit.json", Data: auditData})
	}

	hash, err := s.archiver.Create(archivePath, entries)
	if err != nil {
		return nil, fmt.Errorf("writing archive: %w", err)
	}
	logger.Info("Exported %s profile to %s", t, archivePath)

	contentHash, err := domain.CanonicalHashJSON(jsonData)
	if err != nil {
		return nil, err
	}
	payload, _ := json.Marshal(map[string]any{
		"archive_path": archivePath,
		"archive_hash": hash,
	})
	eventID, err := s.logProfileEvent(ctx, time.Now().UTC(), domain.ProfileEventDetails{
		ProfileType: t,
		ChangeKind:  domain.ChangeExport,
		Class:       domain.EventClassGovernance,
		DiffSummary: []string{fmt.Sprintf("Exported %s profile to %s", t, archivePath)},
		HashBefore:  contentHash,
		HashAfter:   contentHash,
		Payload:     payload,
	})
	if err != nil {
		return nil, err
	}

	return &domain.ProfileExportResult{
		ProfileType: t,
		ArchivePath: archivePath,
		Hash:        hash,
		EventID:     eventID,
	}, nil
}

// resolveExportPath turns the user-supplied destination into a concrete
// archive path. Empty means the exports directory, a .zip suffix means
// an exact file, anything else is treated as a directory.
func (s *ProfileService) resolveExportPath(t domain.ProfileType, destination string) string {
	name := fmt.Sprintf("%s-%s.zip", t.Slug(), time.Now().UTC().Format(exportTimestampLayout))
	switch {
	case destination == "":
		return filepath.Join(s.profiles.ExportsDir(), name)
	case strings.HasSuffix(strings.ToLower(destination), ".zip"):
		return destination
	default:
		return filepath.Join(destination, name)
	}
}

// Delete removes the profile artifacts after confirmation. The phrase
// "DELETE {slug}" is compared case-insensitively. History survives, so
// a deleted profile stays reconstructable via replay.
func (s *ProfileService) Delete(ctx context.Context, t domain.ProfileType, confirmPhrase string) (*domain.ProfileDeleteResult, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("profile type %q: %w", t, domain.ErrInvalidInput)
	}
	expected := "DELETE " + t.Slug()
	if !strings.EqualFold(strings.TrimSpace(confirmPhrase), expected) {
		return nil, fmt.Errorf("expected %q: %w", expected, domain.ErrConfirmPhrase)
	}

	var hashBefore string
	if jsonData, err := s.profiles.ReadJSON(t); err == nil {
		if hashBefore, err = domain.CanonicalHashJSON(jsonData); err != nil {
			logger.Warn("Could not hash %s profile before delete: %v", t, err)
		}
	}

	removed, err := s.profiles.Remove(t)
	if err != nil {
		return nil, fmt.Errorf("removing %s profile: %w", t, err)
	}
	logger.Info("Deleted %s profile artifacts: %v", t, removed)

	payload, _ := json.Marshal(map[string]any{"files_removed": removed})
	eventID, err := s.logProfileEvent(ctx, time.Now().UTC(), domain.ProfileEventDetails{
		ProfileType: t,
		ChangeKind:  domain.ChangeDelete,
		Class:       domain.EventClassGovernance,
		DiffSummary: []string{fmt.Sprintf("Deleted %s profile artifacts", t)},
		HashBefore:  hashBefore,
		Payload:     payload,
	})
	if err != nil {
		return nil, err
	}

	return &domain.ProfileDeleteResult{
		ProfileType:  t,
		FilesRemoved: removed,
		EventID:      eventID,
	}, nil
}

// ScopeStatus returns the current scope setting without mutation.
func (s *ProfileService) ScopeStatus(_ context.Context, t domain.ProfileType) (domain.ScopeSetting, error) {
	if !t.IsValid() {
		return domain.ScopeSetting{}, fmt.Errorf("profile type %q: %w", t, domain.ErrInvalidInput)
	}
	return s.scopes.Get(t)
}

// UpdateScope changes the scope setting and logs the change. Non-shared
// modes clear the allow list; shared mode normalizes it.
func (s *ProfileService) UpdateScope(ctx context.Context, t domain.ProfileType, mode domain.ScopeMode, allowedBases []string) (*domain.ProfileScopeStatus, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("profile type %q: %w", t, domain.ErrInvalidInput)
	}
	if !mode.IsValid() {
		return nil, fmt.Errorf("scope mode %q: %w", mode, domain.ErrInvalidInput)
	}
	if mode == domain.ScopeShared {
		allowedBases = domain.NormalizeBaseSlugs(allowedBases)
	} else {
		allowedBases = nil
	}

	setting, err := s.scopes.Set(t, mode, allowedBases)
	if err != nil {
		return nil, fmt.Errorf("saving scope for %s: %w", t, err)
	}

	diff := fmt.Sprintf("Scope for %s profile set to %s", t, mode)
	if mode == domain.ScopeShared {
		diff = fmt.Sprintf("%s (allowed: %s)", diff, strings.Join(allowedBases, ", "))
	}
	eventID, err := s.logProfileEvent(ctx, time.Now().UTC(), domain.ProfileEventDetails{
		ProfileType: t,
		ChangeKind:  domain.ChangeScope,
		Class:       domain.EventClassGovernance,
		DiffSummary: []string{diff},
	})
	if err != nil {
		return nil, err
	}

	return &domain.ProfileScopeStatus{
		Setting: setting,
		EventID: eventID,
	}, nil
}
