package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
	"github.com/refbase-labs/refbase-cli/internal/logger"
)

// RegenerateFromHistory rebuilds the profile artifacts by replaying the
// Base's snapshot events. Each snapshot embeds the full profile state,
// so replay takes the last one and rebuilds the history chain from the
// events leading up to it.
func (s *ProfileService) RegenerateFromHistory(ctx context.Context, t domain.ProfileType) (*domain.ProfileRegenerateOutcome, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("profile type %q: %w", t, domain.ErrInvalidInput)
	}
	logger.Section("Profile Regeneration")

	events, details, err := s.profileEvents(ctx, t)
	if err != nil {
		return nil, err
	}
	var snapEvents []domain.OrchestrationEvent
	var snapDetails []domain.ProfileEventDetails
	for i := range events {
		if details[i].Replayable() {
			snapEvents = append(snapEvents, events[i])
			snapDetails = append(snapDetails, details[i])
		}
	}
	if len(snapEvents) == 0 {
		return nil, fmt.Errorf("%s profile: %w", t, domain.ErrNoHistory)
	}
	logger.Debug("Replaying %d snapshot events for %s profile", len(snapEvents), t)

	last := snapDetails[len(snapDetails)-1]
	profile, err := domain.EmptyProfile(t)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(last.Snapshot, profile); err != nil {
		return nil, fmt.Errorf("parsing snapshot for %s profile: %w", t, err)
	}

	refs := make([]domain.HistoryRef, len(snapEvents))
	for i := range snapEvents {
		hashAfter := snapDetails[i].HashAfter
		if hashAfter == "" {
			if hashAfter, err = domain.CanonicalHashJSON(snapDetails[i].Snapshot); err != nil {
				return nil, fmt.Errorf("hashing snapshot %s: %w", snapEvents[i].EventID, err)
			}
		}
		refs[i] = domain.HistoryRef{
			EventID:   snapEvents[i].EventID,
			Timestamp: snapEvents[i].Timestamp,
			HashAfter: hashAfter,
		}
	}
	profile.SetHistory(refs)
	profile.Metadata().LastUpdated = snapEvents[len(snapEvents)-1].Timestamp

	return s.finishRegenerate(ctx, profile, len(snapEvents), "history")
}

// RegenerateFromArchive rebuilds the profile artifacts from an export
// archive produced by Export. The archive's embedded history chain is
// restored as-is.
func (s *ProfileService) RegenerateFromArchive(ctx context.Context, t domain.ProfileType, archivePath string) (*domain.ProfileRegenerateOutcome, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("profile type %q: %w", t, domain.ErrInvalidInput)
	}
	data, err := s.archiver.ReadEntry(archivePath, t.Slug()+".json")
	if err != nil {
		return nil, fmt.Errorf("reading archive %s: %w", archivePath, err)
	}
	profile, err := domain.EmptyProfile(t)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("archive %s: %v: %w", archivePath, err, domain.ErrCorruptArchive)
	}

	return s.finishRegenerate(ctx, profile, len(profile.HistoryRefs()), "archive")
}

// finishRegenerate persists the rebuilt artifacts and logs a
// governance-class Regenerate event recording the prior artifact's
// hash, when one existed. The event carries no snapshot so it can
// never feed a later replay.
func (s *ProfileService) finishRegenerate(ctx context.Context, profile domain.Profile, replayed int, source string) (*domain.ProfileRegenerateOutcome, error) {
	t := profile.Type()

	var hashBefore string
	if existing, err := s.profiles.ReadJSON(t); err == nil {
		if hashBefore, err = domain.CanonicalHashJSON(existing); err != nil {
			logger.Warn("Could not hash %s profile before regenerate: %v", t, err)
		}
	}

	if err := s.persistProfile(profile); err != nil {
		return nil, err
	}
	hashAfter, err := domain.CanonicalHash(profile)
	if err != nil {
		return nil, err
	}

	payload, _ := json.Marshal(map[string]any{
		"source":          source,
		"events_replayed": replayed,
	})
	eventID, err := s.logProfileEvent(ctx, time.Now().UTC(), domain.ProfileEventDetails{
		ProfileType: t,
		ChangeKind:  domain.ChangeRegenerate,
		Class:       domain.EventClassGovernance,
		DiffSummary: []string{fmt.Sprintf("Regenerated %s profile from %d events", t, replayed)},
		HashBefore:  hashBefore,
		HashAfter:   hashAfter,
		Payload:     payload,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("Regenerated %s profile from %s (%d events)", t, source, replayed)

	return &domain.ProfileRegenerateOutcome{
		ProfileType:    t,
		ReplayedEvents: replayed,
		HashAfter:      hashAfter,
		EventID:        eventID,
	}, nil
}
