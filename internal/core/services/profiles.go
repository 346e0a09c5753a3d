package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
	"github.com/refbase-labs/refbase-cli/internal/core/ports/driven"
	"github.com/refbase-labs/refbase-cli/internal/core/ports/driving"
	"github.com/refbase-labs/refbase-cli/internal/logger"
)

// ProfileService governs the Base's AI-maintained profiles.
type ProfileService struct {
	profiles driven.ProfileStore
	scopes   driven.ScopeStore
	events   driven.EventLog
	archiver driven.Archiver
	baseID   string
	baseSlug string
}

// Compile-time check that ProfileService implements the driving port.
var _ driving.ProfileService = (*ProfileService)(nil)

// NewProfileService creates a profile service for the given Base.
func NewProfileService(profiles driven.ProfileStore, scopes driven.ScopeStore, events driven.EventLog, archiver driven.Archiver, baseID, baseSlug string) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		scopes:   scopes,
		events:   events,
		archiver: archiver,
		baseID:   baseID,
		baseSlug: baseSlug,
	}
}

// Get returns the profile, creating a default-seeded one on first read.
func (s *ProfileService) Get(ctx context.Context, t domain.ProfileType) (domain.Profile, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("profile type %q: %w", t, domain.ErrInvalidInput)
	}
	setting, err := s.scopes.Get(t)
	if err != nil {
		return nil, fmt.Errorf("loading scope for %s: %w", t, err)
	}
	if setting.ScopeMode == domain.ScopeDisabled {
		return nil, fmt.Errorf("%s profile: %w", t, domain.ErrScopeDisabled)
	}

	data, err := s.profiles.ReadJSON(t)
	if errors.Is(err, domain.ErrNotFound) {
		return s.createDefault(ctx, t)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s profile: %w", t, err)
	}

	profile, err := domain.EmptyProfile(t)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("parsing %s profile: %w", t, err)
	}
	return profile, nil
}

// createDefault seeds a fresh profile artifact and logs the creation as
// a snapshot event so the profile is replayable from its first moment.
func (s *ProfileService) createDefault(ctx context.Context, t domain.ProfileType) (domain.Profile, error) {
	logger.Debug("No %s profile artifact yet, seeding defaults", t)

	now := time.Now().UTC()
	profile, err := domain.NewProfile(t, now)
	if err != nil {
		return nil, err
	}
	hash, err := domain.CanonicalHash(profile)
	if err != nil {
		return nil, err
	}

	snapshot, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("marshal %s profile: %w", t, err)
	}
	eventID, err := s.logProfileEvent(ctx, now, domain.ProfileEventDetails{
		ProfileType: t,
		ChangeKind:  domain.ChangeCreate,
		Class:       domain.EventClassSnapshot,
		DiffSummary: []string{fmt.Sprintf("Created %s profile with defaults", t)},
		HashAfter:   hash,
		Snapshot:    snapshot,
	})
	if err != nil {
		return nil, err
	}

	profile.SetHistory([]domain.HistoryRef{{
		EventID:   eventID,
		Timestamp: now,
		HashAfter: hash,
	}})
	if err := s.persistProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// persistProfile writes the JSON artifact and its HTML summary.
func (s *ProfileService) persistProfile(profile domain.Profile) error {
	t := profile.Type()
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s profile: %w", t, err)
	}
	if err := s.profiles.WriteJSON(t, data); err != nil {
		return fmt.Errorf("writing %s profile: %w", t, err)
	}
	if err := s.profiles.WriteHTML(t, []byte(BuildProfileHTML(profile))); err != nil {
		return fmt.Errorf("writing %s summary: %w", t, err)
	}
	return nil
}

// logProfileEvent appends one profile-change event and returns its ID.
func (s *ProfileService) logProfileEvent(ctx context.Context, at time.Time, details domain.ProfileEventDetails) (string, error) {
	payload, err := json.Marshal(details)
	if err != nil {
		return "", fmt.Errorf("marshal event details: %w", err)
	}
	event := &domain.OrchestrationEvent{
		EventID:   uuid.NewString(),
		BaseID:    s.baseID,
		EventType: domain.EventProfileChange,
		Timestamp: at,
		Details:   payload,
	}
	if err := s.events.Append(ctx, event); err != nil {
		return "", fmt.Errorf("appending event: %w", err)
	}
	return event.EventID, nil
}

// profileEvents returns the log's profile-change details for one type,
// paired with their carrying events, in append order.
func (s *ProfileService) profileEvents(ctx context.Context, t domain.ProfileType) ([]domain.OrchestrationEvent, []domain.ProfileEventDetails, error) {
	all, err := s.events.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading event log: %w", err)
	}
	var events []domain.OrchestrationEvent
	var details []domain.ProfileEventDetails
	for _, event := range all {
		if event.EventType != domain.EventProfileChange {
			continue
		}
		var d domain.ProfileEventDetails
		if err := json.Unmarshal(event.Details, &d); err != nil {
			logger.Warn("Skipping malformed profile event %s: %v", event.EventID, err)
			continue
		}
		if d.ProfileType != t {
			continue
		}
		events = append(events, event)
		details = append(details, d)
	}
	return events, details, nil
}
