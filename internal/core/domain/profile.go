package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// ProfileType identifies one of the four AI-maintained memory artifacts.
type ProfileType string

const (
	// ProfileUser captures who the user is.
	ProfileUser ProfileType = "user"

	// ProfileWork captures active projects and milestones.
	ProfileWork ProfileType = "work"

	// ProfileWriting captures tone and structure preferences.
	ProfileWriting ProfileType = "writing"

	// ProfileKnowledge captures concept mastery evidence.
	ProfileKnowledge ProfileType = "knowledge"
)

// AllProfileTypes returns every profile type in canonical order.
func AllProfileTypes() []ProfileType {
	return []ProfileType{ProfileUser, ProfileWork, ProfileWriting, ProfileKnowledge}
}

// IsValid reports whether the profile type is known.
func (t ProfileType) IsValid() bool {
	switch t {
	case ProfileUser, ProfileWork, ProfileWriting, ProfileKnowledge:
		return true
	}
	return false
}

// Slug returns the artifact file stem for the profile type.
func (t ProfileType) Slug() string {
	return string(t)
}

// Label returns the display name for the profile type.
func (t ProfileType) Label() string {
	switch t {
	case ProfileUser:
		return "User"
	case ProfileWork:
		return "Work"
	case ProfileWriting:
		return "Writing"
	case ProfileKnowledge:
		return "Knowledge"
	}
	return string(t)
}

// ScopeMode controls which Bases may read a profile.
type ScopeMode string

const (
	// ScopeThisBase restricts the profile to its owning Base.
	ScopeThisBase ScopeMode = "this_base"

	// ScopeShared allows the Bases named in AllowedBases.
	ScopeShared ScopeMode = "shared"

	// ScopeDisabled blocks all reads.
	ScopeDisabled ScopeMode = "disabled"
)

// IsValid reports whether the scope mode is known.
func (m ScopeMode) IsValid() bool {
	switch m {
	case ScopeThisBase, ScopeShared, ScopeDisabled:
		return true
	}
	return false
}

// ProfileMetadata is shared by every profile type.
type ProfileMetadata struct {
	// ID is the stable artifact identifier, e.g. "work-profile".
	ID string `json:"id"`

	// LastUpdated is when the profile content last changed.
	LastUpdated time.Time `json:"last_updated"`

	// Scope controls visibility across Bases.
	Scope ScopeMode `json:"scope"`

	// AllowedBases lists Base slugs granted access under ScopeShared.
	AllowedBases []string `json:"allowed_bases,omitempty"`
}

// HistoryRef is one link in a profile's append-only history chain.
// The final ref's HashAfter must equal the profile's canonical hash.
type HistoryRef struct {
	// EventID identifies the orchestration event behind this entry.
	EventID string `json:"event_id"`

	// Timestamp is when the event was recorded.
	Timestamp time.Time `json:"timestamp"`

	// HashAfter is the canonical hash of the profile after the event.
	HashAfter string `json:"hash_after"`
}

// Profile is implemented by the four concrete profile types.
// It exposes exactly what replay and governance need: the shared
// metadata and the mutable history chain.
type Profile interface {
	// Type returns the profile type tag.
	Type() ProfileType

	// Metadata returns the shared metadata block for mutation.
	Metadata() *ProfileMetadata

	// HistoryRefs returns the current history chain.
	HistoryRefs() []HistoryRef

	// SetHistory replaces the history chain.
	SetHistory(refs []HistoryRef)
}

// UserFields holds the user profile's structured content.
type UserFields struct {
	Name               string   `json:"name"`
	Affiliations       []string `json:"affiliations,omitempty"`
	CommunicationStyle []string `json:"communication_style,omitempty"`
	Availability       string   `json:"availability,omitempty"`
}

// UserProfile captures who the user is.
type UserProfile struct {
	Meta    ProfileMetadata `json:"metadata"`
	Summary []string        `json:"summary,omitempty"`
	Fields  UserFields      `json:"fields"`
	History []HistoryRef    `json:"history,omitempty"`
}

// ProjectRef names an active project inside the work profile.
type ProjectRef struct {
	Name       string `json:"name"`
	Status     string `json:"status,omitempty"`
	TargetDate string `json:"target_date,omitempty"`
}

// MilestoneRef names a tracked milestone inside the work profile.
type MilestoneRef struct {
	Description  string   `json:"description"`
	Due          string   `json:"due,omitempty"`
	EvidenceRefs []string `json:"evidence_refs,omitempty"`
}

// WorkFields holds the work profile's structured content.
type WorkFields struct {
	ActiveProjects []ProjectRef   `json:"active_projects,omitempty"`
	Milestones     []MilestoneRef `json:"milestones,omitempty"`
	PreferredTools []string       `json:"preferred_tools,omitempty"`
	FocusStatement string         `json:"focus_statement,omitempty"`
	Risks          []string       `json:"risks,omitempty"`
}

// WorkProfile captures active projects and milestones.
type WorkProfile struct {
	Meta    ProfileMetadata `json:"metadata"`
	Summary []string        `json:"summary,omitempty"`
	Fields  WorkFields      `json:"fields"`
	History []HistoryRef    `json:"history,omitempty"`
}

// StyleExample cites a passage illustrating the user's writing voice.
type StyleExample struct {
	Source   string `json:"source"`
	Excerpt  string `json:"excerpt"`
	Citation string `json:"citation,omitempty"`
}

// WritingFields holds the writing profile's structured content.
type WritingFields struct {
	ToneDescriptors      []string       `json:"tone_descriptors,omitempty"`
	StructurePreferences []string       `json:"structure_preferences,omitempty"`
	StyleExamples        []StyleExample `json:"style_examples,omitempty"`
}

// WritingProfile captures tone and structure preferences.
type WritingProfile struct {
	Meta    ProfileMetadata `json:"metadata"`
	Summary []string        `json:"summary,omitempty"`
	Fields  WritingFields   `json:"fields"`
	History []HistoryRef    `json:"history,omitempty"`
}

// MasteryLevel grades the user's command of a concept.
type MasteryLevel string

const (
	MasteryNovice     MasteryLevel = "novice"
	MasteryDeveloping MasteryLevel = "developing"
	MasteryProficient MasteryLevel = "proficient"
	MasteryExpert     MasteryLevel = "expert"
)

// EvidenceRef links a knowledge entry to its supporting material.
type EvidenceRef struct {
	Kind       string  `json:"type"`
	Identifier string  `json:"identifier"`
	Confidence float64 `json:"confidence"`
}

// KnowledgeEntry records mastery evidence for a single concept.
type KnowledgeEntry struct {
	Concept       string        `json:"concept"`
	Mastery       MasteryLevel  `json:"mastery_level"`
	EvidenceRefs  []EvidenceRef `json:"evidence_refs,omitempty"`
	WeaknessFlags []string      `json:"weakness_flags,omitempty"`
	LastReviewed  time.Time     `json:"last_reviewed"`
}

// KnowledgeProfile captures concept mastery evidence.
type KnowledgeProfile struct {
	Meta    ProfileMetadata  `json:"metadata"`
	Summary []string         `json:"summary,omitempty"`
	Entries []KnowledgeEntry `json:"entries,omitempty"`
	History []HistoryRef     `json:"history,omitempty"`
}

func (p *UserProfile) Type() ProfileType             { return ProfileUser }
func (p *UserProfile) Metadata() *ProfileMetadata    { return &p.Meta }
func (p *UserProfile) HistoryRefs() []HistoryRef     { return p.History }
func (p *UserProfile) SetHistory(refs []HistoryRef)  { p.History = refs }
func (p *WorkProfile) Type() ProfileType             { return ProfileWork }
func (p *WorkProfile) Metadata() *ProfileMetadata    { return &p.Meta }
func (p *WorkProfile) HistoryRefs() []HistoryRef     { return p.History }
func (p *WorkProfile) SetHistory(refs []HistoryRef)  { p.History = refs }
func (p *WritingProfile) Type() ProfileType          { return ProfileWriting }
func (p *WritingProfile) Metadata() *ProfileMetadata { return &p.Meta }
func (p *WritingProfile) HistoryRefs() []HistoryRef  { return p.History }
func (p *WritingProfile) SetHistory(refs []HistoryRef) {
	p.History = refs
}
func (p *KnowledgeProfile) Type() ProfileType          { return ProfileKnowledge }
func (p *KnowledgeProfile) Metadata() *ProfileMetadata { return &p.Meta }
func (p *KnowledgeProfile) HistoryRefs() []HistoryRef  { return p.History }
func (p *KnowledgeProfile) SetHistory(refs []HistoryRef) {
	p.History = refs
}

// EmptyProfile returns a zero-valued profile of the given type,
// suitable as an unmarshal target during replay and archive import.
func EmptyProfile(t ProfileType) (Profile, error) {
	switch t {
	case ProfileUser:
		return &UserProfile{}, nil
	case ProfileWork:
		return &WorkProfile{}, nil
	case ProfileWriting:
		return &WritingProfile{}, nil
	case ProfileKnowledge:
		return &KnowledgeProfile{}, nil
	}
	return nil, fmt.Errorf("profile type %q: %w", t, ErrInvalidInput)
}

// NewProfile returns a default-seeded profile of the given type.
// Profiles are created lazily on first read with these defaults.
func NewProfile(t ProfileType, now time.Time) (Profile, error) {
	p, err := EmptyProfile(t)
	if err != nil {
		return nil, err
	}
	*p.Metadata() = ProfileMetadata{
		ID:          t.Slug() + "-profile",
		LastUpdated: now,
		Scope:       ScopeThisBase,
	}
	return p, nil
}

// CanonicalHash computes the profile's content hash: SHA-256 over the
// profile's JSON with the history field cleared. encoding/json emits
// map keys in sorted order, which makes the byte stream deterministic.
func CanonicalHash(p Profile) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal profile: %w", err)
	}
	return CanonicalHashJSON(data)
}

// CanonicalHashJSON computes the canonical hash of a serialized profile
// without deserializing into a concrete type. Used to hash artifacts and
// event snapshots whose concrete type is irrelevant.
func CanonicalHashJSON(data []byte) (string, error) {
	var value map[string]any
	if err := json.Unmarshal(data, &value); err != nil {
		return "", fmt.Errorf("parse profile JSON: %w", err)
	}
	delete(value, "history")
	canonical, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("canonicalize profile JSON: %w", err)
	}
	return HashBytes(canonical), nil
}

// HashBytes returns the lowercase hex SHA-256 digest of the input.
func HashBytes(data []byte) string {
	digest := sha256.Sum256(data)
	return hex.EncodeToString(digest[:])
}
