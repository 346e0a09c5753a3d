package domain

import (
	"sort"
	"strings"
	"time"
)

// ScopeSetting is the persisted scope record for one profile type.
// Scope lives in its own small file, not inside the profile JSON,
// so scope changes do not move the profile's canonical hash.
type ScopeSetting struct {
	// ProfileType names the governed profile.
	ProfileType ProfileType `json:"profile_type"`

	// ScopeMode controls visibility across Bases.
	ScopeMode ScopeMode `json:"scope_mode"`

	// AllowedBases lists Base slugs permitted under ScopeShared.
	AllowedBases []string `json:"allowed_bases,omitempty"`

	// UpdatedAt is when the setting last changed.
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultScopeSetting returns the ThisBase default for a profile type.
func DefaultScopeSetting(t ProfileType, now time.Time) ScopeSetting {
	return ScopeSetting{
		ProfileType: t,
		ScopeMode:   ScopeThisBase,
		UpdatedAt:   now,
	}
}

// ScopeAllowsTarget reports whether a profile owned by ownerSlug may be
// read from targetSlug under the given setting. Comparison is
// case-insensitive.
func ScopeAllowsTarget(setting *ScopeSetting, ownerSlug, targetSlug string) bool {
	switch setting.ScopeMode {
	case ScopeDisabled:
		return false
	case ScopeThisBase:
		return strings.EqualFold(ownerSlug, targetSlug)
	case ScopeShared:
		for _, slug := range setting.AllowedBases {
			if strings.EqualFold(slug, targetSlug) {
				return true
			}
		}
	}
	return false
}

// NormalizeBaseSlugs deduplicates slugs case-insensitively (first
// spelling wins) and sorts them case-insensitively.
func NormalizeBaseSlugs(slugs []string) []string {
	seen := make(map[string]struct{}, len(slugs))
	out := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		key := strings.ToLower(slug)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, slug)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}
