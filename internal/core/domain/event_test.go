package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestProfileEventDetails_Replayable checks the snapshot/governance split
// that keeps regenerate events out of their own future replays.
func TestProfileEventDetails_Replayable(t *testing.T) {
	snapshot := json.RawMessage(`{"metadata":{"id":"work-profile"}}`)

	tests := []struct {
		name     string
		details  ProfileEventDetails
		expected bool
	}{
		{
			name:     "snapshot class with payload replays",
			details:  ProfileEventDetails{Class: EventClassSnapshot, Snapshot: snapshot},
			expected: true,
		},
		{
			name:     "governance class never replays",
			details:  ProfileEventDetails{Class: EventClassGovernance, Snapshot: snapshot},
			expected: false,
		},
		{
			name:     "snapshot class without payload never replays",
			details:  ProfileEventDetails{Class: EventClassSnapshot},
			expected: false,
		},
		{
			name:     "regenerate events are governance class",
			details:  ProfileEventDetails{ChangeKind: ChangeRegenerate, Class: EventClassGovernance},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.details.Replayable())
		})
	}
}
