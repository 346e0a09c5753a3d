package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("creates server with valid ports", func(t *testing.T) {
		ports := &Ports{
			Proposals: &mockProposalService{},
			Profiles:  &mockProfileService{},
			Settings:  &mockSettingsService{},
		}

		server, err := NewServer(ports)

		require.NoError(t, err)
		assert.NotNil(t, server)
	})

	t.Run("settings port is optional", func(t *testing.T) {
		ports := &Ports{
			Proposals: &mockProposalService{},
			Profiles:  &mockProfileService{},
		}

		_, err := NewServer(ports)

		require.NoError(t, err)
	})

	t.Run("rejects missing proposal service", func(t *testing.T) {
		ports := &Ports{Profiles: &mockProfileService{}}

		_, err := NewServer(ports)

		require.ErrorIs(t, err, ErrMissingProposalService)
	})

	t.Run("rejects missing profile service", func(t *testing.T) {
		ports := &Ports{Proposals: &mockProposalService{}}

		_, err := NewServer(ports)

		require.ErrorIs(t, err, ErrMissingProfileService)
	})
}
