package mcp

import (
	"github.com/refbase-labs/refbase-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Proposals generates and serves category proposals.
	Proposals driving.ProposalService

	// Profiles governs the Base's profiles.
	Profiles driving.ProfileService

	// Settings provides clustering settings for proposal runs.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Proposals == nil {
		return ErrMissingProposalService
	}
	if p.Profiles == nil {
		return ErrMissingProfileService
	}
	// Settings is optional; tools fall back to built-in defaults.
	return nil
}
