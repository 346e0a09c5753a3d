// Package tui provides an interactive terminal user interface for
// reviewing category proposals. It implements a driving adapter
// following hexagonal architecture principles.
package tui

import (
	"github.com/refbase-labs/refbase-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Proposals generates and serves category proposals.
	Proposals driving.ProposalService
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Proposals == nil {
		return ErrMissingProposalService
	}
	return nil
}
