// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/refbase-labs/refbase-cli/internal/core/domain"
)

// BatchLoaded carries the current proposal batch back to the model.
type BatchLoaded struct {
	Batch *domain.CategoryProposalBatch
	Err   error
}

// ProposalSelected is sent when a proposal is selected in the list.
type ProposalSelected struct {
	Index int
}

// Quit signals the application should exit.
type Quit struct{}
