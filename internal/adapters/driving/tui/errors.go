package tui

import "errors"

// ErrMissingProposalService is returned when the proposal service is not provided.
var ErrMissingProposalService = errors.New("tui: proposal service is required")
