// Package mcp provides an MCP (Model Context Protocol) server adapter
// for Refbase. It lets AI assistants run category proposals and inspect
// profile governance over the local Base.
package mcp

import "errors"

// ErrMissingProposalService is returned when the proposal service is not provided.
var ErrMissingProposalService = errors.New("mcp: proposal service is required")

// ErrMissingProfileService is returned when the profile service is not provided.
var ErrMissingProfileService = errors.New("mcp: profile service is required")
