// Package domain defines the core business entities for Refbase.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Paper: A library entry in a Base (title, authors, venue, year)
//   - FeatureVector: The clustering representation of a paper
//   - CategoryProposalPreview: A clustering-derived category awaiting review
//   - Profile: An AI-maintained memory artifact (user/work/writing/knowledge)
//   - OrchestrationEvent: An append-only log entry describing a change
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
