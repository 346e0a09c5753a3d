package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
)

// ProposeInput is the input schema for the propose_categories tool.
type ProposeInput struct {
	MaxClusters    int  `json:"max_clusters,omitempty" jsonschema:"maximum number of clusters to propose (default from settings)"`
	MinClusterSize int  `json:"min_cluster_size,omitempty" jsonschema:"smallest cluster surfaced as a proposal (default 2)"`
	Store          bool `json:"store,omitempty" jsonschema:"persist the run as the current proposal batch"`
}

// ProposeOutput is the output schema for the propose_categories tool.
type ProposeOutput struct {
	Proposals []ProposalOutput `json:"proposals"`
	Count     int              `json:"count"`
}

// ProposalOutput represents a single category proposal.
type ProposalOutput struct {
	ProposalID string   `json:"proposal_id"`
	Name       string   `json:"name"`
	Slug       string   `json:"slug"`
	Confidence float64  `json:"confidence"`
	Summary    string   `json:"summary"`
	Members    []string `json:"members"`
}

// AuditInput is the input schema for the profile_audit tool.
type AuditInput struct {
	ProfileType string `json:"profile_type" jsonschema:"profile to audit: user, work, writing or knowledge"`
}

// AuditOutput is the output schema for the profile_audit tool.
type AuditOutput struct {
	ProfileType string             `json:"profile_type"`
	Entries     []AuditEntryOutput `json:"entries"`
	Count       int                `json:"count"`
}

// AuditEntryOutput represents one audited profile change.
type AuditEntryOutput struct {
	EventID     string   `json:"event_id"`
	Timestamp   string   `json:"timestamp"`
	ChangeKind  string   `json:"change_kind"`
	DiffSummary []string `json:"diff_summary,omitempty"`
	HashAfter   string   `json:"hash_after,omitempty"`
}

// RegenerateInput is the input schema for the profile_regenerate tool.
type RegenerateInput struct {
	ProfileType string `json:"profile_type" jsonschema:"profile to rebuild: user, work, writing or knowledge"`
}

// RegenerateOutput is the output schema for the profile_regenerate tool.
type RegenerateOutput struct {
	ProfileType    string `json:"profile_type"`
	ReplayedEvents int    `json:"replayed_events"`
	HashAfter      string `json:"hash_after"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "propose_categories",
		Description: "Cluster the Base's papers into category proposals for review",
	}, s.handlePropose)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "profile_audit",
		Description: "List the change history of a profile",
	}, s.handleAudit)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "profile_regenerate",
		Description: "Rebuild a profile's artifacts by replaying its history",
	}, s.handleRegenerate)
}

// handlePropose handles the propose_categories tool invocation.
func (s *Server) handlePropose(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ProposeInput,
) (*mcp.CallToolResult, ProposeOutput, error) {
	opts := domain.DefaultClusteringSettings().Options()
	if s.ports.Settings != nil {
		opts = s.ports.Settings.Clustering().Options()
	}
	if input.MaxClusters > 0 {
		opts.MaxClusters = input.MaxClusters
	}
	if input.MinClusterSize > 0 {
		opts.MinClusterSize = input.MinClusterSize
	}

	var previews []domain.CategoryProposalPreview
	var err error
	if input.Store {
		var batch *domain.CategoryProposalBatch
		batch, err = s.ports.Proposals.GenerateAndStore(ctx, opts)
		if batch != nil {
			previews = batch.Proposals
		}
	} else {
		previews, err = s.ports.Proposals.Generate(ctx, opts)
	}
	if err != nil {
		return nil, ProposeOutput{}, err
	}

	output := ProposeOutput{
		Proposals: make([]ProposalOutput, len(previews)),
		Count:     len(previews),
	}
	for i := range previews {
		confidence := 0.0
		if previews[i].Definition.Confidence != nil {
			confidence = *previews[i].Definition.Confidence
		}
		output.Proposals[i] = ProposalOutput{
			ProposalID: previews[i].ProposalID,
			Name:       previews[i].Definition.Name,
			Slug:       previews[i].Definition.Slug,
			Confidence: confidence,
			Summary:    previews[i].Narrative.Summary,
			Members:    previews[i].MemberEntryIDs,
		}
	}

	return nil, output, nil
}

// handleAudit handles the profile_audit tool invocation.
func (s *Server) handleAudit(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AuditInput,
) (*mcp.CallToolResult, AuditOutput, error) {
	audit, err := s.ports.Profiles.Audit(ctx, domain.ProfileType(input.ProfileType))
	if err != nil {
		return nil, AuditOutput{}, err
	}

	output := AuditOutput{
		ProfileType: string(audit.ProfileType),
		Entries:     make([]AuditEntryOutput, len(audit.Entries)),
		Count:       len(audit.Entries),
	}
	for i := range audit.Entries {
		output.Entries[i] = AuditEntryOutput{
			EventID:     audit.Entries[i].EventID,
			Timestamp:   audit.Entries[i].Timestamp.Format(time.RFC3339),
			ChangeKind:  string(audit.Entries[i].ChangeKind),
			DiffSummary: audit.Entries[i].DiffSummary,
			HashAfter:   audit.Entries[i].HashAfter,
		}
	}

	return nil, output, nil
}

// handleRegenerate handles the profile_regenerate tool invocation.
func (s *Server) handleRegenerate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RegenerateInput,
) (*mcp.CallToolResult, RegenerateOutput, error) {
	outcome, err := s.ports.Profiles.RegenerateFromHistory(ctx, domain.ProfileType(input.ProfileType))
	if err != nil {
		return nil, RegenerateOutput{}, err
	}

	return nil, RegenerateOutput{
		ProfileType:    string(outcome.ProfileType),
		ReplayedEvents: outcome.ReplayedEvents,
		HashAfter:      outcome.HashAfter,
	}, nil
}
