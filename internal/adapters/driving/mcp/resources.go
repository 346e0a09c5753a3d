package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for Refbase resources.
	uriScheme = "refbase://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the current proposal batch.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "proposals/latest",
		Name:        "latest-proposals",
		Description: "The current category proposal batch awaiting review",
		MIMEType:    "application/json",
	}, s.handleLatestBatchResource)

	// Template for profile artifacts.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "profiles/{profileType}",
		Name:        "profile",
		Description: "A profile artifact: user, work, writing or knowledge",
		MIMEType:    "application/json",
	}, s.handleProfileResource)
}

// handleLatestBatchResource returns the current proposal batch.
func (s *Server) handleLatestBatchResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	batch, err := s.ports.Proposals.LatestBatch(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("loading latest batch: %w", err)
	}

	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling batch: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleProfileResource returns one profile artifact.
func (s *Server) handleProfileResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	profileType := extractProfileType(req.Params.URI)
	if !domain.ProfileType(profileType).IsValid() {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	profile, err := s.ports.Profiles.Get(ctx, domain.ProfileType(profileType))
	if errors.Is(err, domain.ErrScopeDisabled) || errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s profile: %w", profileType, err)
	}

	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling profile: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractProfileType extracts the type from a URI like refbase://profiles/{profileType}.
func extractProfileType(uri string) string {
	const prefix = uriScheme + "profiles/"
	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	return strings.TrimPrefix(uri, prefix)
}
