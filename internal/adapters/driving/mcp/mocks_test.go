package mcp

import (
	"context"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
)

// mockProposalService is a mock implementation of driving.ProposalService.
type mockProposalService struct {
	previews []domain.CategoryProposalPreview
	batch    *domain.CategoryProposalBatch
	lastOpts domain.ProposalOptions
	stored   bool
	err      error
}

func (m *mockProposalService) Generate(
	_ context.Context,
	opts domain.ProposalOptions,
) ([]domain.CategoryProposalPreview, error) {
	m.lastOpts = opts
	return m.previews, m.err
}

func (m *mockProposalService) GenerateAndStore(
	_ context.Context,
	opts domain.ProposalOptions,
) (*domain.CategoryProposalBatch, error) {
	m.lastOpts = opts
	m.stored = true
	if m.err != nil {
		return nil, m.err
	}
	if m.batch != nil {
		return m.batch, nil
	}
	return &domain.CategoryProposalBatch{Proposals: m.previews}, nil
}

func (m *mockProposalService) LatestBatch(_ context.Context) (*domain.CategoryProposalBatch, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.batch == nil {
		return nil, domain.ErrNotFound
	}
	return m.batch, nil
}

// mockProfileService is a mock implementation of driving.ProfileService.
type mockProfileService struct {
	profile domain.Profile
	audit   *domain.ProfileAuditLog
	outcome *domain.ProfileRegenerateOutcome
	err     error
}

func (m *mockProfileService) Get(_ context.Context, _ domain.ProfileType) (domain.Profile, error) {
	return m.profile, m.err
}

func (m *mockProfileService) Audit(_ context.Context, _ domain.ProfileType) (*domain.ProfileAuditLog, error) {
	return m.audit, m.err
}

func (m *mockProfileService) Export(
	_ context.Context,
	_ domain.ProfileType,
	_ string,
	_ bool,
) (*domain.ProfileExportResult, error) {
	return nil, m.err
}

func (m *mockProfileService) Delete(
	_ context.Context,
	_ domain.ProfileType,
	_ string,
) (*domain.ProfileDeleteResult, error) {
	return nil, m.err
}

func (m *mockProfileService) ScopeStatus(_ context.Context, t domain.ProfileType) (domain.ScopeSetting, error) {
	return domain.ScopeSetting{ProfileType: t}, m.err
}

func (m *mockProfileService) UpdateScope(
	_ context.Context,
	_ domain.ProfileType,
	_ domain.ScopeMode,
	_ []string,
) (*domain.ProfileScopeStatus, error) {
	return nil, m.err
}

func (m *mockProfileService) RegenerateFromHistory(
	_ context.Context,
	_ domain.ProfileType,
) (*domain.ProfileRegenerateOutcome, error) {
	return m.outcome, m.err
}

func (m *mockProfileService) RegenerateFromArchive(
	_ context.Context,
	_ domain.ProfileType,
	_ string,
) (*domain.ProfileRegenerateOutcome, error) {
	return m.outcome, m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	clustering domain.ClusteringSettings
}

func (m *mockSettingsService) Clustering() domain.ClusteringSettings {
	return m.clustering
}

func (m *mockSettingsService) SaveClustering(_ domain.ClusteringSettings) error {
	return nil
}

func (m *mockSettingsService) BaseSlug() string {
	return "main"
}

func (m *mockSettingsService) BaseID() (string, error) {
	return "base-1", nil
}
