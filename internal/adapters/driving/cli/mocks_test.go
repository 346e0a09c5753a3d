package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
)

// executeCommand runs the root command with args and captures its output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	defer resetFlags(rootCmd)

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every changed flag to its default so flag values
// set by one executeCommand call cannot leak into the next; the
// commands are package-level singletons shared across tests.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().Visit(func(f *pflag.Flag) {
		f.Value.Set(f.DefValue) //nolint:errcheck // restoring the recorded default
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// mockPaperStore is a mock implementation of driven.PaperStore.
type mockPaperStore struct {
	papers  []domain.Paper
	saved   []*domain.Paper
	deleted []string
	err     error
}

func (m *mockPaperStore) SavePaper(_ context.Context, paper *domain.Paper) error {
	m.saved = append(m.saved, paper)
	return m.err
}

func (m *mockPaperStore) GetPaper(_ context.Context, entryID string) (*domain.Paper, error) {
	for i := range m.papers {
		if m.papers[i].EntryID == entryID {
			return &m.papers[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockPaperStore) ListPapers(_ context.Context) ([]domain.Paper, error) {
	return m.papers, m.err
}

func (m *mockPaperStore) DeletePaper(_ context.Context, entryID string) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, entryID)
	return nil
}

// mockProposalService is a mock implementation of driving.ProposalService.
type mockProposalService struct {
	previews []domain.CategoryProposalPreview
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
	return &domain.CategoryProposalBatch{BatchID: "batch-1", Proposals: m.previews}, nil
}

func (m *mockProposalService) LatestBatch(_ context.Context) (*domain.CategoryProposalBatch, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.CategoryProposalBatch{BatchID: "batch-1", Proposals: m.previews}, nil
}

// mockProfileService is a mock implementation of driving.ProfileService.
type mockProfileService struct {
	profile      domain.Profile
	audit        *domain.ProfileAuditLog
	export       *domain.ProfileExportResult
	deleteResult *domain.ProfileDeleteResult
	scope        domain.ScopeSetting
	scopeStatus  *domain.ProfileScopeStatus
	outcome      *domain.ProfileRegenerateOutcome
	lastConfirm  string
	lastDest     string
	lastMode     domain.ScopeMode
	lastAllowed  []string
	lastArchive  string
	err          error
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
	destination string,
	_ bool,
) (*domain.ProfileExportResult, error) {
	m.lastDest = destination
	return m.export, m.err
}

func (m *mockProfileService) Delete(
	_ context.Context,
	_ domain.ProfileType,
	confirmPhrase string,
) (*domain.ProfileDeleteResult, error) {
	m.lastConfirm = confirmPhrase
	return m.deleteResult, m.err
}

func (m *mockProfileService) ScopeStatus(_ context.Context, _ domain.ProfileType) (domain.ScopeSetting, error) {
	return m.scope, m.err
}

func (m *mockProfileService) UpdateScope(
	_ context.Context,
	_ domain.ProfileType,
	mode domain.ScopeMode,
	allowedBases []string,
) (*domain.ProfileScopeStatus, error) {
	m.lastMode = mode
	m.lastAllowed = allowedBases
	return m.scopeStatus, m.err
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
	archivePath string,
) (*domain.ProfileRegenerateOutcome, error) {
	m.lastArchive = archivePath
	return m.outcome, m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	clustering domain.ClusteringSettings
	saved      *domain.ClusteringSettings
	err        error
}

func (m *mockSettingsService) Clustering() domain.ClusteringSettings {
	return m.clustering
}

func (m *mockSettingsService) SaveClustering(settings domain.ClusteringSettings) error {
	m.saved = &settings
	return m.err
}

func (m *mockSettingsService) BaseSlug() string {
	return "main"
}

func (m *mockSettingsService) BaseID() (string, error) {
	return "base-1", m.err
}
