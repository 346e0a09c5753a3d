// Package cli provides the command-line interface for refbase.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/refbase-labs/refbase-cli/internal/core/ports/driven"
	"github.com/refbase-labs/refbase-cli/internal/core/ports/driving"
	"github.com/refbase-labs/refbase-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services injected by the composition root before Execute runs.
var (
	paperStore      driven.PaperStore
	proposalService driving.ProposalService
	profileService  driving.ProfileService
	settingsService driving.SettingsService
	libraryPath     string
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "refbase",
	Short: "Local-first research paper assistant",
	Long: `Refbase manages a local Base of research papers: it clusters the
library into category proposals for review and governs the Base's
AI-maintained profiles with a hash-chained audit history.

All data stays on this machine under ~/.refbase.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Dependencies holds everything the CLI commands need.
type Dependencies struct {
	Papers      driven.PaperStore
	Proposals   driving.ProposalService
	Profiles    driving.ProfileService
	Settings    driving.SettingsService
	LibraryPath string
}

// SetDependencies injects the wired services. Must be called before Execute.
func SetDependencies(deps Dependencies) {
	paperStore = deps.Papers
	proposalService = deps.Proposals
	profileService = deps.Profiles
	settingsService = deps.Settings
	libraryPath = deps.LibraryPath
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
