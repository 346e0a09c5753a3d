// Command refbase is the local-first research paper assistant.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/refbase-labs/refbase-cli/internal/adapters/driven/archive/zip"
	configfile "github.com/refbase-labs/refbase-cli/internal/adapters/driven/config/file"
	storagefile "github.com/refbase-labs/refbase-cli/internal/adapters/driven/storage/file"
	"github.com/refbase-labs/refbase-cli/internal/adapters/driven/storage/sqlite"
	"github.com/refbase-labs/refbase-cli/internal/adapters/driving/cli"
	"github.com/refbase-labs/refbase-cli/internal/core/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("getting home directory: %w", err)
	}
	baseDir := filepath.Join(home, ".refbase")

	// Configuration and settings.
	configStore, err := configfile.NewConfigStore(baseDir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	baseID, err := settingsService.BaseID()
	if err != nil {
		return fmt.Errorf("resolving base ID: %w", err)
	}

	// Library metadata in SQLite.
	store, err := sqlite.NewStore(filepath.Join(baseDir, "data"))
	if err != nil {
		return fmt.Errorf("opening library database: %w", err)
	}
	defer store.Close() //nolint:errcheck // best-effort close on exit
	paperStore := store.PaperStore()

	// Profile artifacts, events and proposal batches on the filesystem.
	profileStore, err := storagefile.NewProfileStore(filepath.Join(baseDir, "profiles"))
	if err != nil {
		return fmt.Errorf("opening profile store: %w", err)
	}
	eventLog, err := storagefile.NewEventLog(filepath.Join(baseDir, "events.jsonl"))
	if err != nil {
		return fmt.Errorf("opening event log: %w", err)
	}
	proposalStore, err := storagefile.NewProposalStore(filepath.Join(baseDir, "proposals"))
	if err != nil {
		return fmt.Errorf("opening proposal store: %w", err)
	}
	scopeStore, err := storagefile.NewScopeStore(filepath.Join(baseDir, "scopes.json"))
	if err != nil {
		return fmt.Errorf("opening scope store: %w", err)
	}

	archiver := zip.NewArchiver()

	// Core services.
	proposalService := services.NewProposalService(
		paperStore, proposalStore, baseID, settingsService.Clustering().EmbeddingDims)
	profileService := services.NewProfileService(
		profileStore, scopeStore, eventLog, archiver, baseID, settingsService.BaseSlug())

	cli.SetDependencies(cli.Dependencies{
		Papers:      paperStore,
		Proposals:   proposalService,
		Profiles:    profileService,
		Settings:    settingsService,
		LibraryPath: filepath.Join(baseDir, "data"),
	})

	return cli.Execute()
}
