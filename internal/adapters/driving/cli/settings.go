package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure clustering settings for the Base.

Unset keys fall back to built-in defaults.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change clustering settings",
	Long: `Change one or more clustering settings. Only the flags you pass are
changed; the rest keep their current values.`,
	RunE: runSettingsSet,
}

func init() {
	settingsSetCmd.Flags().Int("max-clusters", 0, "cap on the number of clusters per run")
	settingsSetCmd.Flags().Int("min-cluster-size", 0, "smallest cluster surfaced as a proposal")
	settingsSetCmd.Flags().Int("timeout-ms", 0, "clustering wall-clock budget in milliseconds")
	settingsSetCmd.Flags().Int("embedding-dims", 0, "hashed embedding width")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	clustering := settingsService.Clustering()

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Base]")
	cmd.Printf("  Slug: %s\n", settingsService.BaseSlug())
	cmd.Println()

	cmd.Println("[Clustering]")
	cmd.Printf("  Max clusters:     %d\n", clustering.MaxClusters)
	cmd.Printf("  Min cluster size: %d\n", clustering.MinClusterSize)
	cmd.Printf("  Timeout:          %dms\n", clustering.TimeoutMS)
	cmd.Printf("  Embedding dims:   %d\n", clustering.EmbeddingDims)

	return nil
}

func runSettingsSet(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	clustering := settingsService.Clustering()

	//nolint:errcheck // flags are defined in init
	maxClusters, _ := cmd.Flags().GetInt("max-clusters")
	minClusterSize, _ := cmd.Flags().GetInt("min-cluster-size")
	timeoutMS, _ := cmd.Flags().GetInt("timeout-ms")
	embeddingDims, _ := cmd.Flags().GetInt("embedding-dims")

	changed := false
	if maxClusters > 0 {
		clustering.MaxClusters = maxClusters
		changed = true
	}
	if minClusterSize > 0 {
		clustering.MinClusterSize = minClusterSize
		changed = true
	}
	if timeoutMS > 0 {
		clustering.TimeoutMS = timeoutMS
		changed = true
	}
	if embeddingDims > 0 {
		clustering.EmbeddingDims = embeddingDims
		changed = true
	}

	if !changed {
		return errors.New("nothing to change; pass at least one flag")
	}

	if err := settingsService.SaveClustering(clustering); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	cmd.Println("Settings saved.")
	return runSettingsShow(cmd, nil)
}
