package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
)

var proposeCmd = &cobra.Command{
	Use:   "propose",
	Short: "Cluster the Base's papers into category proposals",
	Long: `Runs one clustering pass over the Base's papers and prints the
resulting category proposals, sorted by confidence.

The run is read-only unless --store is given, in which case the outcome
becomes the current proposal batch. With too few papers or when the run
exceeds its timeout, the result is simply empty.`,
	RunE: runPropose,
}

func init() {
	proposeCmd.Flags().Int("max-clusters", 0, "cap on the number of clusters (default from settings)")
	proposeCmd.Flags().Int("min-cluster-size", 0, "smallest cluster surfaced as a proposal (default from settings)")
	proposeCmd.Flags().Bool("store", false, "persist the run as the current proposal batch")
	proposeCmd.Flags().Bool("json", false, "print proposals as JSON")
	rootCmd.AddCommand(proposeCmd)
}

func runPropose(cmd *cobra.Command, _ []string) error {
	if proposalService == nil {
		return errors.New("proposal service not configured")
	}

	//nolint:errcheck // flags are defined in init
	maxClusters, _ := cmd.Flags().GetInt("max-clusters")
	minClusterSize, _ := cmd.Flags().GetInt("min-cluster-size")
	store, _ := cmd.Flags().GetBool("store")
	asJSON, _ := cmd.Flags().GetBool("json")

	opts := domain.DefaultClusteringSettings().Options()
	if settingsService != nil {
		opts = settingsService.Clustering().Options()
	}
	if maxClusters > 0 {
		opts.MaxClusters = maxClusters
	}
	if minClusterSize > 0 {
		opts.MinClusterSize = minClusterSize
	}

	var proposals []domain.CategoryProposalPreview
	if store {
		batch, err := proposalService.GenerateAndStore(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("generating proposals: %w", err)
		}
		proposals = batch.Proposals
	} else {
		var err error
		proposals, err = proposalService.Generate(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("generating proposals: %w", err)
		}
	}

	if asJSON {
		data, err := json.MarshalIndent(proposals, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding proposals: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(proposals) == 0 {
		cmd.Println("No proposals. The Base may hold too few papers, or the run timed out.")
		return nil
	}

	cmd.Printf("%d proposals\n\n", len(proposals))
	for i := range proposals {
		printProposal(cmd, &proposals[i])
	}

	if store {
		cmd.Println("Stored as the current batch. Review with 'refbase review'.")
	}

	return nil
}

func printProposal(cmd *cobra.Command, p *domain.CategoryProposalPreview) {
	confidence := "-"
	if p.Definition.Confidence != nil {
		confidence = fmt.Sprintf("%.3f", *p.Definition.Confidence)
	}

	cmd.Printf("%s  (confidence %s, %d papers)\n", p.Definition.Name, confidence, len(p.MemberEntryIDs))
	cmd.Printf("    %s\n", p.Definition.Description)
	cmd.Printf("    %s\n", p.Narrative.Summary)
	cmd.Println()
}
