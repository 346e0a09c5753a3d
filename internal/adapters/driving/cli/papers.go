package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/refbase-labs/refbase-cli/internal/core/domain"
)

var papersCmd = &cobra.Command{
	Use:   "papers",
	Short: "Manage the Base's paper library",
	Long: `Add, list and remove papers in the local Base.

Papers carry only the metadata used by clustering: title, authors,
venue and year. The full documents stay wherever they already live.`,
	RunE: runPapersList,
}

var papersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a paper to the Base",
	RunE:  runPapersAdd,
}

var papersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the Base's papers",
	RunE:  runPapersList,
}

var papersRemoveCmd = &cobra.Command{
	Use:   "remove <entry-id>",
	Short: "Remove a paper from the Base",
	Args:  cobra.ExactArgs(1),
	RunE:  runPapersRemove,
}

func init() {
	papersAddCmd.Flags().String("id", "", "entry ID (generated when omitted)")
	papersAddCmd.Flags().String("title", "", "paper title (required)")
	papersAddCmd.Flags().StringSlice("author", nil, "author name, repeatable")
	papersAddCmd.Flags().String("venue", "", "publication venue")
	papersAddCmd.Flags().Int("year", 0, "publication year")

	papersCmd.AddCommand(papersAddCmd)
	papersCmd.AddCommand(papersListCmd)
	papersCmd.AddCommand(papersRemoveCmd)
	rootCmd.AddCommand(papersCmd)
}

func runPapersAdd(cmd *cobra.Command, _ []string) error {
	if paperStore == nil {
		return errors.New("paper store not configured")
	}

	//nolint:errcheck // flags are defined in init
	entryID, _ := cmd.Flags().GetString("id")
	title, _ := cmd.Flags().GetString("title")
	authors, _ := cmd.Flags().GetStringSlice("author")
	venue, _ := cmd.Flags().GetString("venue")
	year, _ := cmd.Flags().GetInt("year")

	if entryID == "" {
		entryID = uuid.NewString()
	}

	paper := &domain.Paper{
		EntryID: entryID,
		Title:   title,
		Authors: authors,
		Venue:   venue,
		Year:    year,
		AddedAt: time.Now().UTC(),
	}

	if err := paperStore.SavePaper(cmd.Context(), paper); err != nil {
		return fmt.Errorf("adding paper: %w", err)
	}

	cmd.Printf("Added paper %s\n", entryID)
	return nil
}

func runPapersList(cmd *cobra.Command, _ []string) error {
	if paperStore == nil {
		return errors.New("paper store not configured")
	}

	papers, err := paperStore.ListPapers(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing papers: %w", err)
	}

	if len(papers) == 0 {
		cmd.Println("No papers in the Base. Add one with 'refbase papers add'.")
		return nil
	}

	cmd.Printf("%d papers\n\n", len(papers))
	for i := range papers {
		p := &papers[i]
		cmd.Printf("%s  %s", p.EntryID, p.Title)
		if p.Year > 0 {
			cmd.Printf(" (%d)", p.Year)
		}
		cmd.Println()
		if len(p.Authors) > 0 {
			cmd.Printf("    %s\n", joinAuthors(p.Authors))
		}
	}

	return nil
}

func runPapersRemove(cmd *cobra.Command, args []string) error {
	if paperStore == nil {
		return errors.New("paper store not configured")
	}

	entryID := args[0]
	if err := paperStore.DeletePaper(cmd.Context(), entryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no paper with entry ID %s", entryID)
		}
		return fmt.Errorf("removing paper: %w", err)
	}

	cmd.Printf("Removed paper %s\n", entryID)
	return nil
}

func joinAuthors(authors []string) string {
	const maxShown = 3
	if len(authors) <= maxShown {
		out := authors[0]
		for _, a := range authors[1:] {
			out += ", " + a
		}
		return out
	}
	return authors[0] + ", " + authors[1] + fmt.Sprintf(" and %d others", len(authors)-2)
}
