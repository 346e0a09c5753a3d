package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/refbase-labs/refbase-cli/internal/adapters/driving/tui"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review the current category proposals interactively",
	Long: `Launch the interactive terminal interface to browse the current
proposal batch.

Controls:
  ↑/k, ↓/j - Navigate proposals
  Enter    - Toggle proposal detail
  r        - Reload the batch
  q        - Quit`,
	RunE: runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, _ []string) error {
	// Panic recovery to get stack traces out of the alt screen
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in review UI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := &tui.Ports{Proposals: proposalService}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create review UI: %w", err)
	}

	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("review UI error: %w", err)
	}

	return nil
}
