package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/refbase-labs/refbase-cli/internal/adapters/driving/tui/components/list"
	"github.com/refbase-labs/refbase-cli/internal/adapters/driving/tui/messages"
	"github.com/refbase-labs/refbase-cli/internal/adapters/driving/tui/styles"
	"github.com/refbase-labs/refbase-cli/internal/core/domain"
)

// App is the proposal review application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// proposalList is the navigable proposal list component.
	proposalList *list.ProposalList

	// spinner animates while the batch loads.
	spinner spinner.Model

	// loading is true until the first BatchLoaded arrives.
	loading bool

	// batch is the loaded proposal batch, nil until loaded.
	batch *domain.CategoryProposalBatch

	// showDetail toggles the detail pane for the selected proposal.
	showDetail bool

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new review application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Subtitle

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		proposalList: list.NewProposalList(s),
		spinner:      sp,
		loading:      true,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It loads the current proposal batch when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("refbase - Proposal Review"),
		a.spinner.Tick,
		a.loadBatch,
	)
}

// loadBatch fetches the current proposal batch.
func (a *App) loadBatch() tea.Msg {
	batch, err := a.ports.Proposals.LatestBatch(a.ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return messages.BatchLoaded{}
	}
	return messages.BatchLoaded{Batch: batch, Err: err}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.proposalList.SetDimensions(msg.Width, msg.Height-6)
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return a, tea.Quit
		case "enter":
			a.showDetail = !a.showDetail
			return a, nil
		case "r":
			a.err = nil
			a.loading = true
			return a, tea.Batch(a.spinner.Tick, a.loadBatch)
		}
		var cmd tea.Cmd
		a.proposalList, cmd = a.proposalList.Update(msg)
		return a, cmd

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case messages.BatchLoaded:
		a.loading = false
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.batch = msg.Batch
		if msg.Batch != nil {
			a.proposalList.SetProposals(msg.Batch.Proposals)
		}
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

// View implements tea.Model.
// It renders the review screen as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Category Proposals"))
	b.WriteString("\n")
	if a.loading {
		b.WriteString(a.spinner.View())
		b.WriteString(a.styles.Muted.Render(" loading batch..."))
	} else if a.batch != nil {
		b.WriteString(a.styles.Muted.Render(fmt.Sprintf(
			"Batch %s  generated %s  (%dms)",
			a.batch.BatchID,
			a.batch.GeneratedAt.Format("2006-01-02 15:04"),
			a.batch.DurationMS,
		)))
	} else {
		b.WriteString(a.styles.Muted.Render("No proposal batch yet. Run 'refbase propose --store' first."))
	}
	b.WriteString("\n\n")

	if a.err != nil {
		b.WriteString(a.styles.Error.Render("Error: " + a.err.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(a.proposalList.View())
	b.WriteString("\n")

	if a.showDetail {
		if p := a.proposalList.SelectedProposal(); p != nil {
			b.WriteString("\n")
			b.WriteString(a.viewDetail(p))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("j/k, ↑/↓ navigate · enter detail · r reload · q quit"))

	return b.String()
}

// viewDetail renders the detail pane for one proposal.
func (a *App) viewDetail(p *domain.CategoryProposalPreview) string {
	lines := []string{
		a.styles.Subtitle.Render(p.Definition.Name),
		a.styles.Normal.Render(p.Definition.Description),
	}

	if p.Definition.Confidence != nil {
		lines = append(lines, a.styles.Normal.Render(
			fmt.Sprintf("Confidence: %.3f", *p.Definition.Confidence)))
	}
	lines = append(lines,
		a.styles.Normal.Render(fmt.Sprintf("Members: %d", len(p.MemberEntryIDs))),
		a.styles.Muted.Render(p.Narrative.Summary),
	)

	if len(p.Definition.RepresentativePapers) > 0 {
		lines = append(lines, a.styles.Muted.Render(
			"Representative: "+strings.Join(p.Definition.RepresentativePapers, ", ")))
	}

	return a.styles.Border.Render(strings.Join(lines, "\n"))
}

// Run starts the review application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Batch returns the loaded proposal batch.
func (a *App) Batch() *domain.CategoryProposalBatch {
	return a.batch
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.proposalList.SetDimensions(width, height-6)
}
