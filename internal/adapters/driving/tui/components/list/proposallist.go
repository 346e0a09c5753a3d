// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/refbase-labs/refbase-cli/internal/adapters/driving/tui/styles"
	"github.com/refbase-labs/refbase-cli/internal/core/domain"
)

// ProposalList displays category proposals in a navigable list.
type ProposalList struct {
	proposals []domain.CategoryProposalPreview
	selected  int
	styles    *styles.Styles
	width     int
	height    int
}

// NewProposalList creates a new proposal list component.
func NewProposalList(s *styles.Styles) *ProposalList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ProposalList{
		proposals: nil,
		selected:  0,
		styles:    s,
		width:     80,
		height:    10,
	}
}

// Init initialises the proposal list.
func (l *ProposalList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *ProposalList) Update(msg tea.Msg) (*ProposalList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			l.MoveUp()
		case tea.KeyDown:
			l.MoveDown()
		default:
		}
		switch msg.String() {
		case "k":
			l.MoveUp()
		case "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the proposal list.
func (l *ProposalList) View() string {
	if len(l.proposals) == 0 {
		return l.styles.Muted.Render("No proposals")
	}

	lines := make([]string, 0, len(l.proposals)*2+2)

	header := l.styles.Subtitle.Render(fmt.Sprintf("Proposals (%d)", len(l.proposals)))
	lines = append(lines, header, "")

	// Each proposal takes two lines (name + summary).
	visibleCount := (l.height - 4) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if l.selected >= visibleCount {
		start = l.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(l.proposals) {
		end = len(l.proposals)
	}

	for i := start; i < end; i++ {
		lines = append(lines, l.renderProposal(i, &l.proposals[i]))
	}

	return strings.Join(lines, "\n")
}

// renderProposal formats a single proposal with its summary line.
func (l *ProposalList) renderProposal(index int, p *domain.CategoryProposalPreview) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	name := p.Definition.Name
	if name == "" {
		name = "(Unnamed)"
	}

	maxNameLen := l.width - 24
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen-3] + "..."
	}

	confidence := "-"
	if p.Definition.Confidence != nil {
		confidence = fmt.Sprintf("%.2f", *p.Definition.Confidence)
	}
	members := fmt.Sprintf("%d papers", len(p.MemberEntryIDs))

	var titleLine string
	if index == l.selected {
		titleLine = l.styles.Selected.Render(
			fmt.Sprintf("%s%-*s  %s  %s", indicator, maxNameLen, name, confidence, members))
	} else {
		titleLine = l.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxNameLen, name)) +
			l.styles.Muted.Render(confidence+"  "+members)
	}

	summary := p.Definition.Description
	maxSummaryLen := l.width - 6
	if maxSummaryLen < 20 {
		maxSummaryLen = 20
	}
	if len(summary) > maxSummaryLen {
		summary = summary[:maxSummaryLen-3] + "..."
	}

	return titleLine + "\n" + l.styles.Muted.Render("    "+summary)
}

// SetProposals updates the list contents and resets the selection.
func (l *ProposalList) SetProposals(proposals []domain.CategoryProposalPreview) {
	l.proposals = proposals
	l.selected = 0
}

// Proposals returns the current proposals.
func (l *ProposalList) Proposals() []domain.CategoryProposalPreview {
	return l.proposals
}

// Selected returns the index of the selected proposal.
func (l *ProposalList) Selected() int {
	return l.selected
}

// SelectedProposal returns the currently selected proposal, or nil if none.
func (l *ProposalList) SelectedProposal() *domain.CategoryProposalPreview {
	if len(l.proposals) == 0 || l.selected < 0 || l.selected >= len(l.proposals) {
		return nil
	}
	return &l.proposals[l.selected]
}

// MoveUp moves selection up.
func (l *ProposalList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *ProposalList) MoveDown() {
	if l.selected < len(l.proposals)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *ProposalList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of proposals.
func (l *ProposalList) Count() int {
	return len(l.proposals)
}

// IsEmpty returns whether the list is empty.
func (l *ProposalList) IsEmpty() bool {
	return len(l.proposals) == 0
}
