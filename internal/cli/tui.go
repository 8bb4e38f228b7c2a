package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/linkdown/pkg/topology"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// EdgeListModel - Interactive link selection
// =============================================================================

// EdgeSelection holds the result of the edge selection.
type EdgeSelection struct {
	Edge topology.Edge
	// Side is 0 when the first endpoint was chosen, 1 for the second.
	Side int
}

// Endpoint returns the chosen endpoint of the selected edge.
func (s EdgeSelection) Endpoint() topology.Endpoint {
	if s.Side == 1 {
		return s.Edge.Node2
	}
	return s.Edge.Node1
}

// EdgeListModel is the bubbletea model for choosing the link to draw off.
// Enter selects the highlighted endpoint of the current edge; tab switches
// between the two endpoints.
type EdgeListModel struct {
	Edges    []topology.Edge
	Cursor   int
	Side     int
	Selected *EdgeSelection
	Height   int
	Offset   int
}

// NewEdgeListModel creates a new edge list model.
func NewEdgeListModel(edges []topology.Edge) EdgeListModel {
	return EdgeListModel{
		Edges:  edges,
		Height: 15,
	}
}

func (m EdgeListModel) Init() tea.Cmd {
	return nil
}

func (m EdgeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Edges)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "tab", "left", "right", "h", "l":
			m.Side = 1 - m.Side
		case "enter":
			if len(m.Edges) == 0 {
				return m, nil
			}
			m.Selected = &EdgeSelection{Edge: m.Edges[m.Cursor], Side: m.Side}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m EdgeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Link to Draw Off"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⇥ switch end  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Edges))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Edges[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, fmt.Sprintf("%02d", i+1), e.Node1.String(), e.Node2.String()})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "No.", "Node 1", "Node 2").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			isCurrent := m.Offset+row == m.Cursor
			switch {
			case isCurrent && col == 2+m.Side:
				return lipgloss.NewStyle().Foreground(colorRed).Bold(true)
			case isCurrent:
				return lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
			case col == 1:
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	if len(m.Edges) > 0 {
		ep := EdgeSelection{Edge: m.Edges[m.Cursor], Side: m.Side}.Endpoint()
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] draw off ", m.Cursor+1, len(m.Edges))))
		b.WriteString(StyleHighlight.Render(ep.String()))
	}

	return b.String()
}

// pickEndpoint lets the user choose an endpoint of one of edges. ok is
// false when the user quits without choosing.
func pickEndpoint(edges []topology.Edge) (ep topology.Endpoint, ok bool, err error) {
	if len(edges) == 0 {
		printWarning("Topology has no links")
		return topology.Endpoint{}, false, nil
	}

	p := tea.NewProgram(NewEdgeListModel(edges))
	finalModel, err := p.Run()
	if err != nil {
		return topology.Endpoint{}, false, err
	}

	fm, ok := finalModel.(EdgeListModel)
	if !ok || fm.Selected == nil {
		return topology.Endpoint{}, false, nil
	}
	return fm.Selected.Endpoint(), true, nil
}
