package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/graphscribe/graphscribe/pkg/describe"
	"github.com/graphscribe/graphscribe/pkg/graph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command for interactive exploration.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [file]",
		Short: "Interactively browse a graph's entry points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := graph.ReadGraphFile(args[0])
			if err != nil {
				return err
			}

			entries := describe.EntryNodes(g)
			if len(entries) == 0 {
				// State machines and malformed graphs have nothing to
				// browse; fall through to the flat transcript.
				printWarning("No entry points to browse in %q", g.Name)
				printNewline()
				fmt.Println(describe.Describe(g))
				return nil
			}

			m := NewEntryListModel(g, entries)
			p := tea.NewProgram(m)
			if _, err := p.Run(); err != nil {
				return err
			}
			return nil
		},
	}
}

// =============================================================================
// EntryListModel - Interactive entry point browser
// =============================================================================

// EntryListModel is the bubbletea model for browsing entry points. It shows
// the entry list first and switches to the transcript of the selected entry
// on enter.
type EntryListModel struct {
	Graph   graph.Graph
	Entries []*graph.Node

	Cursor  int
	Viewing bool
	Lines   []string // transcript of the selected entry
	Scroll  int
	Height  int
}

// NewEntryListModel creates a browser over the graph's entry points.
func NewEntryListModel(g graph.Graph, entries []*graph.Node) EntryListModel {
	return EntryListModel{Graph: g, Entries: entries, Height: 20}
}

func (m EntryListModel) Init() tea.Cmd {
	return nil
}

func (m EntryListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.Viewing {
				m.Viewing = false
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.Viewing {
				if m.Scroll > 0 {
					m.Scroll--
				}
			} else if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Viewing {
				if m.Scroll < len(m.Lines)-m.Height {
					m.Scroll++
				}
			} else if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
			}
		case "enter":
			if !m.Viewing {
				entry := m.Entries[m.Cursor]
				m.Lines = strings.Split(describe.DescribeEntry(m.Graph, entry), "\n")
				m.Scroll = 0
				m.Viewing = true
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m EntryListModel) View() string {
	if m.Viewing {
		return m.transcriptView()
	}
	return m.listView()
}

func (m EntryListModel) listView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s (%d nodes)", m.Graph.Name, len(m.Graph.Nodes))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ view  q quit"))
	b.WriteString("\n\n")

	for i, entry := range m.Entries {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%son %s  %s", cursor, describe.EntryLabel(entry), listDimStyle.Render(entry.NodeType))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))

	return b.String()
}

func (m EntryListModel) transcriptView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("on %s", describe.EntryLabel(m.Entries[m.Cursor]))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ scroll  esc back  q quit"))
	b.WriteString("\n\n")

	end := m.Scroll + m.Height
	if end > len(m.Lines) {
		end = len(m.Lines)
	}
	for _, line := range m.Lines[m.Scroll:end] {
		b.WriteString(listNormalStyle.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d-%d/%d]", m.Scroll+1, end, len(m.Lines))))

	return b.String()
}
