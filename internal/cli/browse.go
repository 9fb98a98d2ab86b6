package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/landscape/pkg/ktn"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the "browse" command for interactive inspection.
func (c *CLI) browseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse minima interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("path")
			suffix, _ := cmd.Flags().GetString("suffix")

			n, err := c.loadNetwork(path, suffix)
			if err != nil {
				return err
			}
			if n.NMinima() == 0 {
				printInfo("network is empty")
				return nil
			}
			_, err = tea.NewProgram(newMinimaModel(n)).Run()
			return err
		},
	}
	networkFlags(cmd)
	return cmd
}

// =============================================================================
// MinimaModel - Interactive minima browser
// =============================================================================

// MinimaModel is the bubbletea model listing minima by identity with
// energy and degree, highest rows scrolling with the cursor.
type MinimaModel struct {
	network *ktn.Network
	Cursor  int
	Height  int
	Offset  int
}

func newMinimaModel(n *ktn.Network) MinimaModel {
	return MinimaModel{
		network: n,
		Height:  15,
	}
}

func (m MinimaModel) Init() tea.Cmd {
	return nil
}

func (m MinimaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < m.network.NMinima()-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
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

func (m MinimaModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Minima"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > m.network.NMinima() {
		end = m.network.NMinima()
	}
	for id := m.Offset; id < end; id++ {
		energy, _ := m.network.MinimumEnergy(id)
		degree := len(m.network.Neighbors(id))
		line := fmt.Sprintf("%4d  e=%-14.6f  %d neighbours", id, energy, degree)
		if id == m.Cursor {
			b.WriteString(listSelectedStyle.Render("> " + line))
		} else {
			b.WriteString(listNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	coords, err := m.network.MinimumCoords(m.Cursor)
	if err == nil {
		fields := make([]string, len(coords))
		for i, x := range coords {
			fields[i] = fmt.Sprintf("%.4f", x)
		}
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("coords: " + strings.Join(fields, " ")))
		b.WriteString("\n")
	}
	return b.String()
}
