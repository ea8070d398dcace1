package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ecotrust/arbcarbon/pkg/species"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// speciesListModel is the bubbletea model for the interactive species
// browser. Left/right cycles the assessment region, enter selects a species
// for the detail view.
type speciesListModel struct {
	Species  []*species.Species
	Region   species.Region
	Cursor   int
	Selected *species.Species
	Height   int
	Offset   int
}

func newSpeciesListModel(all []*species.Species, region species.Region) speciesListModel {
	return speciesListModel{
		Species: all,
		Region:  region,
		Height:  15,
	}
}

func (m speciesListModel) Init() tea.Cmd {
	return nil
}

func (m speciesListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Species)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "left", "h":
			m.Region = cycleRegion(m.Region, -1)
		case "right", "l":
			m.Region = cycleRegion(m.Region, 1)
		case "enter":
			m.Selected = m.Species[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m speciesListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Species Registry"))
	b.WriteString("  ")
	b.WriteString(StyleHighlight.Render(string(m.Region)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ←/→ region  ⏎ detail  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Species) {
		end = len(m.Species)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		sp := m.Species[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		vol, bark, branch := "—", "—", "—"
		if asn, err := sp.Assignment(m.Region); err == nil {
			vol = asn.Volume
			bark = fmt.Sprintf("BB_%d", asn.Bark)
			branch = branchLabel(asn.Branch)
		}

		rows = append(rows, []string{
			cursor,
			fmt.Sprintf("%d", sp.FIA),
			sp.CommonName,
			sp.Kind.String(),
			fmt.Sprintf("%.1f", sp.Density),
			vol, bark, branch,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "FIA", "Common Name", "Kind", "Density", "Vol", "Bark", "Branch").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Species) {
				return lipgloss.NewStyle()
			}
			sp := m.Species[actualIdx]
			_, err := sp.Assignment(m.Region)
			assigned := err == nil
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if isCurrent {
				if assigned {
					return base.Foreground(colorGreen).Bold(true)
				}
				return base.Foreground(colorDim).Bold(true)
			}
			if !assigned {
				return base.Foreground(colorDim)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Species))))

	return b.String()
}

// cycleRegion steps through the assessment regions in order.
func cycleRegion(r species.Region, step int) species.Region {
	for i, candidate := range species.Regions {
		if candidate == r {
			next := (i + step + len(species.Regions)) % len(species.Regions)
			return species.Regions[next]
		}
	}
	return species.Regions[0]
}
