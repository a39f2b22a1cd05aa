package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m MainModel) View() string {
	if m.quitting {
		return ""
	}

	outerStyle := baseStyle.
		Width(m.width-2).
		Height(m.height-2).
		Padding(0, 1)

	status := "Mode: Navigation (Press / to search)"
	if m.input.Focused() {
		status = "Mode: Searching (Press Esc/Enter to stop)"
	}

	detailBorderColor := lipgloss.Color("#585858") // Dark Gray
	detailContainerStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(detailBorderColor).
		PaddingLeft(2).
		Height(m.table.Height())

	detailHeader := "Details"
	if s, ok := m.selected(); ok {
		detailHeader = fmt.Sprintf("SL %s", s.Slot)
	}
	if !m.viewport.AtTop() && !m.viewport.AtBottom() {
		detailHeader += " ↕"
	} else if !m.viewport.AtTop() {
		detailHeader += " ↑"
	} else if !m.viewport.AtBottom() {
		detailHeader += " ↓"
	}

	detailHeaderStyle := tableHeaderStyle.
		Width(m.viewport.Width).
		Foreground(lipgloss.Color("#bcbcbc")). // Light Gray
		BorderForeground(detailBorderColor)

	availableWidth := m.width - 6
	listPaneWidth := int(float64(availableWidth) * 0.7)
	if listPaneWidth < 10 {
		listPaneWidth = 10
	}

	mainContent := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(listPaneWidth).Render(m.table.View()),
		detailContainerStyle.Render(
			lipgloss.JoinVertical(lipgloss.Left,
				detailHeaderStyle.Render(detailHeader),
				lipgloss.NewStyle().PaddingLeft(1).Render(m.viewport.View()),
			),
		),
	)

	helpText := fmt.Sprintf("Total: %d/%d | s/l/r/t/u/i: Sort | PgUp/PgDn: Details | Esc/q: Quit | Up/Down: Scroll",
		len(m.filtered), len(m.sockets))
	footerContent := helpText
	if m.source != "" {
		gap := m.width - 6 - lipgloss.Width(helpText) - lipgloss.Width(m.source)
		if gap > 0 {
			footerContent = helpText + strings.Repeat(" ", gap) + m.source
		}
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render("tcpdecode"),
		sourceStyle.Render(m.source),
	)

	return outerStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			lipgloss.NewStyle().Height(1).Render(""),
			lipgloss.NewStyle().MarginBottom(1).PaddingLeft(1).Render(status),
			lipgloss.NewStyle().MarginBottom(1).PaddingLeft(1).Render(m.input.View()),
			mainContent,
			lipgloss.NewStyle().Height(1).Render(""),
			footerStyle.Width(m.width-4).Render(footerContent),
		),
	)
}
