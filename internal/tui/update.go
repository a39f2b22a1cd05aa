package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var sortKeyBindings = map[string]string{
	"s": "sl",
	"l": "local",
	"r": "remote",
	"t": "state",
	"u": "uid",
	"i": "inode",
}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		availableWidth := msg.Width - 6
		if availableWidth < 0 {
			availableWidth = 0
		}

		listHeight := msg.Height - 11
		if listHeight < 5 {
			listHeight = 5
		}

		listPaneWidth := int(float64(availableWidth) * 0.7)
		if listPaneWidth < 10 {
			listPaneWidth = 10
		}

		m.table.SetWidth(listPaneWidth - 4)
		m.table.SetHeight(listHeight)

		detailWidth := availableWidth - listPaneWidth - 4
		if detailWidth < 10 {
			detailWidth = 10
		}
		m.viewport.Width = detailWidth
		m.viewport.Height = listHeight - 2
		m.updateDetailViewport()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

		if m.input.Focused() {
			if msg.String() == "enter" || msg.String() == "esc" {
				m.input.Blur()
				return m, nil
			}
			var inputCmd tea.Cmd
			m.input, inputCmd = m.input.Update(msg)
			m.table.SetCursor(0)
			m.updateTable()
			return m, inputCmd
		}

		switch msg.String() {
		case "/":
			m.input.Focus()
			return m, textinput.Blink
		case "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "pgdown", "pgup":
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		if key, ok := sortKeyBindings[msg.String()]; ok {
			m.toggleSort(key)
			return m, nil
		}
	}

	m.table, cmd = m.table.Update(msg)
	m.updateDetailViewport()
	return m, cmd
}
