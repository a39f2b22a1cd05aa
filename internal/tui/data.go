package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/muesli/reflow/wrap"
	"github.com/pranshuparmar/unhex/internal/proc"
	"github.com/pranshuparmar/unhex/pkg/model"
)

var sortKeys = []string{"sl", "local", "remote", "state", "uid", "inode"}

func baseColumns() []table.Column {
	return []table.Column{
		{Title: "SL", Width: 6},
		{Title: "Local Address", Width: 22},
		{Title: "Remote Address", Width: 22},
		{Title: "State", Width: 13},
		{Title: "UID", Width: 8},
		{Title: "Inode", Width: 10},
	}
}

func (m *MainModel) getColumns() []table.Column {
	cols := baseColumns()
	for i, key := range sortKeys {
		if m.sortCol != key {
			continue
		}
		if m.sortDesc {
			cols[i].Title += " ↓"
		} else {
			cols[i].Title += " ↑"
		}
	}
	return cols
}

// toggleSort sorts by key, flipping direction when key is already active.
func (m *MainModel) toggleSort(key string) {
	if m.sortCol == key {
		m.sortDesc = !m.sortDesc
	} else {
		m.sortCol = key
		m.sortDesc = false
	}
	m.updateTable()
}

func lessNumeric(a, b string) bool {
	x, errX := strconv.ParseUint(a, 10, 64)
	y, errY := strconv.ParseUint(b, 10, 64)
	if errX != nil || errY != nil {
		return a < b
	}
	return x < y
}

func lessEndpoint(a, b model.Endpoint) bool {
	if c := a.Addr.Compare(b.Addr); c != 0 {
		return c < 0
	}
	return a.Port < b.Port
}

func (m *MainModel) sortFiltered() {
	if m.sortCol == "" {
		return
	}
	sort.SliceStable(m.filtered, func(i, j int) bool {
		a, b := m.filtered[i], m.filtered[j]
		if m.sortDesc {
			a, b = b, a
		}
		switch m.sortCol {
		case "local":
			return lessEndpoint(a.Local, b.Local)
		case "remote":
			return lessEndpoint(a.Remote, b.Remote)
		case "state":
			return a.State < b.State
		case "uid":
			return lessNumeric(a.UID, b.UID)
		case "inode":
			return lessNumeric(a.Inode, b.Inode)
		default:
			return lessNumeric(a.Slot, b.Slot)
		}
	})
}

func matches(s model.TCPSocket, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(s.Slot, filter) ||
		strings.Contains(s.Local.String(), filter) ||
		strings.Contains(s.Remote.String(), filter) ||
		strings.Contains(strings.ToLower(string(s.State)), filter) ||
		strings.Contains(s.UID, filter) ||
		strings.Contains(s.Inode, filter)
}

func (m *MainModel) updateTable() {
	filter := strings.ToLower(strings.TrimSpace(m.input.Value()))

	m.filtered = m.filtered[:0]
	for _, s := range m.sockets {
		if matches(s, filter) {
			m.filtered = append(m.filtered, s)
		}
	}
	m.sortFiltered()

	existingCols := m.table.Columns()
	newCols := m.getColumns()
	for i := range existingCols {
		if i < len(newCols) {
			newCols[i].Width = existingCols[i].Width
		}
	}
	m.table.SetColumns(newCols)

	rows := make([]table.Row, 0, len(m.filtered))
	for _, s := range m.filtered {
		rows = append(rows, table.Row{
			s.Slot,
			s.Local.String(),
			s.Remote.String(),
			string(s.State),
			s.UID,
			s.Inode,
		})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
	m.updateDetailViewport()
}

func (m *MainModel) selected() (model.TCPSocket, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.filtered) {
		return model.TCPSocket{}, false
	}
	return m.filtered[i], true
}

func (m *MainModel) updateDetailViewport() {
	s, ok := m.selected()
	if !ok {
		m.viewport.SetContent("")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Slot:"), s.Slot)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Local:"), s.Local)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Remote:"), s.Remote)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("UID:"), s.UID)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Inode:"), s.Inode)
	if len(s.PIDs) > 0 {
		pids := make([]string, len(s.PIDs))
		for i, pid := range s.PIDs {
			pids[i] = strconv.Itoa(pid)
		}
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("PIDs:"), strings.Join(pids, ", "))
	}

	state := string(s.State)
	if proc.IsProblematicState(s.State) {
		state = warnStyle.Render(state)
	}
	fmt.Fprintf(&b, "\n%s %s\n", labelStyle.Render("State:"), state)

	explanation, workaround := proc.ExplainState(s.State)
	fmt.Fprintf(&b, "%s\n", explanation)
	if workaround != "" {
		fmt.Fprintf(&b, "\n%s\n%s\n", labelStyle.Render("Workaround:"), workaround)
	}

	content := b.String()
	if m.viewport.Width > 0 {
		content = wrap.String(content, m.viewport.Width)
	}
	m.viewport.SetContent(content)
}
