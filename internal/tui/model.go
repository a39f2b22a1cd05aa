package tui

import (
	"os"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/pranshuparmar/unhex/pkg/model"
)

var (
	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#585858")) // Dark Gray

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")). // White
			Background(lipgloss.Color("#7D56F4")). // Purple
			Padding(0, 1)

	sourceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")). // White
			Background(lipgloss.Color("#767676")). // Dimmed Gray
			Padding(0, 1)

	tableHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#5f5fd7")). // Purple/Blue
				Bold(true).
				Border(lipgloss.NormalBorder(), false, false, true, false).
				BorderForeground(lipgloss.Color("#585858")). // Dark Gray
				Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5f5fd7")). // Purple/Blue
			Bold(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#767676")). // Dimmed Gray
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(lipgloss.Color("#585858")). // Dark Gray
			Padding(0, 1).
			Width(100)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#af87ff")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffaf5f")). // Orange-amber
			Bold(true)
)

// MainModel browses a fixed snapshot of decoded sockets.
type MainModel struct {
	table    table.Model
	input    textinput.Model
	viewport viewport.Model
	sockets  []model.TCPSocket
	filtered []model.TCPSocket
	source   string
	width    int
	height   int
	quitting bool

	sortCol  string // "" keeps table order
	sortDesc bool
}

func InitialModel(sockets []model.TCPSocket, source string) MainModel {
	t := table.New(
		table.WithColumns(baseColumns()),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	s := table.DefaultStyles()
	s.Header = tableHeaderStyle.BorderForeground(lipgloss.Color("#585858"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#ffffaf")). // Light Yellow
		Background(lipgloss.Color("#5f00d7")). // Purple
		Bold(false)
	t.SetStyles(s)

	ti := textinput.New()
	ti.Placeholder = "Search SL, Address, State, UID, Inode..."
	ti.CharLimit = 156
	ti.Width = 50
	ti.Prompt = "> "
	ti.PromptStyle = promptStyle
	ti.Blur()

	vp := viewport.New(0, 0)
	vp.YPosition = 0

	m := MainModel{
		table:    t,
		input:    ti,
		viewport: vp,
		sockets:  sockets,
		source:   source,
	}
	m.updateTable()
	return m
}

// Start runs the browser until the user quits.
func Start(sockets []model.TCPSocket, source string) error {
	if os.Getenv("COLORTERM") == "" {
		os.Setenv("COLORTERM", "truecolor") //nolint:errcheck
	}

	p := tea.NewProgram(InitialModel(sockets, source), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "run tui")
	}
	return nil
}

func (m MainModel) Init() tea.Cmd {
	return textinput.Blink
}
