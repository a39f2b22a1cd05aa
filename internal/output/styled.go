package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/pranshuparmar/unhex/internal/proc"
	"github.com/pranshuparmar/unhex/pkg/model"
)

var (
	colorHeader  = lipgloss.Color("#5f5fd7") // Purple/Blue
	colorBorder  = lipgloss.Color("#585858") // Dark Gray
	colorListen  = lipgloss.Color("#22aa22") // Green
	colorWarn    = lipgloss.Color("#ffaf5f") // Orange-amber
	colorUnknown = lipgloss.Color("#767676") // Dimmed Gray
)

const stateCol = 3

// RenderStyled writes a bordered table. With colorEnabled the state column
// is green for LISTEN and amber for lingering states.
func RenderStyled(w io.Writer, sockets []model.TCPSocket, colorEnabled bool) error {
	r := lipgloss.NewRenderer(w)
	cell := r.NewStyle().Padding(0, 1)
	header := cell
	border := r.NewStyle()

	if colorEnabled {
		header = header.Bold(true).Foreground(colorHeader)
		border = border.Foreground(colorBorder)
	}

	rows := make([][]string, 0, len(sockets))
	for _, s := range sockets {
		rows = append(rows, []string{
			s.Slot,
			s.Local.String(),
			s.Remote.String(),
			string(s.State),
			s.UID,
			s.Inode,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(border).
		Headers("SL", "Local Address", "Remote Address", "State", "UID", "Inode").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if !colorEnabled || col != stateCol || row < 0 || row >= len(sockets) {
				return cell
			}
			switch state := sockets[row].State; {
			case state == model.StateListen:
				return cell.Foreground(colorListen)
			case proc.IsProblematicState(state):
				return cell.Foreground(colorWarn)
			case state == model.StateUnknown:
				return cell.Foreground(colorUnknown)
			}
			return cell
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
