package output

import (
	"fmt"
	"io"

	"github.com/pranshuparmar/unhex/pkg/model"
)

const rowFormat = "%-4s %-22s %-22s %-13s %-6s %s\n"

// RenderTable writes the fixed-width listing, one row per socket in input
// order. Values wider than their column are not truncated.
func RenderTable(w io.Writer, sockets []model.TCPSocket) error {
	if _, err := fmt.Fprintf(w, rowFormat, "SL", "Local Address", "Remote Address", "State", "UID", "Inode"); err != nil {
		return err
	}
	for _, s := range sockets {
		_, err := fmt.Fprintf(w, rowFormat,
			s.Slot,
			s.Local.String(),
			s.Remote.String(),
			string(s.State),
			s.UID,
			s.Inode,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
