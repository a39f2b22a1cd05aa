package proc

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"net/netip"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/pranshuparmar/unhex/pkg/model"
)

// DefaultTCPTable is the kernel's IPv4 TCP socket table.
const DefaultTCPTable = "/proc/net/tcp"

// ErrMalformedRow is returned for a data row that cannot be decoded.
var ErrMalformedRow = errors.New("malformed row")

// minColumns covers every column read from a row (inode is index 9).
const minColumns = 10

// RowError reports where a row failed to decode.
type RowError struct {
	Line  int // 1-based, header is line 1
	Field string
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Field, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// ParseTCPTable decodes a /proc/net/tcp style table. The first line is the
// header and is always skipped. Decoding stops at the first malformed row.
func ParseTCPTable(r io.Reader) ([]model.TCPSocket, error) {
	var sockets []model.TCPSocket
	err := ScanTCPTable(r, func(s model.TCPSocket, rowErr error) error {
		if rowErr != nil {
			return rowErr
		}
		sockets = append(sockets, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sockets, nil
}

// ScanTCPTable calls fn for every data row in input order, passing either the
// decoded socket or the row's *RowError. Scanning stops when fn returns an
// error, and that error is returned. Blank lines are ignored.
func ScanTCPTable(r io.Reader, fn func(model.TCPSocket, error) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Scan() // skip header

	line := 1
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		s, err := ParseTCPRow(text)
		if err != nil {
			var rowErr *RowError
			if errors.As(err, &rowErr) {
				rowErr.Line = line
			}
		}
		if err := fn(s, err); err != nil {
			return err
		}
	}
	return errors.Wrap(scanner.Err(), "read socket table")
}

// ParseTCPRow decodes one data row. The returned error is a *RowError
// wrapping ErrMalformedRow with Line left at zero.
func ParseTCPRow(text string) (model.TCPSocket, error) {
	fields := strings.Fields(text)
	if len(fields) < minColumns {
		return model.TCPSocket{}, rowError("columns",
			errors.Errorf("want at least %d, got %d", minColumns, len(fields)))
	}

	local, err := parseEndpoint(fields[1])
	if err != nil {
		return model.TCPSocket{}, rowError("local_address", err)
	}
	remote, err := parseEndpoint(fields[2])
	if err != nil {
		return model.TCPSocket{}, rowError("rem_address", err)
	}

	return model.TCPSocket{
		Slot:   strings.TrimSuffix(fields[0], ":"),
		Local:  local,
		Remote: remote,
		State:  StateFromHex(fields[3]),
		UID:    fields[7],
		Inode:  fields[9],
	}, nil
}

func rowError(field string, err error) *RowError {
	return &RowError{Field: field, Err: errors.Wrap(ErrMalformedRow, err.Error())}
}

// parseEndpoint decodes "0100007F:1F90" into 127.0.0.1:8080.
func parseEndpoint(raw string) (model.Endpoint, error) {
	ipHex, portHex, ok := strings.Cut(raw, ":")
	if !ok {
		return model.Endpoint{}, errors.Errorf("%q has no port", raw)
	}

	addr, err := parseIPv4(ipHex)
	if err != nil {
		return model.Endpoint{}, err
	}

	port, err := strconv.ParseUint(portHex, 16, 16)
	if err != nil {
		return model.Endpoint{}, errors.Errorf("port %q is not 16-bit hex", portHex)
	}

	return model.Endpoint{Addr: addr, Port: uint16(port)}, nil
}

// parseIPv4 reverses the kernel's host-order hex address.
func parseIPv4(ipHex string) (netip.Addr, error) {
	b, err := hex.DecodeString(ipHex)
	if err != nil {
		return netip.Addr{}, errors.Errorf("address %q is not hex", ipHex)
	}
	if len(b) != 4 {
		return netip.Addr{}, errors.Errorf("address %q is not 4 bytes", ipHex)
	}
	return netip.AddrFrom4([4]byte{b[3], b[2], b[1], b[0]}), nil
}
