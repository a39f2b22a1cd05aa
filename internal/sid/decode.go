// Package sid converts between the flat binary form of a Windows security
// identifier and its canonical S-R-A-S1-...-SN text form.
package sid

import (
	"encoding/binary"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/pranshuparmar/unhex/pkg/model"
)

// ErrMalformedInput is returned for input that is not a well formed SID.
var ErrMalformedInput = errors.New("malformed SID input")

const headerLen = 8

// Normalize strips every literal "0x" and space from raw, then trims
// surrounding whitespace. "0X" is left alone and will fail hex decoding.
func Normalize(raw string) string {
	s := strings.ReplaceAll(raw, "0x", "")
	s = strings.ReplaceAll(s, " ", "")
	return strings.TrimSpace(s)
}

// Decode parses a hex encoded SID.
func Decode(raw string) (model.SID, error) {
	b, err := hex.DecodeString(Normalize(raw))
	if err != nil {
		return model.SID{}, errors.Wrapf(ErrMalformedInput, "hex: %v", err)
	}
	return FromBytes(b)
}

// DecodeString parses a hex encoded SID and returns its canonical string.
func DecodeString(raw string) (string, error) {
	s, err := Decode(raw)
	if err != nil {
		return "", err
	}
	return s.String(), nil
}

// FromBytes decodes the flat binary layout. The length must match the
// declared sub-authority count exactly.
func FromBytes(b []byte) (model.SID, error) {
	if len(b) < headerLen {
		return model.SID{}, errors.Wrapf(ErrMalformedInput,
			"need at least %d bytes, got %d", headerLen, len(b))
	}

	count := int(b[1])
	want := headerLen + 4*count
	if len(b) < want {
		return model.SID{}, errors.Wrapf(ErrMalformedInput,
			"%d sub-authorities need %d bytes, got %d", count, want, len(b))
	}
	if len(b) > want {
		return model.SID{}, errors.Wrapf(ErrMalformedInput,
			"%d trailing bytes after %d sub-authorities", len(b)-want, count)
	}

	var authority uint64
	for _, c := range b[2:headerLen] {
		authority = authority<<8 | uint64(c)
	}

	subs := make([]uint32, count)
	for i := range subs {
		off := headerLen + 4*i
		subs[i] = binary.LittleEndian.Uint32(b[off : off+4])
	}

	return model.SID{
		Revision:       b[0],
		Authority:      authority,
		SubAuthorities: subs,
	}, nil
}

// Parse reads the canonical text form, e.g. S-1-5-32-544.
func Parse(s string) (model.SID, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, "-")
	if len(parts) < 3 || !strings.EqualFold(parts[0], "S") {
		return model.SID{}, errors.Wrapf(ErrMalformedInput, "%q is not an S-R-A form", s)
	}

	rev, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil {
		return model.SID{}, errors.Wrapf(ErrMalformedInput, "revision %q", parts[1])
	}
	auth, err := strconv.ParseUint(parts[2], 10, 48)
	if err != nil {
		return model.SID{}, errors.Wrapf(ErrMalformedInput, "authority %q", parts[2])
	}

	subParts := parts[3:]
	if len(subParts) > 255 {
		return model.SID{}, errors.Wrapf(ErrMalformedInput, "%d sub-authorities", len(subParts))
	}
	subs := make([]uint32, len(subParts))
	for i, p := range subParts {
		v, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return model.SID{}, errors.Wrapf(ErrMalformedInput, "sub-authority %d %q", i+1, p)
		}
		subs[i] = uint32(v)
	}

	return model.SID{
		Revision:       uint8(rev),
		Authority:      auth,
		SubAuthorities: subs,
	}, nil
}

// EncodeString renders the SID as upper case hex in the flat binary layout.
func EncodeString(s model.SID) string {
	return strings.ToUpper(hex.EncodeToString(s.Bytes()))
}
