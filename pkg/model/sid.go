package model

import (
	"encoding/binary"
	"strconv"
	"strings"
)

// SID holds the decoded fields of a Windows security identifier.
type SID struct {
	Revision       uint8
	Authority      uint64 // only the low 48 bits are significant
	SubAuthorities []uint32
}

// String renders the canonical S-R-A-S1-...-SN form.
func (s SID) String() string {
	var b strings.Builder
	b.WriteString("S-")
	b.WriteString(strconv.FormatUint(uint64(s.Revision), 10))
	b.WriteByte('-')
	b.WriteString(strconv.FormatUint(s.Authority, 10))
	for _, sub := range s.SubAuthorities {
		b.WriteByte('-')
		b.WriteString(strconv.FormatUint(uint64(sub), 10))
	}
	return b.String()
}

// Bytes encodes the SID in its flat binary layout: revision, count,
// big-endian 48-bit authority, then little-endian sub-authorities.
func (s SID) Bytes() []byte {
	buf := make([]byte, 8+4*len(s.SubAuthorities))
	buf[0] = s.Revision
	buf[1] = byte(len(s.SubAuthorities))
	for i := 0; i < 6; i++ {
		buf[2+i] = byte(s.Authority >> (8 * (5 - i)))
	}
	for i, sub := range s.SubAuthorities {
		binary.LittleEndian.PutUint32(buf[8+4*i:], sub)
	}
	return buf
}
