package sid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranshuparmar/unhex/pkg/model"
)

const domainUserHex = "010500000000000515000000FA5B8B204064BEA19FED6724EB030000"

func TestDecodeString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "domain user",
			in:   domainUserHex,
			want: "S-1-5-21-546003962-2713609280-610790815-1003",
		},
		{
			name: "builtin administrators",
			in:   "01020000000000052000000020020000",
			want: "S-1-5-32-544",
		},
		{
			name: "local system",
			in:   "010100000000000512000000",
			want: "S-1-5-18",
		},
		{
			name: "everyone",
			in:   "010100000000000100000000",
			want: "S-1-1-0",
		},
		{
			name: "no sub-authorities",
			in:   "0100123456789ABC",
			want: "S-1-20015998343868",
		},
		{
			name: "max sub-authority",
			in:   "0101000000000005FFFFFFFF",
			want: "S-1-5-4294967295",
		},
		{
			name: "lower case hex",
			in:   strings.ToLower(domainUserHex),
			want: "S-1-5-21-546003962-2713609280-610790815-1003",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeString(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeNormalizesInput(t *testing.T) {
	want := "S-1-5-21-546003962-2713609280-610790815-1003"

	var spaced []string
	for i := 0; i < len(domainUserHex); i += 2 {
		spaced = append(spaced, domainUserHex[i:i+2])
	}

	inputs := []string{
		domainUserHex,
		"0x" + domainUserHex,
		strings.Join(spaced, " "),
		"  0x" + strings.Join(spaced, " ") + "\n",
	}
	for _, in := range inputs {
		got, err := DecodeString(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestDecodeIsIdempotent(t *testing.T) {
	first, err := DecodeString(domainUserHex)
	require.NoError(t, err)
	second, err := DecodeString(domainUserHex)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDecodeZeroSubAuthorities(t *testing.T) {
	got, err := Decode("010000000000000F")
	require.NoError(t, err)
	assert.Empty(t, got.SubAuthorities)
	assert.Equal(t, "S-1-15", got.String())
	assert.Len(t, strings.Split(got.String(), "-"), 3)
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "empty", in: ""},
		{name: "odd length", in: "0105000"},
		{name: "non hex", in: "01050000000000ZZ"},
		{name: "upper case prefix", in: "0X0100000000000005"},
		{name: "short header", in: "010500"},
		{name: "truncated sub-authority", in: "010100000000000512"},
		{name: "missing sub-authorities", in: "010500000000000515000000"},
		{name: "trailing bytes", in: "01010000000000051200000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeString(tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedInput)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	sids := []model.SID{
		{Revision: 1, Authority: 5, SubAuthorities: []uint32{21, 1, 2, 3, 500}},
		{Revision: 1, Authority: 0xFFFFFFFFFFFF, SubAuthorities: []uint32{0, 4294967295}},
		{Revision: 255, Authority: 0},
		{Revision: 2, Authority: 16, SubAuthorities: []uint32{12288}},
	}

	for _, s := range sids {
		want := s.String()

		got, err := DecodeString(EncodeString(s))
		require.NoError(t, err)
		assert.Equal(t, want, got)

		parsed, err := Parse(want)
		require.NoError(t, err)
		assert.Equal(t, want, parsed.String())
		assert.Equal(t, s.Bytes(), parsed.Bytes())
	}
}

func TestEncodeString(t *testing.T) {
	s, err := Parse("S-1-5-21-546003962-2713609280-610790815-1003")
	require.NoError(t, err)
	assert.Equal(t, domainUserHex, EncodeString(s))
}

func TestParseMalformed(t *testing.T) {
	for _, in := range []string{
		"",
		"S-1",
		"X-1-5",
		"S-256-5",
		"S-1-281474976710656",
		"S-1-5-4294967296",
		"S-1-5-abc",
	} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrMalformedInput, in)
	}
}
