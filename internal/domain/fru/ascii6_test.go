package fru

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// unpackASCII6 decodes n characters from a packed 6-bit ASCII payload.
func unpackASCII6(data []byte, n int) string {
	var (
		out  = make([]byte, 0, n)
		acc  uint32
		bits uint
		i    int
	)

	for len(out) < n {
		for bits < ascii6Bits && i < len(data) {
			acc |= uint32(data[i]) << bits
			bits += 8
			i++
		}

		out = append(out, byte(acc&0x3F)+ascii6First)
		acc >>= ascii6Bits
		bits -= ascii6Bits
	}

	return string(out)
}

// TestPackASCII6_Vectors checks the packing of known strings byte by byte.
func TestPackASCII6_Vectors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want []byte
	}{
		{in: "TEST", want: []byte{0x83, 0x74, 0x39, 0xD3}},
		{in: "ACME", want: []byte{0x83, 0xE1, 0xD8, 0x96}},
		{in: "A", want: []byte{0x81, 0x21}},
		{in: "AB", want: []byte{0x82, 0xA1, 0x08}},
		{in: "ABC", want: []byte{0x83, 0xA1, 0x38, 0x02}},
		{in: "", want: []byte{0x80}},
	}

	for _, tc := range cases {
		field, err := PackASCII6(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, TypeASCII6, field.Type)
		require.Equal(t, tc.want, field.Bytes(), tc.in)
	}
}

// TestPackASCII6_LengthAndRoundTrip verifies ceil(L*6/8) payload bytes and lossless unpacking
// for every length up to the field limit.
func TestPackASCII6_LengthAndRoundTrip(t *testing.T) {
	t.Parallel()

	var alphabet strings.Builder
	for c := byte(ascii6First); c <= ascii6Last; c++ {
		alphabet.WriteByte(c)
	}

	source := strings.Repeat(alphabet.String(), 2)

	for l := 0; l <= 84; l++ {
		s := source[len(source)-l:]

		field, err := PackASCII6(s)
		require.NoError(t, err)
		require.Len(t, field.Data, (l*6+7)/8)
		require.Equal(t, PackedASCII6Len(s), len(field.Data))
		require.Equal(t, byte(0x80|len(field.Data)), field.Header())
		require.Equal(t, s, unpackASCII6(field.Data, l))
	}
}

// TestPackASCII6_TooLong ensures a payload past 63 bytes is rejected instead of truncated.
func TestPackASCII6_TooLong(t *testing.T) {
	t.Parallel()

	_, err := PackASCII6(strings.Repeat("X", 85))

	var tooLong *FieldTooLongError
	require.ErrorAs(t, err, &tooLong)
	require.Equal(t, 64, tooLong.Length)
}

// TestPackASCII6_InvalidCharacter rejects characters outside 0x20-0x5F.
func TestPackASCII6_InvalidCharacter(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"lower", "TAB\t", "CAFÉ", "A`"} {
		_, err := PackASCII6(s)

		var invalid *InvalidCharacterError
		require.ErrorAs(t, err, &invalid, s)
	}
}

// TestChecksum verifies the zero-sum property on a few inputs.
func TestChecksum(t *testing.T) {
	t.Parallel()

	cases := [][]byte{
		{},
		{0x01},
		{0x01, 0x02, 0x03, 0x04},
		{0xFF, 0xFF, 0xFF, 0xFF},
		{0x01, 0x00, 0x01, 0x03, 0x00, 0x00, 0x00},
	}

	for _, data := range cases {
		sum := ZeroChecksum(data)
		require.Equal(t, byte(0), Sum(append(append([]byte(nil), data...), sum)))
	}

	require.Equal(t, byte(0xF6), ZeroChecksum([]byte{0x01, 0x02, 0x03, 0x04}))
	require.Equal(t, byte(0x00), ZeroChecksum(nil))
}

// TestField covers the empty marker and length validation.
func TestField(t *testing.T) {
	t.Parallel()

	var empty Field
	require.True(t, empty.IsEmpty())
	require.Equal(t, []byte{0x00}, empty.Bytes())
	require.Equal(t, 1, empty.Size())

	_, err := NewField(TypeBinary, make([]byte, MaxFieldLength+1))
	require.Error(t, err)

	f, err := NewField(TypeLatin1, []byte("ok"))
	require.NoError(t, err)
	require.Equal(t, []byte{0xC2, 'o', 'k'}, f.Bytes())
	require.Equal(t, "latin-1", f.Type.String())
}
