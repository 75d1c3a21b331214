package fru

const (
	// ascii6First and ascii6Last bound the 6-bit ASCII alphabet.
	ascii6First = 0x20
	ascii6Last  = 0x5F
	ascii6Bits  = 6
)

// PackedASCII6Len is the payload size of s once packed: ceil(len*6/8).
func PackedASCII6Len(s string) int {
	return (len(s)*ascii6Bits + 7) / 8
}

// PackASCII6 packs s into a 6-bit ASCII field. Each character contributes
// its low six bits after subtracting 0x20, least significant bits first, so
// four characters fill three bytes. Unused high bits of the last byte are zero.
func PackASCII6(s string) (Field, error) {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c < ascii6First || c > ascii6Last {
			return Field{}, &InvalidCharacterError{Char: c, Index: i}
		}
	}

	var (
		data = make([]byte, 0, PackedASCII6Len(s))
		acc  uint32
		bits uint
	)

	for i := 0; i < len(s); i++ {
		acc |= uint32(s[i]-ascii6First) << bits
		bits += ascii6Bits

		for bits >= 8 {
			data = append(data, byte(acc))
			acc >>= 8
			bits -= 8
		}
	}

	if bits > 0 {
		data = append(data, byte(acc))
	}

	return NewField(TypeASCII6, data)
}
