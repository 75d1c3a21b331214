package fru

import "fmt"

// TypeCode is the top two bits of a type/length byte.
type TypeCode byte

// Type codes defined by the FRU storage definition.
const (
	TypeBinary  TypeCode = 0x00
	TypeBCDPlus TypeCode = 0x40
	TypeASCII6  TypeCode = 0x80
	TypeLatin1  TypeCode = 0xC0
)

const (
	typeCodeMask byte = 0xC0
	lengthMask   byte = 0x3F
)

const (
	// MaxFieldLength is the largest payload a type/length byte can describe.
	MaxFieldLength = 63
	// EndOfFields terminates the field list of an info area.
	EndOfFields byte = 0xC1
	// FormatVersion is written as the first byte of the header and every area.
	FormatVersion byte = 0x01
	// Alignment is the unit of area lengths and header offsets.
	Alignment = 8
)

// String returns the name of the type code.
func (t TypeCode) String() string {
	switch t {
	case TypeBinary:
		return "binary"
	case TypeBCDPlus:
		return "bcd+"
	case TypeASCII6:
		return "6-bit ascii"
	case TypeLatin1:
		return "latin-1"
	default:
		return fmt.Sprintf("type(0x%02X)", byte(t))
	}
}

// Field is one type/length record. The zero value is the empty field, whose
// single header byte 0x00 marks a predefined field without data.
type Field struct {
	Type TypeCode
	Data []byte
}

// NewField builds a field, refusing payloads that do not fit the length bits.
func NewField(t TypeCode, data []byte) (Field, error) {
	if len(data) > MaxFieldLength {
		return Field{}, &FieldTooLongError{Length: len(data)}
	}

	return Field{Type: t, Data: data}, nil
}

// Header returns the type/length byte.
func (f Field) Header() byte {
	return byte(f.Type)&typeCodeMask | byte(len(f.Data))&lengthMask
}

// Size is the encoded size including the type/length byte.
func (f Field) Size() int {
	return 1 + len(f.Data)
}

// IsEmpty reports whether the field carries no payload.
func (f Field) IsEmpty() bool {
	return len(f.Data) == 0
}

// AppendTo appends the encoded field to b.
func (f Field) AppendTo(b []byte) []byte {
	b = append(b, f.Header())

	return append(b, f.Data...)
}

// Bytes returns the encoded field.
func (f Field) Bytes() []byte {
	return f.AppendTo(make([]byte, 0, f.Size()))
}

// align rounds n up to the next multiple of Alignment.
func align(n int) int {
	return (n + Alignment - 1) &^ (Alignment - 1)
}
