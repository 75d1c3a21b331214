package fru

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingKey is returned when a required key is absent or empty.
	ErrMissingKey = errors.New("required key is missing")
	// ErrIllegalChassisType is returned for chassis type 0.
	ErrIllegalChassisType = errors.New("chassis type 0 is illegal")
	// ErrOutOfRange is returned when a numeric value does not fit its field.
	ErrOutOfRange = errors.New("value out of range")
)

// ConfigError reports a missing or invalid configuration value. Errors that
// concern the whole description, such as a syntax error, carry only Path.
type ConfigError struct {
	Path    string
	Section string
	Key     string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Section == "" {
		return fmt.Sprintf("config: %s: %v", e.Path, e.Err)
	}

	if e.Key == "" {
		return fmt.Sprintf("config: [%s]: %v", e.Section, e.Err)
	}

	return fmt.Sprintf("config: %s.%s: %v", e.Section, e.Key, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IoError reports a failure to read or write a file.
type IoError struct {
	Op   string
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("io: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IoError) Unwrap() error {
	return e.Err
}

// SizeLimitError reports an image larger than the allowed maximum.
type SizeLimitError struct {
	Size  int
	Limit int
}

func (e *SizeLimitError) Error() string {
	return fmt.Sprintf("FRU data length (%d bytes) exceeds maximum file size (%d bytes)", e.Size, e.Limit)
}

// FieldTooLongError reports a payload that does not fit in six length bits.
type FieldTooLongError struct {
	Length int
}

func (e *FieldTooLongError) Error() string {
	return fmt.Sprintf("field too long: %d bytes packed, at most %d allowed", e.Length, MaxFieldLength)
}

// InvalidCharacterError reports a character outside the 6-bit ASCII alphabet.
type InvalidCharacterError struct {
	Char  byte
	Index int
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("character 0x%02X at position %d is not 6-bit ASCII (0x20-0x5F, upper case only)", e.Char, e.Index)
}

// AreaTooLargeError reports an area whose length in 8-byte units does not fit in one byte.
type AreaTooLargeError struct {
	Area AreaKind
	Size int
}

func (e *AreaTooLargeError) Error() string {
	return fmt.Sprintf("%s area is %d bytes, at most %d allowed", e.Area, e.Size, maxUnits*Alignment)
}

// OffsetOverflowError reports an area that starts past the last offset the header can express.
type OffsetOverflowError struct {
	Area   AreaKind
	Offset int
}

func (e *OffsetOverflowError) Error() string {
	return fmt.Sprintf("%s area would start at offset %d (x8 bytes), at most %d allowed", e.Area, e.Offset, maxUnits)
}

// IsConfigError reports whether err is, or wraps, a ConfigError.
func IsConfigError(err error) bool {
	var target *ConfigError

	return errors.As(err, &target)
}

// IsIoError reports whether err is, or wraps, an IoError.
func IsIoError(err error) bool {
	var target *IoError

	return errors.As(err, &target)
}
