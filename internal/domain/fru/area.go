package fru

import (
	"context"
	"fmt"

	"github.com/oshokin/ipmi-fru-it/internal/config"
	"github.com/oshokin/ipmi-fru-it/internal/logger"
)

// AreaKind names one of the areas an image can hold.
type AreaKind int

// Areas in image order.
const (
	AreaInternalUse AreaKind = iota
	AreaChassis
	AreaBoard
	AreaProduct
)

// Section names of the FRU description.
const (
	SectionInternalUse = "iua"
	SectionChassis     = "cia"
	SectionBoard       = "bia"
	SectionProduct     = "pia"
)

// maxUnits is the largest value of a length or offset byte.
const maxUnits = 0xFF

// String returns the area name.
func (k AreaKind) String() string {
	switch k {
	case AreaInternalUse:
		return "internal use"
	case AreaChassis:
		return "chassis"
	case AreaBoard:
		return "board"
	case AreaProduct:
		return "product"
	default:
		return fmt.Sprintf("area(%d)", int(k))
	}
}

// FieldLayout describes where a field landed inside its area.
type FieldLayout struct {
	Key        string
	Value      string
	Predefined bool
	Type       TypeCode
	Length     int
	Offset     int
}

// Area is a sealed area. Data is a multiple of 8 bytes and is not modified
// after the builder returns it.
type Area struct {
	Kind    AreaKind
	Section string
	Data    []byte
	// Fields is empty for the internal-use area.
	Fields []FieldLayout
}

// Units is the area length in 8-byte units.
func (a *Area) Units() int {
	return len(a.Data) / Alignment
}

// infoAreaDef describes one of the chassis, board or product areas.
type infoAreaDef struct {
	kind    AreaKind
	section string
	// prefixKeys are consumed by prefix and never become fields.
	prefixKeys []string
	// fields are the predefined fields in their mandated order.
	fields []string
	// prefix returns the area-specific bytes after version and length.
	prefix func(ctx context.Context, store config.Store) ([]byte, error)
}

// resolvedField is a field ready to be written: its encoding is final.
type resolvedField struct {
	key        string
	value      string
	predefined bool
	field      Field
}

// resolveFields materializes the ordered field list: predefined fields first,
// then every other key of the section in source order. Empty predefined
// fields become the empty marker; empty free-form fields are dropped.
func resolveFields(ctx context.Context, def *infoAreaDef, store config.Store) ([]resolvedField, error) {
	consumed := make(map[string]struct{}, len(def.prefixKeys)+len(def.fields))
	for _, key := range def.prefixKeys {
		consumed[key] = struct{}{}
	}

	for _, key := range def.fields {
		consumed[key] = struct{}{}
	}

	keys := store.Keys(def.section)
	resolved := make([]resolvedField, 0, len(def.fields)+len(keys))

	for _, key := range def.fields {
		value, _ := store.String(def.section, key)

		rf, err := resolveField(def.section, key, value)
		if err != nil {
			return nil, err
		}

		rf.predefined = true
		resolved = append(resolved, rf)
	}

	for _, key := range keys {
		if _, ok := consumed[key]; ok {
			continue
		}

		value, _ := store.String(def.section, key)
		if value == "" {
			logger.DebugKV(ctx, "Skipping empty custom field", "key", key)
			continue
		}

		rf, err := resolveField(def.section, key, value)
		if err != nil {
			return nil, err
		}

		resolved = append(resolved, rf)
	}

	return resolved, nil
}

func resolveField(section, key, value string) (resolvedField, error) {
	rf := resolvedField{key: key, value: value}
	if value == "" {
		return rf, nil
	}

	field, err := PackASCII6(value)
	if err != nil {
		return rf, &ConfigError{Section: section, Key: key, Err: err}
	}

	rf.field = field

	return rf, nil
}

// buildInfoArea lays out version, length, prefix, fields, end marker,
// zero padding and checksum.
func buildInfoArea(ctx context.Context, def *infoAreaDef, store config.Store) (*Area, error) {
	ctx = logger.WithKV(ctx, "section", def.section)

	prefix, err := def.prefix(ctx, store)
	if err != nil {
		return nil, err
	}

	fields, err := resolveFields(ctx, def, store)
	if err != nil {
		return nil, err
	}

	// Version and length bytes, prefix, fields, end marker and checksum.
	size := 2 + len(prefix) + 2
	for _, rf := range fields {
		size += rf.field.Size()
	}

	size = align(size)
	if size/Alignment > maxUnits {
		return nil, &ConfigError{
			Section: def.section,
			Err:     &AreaTooLargeError{Area: def.kind, Size: size},
		}
	}

	data := make([]byte, size)
	data[0] = FormatVersion
	data[1] = byte(size / Alignment)
	offset := 2 + copy(data[2:], prefix)

	layout := make([]FieldLayout, 0, len(fields))

	for _, rf := range fields {
		layout = append(layout, FieldLayout{
			Key:        rf.key,
			Value:      rf.value,
			Predefined: rf.predefined,
			Type:       rf.field.Type,
			Length:     len(rf.field.Data),
			Offset:     offset,
		})

		offset += copy(data[offset:], rf.field.Bytes())
	}

	data[offset] = EndOfFields
	data[size-1] = ZeroChecksum(data[:size-1])

	logger.DebugKV(ctx, "Built area", "area", def.kind.String(), "bytes", size, "fields", len(fields))

	return &Area{
		Kind:    def.kind,
		Section: def.section,
		Data:    data,
		Fields:  layout,
	}, nil
}

// byteValue reads an optional integer that must fit in one byte.
func byteValue(store config.Store, section, key string, def, lowest int) (int, bool, error) {
	const missing = -1

	v, err := store.Int(section, key, missing)
	if err != nil {
		return 0, false, &ConfigError{Section: section, Key: key, Err: err}
	}

	if v == missing {
		return def, false, nil
	}

	if v < lowest || v > maxUnits {
		return 0, false, &ConfigError{
			Section: section,
			Key:     key,
			Err:     fmt.Errorf("%d not in [%d, %d]: %w", v, lowest, maxUnits, ErrOutOfRange),
		}
	}

	return v, true, nil
}
