package fru

import (
	"context"

	"github.com/oshokin/ipmi-fru-it/internal/config"
	"github.com/oshokin/ipmi-fru-it/internal/logger"
)

// HeaderSize is the size of the common header.
const HeaderSize = 8

// Header is the common header. Offsets are in 8-byte units from the start of
// the image; zero means the area is absent.
type Header struct {
	InternalUse byte
	Chassis     byte
	Board       byte
	Product     byte
	MultiRecord byte
}

// Bytes encodes the header including its checksum.
func (h Header) Bytes() []byte {
	b := []byte{
		FormatVersion,
		h.InternalUse,
		h.Chassis,
		h.Board,
		h.Product,
		h.MultiRecord,
		0,
		0,
	}
	b[HeaderSize-1] = ZeroChecksum(b[:HeaderSize-1])

	return b
}

// setOffset records the offset of an area kind.
func (h *Header) setOffset(kind AreaKind, units int) {
	switch kind {
	case AreaInternalUse:
		h.InternalUse = byte(units)
	case AreaChassis:
		h.Chassis = byte(units)
	case AreaBoard:
		h.Board = byte(units)
	case AreaProduct:
		h.Product = byte(units)
	}
}

// PlacedArea is an area together with its position in the image.
type PlacedArea struct {
	*Area

	// Offset is the start of the area in 8-byte units.
	Offset int
}

// Image is an assembled FRU image.
type Image struct {
	Header Header
	// Areas holds the present areas in image order.
	Areas []PlacedArea
	data  []byte
}

// Bytes returns the encoded image.
func (img *Image) Bytes() []byte {
	return img.data
}

// Len is the image size in bytes.
func (img *Image) Len() int {
	return len(img.data)
}

type areaBuilder func(ctx context.Context, store config.Store, reader FileReader) (*Area, error)

type areaSlot struct {
	kind    AreaKind
	section string
	build   areaBuilder
}

// slots lists the areas in the order they are laid out.
//
//nolint:gochecknoglobals // Fixed layout table.
var slots = []areaSlot{
	{kind: AreaInternalUse, section: SectionInternalUse, build: BuildInternalUse},
	{kind: AreaChassis, section: SectionChassis, build: withoutReader(BuildChassis)},
	{kind: AreaBoard, section: SectionBoard, build: withoutReader(BuildBoard)},
	{kind: AreaProduct, section: SectionProduct, build: withoutReader(BuildProduct)},
}

// IsAreaSection reports whether name is a section the assembler reads.
func IsAreaSection(name string) bool {
	for _, slot := range slots {
		if slot.section == name {
			return true
		}
	}

	return false
}

func withoutReader(build func(context.Context, config.Store) (*Area, error)) areaBuilder {
	return func(ctx context.Context, store config.Store, _ FileReader) (*Area, error) {
		return build(ctx, store)
	}
}

// Assemble builds every area whose section is present and lays them out
// after the common header.
func Assemble(ctx context.Context, store config.Store, reader FileReader) (*Image, error) {
	built := make([]*Area, len(slots))

	for i, slot := range slots {
		if !store.HasSection(slot.section) {
			logger.DebugKV(ctx, "Section not present, area skipped", "section", slot.section)
			continue
		}

		area, err := slot.build(ctx, store, reader)
		if err != nil {
			return nil, err
		}

		built[i] = area
	}

	var (
		header Header
		placed = make([]PlacedArea, 0, len(slots))
		offset = HeaderSize / Alignment
	)

	for i, area := range built {
		if area == nil {
			continue
		}

		if offset > maxUnits {
			return nil, &ConfigError{
				Section: slots[i].section,
				Err:     &OffsetOverflowError{Area: slots[i].kind, Offset: offset},
			}
		}

		header.setOffset(area.Kind, offset)
		placed = append(placed, PlacedArea{Area: area, Offset: offset})
		offset += area.Units()
	}

	data := make([]byte, offset*Alignment)
	copy(data, header.Bytes())

	for _, p := range placed {
		copy(data[p.Offset*Alignment:], p.Data)
	}

	return &Image{
		Header: header,
		Areas:  placed,
		data:   data,
	}, nil
}
