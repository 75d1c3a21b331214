package fru

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/ipmi-fru-it/internal/config"
)

// newStore builds a document from section/key/value triples.
func newStore(t *testing.T, entries ...[3]string) *config.Document {
	t.Helper()

	doc := config.NewDocument()
	for _, e := range entries {
		if e[1] == "" {
			doc.AddSection(e[0])
			continue
		}

		require.NoError(t, doc.Set(e[0], e[1], e[2]))
	}

	return doc
}

// requireSealed checks alignment, the length byte and the zero-sum checksum of an info area.
func requireSealed(t *testing.T, area *Area) {
	t.Helper()

	require.Zero(t, len(area.Data)%Alignment)
	require.Equal(t, FormatVersion, area.Data[0])
	require.Equal(t, byte(area.Units()), area.Data[1])
	require.Equal(t, byte(0), Sum(area.Data))
}

// TestBuildChassis_Minimal covers a chassis type with no part or serial number.
func TestBuildChassis_Minimal(t *testing.T) {
	t.Parallel()

	store := newStore(t, [3]string{SectionChassis, KeyChassisType, "1"})

	area, err := BuildChassis(context.Background(), store)
	require.NoError(t, err)
	requireSealed(t, area)

	// 3 fixed bytes, two empty markers, end marker and checksum: 7 bytes padded to 8.
	require.Equal(t, []byte{0x01, 0x01, 0x01, 0x00, 0x00, 0xC1, 0x00, 0x3C}, area.Data)
	require.Equal(t, 1, area.Units())
	require.Len(t, area.Fields, 2)
	require.True(t, area.Fields[0].Predefined)
	require.Equal(t, KeyPartNumber, area.Fields[0].Key)
	require.Equal(t, 3, area.Fields[0].Offset)
}

// TestBuildChassis_ChassisType rejects missing, zero and oversized chassis types.
func TestBuildChassis_ChassisType(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	_, err := BuildChassis(ctx, newStore(t, [3]string{SectionChassis, "", ""}))
	require.ErrorIs(t, err, ErrIllegalChassisType)
	require.True(t, IsConfigError(err))

	_, err = BuildChassis(ctx, newStore(t, [3]string{SectionChassis, KeyChassisType, "0"}))
	require.ErrorIs(t, err, ErrIllegalChassisType)

	_, err = BuildChassis(ctx, newStore(t, [3]string{SectionChassis, KeyChassisType, "256"}))
	require.ErrorIs(t, err, ErrOutOfRange)

	_, err = BuildChassis(ctx, newStore(t, [3]string{SectionChassis, KeyChassisType, "rack"}))
	require.True(t, IsConfigError(err))

	area, err := BuildChassis(ctx, newStore(t, [3]string{SectionChassis, KeyChassisType, "0x17"}))
	require.NoError(t, err)
	require.Equal(t, byte(0x17), area.Data[2])
}

// TestBuildChassis_CustomFields checks that custom fields follow the predefined ones
// in source order and that empty custom values are dropped.
func TestBuildChassis_CustomFields(t *testing.T) {
	t.Parallel()

	store := newStore(t,
		[3]string{SectionChassis, "zz_custom", "TEST"},
		[3]string{SectionChassis, KeySerialNumber, "A"},
		[3]string{SectionChassis, "blank", ""},
		[3]string{SectionChassis, KeyChassisType, "2"},
		[3]string{SectionChassis, "aa_custom", "AB"},
	)

	area, err := BuildChassis(context.Background(), store)
	require.NoError(t, err)
	requireSealed(t, area)

	keys := make([]string, 0, len(area.Fields))
	for _, f := range area.Fields {
		keys = append(keys, f.Key)
	}

	require.Equal(t, []string{KeyPartNumber, KeySerialNumber, "zz_custom", "aa_custom"}, keys)

	// Version, length, chassis type, empty part number, serial "A",
	// "TEST", "AB" and the end marker.
	want := []byte{
		0x01, 0x02, 0x02,
		0x00,
		0x81, 0x21,
		0x83, 0x74, 0x39, 0xD3,
		0x82, 0xA1, 0x08,
		0xC1,
	}
	require.Equal(t, want, area.Data[:len(want)])
	require.Equal(t, []byte{0x00}, area.Data[len(want):len(area.Data)-1])
}

// TestBuildChassis_FieldTooLong reports the key of a field that cannot be encoded.
func TestBuildChassis_FieldTooLong(t *testing.T) {
	t.Parallel()

	store := newStore(t,
		[3]string{SectionChassis, KeyChassisType, "1"},
		[3]string{SectionChassis, "notes", strings.Repeat("N", 90)},
	)

	_, err := BuildChassis(context.Background(), store)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, "notes", cfgErr.Key)

	var tooLong *FieldTooLongError
	require.ErrorAs(t, err, &tooLong)
}

// TestBuildBoard checks the language code, manufacture date and predefined field order.
func TestBuildBoard(t *testing.T) {
	t.Parallel()

	store := newStore(t,
		[3]string{SectionBoard, KeyPartNumber, "AB"},
		[3]string{SectionBoard, KeyMfgDateTime, "2000-01-01"},
		[3]string{SectionBoard, KeyManufacturer, "ACME"},
		[3]string{SectionBoard, KeyLanguageCode, "25"},
	)

	area, err := BuildBoard(context.Background(), store)
	require.NoError(t, err)
	requireSealed(t, area)

	// Version, length, language, 2103840 minutes little endian, manufacturer
	// "ACME", empty product name and serial number, part number "AB", empty
	// file id and the end marker.
	want := []byte{
		0x01, 0x03, 25,
		0x20, 0x1A, 0x20,
		0x83, 0xE1, 0xD8, 0x96,
		0x00,
		0x00,
		0x82, 0xA1, 0x08,
		0x00,
		0xC1,
	}
	require.Equal(t, want, area.Data[:len(want)])
	require.Len(t, area.Data, 24)
}

// TestBuildBoard_Defaults ensures missing prefix values fall back to zero.
func TestBuildBoard_Defaults(t *testing.T) {
	t.Parallel()

	area, err := BuildBoard(context.Background(), newStore(t, [3]string{SectionBoard, "", ""}))
	require.NoError(t, err)
	requireSealed(t, area)

	// 6 fixed bytes, five empty fields, end marker and checksum.
	require.Equal(t, []byte{0x01, 0x02, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0xC1, 0, 0, 0, 0x3C}, area.Data)
}

// TestParseMfgDateTime covers minute counts, timestamps and range limits.
func TestParseMfgDateTime(t *testing.T) {
	t.Parallel()

	cases := map[string]uint32{
		"0":                         0,
		"0x10":                      16,
		"1996-01-01":                0,
		"1996-01-01 01:30":          90,
		"1996-01-02T00:00:00Z":      1440,
		"1996-01-01T02:00:00+01:00": 60,
		"16777215":                  maxMfgMinutes,
	}
	for raw, want := range cases {
		got, err := ParseMfgDateTime(raw)
		require.NoError(t, err, raw)
		require.Equal(t, want, got, raw)
	}

	for _, raw := range []string{"-1", "16777216", "1995-12-31", "2100-01-01", "yesterday"} {
		_, err := ParseMfgDateTime(raw)
		require.Error(t, err, raw)
	}
}

// TestBuildProduct checks the predefined order and the fru file id support.
func TestBuildProduct(t *testing.T) {
	t.Parallel()

	store := newStore(t,
		[3]string{SectionProduct, KeyFRUFileID, "A"},
		[3]string{SectionProduct, KeyAssetTag, "AB"},
		[3]string{SectionProduct, "extra", "TEST"},
		[3]string{SectionProduct, KeyVersion, "A"},
	)

	area, err := BuildProduct(context.Background(), store)
	require.NoError(t, err)
	requireSealed(t, area)

	// Version, length, language, empty manufacturer, product name and part
	// number, version "A", empty serial number, asset tag "AB", file id "A",
	// custom "TEST" and the end marker.
	want := []byte{
		0x01, 0x03, 0x00,
		0x00, 0x00, 0x00,
		0x81, 0x21,
		0x00,
		0x82, 0xA1, 0x08,
		0x81, 0x21,
		0x83, 0x74, 0x39, 0xD3,
		0xC1,
	}
	require.Equal(t, want, area.Data[:len(want)])
	require.Len(t, area.Data, 24)

	_, err = BuildProduct(context.Background(), newStore(t, [3]string{SectionProduct, KeyProductName, "lower"}))
	require.True(t, IsConfigError(err))
}

// TestBuildArea_TooLarge guards the one-byte length field.
func TestBuildArea_TooLarge(t *testing.T) {
	t.Parallel()

	entries := [][3]string{{SectionChassis, KeyChassisType, "1"}}
	for i := 0; i < 40; i++ {
		entries = append(entries, [3]string{SectionChassis, "custom_" + strings.Repeat("X", i+1), strings.Repeat("Y", 84)})
	}

	_, err := BuildChassis(context.Background(), newStore(t, entries...))

	var tooLarge *AreaTooLargeError
	require.ErrorAs(t, err, &tooLarge)
	require.Equal(t, AreaChassis, tooLarge.Area)
}
