package fru

import (
	"context"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/oshokin/ipmi-fru-it/internal/config"
	"github.com/oshokin/ipmi-fru-it/internal/logger"
)

// Board and product info area keys.
const (
	KeyLanguageCode = "language_code"
	KeyMfgDateTime  = "mfg_datetime"
	KeyManufacturer = "manufacturer"
	KeyProductName  = "product_name"
	KeyFRUFileID    = "fru_file_id"
)

// maxMfgMinutes is the largest value of the 3-byte manufacture date.
const maxMfgMinutes = 1<<24 - 1

// MfgEpoch is the zero point of the board manufacture date.
//
//nolint:gochecknoglobals // Constant time value.
var MfgEpoch = time.Date(1996, time.January, 1, 0, 0, 0, 0, time.UTC)

// mfgLayouts are the timestamp forms accepted for mfg_datetime.
//
//nolint:gochecknoglobals // Fixed table.
var mfgLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

//nolint:gochecknoglobals // Fixed layout table.
var boardDef = &infoAreaDef{
	kind:       AreaBoard,
	section:    SectionBoard,
	prefixKeys: []string{KeyLanguageCode, KeyMfgDateTime},
	fields:     []string{KeyManufacturer, KeyProductName, KeySerialNumber, KeyPartNumber, KeyFRUFileID},
	prefix:     boardPrefix,
}

// BuildBoard builds the board info area from the bia section.
func BuildBoard(ctx context.Context, store config.Store) (*Area, error) {
	return buildInfoArea(ctx, boardDef, store)
}

func boardPrefix(ctx context.Context, store config.Store) ([]byte, error) {
	lang, err := languageCode(ctx, store, SectionBoard)
	if err != nil {
		return nil, err
	}

	minutes, err := mfgMinutes(ctx, store)
	if err != nil {
		return nil, err
	}

	prefix := make([]byte, 4)
	prefix[0] = lang

	var date [4]byte

	binary.LittleEndian.PutUint32(date[:], minutes)
	copy(prefix[1:], date[:3])

	return prefix, nil
}

// languageCode reads the language code, defaulting to English (0).
func languageCode(ctx context.Context, store config.Store, section string) (byte, error) {
	lang, ok, err := byteValue(store, section, KeyLanguageCode, 0, 0)
	if err != nil {
		return 0, err
	}

	if !ok {
		logger.InfoKV(ctx, "Language code not specified, defaulting to English", "key", KeyLanguageCode)
	}

	return byte(lang), nil
}

// mfgMinutes reads the manufacture date as minutes since MfgEpoch. The value
// is either the raw minute count or a timestamp.
func mfgMinutes(ctx context.Context, store config.Store) (uint32, error) {
	raw, _ := store.String(SectionBoard, KeyMfgDateTime)

	raw = strings.TrimSpace(raw)
	if raw == "" {
		logger.InfoKV(ctx, "Manufacturing time not specified, defaulting to unspecified", "key", KeyMfgDateTime)
		return 0, nil
	}

	minutes, err := ParseMfgDateTime(raw)
	if err != nil {
		return 0, &ConfigError{Section: SectionBoard, Key: KeyMfgDateTime, Err: err}
	}

	return minutes, nil
}

// ParseMfgDateTime converts a minute count or a timestamp to minutes since MfgEpoch.
func ParseMfgDateTime(raw string) (uint32, error) {
	var minutes int64

	if v, err := strconv.ParseInt(raw, 0, 64); err == nil {
		minutes = v
	} else {
		ts, perr := parseTimestamp(raw)
		if perr != nil {
			return 0, perr
		}

		minutes = int64(ts.Sub(MfgEpoch) / time.Minute)
		if ts.Before(MfgEpoch) {
			minutes = -1
		}
	}

	if minutes < 0 || minutes > maxMfgMinutes {
		return 0, fmt.Errorf("%q not in [%s, %s]: %w",
			raw, MfgEpoch.Format(time.RFC3339),
			MfgEpoch.Add(maxMfgMinutes*time.Minute).Format(time.RFC3339), ErrOutOfRange)
	}

	return uint32(minutes), nil
}

func parseTimestamp(raw string) (time.Time, error) {
	for _, layout := range mfgLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}

	return time.Time{}, fmt.Errorf("%q is neither a minute count nor a timestamp like %s", raw, time.RFC3339)
}
