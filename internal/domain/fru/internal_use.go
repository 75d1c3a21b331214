package fru

import (
	"context"

	"github.com/oshokin/ipmi-fru-it/internal/config"
	"github.com/oshokin/ipmi-fru-it/internal/logger"
)

// KeyBinFile names the payload file of the internal-use area.
const KeyBinFile = "bin_file"

// FileReader loads the internal-use payload.
type FileReader interface {
	ReadAll(ctx context.Context, path string) ([]byte, error)
}

// BuildInternalUse builds the internal-use area: the format version followed
// by the payload file, zero padded to a multiple of 8 bytes.
func BuildInternalUse(ctx context.Context, store config.Store, reader FileReader) (*Area, error) {
	ctx = logger.WithKV(ctx, "section", SectionInternalUse)

	path, _ := store.String(SectionInternalUse, KeyBinFile)
	if path == "" {
		return nil, &ConfigError{Section: SectionInternalUse, Key: KeyBinFile, Err: ErrMissingKey}
	}

	payload, err := reader.ReadAll(ctx, path)
	if err != nil {
		return nil, &IoError{Op: "read", Path: path, Err: err}
	}

	data := make([]byte, align(1+len(payload)))
	data[0] = FormatVersion
	copy(data[1:], payload)

	logger.DebugKV(ctx, "Built area", "area", AreaInternalUse.String(), "payload", len(payload), "bytes", len(data))

	return &Area{
		Kind:    AreaInternalUse,
		Section: SectionInternalUse,
		Data:    data,
	}, nil
}
