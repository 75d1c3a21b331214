package encoder

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/docker/go-units"
	"github.com/zeebo/blake3"

	"github.com/oshokin/ipmi-fru-it/internal/config"
	"github.com/oshokin/ipmi-fru-it/internal/domain/fru"
	"github.com/oshokin/ipmi-fru-it/internal/logger"
	"github.com/oshokin/ipmi-fru-it/internal/repository/blob"
)

// Options contains inputs for the encoder entry point.
type Options struct {
	// ConfigPath is the FRU description to encode.
	ConfigPath string
	// Format overrides the decoder picked from the ConfigPath extension.
	Format string
	// OutputPath is where the image is written.
	OutputPath string
	// MaxSize is the largest allowed image in bytes; zero disables the check.
	MaxSize int64
	// Layout, when set, receives a JSON description of the image.
	Layout io.Writer
}

var (
	// errConfigPathRequired is returned when no FRU description is given.
	errConfigPathRequired = errors.New("configuration file must be provided")
	// errOutputPathRequired is returned when no output file is given.
	errOutputPathRequired = errors.New("output file must be provided")
	// errNegativeMaxSize is returned for a negative size limit.
	errNegativeMaxSize = errors.New("maximum size must not be negative")
)

// Run encodes the FRU description and writes the image.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "ipmi-fru-it")

	if err := opts.validate(); err != nil {
		return err
	}

	img, err := Encode(ctx, opts)
	if err != nil {
		return err
	}

	out := blob.NewFileRepository("")
	if err = out.WriteAll(ctx, opts.OutputPath, img.Bytes()); err != nil {
		return &fru.IoError{Op: "write", Path: opts.OutputPath, Err: err}
	}

	digest := blake3.Sum256(img.Bytes())

	logger.InfoKV(ctx, "FRU file created",
		"path", opts.OutputPath,
		"size", units.BytesSize(float64(img.Len())),
		"blake3", hex.EncodeToString(digest[:]))

	if opts.Layout != nil {
		if err = writeLayout(opts.Layout, img, digest); err != nil {
			return fmt.Errorf("write layout: %w", err)
		}
	}

	return nil
}

// Encode loads the FRU description and assembles the image without writing it.
// The size limit of opts is enforced.
func Encode(ctx context.Context, opts *Options) (*fru.Image, error) {
	format := opts.Format
	if format == "" {
		format = config.FormatFromPath(opts.ConfigPath)
	}

	logger.InfoKV(ctx, "Loading FRU description", "path", opts.ConfigPath, "format", format)

	doc, err := config.LoadFormat(opts.ConfigPath, format)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, &fru.IoError{Op: "read", Path: opts.ConfigPath, Err: err}
		}

		return nil, &fru.ConfigError{Path: opts.ConfigPath, Err: err}
	}

	logger.DebugKV(ctx, "Loaded FRU description", "path", doc.Path(), "sections", doc.Sections())

	for _, name := range doc.Sections() {
		if !fru.IsAreaSection(name) {
			logger.WarnKV(ctx, "Unknown section ignored", "section", name)
		}
	}

	// Payload files are looked up next to the description.
	payloads := blob.NewFileRepository(filepath.Dir(opts.ConfigPath))

	img, err := fru.Assemble(ctx, doc, payloads)
	if err != nil {
		return nil, err
	}

	for _, area := range img.Areas {
		logger.DebugKV(ctx, "Placed area",
			"area", area.Kind.String(),
			"offset", area.Offset*fru.Alignment,
			"bytes", len(area.Data))
	}

	if opts.MaxSize > 0 && int64(img.Len()) > opts.MaxSize {
		return nil, &fru.SizeLimitError{Size: img.Len(), Limit: int(opts.MaxSize)}
	}

	return img, nil
}

// validate checks the required options.
func (o *Options) validate() error {
	if o.ConfigPath == "" {
		return errConfigPathRequired
	}

	if o.OutputPath == "" {
		return errOutputPathRequired
	}

	if o.MaxSize < 0 {
		return errNegativeMaxSize
	}

	return nil
}
