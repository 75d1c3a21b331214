package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/ipmi-fru-it/internal/logger"
	"github.com/oshokin/ipmi-fru-it/internal/service/encoder"
	"github.com/oshokin/ipmi-fru-it/internal/version"
)

var (
	// configPath to the FRU description.
	configPath string
	// outputPath of the generated image.
	outputPath string
	// maxSize is the size guard, in bytes or with a unit suffix.
	maxSize string
	// format overrides the configuration decoder.
	format string
	// logLevel of diagnostics written to stderr.
	logLevel string
	// printLayout prints the JSON layout report to stdout.
	printLayout bool
	// quiet limits diagnostics to warnings and errors.
	quiet bool

	// errUnknownLogLevel is returned for a --log-level value zap does not know.
	errUnknownLogLevel = errors.New("unknown log level")

	// rootCmd represents the base command for generating FRU images.
	rootCmd = &cobra.Command{
		Use:   "ipmi-fru-it -c CONFIG -o OUTPUT",
		Short: "Generate an IPMI FRU information image",
		Long: "Generate an IPMI FRU information image from a YAML, JSON or INI description " +
			"with iua, cia, bia and pia sections. The image is assembled in memory and written " +
			"only when it is complete and within the size limit.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			limit, err := parseMaxSize(maxSize)
			if err != nil {
				return err
			}

			var layout io.Writer
			if printLayout {
				layout = cmd.OutOrStdout()
			}

			options := &encoder.Options{
				ConfigPath: configPath,
				Format:     format,
				OutputPath: outputPath,
				MaxSize:    limit,
				Layout:     layout,
			}

			return encoder.Run(ctx, options)
		},
	}
)

// Execute runs the ipmi-fru-it CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.ErrorKV(context.Background(), "Error generating FRU data", "error", err)
		os.Exit(1)
	}
}

// parseMaxSize accepts plain byte counts and sizes such as 2KiB or 4k.
func parseMaxSize(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}

	limit, err := units.RAMInBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid maximum file size %q: %w", s, err)
	}

	return limit, nil
}

// setupLogger applies the verbosity flags to the global logger.
func setupLogger() error {
	level, ok := logger.ParseLogLevel(logLevel)
	if !ok {
		return fmt.Errorf("%q: %w", logLevel, errUnknownLogLevel)
	}

	logger.SetLevel(level)

	if quiet {
		logger.SetLogger(logger.Logger().WithOptions(logger.WithLevel(zapcore.WarnLevel)))
	}

	return nil
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Version = version.Short()
	rootCmd.SetVersionTemplate("ipmi-fru-it " + version.Full() + "\n")

	// Setup command flags with consistent naming and descriptions.
	flags := rootCmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "FRU description file (.yaml, .json, .ini)")
	flags.StringVarP(&outputPath, "output", "o", "", "output FRU image file")
	flags.StringVarP(&maxSize, "max-size", "s", "", "maximum image size, e.g. 256 or 2KiB (empty or 0 disables the check)")
	flags.StringVarP(&format, "format", "f", "", "configuration format: yaml, json or ini (default: from extension)")
	flags.BoolVar(&printLayout, "layout", false, "print a JSON layout report of the image to stdout")
	flags.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flags.BoolVarP(&quiet, "quiet", "q", false, "only log warnings and errors")

	_ = rootCmd.MarkFlagRequired("config")
	_ = rootCmd.MarkFlagRequired("output")
}
