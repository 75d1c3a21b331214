// Package version exposes build metadata for ipmi-fru-it.
//
// Variables Version, Commit, and BuildTime are injected at build time via
// Go ldflags. Short and Full render them for the --version flag and the
// version subcommand.
package version
