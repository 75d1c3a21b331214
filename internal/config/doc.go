// Package config loads the FRU description: a set of named sections, each an
// ordered list of key/value pairs.
//
// The same Store is produced from YAML, JSON (with comments) or INI files.
// Key order inside a section is the order of the source file and is stable
// across calls, which the area builders rely on when they lay out free-form
// fields. Section and key names are case-insensitive and stored lower-cased.
package config
