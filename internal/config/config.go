package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Store is the read-only view of a FRU description consumed by the encoder.
type Store interface {
	// HasSection reports whether the section is present, even if it has no keys.
	HasSection(name string) bool
	// String returns the raw value of section.key and whether it exists.
	String(section, key string) (string, bool)
	// Int returns section.key parsed as an integer, or def if the key is absent.
	Int(section, key string, def int) (int, error)
	// Keys lists the keys of a section in source order.
	Keys(section string) []string
}

const (
	// FormatYAML selects the YAML decoder.
	FormatYAML = "yaml"
	// FormatJSON selects the JSON-with-comments decoder.
	FormatJSON = "json"
	// FormatINI selects the INI decoder.
	FormatINI = "ini"
)

var (
	// ErrNotScalar is returned when a key holds a list or a nested mapping.
	ErrNotScalar = errors.New("value must be a scalar")
	// ErrNotMapping is returned when the document or a section is not a mapping.
	ErrNotMapping = errors.New("expected a mapping of sections")
	// ErrDuplicateKey is returned when a key appears twice in one section.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrUnknownFormat is returned for an explicit format that has no decoder.
	ErrUnknownFormat = errors.New("unknown configuration format")
)

// Document is the in-memory Store built by the decoders.
type Document struct {
	// path is the file the document was loaded from, empty for in-memory documents.
	path     string
	sections map[string]*section
	// order keeps section names in source order.
	order []string
}

type section struct {
	keys   []string
	values map[string]string
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{
		sections: make(map[string]*section),
	}
}

// AddSection registers a section; adding an existing section is a no-op.
func (d *Document) AddSection(name string) {
	if _, ok := d.sections[name]; ok {
		return
	}

	d.sections[name] = &section{
		values: make(map[string]string),
	}
	d.order = append(d.order, name)
}

// Set appends key to the section, creating the section if needed.
func (d *Document) Set(sectionName, key, value string) error {
	d.AddSection(sectionName)

	s := d.sections[sectionName]
	if _, ok := s.values[key]; ok {
		return fmt.Errorf("%s.%s: %w", sectionName, key, ErrDuplicateKey)
	}

	s.keys = append(s.keys, key)
	s.values[key] = value

	return nil
}

// Path returns the file the document was loaded from.
func (d *Document) Path() string {
	return d.path
}

// Sections lists section names in source order.
func (d *Document) Sections() []string {
	return append([]string(nil), d.order...)
}

// HasSection implements Store.
func (d *Document) HasSection(name string) bool {
	_, ok := d.sections[name]

	return ok
}

// String implements Store.
func (d *Document) String(sectionName, key string) (string, bool) {
	s, ok := d.sections[sectionName]
	if !ok {
		return "", false
	}

	v, ok := s.values[key]

	return v, ok
}

// Int implements Store. Values use Go integer literal syntax, so 0x17 and 027
// are accepted alongside decimal.
func (d *Document) Int(sectionName, key string, def int) (int, error) {
	raw, ok := d.String(sectionName, key)
	if !ok || strings.TrimSpace(raw) == "" {
		return def, nil
	}

	v, err := strconv.ParseInt(strings.TrimSpace(raw), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("%s.%s: parse integer %q: %w", sectionName, key, raw, err)
	}

	return int(v), nil
}

// Keys implements Store.
func (d *Document) Keys(sectionName string) []string {
	s, ok := d.sections[sectionName]
	if !ok {
		return nil
	}

	return append([]string(nil), s.keys...)
}

// Load reads the FRU description at path, picking the decoder from the file extension.
func Load(path string) (*Document, error) {
	return LoadFormat(path, FormatFromPath(path))
}

// LoadFormat reads the FRU description at path with an explicit decoder.
func LoadFormat(path, format string) (*Document, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read configuration: %w", err)
	}

	doc, err := Parse(contents, format)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	doc.path = path

	return doc, nil
}

// Parse decodes contents with the named format.
func Parse(contents []byte, format string) (*Document, error) {
	switch format {
	case FormatYAML:
		return parseYAML(contents)
	case FormatJSON:
		return parseJSON(contents)
	case FormatINI:
		return parseINI(contents)
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
}

// FormatFromPath maps a file extension to a format; unknown extensions are INI.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json", ".jsonc":
		return FormatJSON
	default:
		return FormatINI
	}
}
