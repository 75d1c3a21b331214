package config

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

var (
	// errKeyOutsideSection is returned for a key=value line before any [section].
	errKeyOutsideSection = errors.New("key outside of a section")
	// errMalformedLine is returned for a line that is neither a section, a key nor a comment.
	errMalformedLine = errors.New("malformed line")
)

// iniLoadOptions match the classic iniparser dialect: case-insensitive names,
// '=' as the only delimiter, ; and # comments, double-quoted values kept verbatim.
//
//nolint:gochecknoglobals,exhaustruct // Read-only decoder settings.
var iniLoadOptions = ini.LoadOptions{
	Insensitive:                true,
	IgnoreContinuation:         true,
	AllowShadows:               true,
	AllowDuplicateShadowValues: true,
	UnescapeValueDoubleQuotes:  true,
	KeyValueDelimiters:         "=",
}

// parseINI reads the classic [section] / key = value syntax. Section and key
// names are stored lower-cased; values keep their case.
func parseINI(contents []byte) (*Document, error) {
	f, err := ini.LoadSources(iniLoadOptions, contents)
	if err != nil {
		if ini.IsErrDelimiterNotFound(err) {
			return nil, fmt.Errorf("%w: %w", errMalformedLine, err)
		}

		return nil, fmt.Errorf("decode: %w", err)
	}

	doc := NewDocument()
	defaultSection := strings.ToLower(ini.DefaultSection)

	for _, sec := range f.Sections() {
		if sec.Name() == defaultSection {
			if keys := sec.KeyStrings(); len(keys) > 0 {
				return nil, fmt.Errorf("%q: %w", keys[0], errKeyOutsideSection)
			}

			continue
		}

		name := strings.TrimSpace(sec.Name())
		doc.AddSection(name)

		for _, key := range sec.Keys() {
			// Shadows hold repeated keys; empty repeats are not tracked.
			if len(key.ValueWithShadows()) > 1 {
				return nil, fmt.Errorf("%s.%s: %w", name, key.Name(), ErrDuplicateKey)
			}

			if err = doc.Set(name, key.Name(), key.Value()); err != nil {
				return nil, err
			}
		}
	}

	return doc, nil
}
