package config

import (
	"fmt"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// parseYAML walks the node tree rather than unmarshalling into a map so that
// section and key order survive decoding. Names are lower-cased like INI ones.
func parseYAML(contents []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(contents, &root); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	doc := NewDocument()

	// An empty file decodes to a zero node: no sections at all.
	if root.Kind == 0 || len(root.Content) == 0 {
		return doc, nil
	}

	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: %w", top.Line, ErrNotMapping)
	}

	for i := 0; i+1 < len(top.Content); i += 2 {
		name, body := strings.ToLower(top.Content[i].Value), top.Content[i+1]

		doc.AddSection(name)

		if isNull(body) {
			continue
		}

		if body.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("section %q (line %d): %w", name, body.Line, ErrNotMapping)
		}

		for j := 0; j+1 < len(body.Content); j += 2 {
			key, value := strings.ToLower(body.Content[j].Value), body.Content[j+1]

			if value.Kind == yaml.AliasNode {
				value = value.Alias
			}

			switch {
			case isNull(value):
				err := doc.Set(name, key, "")
				if err != nil {
					return nil, err
				}
			case value.Kind == yaml.ScalarNode:
				err := doc.Set(name, key, value.Value)
				if err != nil {
					return nil, err
				}
			default:
				return nil, fmt.Errorf("%s.%s (line %d): %w", name, key, value.Line, ErrNotScalar)
			}
		}
	}

	return doc, nil
}

// parseJSON accepts JSON with comments and trailing commas. JSON is a subset
// of YAML, so the stripped document goes through the YAML walker.
func parseJSON(contents []byte) (*Document, error) {
	return parseYAML(jsonc.ToJSON(contents))
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}
