package sample

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// extractYAML walks a "$.a.b.c" path and re-serializes the value found at
// its end wrapped in one mapping per segment, so the output keeps the path
// as context. Key order inside the value is preserved.
func extractYAML(code, path string) (string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(code), &doc); err != nil {
		return "", fmt.Errorf("%w: parse yaml: %w", ErrExtractionFailed, err)
	}
	current := &doc
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		current = doc.Content[0]
	}

	var keys []string
	for _, seg := range strings.Split(path, ".") {
		if seg == "$" {
			continue
		}
		next := mappingValue(current, seg)
		if next == nil {
			return "", fmt.Errorf("%w: %q has no key %q", ErrInvalidPath, path, seg)
		}
		keys = append(keys, seg)
		current = next
	}

	out := current
	for i := len(keys) - 1; i >= 0; i-- {
		out = &yaml.Node{
			Kind: yaml.MappingNode,
			Tag:  "!!map",
			Content: []*yaml.Node{
				{Kind: yaml.ScalarNode, Tag: "!!str", Value: keys[i]},
				out,
			},
		}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return "", fmt.Errorf("%w: encode yaml: %w", ErrExtractionFailed, err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("%w: encode yaml: %w", ErrExtractionFailed, err)
	}
	return buf.String(), nil
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			v := node.Content[i+1]
			if v.Kind == yaml.AliasNode && v.Alias != nil {
				return v.Alias
			}
			return v
		}
	}
	return nil
}
