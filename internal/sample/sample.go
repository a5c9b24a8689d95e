// Package sample slices the snippet a document embeds out of a protocol
// definition or a YAML document.
package sample

import (
	"fmt"
	"os"
	"strings"
)

// Type selects the extraction algorithm.
type Type string

const (
	TypeYAML  Type = "yml"
	TypeProto Type = "proto"
)

// TypeForFile returns the sample type implied by a file name, or false when
// the extension is not one that samples may reference.
func TypeForFile(name string) (Type, bool) {
	switch {
	case strings.HasSuffix(name, "proto"):
		return TypeProto, true
	case strings.HasSuffix(name, "yaml"):
		return TypeYAML, true
	default:
		return "", false
	}
}

// Language is the fenced-code language used when a sample is inlined.
func (t Type) Language() string {
	switch t {
	case TypeProto:
		return "protobuf"
	case TypeYAML:
		return "yaml"
	default:
		return ""
	}
}

// ComponentType is the type attribute the Sample component renders by.
func (t Type) ComponentType() string {
	if t == TypeProto {
		return "protobuf"
	}
	return string(t)
}

// Extract returns the part of code selected by tokens. For TypeYAML the first
// token is a dotted path; for TypeProto every non-empty token is a symbol and
// the snippets are joined by a blank line.
func Extract(code string, typ Type, tokens ...string) (string, error) {
	locators := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok != "" {
			locators = append(locators, tok)
		}
	}

	switch typ {
	case TypeYAML:
		if len(locators) == 0 {
			return "", fmt.Errorf("%w: no path given", ErrExtractionFailed)
		}
		return extractYAML(code, locators[0])
	case TypeProto:
		return extractProto(code, locators)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, typ)
	}
}

// ExtractFile reads path and runs Extract on its contents.
func ExtractFile(path string, typ Type, tokens ...string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %w", ErrExtractionFailed, path, err)
	}
	out, err := Extract(string(data), typ, tokens...)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}
