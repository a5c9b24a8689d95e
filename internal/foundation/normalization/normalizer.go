// Package normalization maps loosely written configuration strings to enum
// values.
package normalization

import (
	"fmt"
	"sort"
	"strings"
)

// EnumNormalizer maps case-insensitive, whitespace-trimmed strings to values.
type EnumNormalizer[T comparable] struct {
	name         string
	values       map[string]T
	defaultValue T
	keys         []string
}

// NewEnumNormalizer creates a normalizer for the enum called name.
func NewEnumNormalizer[T comparable](name string, values map[string]T, defaultValue T) *EnumNormalizer[T] {
	n := &EnumNormalizer[T]{
		name:         name,
		values:       make(map[string]T, len(values)),
		defaultValue: defaultValue,
	}
	for k, v := range values {
		key := clean(k)
		n.values[key] = v
		n.keys = append(n.keys, key)
	}
	sort.Strings(n.keys)
	return n
}

// Normalize returns the value for raw, or the default when raw is unknown.
func (n *EnumNormalizer[T]) Normalize(raw string) T {
	if v, ok := n.values[clean(raw)]; ok {
		return v
	}
	return n.defaultValue
}

// NormalizeWithValidation returns an error for unknown input. Empty input
// yields the default.
func (n *EnumNormalizer[T]) NormalizeWithValidation(raw string) (T, error) {
	if clean(raw) == "" {
		return n.defaultValue, nil
	}
	if v, ok := n.values[clean(raw)]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q, valid options: %v", n.name, raw, n.keys)
}

// ValidValues returns the accepted spellings, sorted.
func (n *EnumNormalizer[T]) ValidValues() []string {
	return append([]string(nil), n.keys...)
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
