package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeYAML_Empty(t *testing.T) {
	out, err := SerializeYAML(map[string]any{})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSerializeYAML_SortedAndNested(t *testing.T) {
	out, err := SerializeYAML(map[string]any{
		"title": "Standard methods- Create",
		"isAEP": true,
		"prev":  false,
		"id":    "133",
		"placement": map[string]any{
			"order":    10,
			"category": "standard-methods",
		},
		"redirect_from": []any{"/create"},
		"weight":        1.5,
	})
	require.NoError(t, err)
	assert.Equal(t, `id: "133"
isAEP: true
placement:
  category: standard-methods
  order: 10
prev: false
redirect_from:
  - /create
title: Standard methods- Create
weight: 1.5
`, string(out))
}

func TestRender(t *testing.T) {
	out, err := Render(map[string]any{"title": "Protobuf Linter"}, []byte("Body\n"))
	require.NoError(t, err)
	assert.Equal(t, "---\ntitle: Protobuf Linter\n---\nBody\n", string(out))

	out, err = Render(nil, []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "---\n---\nx", string(out))
}
