package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		header string
		body   string
		had    bool
	}{
		{"no header", "# Title\n\nHello\n", "", "# Title\n\nHello\n", false},
		{"header", "---\nrule:\n  aep: 133\n---\n# Title\n", "rule:\n  aep: 133\n", "# Title\n", true},
		{"crlf", "---\r\nkey: value\r\n---\r\n# Title\r\n", "key: value\r\n", "# Title\r\n", true},
		{"empty header", "---\n---\n# Title\n", "", "# Title\n", true},
		{"header only", "---\nkey: value\n---", "key: value\n", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, body, had, err := Split([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.had, had)
			assert.Equal(t, tt.header, string(header))
			assert.Equal(t, tt.body, string(body))
		})
	}
}

func TestSplit_MissingClosingDelimiter(t *testing.T) {
	_, _, had, err := Split([]byte("---\nkey: value\n# Title\n"))
	require.ErrorIs(t, err, ErrMissingClosingDelimiter)
	assert.False(t, had)
}

func TestParse(t *testing.T) {
	doc, err := Parse([]byte("---\nrule:\n  aep: 133\n  name: [core, '0133', request-parent]\n---\n# Parent field\n"))
	require.NoError(t, err)
	assert.True(t, doc.Had)
	assert.Equal(t, "# Parent field\n", string(doc.Body))
	rule, ok := doc.Fields["rule"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 133, rule["aep"])

	_, err = Parse([]byte("---\nkey: [unclosed\n---\n"))
	assert.ErrorIs(t, err, ErrInvalidYAML)
}

func TestParseYAML_Empty(t *testing.T) {
	fields, err := ParseYAML([]byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, fields)
}
