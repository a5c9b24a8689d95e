package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"simple", "# Resource-oriented design\n\nBody.\n", "Resource-oriented design"},
		{"colon and backticks", "# Standard methods: `Create`\n", "Standard methods- Create"},
		{"after prose", "Intro text.\n\n## Sub\n\n# Real title\n", "Real title"},
		{"skips fenced code", "```md\n# Not a title\n```\n\n# Errors\n", "Errors"},
		{"setext heading", "Pagination\n==========\n\ntext\n", "Pagination"},
		{"trailing hashes", "# Fields #\n", "Fields"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Title([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTitle_Missing(t *testing.T) {
	_, err := Title([]byte("## Only a subheading\n\ntext\n"))
	assert.ErrorIs(t, err, ErrNoTitle)

	_, err = Title(nil)
	assert.ErrorIs(t, err, ErrNoTitle)
}

func TestRemoveTitle(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"atx", "# Title\n\nBody\n# Second\n", "\nBody\n# Second\n"},
		{"code block before title", "```sh\n# install\n```\n\n# Real Title\n\nBody\n", "```sh\n# install\n```\n\n\nBody\n"},
		{"tilde fence", "~~~\n# not this\n~~~\n# Title\nx\n", "~~~\n# not this\n~~~\nx\n"},
		{"trailing hashes", "# Fields #\ntext", "text"},
		{"indented", "   # Title\ntext", "text"},
		{"setext", "Pagination\n==========\n\ntext\n", "\ntext\n"},
		{"setext text starting with hash", "#tag\n===\n\nx\n", "\nx\n"},
		{"title at end without newline", "intro\n\n# End", "intro\n\n"},
		{"subheadings only", "## Sub\n\ntext\n", "## Sub\n\ntext\n"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemoveTitle(tt.body))
		})
	}
}
