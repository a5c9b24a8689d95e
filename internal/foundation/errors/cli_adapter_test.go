package errors

import (
	"bytes"
	stderrors "errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, 0},
		{"config", ConfigError("bad config").Build(), 2},
		{"validation", ValidationError("duplicate edition").Build(), 3},
		{"not found", NewError(CategoryNotFound, "missing").Build(), 4},
		{"filesystem", FileSystemError("write failed").Build(), 5},
		{"git", GitError("clone failed").Build(), 6},
		{"sample", SampleError("symbol not found").Build(), 1},
		{"unclassified", stderrors.New("boom"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var out, logs bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	adapter.out = &out
	code := -1
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(ConfigError("unknown callout severity").WithContext("path", "aepsite.yaml").Build())

	assert.Equal(t, 2, code)
	assert.Contains(t, out.String(), "Error: unknown callout severity (aepsite.yaml)")
	assert.Contains(t, out.String(), "Check your configuration")
	assert.Contains(t, logs.String(), "category=config")
}

func TestCLIErrorAdapter_FormatVerbose(t *testing.T) {
	adapter := NewCLIErrorAdapter(true, nil)
	err := WrapError(stderrors.New("permission denied"), CategoryFileSystem, "write output").Build()
	assert.Equal(t, "Error: [filesystem:error] write output: permission denied", adapter.FormatError(err))
}
