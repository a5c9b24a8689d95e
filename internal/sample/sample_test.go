package sample

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readTestdata(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(data)
}

func TestExtractYAML(t *testing.T) {
	code := readTestdata(t, "example.oas.yaml")

	t.Run("nested property", func(t *testing.T) {
		got, err := Extract(code, TypeYAML, "$.components.schemas.book.properties.path", "")
		require.NoError(t, err)
		assert.Equal(t, `components:
  schemas:
    book:
      properties:
        path:
          type: string
          readOnly: true
`, got)
	})

	t.Run("sequence value keeps its shape", func(t *testing.T) {
		got, err := Extract(code, TypeYAML, "$.components.schemas.book.required")
		require.NoError(t, err)
		assert.Equal(t, "components:\n  schemas:\n    book:\n      required:\n        - edition\n", got)
	})

	t.Run("missing terminal key", func(t *testing.T) {
		_, err := Extract(code, TypeYAML, "$.components.schemas.book.properties.nonexistent")
		assert.ErrorIs(t, err, ErrInvalidPath)
	})

	t.Run("missing intermediate key", func(t *testing.T) {
		_, err := Extract(code, TypeYAML, "$.components.parameters.book")
		assert.ErrorIs(t, err, ErrInvalidPath)
	})

	t.Run("path through scalar", func(t *testing.T) {
		_, err := Extract(code, TypeYAML, "$.openapi.version")
		assert.ErrorIs(t, err, ErrInvalidPath)
	})

	t.Run("no path", func(t *testing.T) {
		_, err := Extract(code, TypeYAML, "", "")
		assert.ErrorIs(t, err, ErrExtractionFailed)
	})

	t.Run("malformed document", func(t *testing.T) {
		_, err := Extract("a: [1, 2", TypeYAML, "$.a")
		assert.ErrorIs(t, err, ErrExtractionFailed)
	})
}

func TestExtractProto(t *testing.T) {
	code := readTestdata(t, "library.proto")

	tests := []struct {
		name    string
		symbols []string
		want    string
	}{
		{
			name:    "semicolon statement",
			symbols: []string{"option go_package"},
			want:    `option go_package = "example.com/library";`,
		},
		{
			name:    "brace block with nested braces",
			symbols: []string{"message Book"},
			want: `// A representation of a single book.
message Book {
  option (google.api.resource) = {
    type: "library.example.com/Book"
    pattern: "publishers/{publisher_id}/books/{book_id}"
  };

  // The resource name of the book.
  string path = 1;

  int32 edition = 2;
}`,
		},
		{
			name:    "indented rpc pulls in its comment",
			symbols: []string{"rpc CreateBook"},
			want: `// Create a single book.
  rpc CreateBook(CreateBookRequest) returns (Book) {
    option (google.api.http) = {
      post: "/{parent=publishers/*}/books"
      body: "book"
    };
  }`,
		},
		{
			name:    "two symbols joined by a blank line",
			symbols: []string{"message CreateBookRequest", "syntax"},
			want: `// The request for creating a book.
message CreateBookRequest {
  string parent = 1;
  Book book = 2;
}

syntax = "proto3";`,
		},
		{
			name:    "empty token ignored",
			symbols: []string{"package", ""},
			want:    "package aep.library;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(code, TypeProto, tt.symbols...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractProtoColonBlock(t *testing.T) {
	code := "steps:\n  first: a\n\n  second: b\nnext: c\n"

	got, err := Extract(code, TypeProto, "steps")
	require.NoError(t, err)
	assert.Equal(t, "steps:\n  first: a\n\n  second: b", got)

	got, err = Extract("root:\n  child: 1\n", TypeProto, "root")
	require.NoError(t, err)
	assert.Equal(t, "root:\n  child: 1", got)
}

func TestExtractProtoErrors(t *testing.T) {
	code := readTestdata(t, "library.proto")

	tests := []struct {
		name    string
		code    string
		symbols []string
		err     error
	}{
		{"unknown symbol", code, []string{"message Shelf"}, ErrSymbolNotFound},
		{"prefix is not a match", code, []string{"message Boo"}, ErrSymbolNotFound},
		{"no terminator", "message Book\n", []string{"message Book"}, ErrNoBlockTerminator},
		{"unbalanced", "message Book {\n  string path = 1;\n", []string{"message Book"}, ErrUnbalancedBlock},
		{"no symbols", code, nil, ErrExtractionFailed},
		{"only empty symbols", code, []string{"", ""}, ErrExtractionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.code, TypeProto, tt.symbols...)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestExtractUnsupportedType(t *testing.T) {
	for _, typ := range []Type{"unsupported", "yaml", "protobuf", ""} {
		out, err := Extract("some code", typ, "some.token")
		assert.ErrorIs(t, err, ErrUnsupportedType)
		assert.Empty(t, out)
	}
}

func TestExtractFile(t *testing.T) {
	got, err := ExtractFile(filepath.Join("testdata", "library.proto"), TypeProto, "syntax")
	require.NoError(t, err)
	assert.Equal(t, `syntax = "proto3";`, got)

	_, err = ExtractFile(filepath.Join(t.TempDir(), "missing.proto"), TypeProto, "syntax")
	assert.ErrorIs(t, err, ErrExtractionFailed)
}

func TestTypeForFile(t *testing.T) {
	typ, ok := TypeForFile("library.proto")
	assert.True(t, ok)
	assert.Equal(t, TypeProto, typ)
	assert.Equal(t, "protobuf", typ.Language())
	assert.Equal(t, "protobuf", typ.ComponentType())

	typ, ok = TypeForFile("example.oas.yaml")
	assert.True(t, ok)
	assert.Equal(t, TypeYAML, typ)
	assert.Equal(t, "yaml", typ.Language())
	assert.Equal(t, "yml", typ.ComponentType())

	_, ok = TypeForFile("schema.json")
	assert.False(t, ok)
}
