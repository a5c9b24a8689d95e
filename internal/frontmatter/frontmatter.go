// Package frontmatter reads and writes the YAML header of markdown documents.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document opened a YAML header
// but never closed it.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// ErrInvalidYAML wraps yaml parse failures of a header.
var ErrInvalidYAML = errors.New("invalid frontmatter yaml")

// Document is a markdown file split into header fields and body.
type Document struct {
	Fields map[string]any
	Body   []byte
	// Had is false when the input carried no header.
	Had bool
}

// Split separates a `---` delimited YAML header from the body. LF and CRLF
// files are both accepted. Without a header, had is false and body is content.
func Split(content []byte) (header []byte, body []byte, had bool, err error) {
	nl := "\n"
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		nl = "\r\n"
	}

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}
	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(rest, closeSeq)
	if idx < 0 {
		// A header closed by the final line of the file has no trailing newline.
		if bytes.HasSuffix(rest, []byte(nl+"---")) {
			return rest[:len(rest)-3], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	return rest[:idx+len(nl)], rest[idx+len(closeSeq):], true, nil
}

// Parse splits content and decodes its header.
func Parse(content []byte) (*Document, error) {
	header, body, had, err := Split(content)
	if err != nil {
		return nil, err
	}
	fields, err := ParseYAML(header)
	if err != nil {
		return nil, err
	}
	return &Document{Fields: fields, Body: body, Had: had}, nil
}

// ParseYAML decodes a raw header (without delimiters) into a map.
func ParseYAML(header []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(bytes.TrimSpace(header)) == 0 {
		return fields, nil
	}
	if err := yaml.Unmarshal(header, &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidYAML, err)
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// Render writes fields as a YAML header followed by body. An empty field map
// still produces the delimiters so renderers see a header.
func Render(fields map[string]any, body []byte) ([]byte, error) {
	header, err := SerializeYAML(fields)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(header)+len(body)+8)
	out = append(out, "---\n"...)
	out = append(out, header...)
	out = append(out, "---\n"...)
	out = append(out, body...)
	return out, nil
}
