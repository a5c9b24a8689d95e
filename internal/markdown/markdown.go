// Package markdown reads structural facts out of markdown bodies.
package markdown

import (
	"bytes"
	"errors"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ErrNoTitle is returned when a body has no level-one heading.
var ErrNoTitle = errors.New("no level-one heading found")

var (
	titleReplacer = strings.NewReplacer(":", "-", "`", "")
	atxHeadingRe  = regexp.MustCompile(`^ {0,3}#{1,6}(?:[ \t]|\n|$)`)
)

// Title returns the text of the first level-one heading of body. Headings
// inside fenced code are ignored. Colons become dashes and backticks are
// dropped so the value is safe as a frontmatter scalar and a link label.
func Title(body []byte) (string, error) {
	h := firstTitle(body)
	if h == nil {
		return "", ErrNoTitle
	}
	return titleReplacer.Replace(strings.TrimSpace(headingText(h, body))), nil
}

// RemoveTitle deletes the source lines of the heading Title reads, so a
// fenced line that merely looks like a heading is kept.
func RemoveTitle(body string) string {
	src := []byte(body)
	h := firstTitle(src)
	if h == nil {
		return body
	}
	start, end := headingSpan(h, src)
	return body[:start] + body[end:]
}

// firstTitle finds the first top-level heading of level one that has text.
func firstTitle(body []byte) *gmast.Heading {
	root := goldmark.New().Parser().Parse(text.NewReader(body))
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*gmast.Heading); ok && h.Level == 1 && h.Lines().Len() > 0 {
			return h
		}
	}
	return nil
}

// headingSpan returns the byte range of the full lines h occupies, including
// the underline of a setext heading and the final newline.
func headingSpan(h *gmast.Heading, source []byte) (int, int) {
	lines := h.Lines()
	start := lineStart(source, lines.At(0).Start)
	end := lineEnd(source, lines.At(lines.Len()-1).Stop)
	if !atxHeadingRe.Match(source[start:end]) {
		end = lineEnd(source, end)
	}
	return start, end
}

func lineStart(source []byte, pos int) int {
	return bytes.LastIndexByte(source[:pos], '\n') + 1
}

// lineEnd returns the offset just past the newline ending the line at pos.
func lineEnd(source []byte, pos int) int {
	if pos >= len(source) {
		return len(source)
	}
	if i := bytes.IndexByte(source[pos:], '\n'); i >= 0 {
		return pos + i + 1
	}
	return len(source)
}

// headingText is the raw source of the heading's lines, so inline markup
// such as code spans keeps its delimiters until the caller strips them.
func headingText(h *gmast.Heading, source []byte) string {
	var buf bytes.Buffer
	lines := h.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}
