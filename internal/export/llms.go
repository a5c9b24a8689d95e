// Package export renders the plain-text corpus export served as llms.txt.
package export

import (
	"fmt"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"

	"git.home.luguber.info/inful/aepsite/internal/docmodel"
)

// SectionSeparator joins the exported documents.
const SectionSeparator = "\n\n---\n\n"

var (
	importLineRe  = regexp.MustCompile(`import\s+.*from\s+['"].*['"];?\n?`)
	// Self-closing components are tried first so they never pair with a
	// later component's closing tag.
	componentRe   = regexp.MustCompile(`(?s)<[A-Z][^>]*/>|<[A-Z][^>]*>.*?</[A-Z][^>]*>`)
	mdxCommentRe  = regexp.MustCompile(`(?s)\{/\*.*?\*/\}`)
	htmlCommentRe = regexp.MustCompile(`(?s)<!--.*?-->`)
	// inlineHTMLRe matches the inline elements the rewriter emits, such as
	// the colored rule-identifier spans.
	inlineHTMLRe  = regexp.MustCompile(`(?s)<(?:b|strong|em|i|span|code)(?:\s[^>]*)?>.*?</(?:b|strong|em|i|span|code)>`)
)

// Exporter builds the plain-text export.
type Exporter struct {
	prefix    string
	converter *md.Converter
}

// New returns an exporter that titles sections "# <prefix>-<id> <title>".
func New(prefix string) *Exporter {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())
	return &Exporter{prefix: prefix, converter: converter}
}

// Export concatenates every document's cleaned body ordered by numeric id.
func (e *Exporter) Export(docs []docmodel.Document) string {
	sorted := append([]docmodel.Document(nil), docs...)
	docmodel.SortByID(sorted)

	sections := make([]string, 0, len(sorted))
	for _, d := range sorted {
		sections = append(sections, fmt.Sprintf("# %s-%s %s\n\n%s", e.prefix, d.ID, d.Title, e.Clean(d.Body.Text)))
	}
	return strings.Join(sections, SectionSeparator)
}

// Clean strips imports, components and comments from a rewritten body and
// turns the remaining inline HTML into markdown.
func (e *Exporter) Clean(text string) string {
	text = importLineRe.ReplaceAllString(text, "")
	text = componentRe.ReplaceAllString(text, "")
	text = mdxCommentRe.ReplaceAllString(text, "")
	text = htmlCommentRe.ReplaceAllString(text, "")
	text = inlineHTMLRe.ReplaceAllStringFunc(text, func(fragment string) string {
		converted, err := e.converter.ConvertString(fragment)
		if err != nil {
			return fragment
		}
		return strings.TrimSpace(converted)
	})
	return strings.TrimSpace(text)
}
