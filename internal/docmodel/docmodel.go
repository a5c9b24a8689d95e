// Package docmodel holds the records shared by the assembly, structure and
// navigation stages: documents, groups and pages.
package docmodel

import (
	"cmp"
	"slices"
	"strconv"

	"git.home.luguber.info/inful/aepsite/internal/rewrite"
)

// Group is a navigation category. Documents join one by setting
// placement.category to its code.
type Group struct {
	Code  string `yaml:"code" json:"code"`
	Title string `yaml:"title" json:"title"`
}

// GroupFile is the shape of the corpus scope file.
type GroupFile struct {
	Categories []Group `yaml:"categories"`
}

// Groups is the ordered category list of a corpus.
type Groups []Group

// Has reports whether code names a known group.
func (gs Groups) Has(code string) bool {
	return slices.ContainsFunc(gs, func(g Group) bool { return g.Code == code })
}

// Document is one assembled AEP.
type Document struct {
	ID       string
	Slug     string
	Title    string
	Category string
	Order    int
	// Folder is the source directory the document was read from.
	Folder string
	// Edition is the name of the edition the document belongs to.
	Edition string
	// Frontmatter is the metadata file merged with synthesized flags.
	Frontmatter map[string]any
	Body        rewrite.Result
}

// NumericID is the id parsed as an integer. Ids that do not parse sort last.
func (d Document) NumericID() int {
	n, err := strconv.Atoi(d.ID)
	if err != nil {
		return int(^uint(0) >> 1)
	}
	return n
}

// Status is the document's lifecycle state, if its metadata carries one.
func (d Document) Status() string {
	s, _ := d.Frontmatter["state"].(string)
	return s
}

// CompareByID orders documents by numeric id, then by id text so ids that
// do not parse still sort deterministically.
func CompareByID(a, b Document) int {
	if c := cmp.Compare(a.NumericID(), b.NumericID()); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// SortByID sorts docs in place by numeric id.
func SortByID(docs []Document) {
	slices.SortStableFunc(docs, CompareByID)
}

// InGroups returns the documents whose category is a known group, in their
// original order.
func InGroups(docs []Document, groups Groups) []Document {
	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		if groups.Has(d.Category) {
			out = append(out, d)
		}
	}
	return out
}

// Page is an overview or tooling page link.
type Page struct {
	Label string `json:"label"`
	Link  string `json:"link"`
}
