package sidebar

import (
	"git.home.luguber.info/inful/aepsite/internal/docmodel"
)

// Redirects maps legacy slug URLs to canonical id URLs.
type Redirects map[string]string

// Add records "/<prefix>/<slug>" -> "/<prefix>/<id>" for every document whose
// category is a known group. An empty prefix maps "/<slug>" -> "/<id>".
func (r Redirects) Add(prefix string, docs []docmodel.Document, groups docmodel.Groups) {
	base := "/"
	if prefix != "" {
		base = "/" + prefix + "/"
	}
	for _, d := range docmodel.InGroups(docs, groups) {
		if d.Slug == "" {
			continue
		}
		r[base+d.Slug] = base + d.ID
	}
}
