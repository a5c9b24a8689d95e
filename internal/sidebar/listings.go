package sidebar

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/aepsite/internal/sitestructure"
)

// ListedAEP is one entry of the full AEP list.
type ListedAEP struct {
	Title  string `json:"title"`
	ID     string `json:"id"`
	Slug   string `json:"slug"`
	Status string `json:"status,omitempty"`
}

// ListedGroup is one category of the full AEP list.
type ListedGroup struct {
	Label string      `json:"label"`
	Items []ListedAEP `json:"items"`
}

// FullAEPList lists every category of e with its documents ordered by their
// placement order.
func FullAEPList(e *sitestructure.Edition) []ListedGroup {
	if e == nil {
		return []ListedGroup{}
	}
	out := make([]ListedGroup, 0, len(e.Categories))
	for _, c := range e.Categories {
		aeps := slices.Clone(c.AEPs)
		slices.SortStableFunc(aeps, func(a, b sitestructure.AEPItem) int { return cmp.Compare(a.Order, b.Order) })
		items := make([]ListedAEP, 0, len(aeps))
		for _, a := range aeps {
			items = append(items, ListedAEP{Title: a.Title, ID: a.ID, Slug: a.Slug, Status: a.Status})
		}
		out = append(out, ListedGroup{Label: c.Title, Items: items})
	}
	return out
}

// EditionLink describes an edition for the edition switcher.
type EditionLink struct {
	Name   string `json:"name"`
	Folder string `json:"folder"`
	Label  string `json:"label"`
	Latest bool   `json:"latest,omitempty"`
}

var labelSeparators = strings.NewReplacer("-", " ", "_", " ")

// EditionLabel turns an edition name into a display label.
func EditionLabel(name string) string {
	return cases.Title(language.English).String(labelSeparators.Replace(name))
}

// EditionList lists the editions of st in insertion order.
func EditionList(st *sitestructure.Structure) []EditionLink {
	latest, _ := st.LatestEditionName()
	names := st.AEPs.Editions.Names()
	out := make([]EditionLink, 0, len(names))
	for _, n := range names {
		e, _ := st.AEPs.Editions.Get(n)
		out = append(out, EditionLink{Name: n, Folder: e.Folder, Label: EditionLabel(n), Latest: n == latest})
	}
	return out
}
