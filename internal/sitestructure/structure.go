// Package sitestructure aggregates assembled documents into the site's
// content hierarchy: overview pages, AEP editions grouped by category, and
// tooling pages.
package sitestructure

import (
	"strings"

	"git.home.luguber.info/inful/aepsite/internal/docmodel"
	"git.home.luguber.info/inful/aepsite/internal/versioning"
)

// AEPItem is one document entry of a category.
type AEPItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Status   string `json:"status,omitempty"`
	Category string `json:"category"`
	Order    int    `json:"order"`
}

// Category is a group with its documents sorted by numeric id.
type Category struct {
	Code  string    `json:"code"`
	Title string    `json:"title"`
	AEPs  []AEPItem `json:"aeps"`
}

// Edition is one version of the corpus.
type Edition struct {
	Name       string     `json:"name"`
	Folder     string     `json:"folder,omitempty"`
	Categories []Category `json:"categories"`
}

// Overview holds the general pages.
type Overview struct {
	Pages []docmodel.Page `json:"pages"`
}

// Tooling holds the tooling pages and the AEPs that have linter rules.
type Tooling struct {
	Pages       []docmodel.Page `json:"pages"`
	LinterRules []string        `json:"linterRules,omitempty"`
}

// AEPs holds the editions keyed by name.
type AEPs struct {
	Editions Editions `json:"editions"`
}

// Structure is the whole site hierarchy.
type Structure struct {
	Overview Overview `json:"overview"`
	AEPs     AEPs     `json:"aeps"`
	Tooling  Tooling  `json:"tooling"`
}

// New returns an empty structure.
func New() *Structure {
	return &Structure{
		Overview: Overview{Pages: []docmodel.Page{}},
		Tooling:  Tooling{Pages: []docmodel.Page{}},
	}
}

// AddOverviewPage appends an overview page.
func (s *Structure) AddOverviewPage(p docmodel.Page) {
	s.Overview.Pages = append(s.Overview.Pages, p)
}

// AddToolingPage appends a tooling page.
func (s *Structure) AddToolingPage(p docmodel.Page) {
	s.Tooling.Pages = append(s.Tooling.Pages, p)
}

// SetLinterRules records the AEPs that have consolidated linter rule pages.
func (s *Structure) SetLinterRules(aeps []string) {
	s.Tooling.LinterRules = append([]string(nil), aeps...)
}

// BuildCategories groups docs under groups. Documents whose category is not a
// group are dropped, groups without documents are omitted, and each
// category's documents are sorted by numeric id.
func BuildCategories(docs []docmodel.Document, groups docmodel.Groups) []Category {
	sorted := append([]docmodel.Document(nil), docs...)
	docmodel.SortByID(sorted)

	categories := make([]Category, 0, len(groups))
	for _, g := range groups {
		var items []AEPItem
		for _, d := range sorted {
			if d.Category != g.Code {
				continue
			}
			items = append(items, AEPItem{
				ID:       d.ID,
				Title:    d.Title,
				Slug:     d.Slug,
				Status:   d.Status(),
				Category: d.Category,
				Order:    d.Order,
			})
		}
		if len(items) == 0 {
			continue
		}
		categories = append(categories, Category{Code: g.Code, Title: g.Title, AEPs: items})
	}
	return categories
}

// AddEdition builds the categories for docs and stores them under name,
// replacing any edition already stored under that name.
func (s *Structure) AddEdition(name string, docs []docmodel.Document, groups docmodel.Groups, folder string) {
	s.AEPs.Editions.Set(&Edition{
		Name:       name,
		Folder:     folder,
		Categories: BuildCategories(docs, groups),
	})
}

var standardEditionNames = []string{"general", "main", "default"}

// LatestEditionName picks the default edition: the one with the current
// folder marker, else one with a standard name, else the first added.
// It returns false when there are no editions.
func (s *Structure) LatestEditionName() (string, bool) {
	names := s.AEPs.Editions.Names()
	if len(names) == 0 {
		return "", false
	}
	for _, n := range names {
		if e, _ := s.AEPs.Editions.Get(n); e.Folder == versioning.CurrentFolder {
			return n, true
		}
	}
	for _, n := range names {
		for _, std := range standardEditionNames {
			if strings.EqualFold(n, std) {
				return n, true
			}
		}
	}
	return names[0], true
}

// LatestEdition returns the edition LatestEditionName picks.
func (s *Structure) LatestEdition() (*Edition, bool) {
	name, ok := s.LatestEditionName()
	if !ok {
		return nil, false
	}
	return s.AEPs.Editions.Get(name)
}
