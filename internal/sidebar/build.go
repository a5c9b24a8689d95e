package sidebar

import (
	"git.home.luguber.info/inful/aepsite/internal/sitestructure"
)

// Section labels and the links the renderer expects.
const (
	OverviewLabel = "Overview"
	AEPsLabel     = "AEPs"
	ToolingLabel  = "Tooling"

	// LinterPage is the link of the protobuf linter's index page.
	LinterPage = "tooling/linter"
	// WebsitePage is the link of the site generator's own page.
	WebsitePage  = "tooling/website"
	WebsiteLabel = "Website"
)

// Skeleton returns the fixed Overview and AEPs sections with no items.
func Skeleton() Sidebar {
	return Sidebar{
		{Label: OverviewLabel, Link: "1", Icon: "bars", ID: "overview", Items: []Item{}},
		{Label: AEPsLabel, Link: "/general", Icon: "open-book", ID: "aeps", Items: []Item{}},
	}
}

// FromStructure builds the navigation tree. Overview lists the overview
// pages in order; AEPs holds one group per category of the latest edition.
// A Tooling section is added when the structure has tooling pages.
func FromStructure(st *sitestructure.Structure) Sidebar {
	s := Skeleton()

	for _, p := range st.Overview.Pages {
		s = AddToSidebar(s, OverviewLabel, Link(p.Link))
	}

	if latest, ok := st.LatestEdition(); ok {
		for _, c := range latest.Categories {
			items := make([]Item, 0, len(c.AEPs))
			for _, a := range c.AEPs {
				items = append(items, Group(Node{Label: a.ID + ". " + a.Title, Link: a.ID}))
			}
			s = AddToSidebar(s, AEPsLabel, Group(Node{Label: c.Title, Items: items}))
		}
	}

	if len(st.Tooling.Pages) > 0 {
		s = append(s, Node{Label: ToolingLabel, Link: "/tooling-and-ecosystem", Icon: "puzzle", ID: "tooling", Items: []Item{}})
		for _, p := range st.Tooling.Pages {
			s = AddToSidebar(s, ToolingLabel, toolingItem(p.Label, p.Link, st.Tooling.LinterRules))
		}
	}
	return s
}

func toolingItem(label, link string, linterRules []string) Item {
	if link != LinterPage {
		return Group(Node{Label: label, Link: link})
	}
	rules := make([]Item, 0, len(linterRules))
	for _, aep := range linterRules {
		rules = append(rules, Link(LinterPage+"/rules/"+aep))
	}
	return Group(Node{
		Label: label,
		Items: []Item{
			Link(LinterPage),
			Group(Node{Label: "Rules", Collapsed: true, Items: rules}),
		},
	})
}
