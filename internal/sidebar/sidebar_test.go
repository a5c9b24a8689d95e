package sidebar

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/aepsite/internal/docmodel"
	"git.home.luguber.info/inful/aepsite/internal/sitestructure"
)

var groups = docmodel.Groups{
	{Code: "meta", Title: "Meta"},
	{Code: "standard-methods", Title: "Standard methods"},
}

func docs() []docmodel.Document {
	return []docmodel.Document{
		{ID: "140", Title: "Field names", Slug: "field-names", Category: "standard-methods", Order: 1},
		{ID: "1", Title: "Purpose", Slug: "purpose", Category: "meta", Frontmatter: map[string]any{"state": "approved"}},
		{ID: "133", Title: "Create", Slug: "create", Category: "standard-methods", Order: 2},
		{ID: "9", Title: "Orphan", Slug: "orphan", Category: "unknown"},
	}
}

func structure() *sitestructure.Structure {
	st := sitestructure.New()
	st.AddOverviewPage(docmodel.Page{Label: "faq", Link: "faq"})
	st.AddOverviewPage(docmodel.Page{Label: "contributing", Link: "contributing"})
	st.AddEdition("v1", docs()[:1], groups, "v1")
	st.AddEdition("general", docs(), groups, ".")
	return st
}

func TestFromStructure(t *testing.T) {
	got, err := json.Marshal(FromStructure(structure()))
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"label":"Overview","link":"1","icon":"bars","id":"overview","items":["faq","contributing"]},
		{"label":"AEPs","link":"/general","icon":"open-book","id":"aeps","items":[
			{"label":"Meta","items":[{"label":"1. Purpose","link":"1"}]},
			{"label":"Standard methods","items":[
				{"label":"133. Create","link":"133"},
				{"label":"140. Field names","link":"140"}
			]}
		]}
	]`, string(got))
}

func TestFromStructure_Tooling(t *testing.T) {
	st := sitestructure.New()
	st.AddToolingPage(docmodel.Page{Label: "Protobuf Linter", Link: LinterPage})
	st.AddToolingPage(docmodel.Page{Label: "Website", Link: "tooling/website"})
	st.SetLinterRules([]string{"4", "133"})

	s := FromStructure(st)
	tooling, ok := s.Section(ToolingLabel)
	require.True(t, ok)
	got, err := json.Marshal(tooling)
	require.NoError(t, err)
	assert.JSONEq(t, `{"label":"Tooling","link":"/tooling-and-ecosystem","icon":"puzzle","id":"tooling","items":[
		{"label":"Protobuf Linter","items":["tooling/linter",
			{"label":"Rules","collapsed":true,"items":["tooling/linter/rules/4","tooling/linter/rules/133"]}]},
		{"label":"Website","link":"tooling/website"}
	]}`, string(got))

	aeps, ok := s.Section(AEPsLabel)
	require.True(t, ok)
	assert.NotNil(t, aeps.Items)
	assert.Empty(t, aeps.Items)
}

func TestAddToSidebar(t *testing.T) {
	s := Skeleton()
	s = AddToSidebar(s, OverviewLabel, Link("faq"))
	s = AddToSidebar(s, "Blog", Link("blog/launch"))
	s = AddToSidebar(s, "Blog", Group(Node{Label: "Older", Items: []Item{Link("blog/old")}}))

	require.Len(t, s, 3)
	overview, _ := s.Section(OverviewLabel)
	require.Len(t, overview.Items, 1)
	assert.Equal(t, "faq", overview.Items[0].Page())

	blog, ok := s.Section("Blog")
	require.True(t, ok)
	require.Len(t, blog.Items, 2)
	assert.True(t, blog.Items[0].IsLink())
	n, ok := blog.Items[1].Node()
	require.True(t, ok)
	assert.Equal(t, "Older", n.Label)
}

func TestSidebarJSONRoundTrip(t *testing.T) {
	s := FromStructure(structure())
	data, err := json.Marshal(s)
	require.NoError(t, err)

	var back Sidebar
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, s, back)

	var bad Item
	assert.Error(t, json.Unmarshal([]byte(`42`), &bad))
}

func TestRedirects(t *testing.T) {
	r := Redirects{}
	r.Add("", docs(), groups)
	r.Add("v1", docs()[:2], groups)

	assert.Equal(t, Redirects{
		"/field-names":    "/140",
		"/purpose":        "/1",
		"/create":         "/133",
		"/v1/field-names": "/v1/140",
		"/v1/purpose":     "/v1/1",
	}, r)
	_, orphan := r["/orphan"]
	assert.False(t, orphan)
}

func TestFullAEPList(t *testing.T) {
	st := structure()
	latest, ok := st.LatestEdition()
	require.True(t, ok)

	list := FullAEPList(latest)
	require.Len(t, list, 2)
	assert.Equal(t, "Meta", list[0].Label)
	assert.Equal(t, "approved", list[0].Items[0].Status)
	assert.Equal(t, "Standard methods", list[1].Label)
	assert.Equal(t, []string{"140", "133"}, []string{list[1].Items[0].ID, list[1].Items[1].ID}, "ordered by placement order")

	assert.Empty(t, FullAEPList(nil))
}

func TestEditionList(t *testing.T) {
	list := EditionList(structure())
	assert.Equal(t, []EditionLink{
		{Name: "v1", Folder: "v1", Label: "V1"},
		{Name: "general", Folder: ".", Label: "General", Latest: true},
	}, list)
	assert.Equal(t, "Aep 2026 Preview", EditionLabel("aep-2026_preview"))
}
