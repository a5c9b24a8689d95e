package docmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ids(docs []Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.ID)
	}
	return out
}

func TestSortByID_Numeric(t *testing.T) {
	docs := []Document{{ID: "140"}, {ID: "1"}, {ID: "133"}, {ID: "draft"}, {ID: "20"}}
	SortByID(docs)
	assert.Equal(t, []string{"1", "20", "133", "140", "draft"}, ids(docs))
}

func TestInGroups(t *testing.T) {
	groups := Groups{{Code: "hygiene", Title: "Hygiene"}, {Code: "resources", Title: "Resources"}}
	docs := []Document{
		{ID: "1", Category: "hygiene"},
		{ID: "2", Category: "unknown"},
		{ID: "3", Category: "resources"},
	}
	assert.Equal(t, []string{"1", "3"}, ids(InGroups(docs, groups)))
	assert.True(t, groups.Has("resources"))
	assert.False(t, groups.Has(""))
}

func TestDocument_Status(t *testing.T) {
	assert.Equal(t, "approved", Document{Frontmatter: map[string]any{"state": "approved"}}.Status())
	assert.Empty(t, Document{}.Status())
}
