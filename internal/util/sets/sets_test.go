package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := New("a", "b")
	s.Add("c")
	assert.True(t, s.Has("b"))
	assert.True(t, s.Has("c"))
	assert.False(t, s.Has("d"))
}

func TestOrdered(t *testing.T) {
	var o Ordered[string]
	assert.True(t, o.Add("Tabs", "TabItem"))
	assert.False(t, o.Add("Tabs"))
	assert.True(t, o.Add("Aside", "Tabs"))
	assert.Equal(t, []string{"Tabs", "TabItem", "Aside"}, o.Items())
	assert.Equal(t, 3, o.Len())
	assert.True(t, o.Has("Aside"))
}

func TestUnion(t *testing.T) {
	assert.Equal(t, []string{"Aside", "Tabs", "TabItem"}, Union([]string{"Aside", "Tabs"}, []string{"Tabs", "TabItem"}))
	assert.Empty(t, Union[string](nil, nil))
}
