package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComponentsWith(t *testing.T) {
	var cs Components
	cs = cs.With(Component{Names: []string{"Aside"}, Path: "@astrojs/starlight/components"})
	cs = cs.With(Component{Names: []string{"AepLink"}, Path: "@components/AepLink.astro"})
	before := cs
	cs = cs.With(Component{Names: []string{"Tabs", "TabItem", "Aside"}, Path: "@astrojs/starlight/components"})
	cs = cs.With(Component{Names: []string{"AepLink"}, Path: "@components/AepLink.astro"})

	assert.Equal(t, Components{
		{Names: []string{"Aside", "Tabs", "TabItem"}, Path: "@astrojs/starlight/components"},
		{Names: []string{"AepLink"}, Path: "@components/AepLink.astro"},
	}, cs)
	assert.Equal(t, []string{"Aside"}, before[0].Names, "With must not modify the receiver")
	assert.True(t, cs.Has("TabItem"))
	assert.False(t, cs.Has("Image"))
}

func TestComponentsImports(t *testing.T) {
	cs := DefaultConfig().DocumentComponents().
		With(Component{Names: []string{"Image"}, Path: "astro:assets"})

	assert.Equal(t, "import { Aside, Tabs, TabItem } from '@astrojs/starlight/components';\n"+
		"import Sample from '../../components/Sample.astro';\n"+
		"import AepLink from '@components/AepLink.astro';\n"+
		"import { Image } from 'astro:assets';", cs.Imports())
	assert.Empty(t, Components{}.Imports())
}
