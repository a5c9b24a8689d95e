package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"git.home.luguber.info/inful/aepsite/internal/docmodel"
	"git.home.luguber.info/inful/aepsite/internal/rewrite"
)

func doc(id, title, body string) docmodel.Document {
	return docmodel.Document{ID: id, Title: title, Body: rewrite.Result{Text: body}}
}

func TestExport_NumericOrder(t *testing.T) {
	out := New("AEP").Export([]docmodel.Document{
		doc("140", "Field names", "Names."),
		doc("1", "Purpose", "Purpose."),
		doc("133", "Create", "Create."),
	})

	sections := strings.Split(out, SectionSeparator)
	assert.Equal(t, []string{
		"# AEP-1 Purpose\n\nPurpose.",
		"# AEP-133 Create\n\nCreate.",
		"# AEP-140 Field names\n\nNames.",
	}, sections)
}

func TestClean(t *testing.T) {
	body := "import { Aside } from '@astrojs/starlight/components';\n" +
		"Intro {/* hidden */} text.\n\n" +
		"<Aside type=\"note\" title=\"Note\">\n  Careful.\n</Aside>\n\n" +
		"<Sample path=\"a.proto\" type=\"protobuf\" token1=\"Book\" token2=\"\" />\n" +
		"Clients <b class=\"font-extrabold text-red-700\">must</b> retry. <!-- todo -->\n" +
		"See <AepLink href=\"/132\">aep-132</AepLink>."

	got := New("AEP").Clean(body)
	assert.Equal(t, "Intro  text.\n\n\n\n\nClients **must** retry. \nSee .", got)
}

func TestExport_Empty(t *testing.T) {
	assert.Empty(t, New("AEP").Export(nil))
}
