package rewrite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func passByName(t *testing.T, name string) Pass {
	t.Helper()
	passes, err := DefaultPasses(DefaultConfig())
	require.NoError(t, err)
	for _, p := range passes {
		if p.Name() == name {
			return p
		}
	}
	t.Fatalf("no pass %q", name)
	return nil
}

func TestTextPasses(t *testing.T) {
	tests := []struct {
		pass string
		name string
		in   string
		want string
	}{
		{"html_comments", "single line", "a <!-- hidden note --> b", "a {/* hidden note */} b"},
		{"html_comments", "multi line", "<!--\nline one\nline two\n-->", "{/* line one\nline two */}"},
		{"escapes", "both operators", "x <= y >= z", `x \<= y \>= z`},
		{"callouts", "after paragraph",
			"Intro.\n\n**Note:** Something\nmore.\n\nAfter.",
			"Intro.\n\n<Aside type=\"note\" title=\"Note\">\n  Something\n  more.\n</Aside>\n\nAfter."},
		{"callouts", "at start of text",
			"**Warning:** Danger.",
			"\n<Aside type=\"danger\" title=\"Warning\">\n  Danger.\n</Aside>"},
		{"callouts", "label with punctuation",
			"**TL;DR:** short",
			"\n<Aside type=\"tip\" title=\"TL;DR\">\n  short\n</Aside>"},
		{"callouts", "inline label untouched", "See **Note:** inline", "See **Note:** inline"},
		{"callouts", "unknown label untouched", "**Hint:** nope", "**Hint:** nope"},
		{"rule_identifiers", "casing kept",
			"You **MUST NOT** x; you **should** y; **May** z.",
			`You <b class="font-extrabold text-red-700">MUST NOT</b> x; you <b class="font-extrabold text-yellow-700">should</b> y; <b class="font-extrabold text-green-700">May</b> z.`},
		{"rule_identifiers", "other bold untouched", "**always**", "**always**"},
		{"remove_title", "first heading only", "# Title\n\nBody\n# Second\n", "\nBody\n# Second\n"},
		{"remove_title", "subheading is not a title", "## Sub\n# Title\nx", "## Sub\nx"},
		{"remove_title", "no heading", "plain", "plain"},
		{"remove_title", "code block before title",
			"```sh\n# install\n```\n\n# Real Title\n\nBody\n",
			"```sh\n# install\n```\n\n\nBody\n"},
		{"link_paths", "relative and zero padded",
			"[x]: ./0133\n[y]: /0140\n[z]: https://example.com",
			"[x]: /133\n[y]: /140\n[z]: https://example.com"},
		{"fence_languages", "aliases",
			"```graphviz\ndigraph {}\n```\n  ```ebnf\nrule = x ;\n  ```\n```go\n```",
			"```dot\ndigraph {}\n```\n  ```\nrule = x ;\n  ```\n```go\n```"},
		{"aep_links_bracket", "reference links",
			"See the [Create][aep-133] method and [Reference][aep-007].",
			`See the <AepLink href="/133">Create</AepLink> method and <AepLink href="/007">Reference</AepLink>.`},
		{"aep_links_bare", "case insensitive",
			"related to aep-123 and AEP-789 (x).",
			`related to <AepLink href="/123">aep-123</AepLink> and <AepLink href="/789">AEP-789</AepLink> (x).`},
		{"aep_links_bare", "skips links and code",
			"[see aep-5](/5), `aep-9`, (aep-4), [aep-1][aep-1]\n[aep-2]: /2",
			"[see aep-5](/5), `aep-9`, (aep-4), [aep-1][aep-1]\n[aep-2]: /2"},
		{"aep_links_bare", "skips fenced code",
			"```\nsee aep-3\n```\nsee aep-3",
			"```\nsee aep-3\n```\nsee <AepLink href=\"/3\">aep-3</AepLink>"},
		{"aep_links_bare", "skips tilde fenced code",
			"~~~\nx aep-2\n~~~\ny aep-2",
			"~~~\nx aep-2\n~~~\ny <AepLink href=\"/2\">aep-2</AepLink>"},
		{"aep_links_plain", "numeric targets only",
			"[Create](/133) and [Guide](/guide)",
			`<AepLink href="/133">Create</AepLink> and [Guide](/guide)`},
	}

	for _, tt := range tests {
		t.Run(tt.pass+"/"+tt.name, func(t *testing.T) {
			got := passByName(t, tt.pass).Apply(Result{Text: tt.in}, Env{})
			assert.Equal(t, tt.want, got.Text)
		})
	}
}

func TestCrossReferencesNeverDoubleWrap(t *testing.T) {
	text := "A [Create][aep-133], bare aep-132, [List](/132) and [see aep-5](/5)."
	res := Result{Text: text}
	for _, name := range []string{"aep_links_bracket", "aep_links_bare", "aep_links_plain"} {
		res = passByName(t, name).Apply(res, Env{})
	}

	assert.Equal(t, 4, strings.Count(res.Text, "<AepLink "))
	assert.NotContains(t, res.Text, "><AepLink")
	assert.Contains(t, res.Text, `<AepLink href="/5">see aep-5</AepLink>`)
	assert.Equal(t, Components{{Names: []string{"AepLink"}, Path: "@components/AepLink.astro"}}, res.Components)
}

func TestPassesRegisterOnlyWhenUsed(t *testing.T) {
	for _, name := range []string{"samples", "tabs", "callouts", "aep_links_bracket", "aep_links_bare", "aep_links_plain", "images"} {
		got := passByName(t, name).Apply(Result{Text: "nothing to see"}, Env{})
		assert.Empty(t, got.Components, name)
	}
}

func TestSamplesPass(t *testing.T) {
	env := Env{Folder: "/corpus/aep/general/0133"}
	in := "{% sample 'library.proto', 'message Book' %}\n" +
		"{% sample 'library.oas.yaml', '$.components', 'x' %}\n" +
		"{% sample 'schema.json', 'x' %}"

	got := passByName(t, "samples").Apply(Result{Text: in}, env)

	assert.Equal(t,
		`<Sample path="/corpus/aep/general/0133/library.proto" type="protobuf" token1="message Book" token2="" />`+"\n"+
			`<Sample path="/corpus/aep/general/0133/library.oas.yaml" type="yml" token1="$.components" token2="x" />`+"\n"+
			"{% sample 'schema.json', 'x' %}", got.Text)
	require.Len(t, got.Samples, 2)
	assert.Equal(t, SampleRef{
		Tag:    `<Sample path="/corpus/aep/general/0133/library.proto" type="protobuf" token1="message Book" token2="" />`,
		Path:   "/corpus/aep/general/0133/library.proto",
		Type:   "proto",
		Token1: "message Book",
	}, got.Samples[0])
	assert.True(t, got.Components.Has("Sample"))
}

func TestTabsPass(t *testing.T) {
	in := "{% tab proto %}\nproto body\n{% tab oas -%}\noas body\n{% endtabs -%}"

	got := passByName(t, "tabs").Apply(Result{Text: in}, Env{})

	assert.Equal(t, "\n<Tabs syncKey=\"exampleType\">\n"+
		"  <TabItem label=\"Protocol Buffers\">\n  \n  proto body\n  \n  </TabItem>\n"+
		"  <TabItem label=\"OpenAPI 3.0\">\n  \n  oas body\n  \n  </TabItem>\n"+
		"</Tabs>\n", got.Text)
	assert.Equal(t, Components{{Names: []string{"Tabs", "TabItem"}, Path: "@astrojs/starlight/components"}}, got.Components)

	unterminated := "{% tab proto %}\nx\n{% tab oas %}\ny"
	assert.Equal(t, unterminated, passByName(t, "tabs").Apply(Result{Text: unterminated}, Env{}).Text)
}

func TestImagesPass(t *testing.T) {
	env := Env{Folder: "/corpus/aep/general/0133", OutputDir: "src/content/docs"}
	in := "{% image 'diagram.png', 'A \"quoted\" diagram' %} and {% image 'flow.svg', 'Flow' %}"

	got := passByName(t, "images").Apply(Result{Text: in}, env)

	assert.Equal(t, `<Image src={img_0} alt="A &#34;quoted&#34; diagram" /> and <Image src={img_1} alt="Flow" />`, got.Text)
	require.Len(t, got.Images, 2)
	assert.Equal(t, ImageAsset{
		VariableName: "img_0",
		ImportPath:   "../../assets/generated/0133_diagram.png",
		SourcePath:   "/corpus/aep/general/0133/diagram.png",
		TargetPath:   "src/assets/generated/0133_diagram.png",
	}, got.Images[0])
	assert.Equal(t, "img_1", got.Images[1].VariableName)
	assert.True(t, got.Components.Has("Image"))
}
