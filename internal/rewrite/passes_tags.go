package rewrite

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/aepsite/internal/sample"
)

var (
	sampleTagRe = regexp.MustCompile(`\{% sample '(.*?)', '(.*?)'(?:, '(.*?)')? %\}`)
	tabsRe      = regexp.MustCompile(`(?s)\{% tab proto -?%\}(.*?)\{% tab oas -?%\}(.*?)\{% endtabs -?%\}`)
	imageTagRe  = regexp.MustCompile(`\{% image '(.*?)', '(.*?)' %\}`)
)

// samplesPass turns {% sample 'file', 'tok1'[, 'tok2'] %} into a Sample tag.
// Files that are neither .proto nor .yaml are left alone.
func samplesPass(cfg Config) Pass {
	return PassFunc{
		PassName: "samples",
		Fn: func(in Result, env Env) Result {
			out := in
			out.Text = sampleTagRe.ReplaceAllStringFunc(in.Text, func(m string) string {
				sub := sampleTagRe.FindStringSubmatch(m)
				typ, ok := sample.TypeForFile(sub[1])
				if !ok {
					return m
				}
				ref := SampleRef{
					Path:   filepath.Join(env.Folder, sub[1]),
					Type:   string(typ),
					Token1: sub[2],
					Token2: sub[3],
				}
				ref.Tag = fmt.Sprintf(`<Sample path="%s" type="%s" token1="%s" token2="%s" />`,
					html.EscapeString(ref.Path), typ.ComponentType(), html.EscapeString(ref.Token1), html.EscapeString(ref.Token2))
				out.Samples = append(out.Samples, ref)
				out.Components = out.Components.With(cfg.sampleComponent())
				return ref.Tag
			})
			return out
		},
	}
}

// tabsPass renders a proto/oas tab pair as a two-pane Tabs block.
func tabsPass(cfg Config) Pass {
	return PassFunc{
		PassName: "tabs",
		Deps:     after("samples"),
		Fn: func(in Result, _ Env) Result {
			out := in
			out.Text = tabsRe.ReplaceAllStringFunc(in.Text, func(m string) string {
				sub := tabsRe.FindStringSubmatch(m)
				out.Components = out.Components.With(cfg.tabsComponent())
				return "\n<Tabs syncKey=\"exampleType\">\n" +
					"  <TabItem label=\"Protocol Buffers\">\n" + indent(sub[1]) + "\n  </TabItem>\n" +
					"  <TabItem label=\"OpenAPI 3.0\">\n" + indent(sub[2]) + "\n  </TabItem>\n" +
					"</Tabs>\n"
			})
			return out
		},
	}
}

// imagesPass replaces {% image 'file', 'alt' %} with an Image tag and
// records the asset the tag imports.
func imagesPass(cfg Config) Pass {
	return PassFunc{
		PassName: "images",
		Deps:     after("aep_links_plain"),
		Fn: func(in Result, env Env) Result {
			out := in
			out.Images = append([]ImageAsset(nil), in.Images...)
			out.Text = imageTagRe.ReplaceAllStringFunc(in.Text, func(m string) string {
				sub := imageTagRe.FindStringSubmatch(m)
				asset := imageAsset(cfg, env, sub[1], len(out.Images))
				out.Images = append(out.Images, asset)
				out.Components = out.Components.With(cfg.imageComponent())
				return fmt.Sprintf(`<Image src={%s} alt="%s" />`, asset.VariableName, html.EscapeString(sub[2]))
			})
			return out
		},
	}
}

func imageAsset(cfg Config, env Env, file string, n int) ImageAsset {
	target := filepath.Join(cfg.AssetsDir, filepath.Base(env.Folder)+"_"+file)
	importPath := filepath.ToSlash(target)
	if rel, err := filepath.Rel(env.OutputDir, target); err == nil {
		importPath = filepath.ToSlash(rel)
	}
	if !strings.HasPrefix(importPath, ".") {
		importPath = "./" + importPath
	}
	return ImageAsset{
		VariableName: fmt.Sprintf("img_%d", n),
		ImportPath:   importPath,
		SourcePath:   filepath.Join(env.Folder, file),
		TargetPath:   target,
	}
}

// indent prefixes every line with two spaces.
func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}
