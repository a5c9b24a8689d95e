package rewrite

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	bracketRefRe = regexp.MustCompile(`\[([^\]]+)\]\[(?i:aep)-([^\]]+)\]`)
	bareRefRe    = regexp.MustCompile(`(?i) (aep-(\d+))\b`)
	plainLinkRe  = regexp.MustCompile(`\[([^\]]+)\]\(/(\d+)\)`)

	// linkedSpanRe matches text a bare reference must not be rewritten in:
	// existing AepLink elements, markdown links and link definitions, and code.
	linkedSpanRe = regexp.MustCompile("(?s)<AepLink[^>]*>.*?</AepLink>" +
		`|\[[^\]]*\]\([^)]*\)` +
		`|\[[^\]]*\]\[[^\]]*\]` +
		`|(?m:^\[[^\]]+\]:[^\n]*)` +
		"|(?m:^[ \\t]*```.*?^[ \\t]*```)" +
		"|(?m:^[ \\t]*~~~.*?^[ \\t]*~~~)" +
		"|`[^`\\n]*`")
)

func aepLink(id, text string) string {
	return fmt.Sprintf(`<AepLink href="/%s">%s</AepLink>`, id, text)
}

// bracketLinksPass rewrites [text][aep-NNN].
func bracketLinksPass(cfg Config) Pass {
	return PassFunc{
		PassName: "aep_links_bracket",
		Deps:     after("fence_languages"),
		Fn: func(in Result, _ Env) Result {
			out := in
			out.Text = bracketRefRe.ReplaceAllStringFunc(in.Text, func(m string) string {
				sub := bracketRefRe.FindStringSubmatch(m)
				out.Components = out.Components.With(cfg.crossRefComponent())
				return aepLink(sub[2], sub[1])
			})
			return out
		},
	}
}

// bareReferencesPass rewrites " aep-NNN" outside links and code.
func bareReferencesPass(cfg Config) Pass {
	return PassFunc{
		PassName: "aep_links_bare",
		Deps:     after("aep_links_bracket"),
		Fn: func(in Result, _ Env) Result {
			out := in
			out.Text = replaceOutside(in.Text, linkedSpanRe, func(gap string) string {
				return bareRefRe.ReplaceAllStringFunc(gap, func(m string) string {
					sub := bareRefRe.FindStringSubmatch(m)
					out.Components = out.Components.With(cfg.crossRefComponent())
					return " " + aepLink(sub[2], sub[1])
				})
			})
			return out
		},
	}
}

// plainLinksPass rewrites [text](/NNN).
func plainLinksPass(cfg Config) Pass {
	return PassFunc{
		PassName: "aep_links_plain",
		Deps:     after("aep_links_bare"),
		Fn: func(in Result, _ Env) Result {
			out := in
			out.Text = plainLinkRe.ReplaceAllStringFunc(in.Text, func(m string) string {
				sub := plainLinkRe.FindStringSubmatch(m)
				out.Components = out.Components.With(cfg.crossRefComponent())
				return aepLink(sub[2], sub[1])
			})
			return out
		},
	}
}

// replaceOutside applies fn to the parts of text not matched by protected.
func replaceOutside(text string, protected *regexp.Regexp, fn func(string) string) string {
	var b strings.Builder
	pos := 0
	for _, loc := range protected.FindAllStringIndex(text, -1) {
		b.WriteString(fn(text[pos:loc[0]]))
		b.WriteString(text[loc[0]:loc[1]])
		pos = loc[1]
	}
	b.WriteString(fn(text[pos:]))
	return b.String()
}
