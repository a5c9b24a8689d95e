package rewrite

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/aepsite/internal/markdown"
)

var (
	htmlCommentRe = regexp.MustCompile(`(?s)<!--\s*(.*?)-->`)
	escapes       = strings.NewReplacer("<=", `\<=`, ">=", `\>=`)
	linkPaths     = strings.NewReplacer("]: ./", "]: /")
)

// htmlCommentsPass rewrites <!-- x --> as the MDX comment {/* x */}.
func htmlCommentsPass() Pass {
	return PassFunc{
		PassName: "html_comments",
		Deps:     after("tabs"),
		Fn: func(in Result, _ Env) Result {
			out := in
			out.Text = htmlCommentRe.ReplaceAllStringFunc(in.Text, func(m string) string {
				body := htmlCommentRe.FindStringSubmatch(m)[1]
				return "{/* " + strings.TrimRight(body, " \t\n") + " */}"
			})
			return out
		},
	}
}

// escapesPass backslash-escapes <= and >= so MDX does not read a tag.
func escapesPass() Pass {
	return PassFunc{
		PassName: "escapes",
		Deps:     after("html_comments"),
		Fn: func(in Result, _ Env) Result {
			out := in
			out.Text = escapes.Replace(in.Text)
			return out
		},
	}
}

// calloutsPass turns a paragraph starting with **Label:** into an Aside.
// The paragraph ends at the next blank line or the end of the text.
func calloutsPass(cfg Config) Pass {
	labels := slices.Sorted(maps.Keys(cfg.Callouts))
	quoted := make([]string, len(labels))
	for i, l := range labels {
		quoted[i] = regexp.QuoteMeta(l)
	}
	re := regexp.MustCompile(`(?:^|\n)\*\*(` + strings.Join(quoted, "|") + `):\*\*`)

	return PassFunc{
		PassName: "callouts",
		Deps:     after("escapes"),
		Fn: func(in Result, _ Env) Result {
			if len(labels) == 0 {
				return in
			}
			out := in
			var b strings.Builder
			text := in.Text
			pos := 0
			for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
				start, bodyStart := loc[0], loc[1]
				if start < pos {
					continue
				}
				bodyEnd := len(text)
				if i := strings.Index(text[bodyStart:], "\n\n"); i >= 0 {
					bodyEnd = bodyStart + i
				}
				if bodyEnd == bodyStart {
					continue
				}
				label := text[loc[2]:loc[3]]
				b.WriteString(text[pos:start])
				fmt.Fprintf(&b, "\n<Aside type=\"%s\" title=\"%s\">\n%s\n</Aside>",
					cfg.Callouts[label], html.EscapeString(label),
					indent(strings.TrimLeft(text[bodyStart:bodyEnd], " \t\n")))
				out.Components = out.Components.With(cfg.calloutComponent())
				pos = bodyEnd
			}
			b.WriteString(text[pos:])
			out.Text = b.String()
			return out
		},
	}
}

// ruleIdentifiersPass colors bolded modal keywords. Matching ignores case;
// the output keeps the author's casing.
func ruleIdentifiersPass(cfg Config) Pass {
	keywords := slices.Sorted(maps.Keys(cfg.RuleColors))
	slices.SortStableFunc(keywords, func(a, b string) int { return len(b) - len(a) })
	quoted := make([]string, len(keywords))
	for i, k := range keywords {
		quoted[i] = regexp.QuoteMeta(k)
	}
	re := regexp.MustCompile(`(?i)\*\*(` + strings.Join(quoted, "|") + `)\*\*`)

	return PassFunc{
		PassName: "rule_identifiers",
		Deps:     after("callouts"),
		Fn: func(in Result, _ Env) Result {
			if len(keywords) == 0 {
				return in
			}
			out := in
			out.Text = re.ReplaceAllStringFunc(in.Text, func(m string) string {
				word := m[2 : len(m)-2]
				return fmt.Sprintf(`<b class="%s">%s</b>`, cfg.RuleColors[strings.ToLower(word)], word)
			})
			return out
		},
	}
}

// removeTitlePass drops the first level-1 heading. Fenced code is skipped.
func removeTitlePass() Pass {
	return PassFunc{
		PassName: "remove_title",
		Deps:     after("rule_identifiers"),
		Fn: func(in Result, _ Env) Result {
			out := in
			out.Text = markdown.RemoveTitle(in.Text)
			return out
		},
	}
}

// linkPathsPass rewrites legacy reference targets "]: ./0123" to "]: /123".
func linkPathsPass() Pass {
	return PassFunc{
		PassName: "link_paths",
		Deps:     after("remove_title"),
		Fn: func(in Result, _ Env) Result {
			out := in
			out.Text = strings.ReplaceAll(linkPaths.Replace(in.Text), "]: /0", "]: /")
			return out
		},
	}
}

// fenceLanguagesPass renames fenced-code languages the renderer lacks.
func fenceLanguagesPass(cfg Config) Pass {
	langs := slices.Sorted(maps.Keys(cfg.FenceAliases))
	quoted := make([]string, len(langs))
	for i, l := range langs {
		quoted[i] = regexp.QuoteMeta(l)
	}
	re := regexp.MustCompile("(?m)^([ \\t]*(?:```|~~~))(" + strings.Join(quoted, "|") + `)\b`)

	return PassFunc{
		PassName: "fence_languages",
		Deps:     after("link_paths"),
		Fn: func(in Result, _ Env) Result {
			if len(langs) == 0 {
				return in
			}
			out := in
			out.Text = re.ReplaceAllStringFunc(in.Text, func(m string) string {
				sub := re.FindStringSubmatch(m)
				return sub[1] + cfg.FenceAliases[sub[2]]
			})
			return out
		},
	}
}
