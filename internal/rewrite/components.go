package rewrite

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/aepsite/internal/util/sets"
)

// Component is an import the rendered document needs.
type Component struct {
	Names []string `json:"names"`
	Path  string   `json:"path"`
}

// Components is an ordered registry of imports keyed by path.
type Components []Component

// With returns a registry that also holds c. A path already present keeps its
// position and gains the names it was missing.
func (cs Components) With(c Component) Components {
	out := make(Components, len(cs), len(cs)+1)
	copy(out, cs)
	for i := range out {
		if out[i].Path == c.Path {
			out[i] = Component{Path: c.Path, Names: sets.Union(out[i].Names, c.Names)}
			return out
		}
	}
	return append(out, Component{Path: c.Path, Names: sets.Union(nil, c.Names)})
}

// Merge adds every component of other in order.
func (cs Components) Merge(other Components) Components {
	out := cs
	for _, c := range other {
		out = out.With(c)
	}
	return out
}

// Has reports whether name is imported from some path.
func (cs Components) Has(name string) bool {
	for _, c := range cs {
		for _, n := range c.Names {
			if n == name {
				return true
			}
		}
	}
	return false
}

// Imports renders one import line per component. Package imports use named
// imports; project files (paths starting with "@components", "/" or ".") use
// a default import of the first name.
func (cs Components) Imports() string {
	lines := make([]string, 0, len(cs))
	for _, c := range cs {
		if len(c.Names) == 0 {
			continue
		}
		if isProjectFile(c.Path) {
			lines = append(lines, fmt.Sprintf("import %s from '%s';", c.Names[0], c.Path))
			continue
		}
		lines = append(lines, fmt.Sprintf("import { %s } from '%s';", strings.Join(c.Names, ", "), c.Path))
	}
	return strings.Join(lines, "\n")
}

func isProjectFile(path string) bool {
	return strings.HasPrefix(path, "@components") || strings.HasPrefix(path, "/") || strings.HasPrefix(path, ".")
}
