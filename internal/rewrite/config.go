package rewrite

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// ErrUnknownSeverity is returned for a callout severity the renderer does not style.
var ErrUnknownSeverity = errors.New("unknown callout severity")

// Severities are the callout types the renderer styles.
var Severities = []string{"note", "tip", "caution", "danger"}

// Imports holds the module paths components are imported from.
type Imports struct {
	Callout  string
	Tabs     string
	CrossRef string
	Sample   string
	Image    string
}

// Config holds the lookup tables and paths the passes are built from.
type Config struct {
	// Callouts maps a bold paragraph label to a callout severity.
	Callouts map[string]string
	// RuleColors maps a lowercase modal keyword to the class list of its span.
	RuleColors map[string]string
	// FenceAliases maps a fenced-code language to its replacement; empty strips it.
	FenceAliases map[string]string
	Imports      Imports
	// AssetsDir is where image assets are copied to.
	AssetsDir string
}

// DefaultConfig returns the tables used by aep.dev.
func DefaultConfig() Config {
	return Config{
		Callouts: map[string]string{
			"Important": "caution",
			"Note":      "note",
			"TL;DR":     "tip",
			"Warning":   "danger",
			"Summary":   "tip",
		},
		RuleColors: map[string]string{
			"may":        "font-extrabold text-green-700",
			"may not":    "font-extrabold text-green-700",
			"should":     "font-extrabold text-yellow-700",
			"should not": "font-extrabold text-yellow-700",
			"must":       "font-extrabold text-red-700",
			"must not":   "font-extrabold text-red-700",
		},
		FenceAliases: map[string]string{
			"graphviz": "dot",
			"ebnf":     "",
		},
		Imports: Imports{
			Callout:  "@astrojs/starlight/components",
			Tabs:     "@astrojs/starlight/components",
			CrossRef: "@components/AepLink.astro",
			Sample:   "../../components/Sample.astro",
			Image:    "astro:assets",
		},
		AssetsDir: "src/assets/generated",
	}
}

// Validate checks the tables for values the passes cannot use.
func (c Config) Validate() error {
	for _, label := range slices.Sorted(maps.Keys(c.Callouts)) {
		if !slices.Contains(Severities, c.Callouts[label]) {
			return fmt.Errorf("%w: %q for label %q", ErrUnknownSeverity, c.Callouts[label], label)
		}
	}
	for kw := range c.RuleColors {
		if kw == "" {
			return errors.New("empty rule keyword")
		}
	}
	return nil
}

// Component values for the tags the passes emit.
func (c Config) calloutComponent() Component {
	return Component{Names: []string{"Aside"}, Path: c.Imports.Callout}
}

func (c Config) tabsComponent() Component {
	return Component{Names: []string{"Tabs", "TabItem"}, Path: c.Imports.Tabs}
}

func (c Config) crossRefComponent() Component {
	return Component{Names: []string{"AepLink"}, Path: c.Imports.CrossRef}
}

func (c Config) sampleComponent() Component {
	return Component{Names: []string{"Sample"}, Path: c.Imports.Sample}
}

func (c Config) imageComponent() Component {
	return Component{Names: []string{"Image"}, Path: c.Imports.Image}
}

// DocumentComponents are imported by every assembled AEP.
func (c Config) DocumentComponents() Components {
	var cs Components
	return cs.With(c.calloutComponent()).
		With(c.tabsComponent()).
		With(c.sampleComponent()).
		With(c.crossRefComponent())
}
