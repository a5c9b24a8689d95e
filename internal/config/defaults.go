package config

import (
	"maps"
	"time"

	"git.home.luguber.info/inful/aepsite/internal/rewrite"
	"git.home.luguber.info/inful/aepsite/internal/versioning"
)

// DefaultWebsiteReadme is read relative to the working directory.
const DefaultWebsiteReadme = "README.md"

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

func applyDefaults(cfg *Config) {
	if len(cfg.Editions) == 0 {
		cfg.Editions = []versioning.Edition{{Name: versioning.GeneralFolder, Folder: versioning.CurrentFolder}}
	}

	out := &cfg.Output
	defaultString(&out.Root, ".")
	defaultString(&out.ContentDir, "src/content/docs")
	defaultString(&out.GeneratedDir, "generated")
	defaultString(&out.PublicDir, "public")
	defaultString(&out.AssetsDir, "src/assets/generated")

	defaultString(&cfg.Sources.Website, DefaultWebsiteReadme)
	if cfg.Sources.Depth <= 0 {
		cfg.Sources.Depth = 1
	}
	for _, src := range []*Source{&cfg.Sources.AEP, &cfg.Sources.Linter, &cfg.Sources.Components} {
		if src.Remote() {
			defaultString(&src.Branch, "main")
		}
	}

	rd := rewrite.DefaultConfig()
	rw := &cfg.Rewrite
	if rw.Callouts == nil {
		rw.Callouts = maps.Clone(rd.Callouts)
	}
	if rw.RuleColors == nil {
		rw.RuleColors = maps.Clone(rd.RuleColors)
	}
	if rw.FenceAliases == nil {
		rw.FenceAliases = maps.Clone(rd.FenceAliases)
	}
	defaultString(&rw.Imports.Callout, rd.Imports.Callout)
	defaultString(&rw.Imports.Tabs, rd.Imports.Tabs)
	defaultString(&rw.Imports.CrossRef, rd.Imports.CrossRef)
	defaultString(&rw.Imports.Sample, rd.Imports.Sample)
	defaultString(&rw.Imports.Image, rd.Imports.Image)

	defaultString(&cfg.Export.LLMSPrefix, "AEP")
	defaultString(&cfg.Export.LLMSFile, "llms.txt")

	if cfg.Build.Workers <= 0 {
		cfg.Build.Workers = 4
	}

	defaultString(&cfg.Preview.Listen, "127.0.0.1:4322")
	if cfg.Preview.Debounce <= 0 {
		cfg.Preview.Debounce = 300 * time.Millisecond
	}

	if cfg.Notify.URL != "" {
		defaultString(&cfg.Notify.Subject, "aepsite.build.completed")
	}

	defaultString(&cfg.Logging.Level, string(LogLevelInfo))
	defaultString(&cfg.Logging.Format, string(LogFormatText))
}

func defaultString(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

// RewriteOptions converts the rewrite section for the rewriter. The assets
// directory follows the output section.
func (c *Config) RewriteOptions() rewrite.Config {
	return rewrite.Config{
		Callouts:     c.Rewrite.Callouts,
		RuleColors:   c.Rewrite.RuleColors,
		FenceAliases: c.Rewrite.FenceAliases,
		Imports: rewrite.Imports{
			Callout:  c.Rewrite.Imports.Callout,
			Tabs:     c.Rewrite.Imports.Tabs,
			CrossRef: c.Rewrite.Imports.CrossRef,
			Sample:   c.Rewrite.Imports.Sample,
			Image:    c.Rewrite.Imports.Image,
		},
		AssetsDir: c.Output.AssetsDir,
	}
}
