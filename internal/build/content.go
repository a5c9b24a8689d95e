package build

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"path/filepath"

	"git.home.luguber.info/inful/aepsite/internal/assemble"
	"git.home.luguber.info/inful/aepsite/internal/docmodel"
	"git.home.luguber.info/inful/aepsite/internal/foundation/errors"
	"git.home.luguber.info/inful/aepsite/internal/logfields"
	"git.home.luguber.info/inful/aepsite/internal/observability"
	"git.home.luguber.info/inful/aepsite/internal/sidebar"
)

// LinterTitle is the title of the linter's index page.
const LinterTitle = "Protobuf Linter"

// SiteConfigFiles are merged into generated/config.json.
var SiteConfigFiles = []string{"hero", "urls", "site"}

// pages renders the general pages and lists them under Overview.
func (r *run) pages(ctx context.Context) error {
	if !r.hasAEP {
		return nil
	}
	pages, err := r.aep.Pages()
	if err != nil {
		r.report.warn(ctx, "Failed to list pages", logfields.Error(err))
		return nil
	}
	for _, p := range pages {
		raw, err := readFile(p.Path)
		if err != nil {
			r.report.warn(ctx, "Failed to read page", logfields.Path(p.Path), logfields.Error(err))
			continue
		}
		data, _, err := assemble.Page(raw, "")
		if err != nil {
			r.report.warn(ctx, "Failed to render page", logfields.Path(p.Path), logfields.Error(err))
			continue
		}
		if err := r.write(ctx, r.contentPath(p.Name+".md"), data); err != nil {
			return err
		}
		r.structure.AddOverviewPage(docmodel.Page{Label: p.Name, Link: p.Name})
	}
	return nil
}

// blog copies blog posts verbatim.
func (r *run) blog(ctx context.Context) error {
	if !r.hasAEP {
		return nil
	}
	files, err := r.aep.BlogFiles()
	if err != nil {
		r.report.warn(ctx, "Failed to list blog posts", logfields.Error(err))
		return nil
	}
	for _, f := range files {
		if err := r.copyFile(ctx, f, r.contentPath("blog", filepath.Base(f))); err != nil {
			return err
		}
	}
	return nil
}

// linterRules writes the consolidated rule pages and the tooling index
// pages, then lists them under Tooling.
func (r *run) linterRules(ctx context.Context) error {
	if !r.hasLinter {
		return nil
	}
	sources, err := r.linter.Rules()
	if err != nil {
		r.report.warn(ctx, "Linter rules not available", logfields.Error(err))
		return nil
	}
	rules := make([]assemble.LinterRule, 0, len(sources))
	for _, src := range sources {
		rule, err := assemble.ReadLinterRule(src.Path, src.AEP)
		if err != nil {
			r.report.warn(ctx, "Skipping linter rule", logfields.Path(src.Path), logfields.Error(err))
			continue
		}
		rules = append(rules, rule)
	}

	sets := assemble.Consolidate(rules)
	aeps := make([]string, 0, len(sets))
	for _, set := range sets {
		data, err := set.Render()
		if err != nil {
			r.report.warn(ctx, "Failed to render linter rules", logfields.DocumentID(set.AEP), logfields.Error(err))
			continue
		}
		if err := r.write(ctx, r.contentPath(set.RulePage()+".md"), data); err != nil {
			return err
		}
		aeps = append(aeps, set.AEP)
	}

	if readme := r.linter.Readme(); readme != "" {
		raw, err := readFile(readme)
		if err == nil {
			var data []byte
			if data, _, err = assemble.Page(raw, LinterTitle); err == nil {
				if err := r.write(ctx, r.contentPath(sidebar.LinterPage, "index.md"), data); err != nil {
					return err
				}
			}
		}
		if err != nil {
			r.report.warn(ctx, "Failed to render linter index", logfields.Path(readme), logfields.Error(err))
		}
	}

	r.structure.AddToolingPage(docmodel.Page{Label: LinterTitle, Link: sidebar.LinterPage})
	r.structure.SetLinterRules(aeps)
	return r.website(ctx)
}

// website publishes the site's own README as the Website tooling page. A
// missing README leaves the page out.
func (r *run) website(ctx context.Context) error {
	readme := r.cfg.Sources.Website
	if readme == "" {
		return nil
	}
	raw, err := readFile(readme)
	if stderrors.Is(err, fs.ErrNotExist) {
		observability.DebugContext(ctx, "No website README", logfields.Path(readme))
		return nil
	}
	if err != nil {
		r.report.warn(ctx, "Failed to read website README", logfields.Path(readme), logfields.Error(err))
		return nil
	}
	data, _, err := assemble.Page(raw, "")
	if stderrors.Is(err, assemble.ErrTitle) {
		data, _, err = assemble.Page(raw, sidebar.WebsiteLabel)
	}
	if err != nil {
		r.report.warn(ctx, "Failed to render website README", logfields.Path(readme), logfields.Error(err))
		return nil
	}
	if err := r.write(ctx, r.contentPath(sidebar.WebsitePage, "index.md"), data); err != nil {
		return err
	}
	r.structure.AddToolingPage(docmodel.Page{Label: sidebar.WebsiteLabel, Link: sidebar.WebsitePage})
	return nil
}

// schemas publishes the component JSON schemas under their $id paths.
func (r *run) schemas(ctx context.Context) error {
	if !r.hasComps {
		return nil
	}
	files, err := r.components.SchemaFiles()
	if err != nil {
		r.report.warn(ctx, "Component schemas not available", logfields.Error(err))
		return nil
	}
	for _, f := range files {
		raw, err := readFile(f)
		if err != nil {
			r.report.warn(ctx, "Failed to read schema", logfields.Path(f), logfields.Error(err))
			continue
		}
		rel, data, err := assemble.Schema(raw)
		if err != nil {
			r.report.warn(ctx, "Skipping schema", logfields.Path(f), logfields.Error(err))
			continue
		}
		if err := r.write(ctx, r.publicPath(rel), data); err != nil {
			return err
		}
	}
	return nil
}

// siteConfig merges the site configuration files into generated/config.json.
func (r *run) siteConfig(ctx context.Context) error {
	if !r.hasAEP {
		return nil
	}
	merged, errs := r.aep.SiteConfig(SiteConfigFiles...)
	for _, err := range errs {
		r.report.warn(ctx, "Site config file left out", logfields.Error(err))
	}
	return r.writeJSON(ctx, r.generatedPath("config.json"), merged)
}

// writeJSON writes v as indented JSON.
func (r *run) writeJSON(ctx context.Context, rel string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to encode output").
			WithContext("path", rel).Build()
	}
	return r.write(ctx, rel, append(data, '\n'))
}
