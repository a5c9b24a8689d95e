package build

import (
	"context"
	"path"
	"path/filepath"

	"git.home.luguber.info/inful/aepsite/internal/assemble"
	"git.home.luguber.info/inful/aepsite/internal/docmodel"
	"git.home.luguber.info/inful/aepsite/internal/foundation/errors"
	"git.home.luguber.info/inful/aepsite/internal/logfields"
	"git.home.luguber.info/inful/aepsite/internal/observability"
	"git.home.luguber.info/inful/aepsite/internal/versioning"
)

// aeps assembles and writes the documents of every configured edition.
func (r *run) aeps(ctx context.Context) error {
	if !r.hasAEP {
		return nil
	}
	groups, err := r.aep.Groups()
	if err != nil {
		r.report.warn(ctx, "Categories unavailable; no AEP will be listed or written", logfields.Error(err))
	}
	r.groups = groups

	asm, err := assemble.New(assemble.Options{
		Rewrite:       r.cfg.RewriteOptions(),
		InlineSamples: r.cfg.Rewrite.InlineSamples,
		Workers:       r.cfg.Build.Workers,
	})
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid rewrite configuration").Build()
	}

	for _, e := range r.cfg.EditionList() {
		if err := r.edition(observability.WithEdition(ctx, e.Name), asm, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *run) edition(ctx context.Context, asm *assemble.Assembler, e versioning.Edition) error {
	folders, err := r.aep.DocumentFolders(e)
	if err != nil {
		r.report.warn(ctx, "Edition folder not available", logfields.Path(r.aep.EditionDir(e)), logfields.Error(err))
		return nil
	}

	outDir := r.contentPath(e.OutputPrefix())
	sources := make([]assemble.Source, 0, len(folders))
	for _, f := range folders {
		sources = append(sources, assemble.Source{Folder: f, OutputDir: outDir, Edition: e.Name})
	}
	batch := asm.Documents(ctx, sources)
	for _, sk := range batch.Skipped {
		r.report.Skipped = append(r.report.Skipped, SkippedDocument{Edition: e.Name, Folder: sk.Folder, Error: sk.Err.Error()})
	}

	written := make([]docmodel.Document, 0, len(batch.Documents))
	for _, d := range docmodel.InGroups(batch.Documents, r.groups) {
		ok, err := r.writeDocument(ctx, e, outDir, d)
		if err != nil {
			return err
		}
		if ok {
			written = append(written, d)
		}
	}

	r.structure.AddEdition(e.Name, written, r.groups, e.Folder)
	r.redirects.Add(e.OutputPrefix(), written, r.groups)
	r.written[e.Name] = written
	r.report.Editions = append(r.report.Editions, EditionReport{
		Name:      e.Name,
		Assembled: len(batch.Documents),
		Skipped:   len(batch.Skipped),
		Written:   len(written),
	})
	r.svc.recorder.AddDocuments(e.Name, len(batch.Documents), len(batch.Skipped))
	observability.InfoContext(ctx, "Edition assembled",
		logfields.Count(len(written)), logfields.Path(outDir))
	return nil
}

// writeDocument writes d and copies its images. It reports false when the
// document could not be rendered.
func (r *run) writeDocument(ctx context.Context, e versioning.Edition, outDir string, d docmodel.Document) (bool, error) {
	slug := d.ID
	if !e.IsCurrent() {
		slug = path.Join(e.Folder, d.ID)
	}
	data, err := r.svc.render(d, slug)
	if err != nil {
		r.report.warn(ctx, "Failed to render document", logfields.DocumentID(d.ID), logfields.Folder(d.Folder), logfields.Error(err))
		return false, nil
	}
	if err := r.write(ctx, path.Join(outDir, d.ID+".mdx"), data); err != nil {
		return false, err
	}
	for _, img := range d.Body.Images {
		if err := r.copyFile(ctx, img.SourcePath, filepath.ToSlash(img.TargetPath)); err != nil {
			return false, err
		}
	}
	return true, nil
}
