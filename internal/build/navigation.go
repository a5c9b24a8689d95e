package build

import (
	"context"

	"git.home.luguber.info/inful/aepsite/internal/docmodel"
	"git.home.luguber.info/inful/aepsite/internal/export"
	"git.home.luguber.info/inful/aepsite/internal/foundation/errors"
	"git.home.luguber.info/inful/aepsite/internal/sidebar"
)

// Generated artifact names below the generated directory.
const (
	SidebarFile   = "sidebar.json"
	RedirectsFile = "redirects.json"
	FullAEPsFile  = "full_aeps.json"
	EditionsFile  = "editions.json"
	StructureFile = "site-structure.json"
)

// navigation writes the sidebar, redirects, AEP and edition lists, and the
// site structure snapshot.
func (r *run) navigation(ctx context.Context) error {
	latest, _ := r.structure.LatestEdition()

	artifacts := []struct {
		name  string
		value any
	}{
		{SidebarFile, sidebar.FromStructure(r.structure)},
		{RedirectsFile, r.redirects},
		{FullAEPsFile, sidebar.FullAEPList(latest)},
		{EditionsFile, sidebar.EditionList(r.structure)},
	}
	for _, a := range artifacts {
		if err := r.writeJSON(ctx, r.generatedPath(a.name), a.value); err != nil {
			return err
		}
	}

	snapshot, err := r.structure.Marshal()
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to encode site structure").Build()
	}
	return r.write(ctx, r.generatedPath(StructureFile), append(snapshot, '\n'))
}

// export writes llms.txt from the latest edition's written documents.
func (r *run) export(ctx context.Context) error {
	var docs []docmodel.Document
	if name, ok := r.structure.LatestEditionName(); ok {
		docs = r.written[name]
	}
	text := export.New(r.cfg.Export.LLMSPrefix).Export(docs)
	return r.write(ctx, r.publicPath(r.cfg.Export.LLMSFile), []byte(text))
}
