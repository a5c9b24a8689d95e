package assemble

import (
	"context"

	"git.home.luguber.info/inful/aepsite/internal/docmodel"
	"git.home.luguber.info/inful/aepsite/internal/logfields"
	"git.home.luguber.info/inful/aepsite/internal/observability"
	"git.home.luguber.info/inful/aepsite/internal/util/parallel"
)

// Skipped records a document that could not be assembled.
type Skipped struct {
	Folder string
	Err    error
}

// Batch is the outcome of assembling many folders.
type Batch struct {
	// Documents are sorted by numeric id.
	Documents []docmodel.Document
	Skipped   []Skipped
}

// Documents assembles every source concurrently. Failures are logged and
// recorded; the rest of the batch continues.
func (a *Assembler) Documents(ctx context.Context, sources []Source) Batch {
	results := parallel.Map(ctx, sources, a.workers, func(_ context.Context, src Source) (docmodel.Document, error) {
		return a.Document(src)
	})

	var batch Batch
	for i, r := range results {
		if r.Err != nil {
			observability.WarnContext(ctx, "Skipping document",
				logfields.Folder(sources[i].Folder),
				logfields.Error(r.Err))
			batch.Skipped = append(batch.Skipped, Skipped{Folder: sources[i].Folder, Err: r.Err})
			continue
		}
		batch.Documents = append(batch.Documents, r.Value)
	}
	docmodel.SortByID(batch.Documents)
	return batch
}
