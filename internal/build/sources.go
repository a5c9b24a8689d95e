package build

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/aepsite/internal/config"
	"git.home.luguber.info/inful/aepsite/internal/corpus"
	"git.home.luguber.info/inful/aepsite/internal/logfields"
	"git.home.luguber.info/inful/aepsite/internal/workspace"
)

// sources resolves the three corpora. A source that is unconfigured,
// missing, or fails to sync is left out with a warning.
func (r *run) sources(ctx context.Context) error {
	r.aep = corpus.AEPRepo{Root: r.resolve(ctx, "aep", r.cfg.Sources.AEP)}
	r.linter = corpus.LinterRepo{Root: r.resolve(ctx, "linter", r.cfg.Sources.Linter)}
	r.components = corpus.ComponentsRepo{Root: r.resolve(ctx, "components", r.cfg.Sources.Components)}

	r.hasAEP = r.available(ctx, "aep", r.aep.Check())
	r.hasLinter = r.available(ctx, "linter", r.linter.Check())
	r.hasComps = r.available(ctx, "components", r.components.Check())
	return nil
}

func (r *run) resolve(ctx context.Context, name string, src config.Source) string {
	if !src.Remote() {
		return src.Path
	}
	ws, err := r.ensureWorkspace(ctx)
	if err != nil {
		r.report.warn(ctx, "Workspace unavailable; skipping git source", logfields.Source(name), logfields.Error(err))
		return ""
	}
	dir, err := ws.Subdir(name)
	if err != nil {
		r.report.warn(ctx, "Workspace unavailable; skipping git source", logfields.Source(name), logfields.Error(err))
		return ""
	}
	if r.opts.Offline {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}
	}

	start := time.Now()
	path, err := r.svc.gitClientFactory(ws.Path()).WithDepth(r.cfg.Sources.Depth).Sync(ctx, name, src)
	r.svc.recorder.ObserveSourceSync(name, time.Since(start), err == nil)
	if err != nil {
		r.report.warn(ctx, "Failed to sync git source", logfields.Source(name), logfields.URL(src.URL), logfields.Error(err))
		return ""
	}
	return path
}

func (r *run) ensureWorkspace(ctx context.Context) (*workspace.Manager, error) {
	if r.workspace == nil {
		if r.svc.workspace != nil {
			r.workspace = r.svc.workspace
		} else {
			r.workspace = workspace.ForDir(r.cfg.Sources.WorkDir)
			r.ownsWS = true
		}
	}
	if err := r.workspace.Create(ctx); err != nil {
		return nil, err
	}
	return r.workspace, nil
}

// available records a structural warning when a corpus cannot be used.
func (r *run) available(ctx context.Context, name string, err error) bool {
	if err == nil {
		return true
	}
	r.report.warn(ctx, "Source not available; its content is left out of the site",
		logfields.Source(name), logfields.Error(err))
	return false
}
