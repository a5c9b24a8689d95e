// Package preview builds the site, serves the output tree, and rebuilds it
// when local sources change or git sources are refreshed.
package preview

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/aepsite/internal/build"
	"git.home.luguber.info/inful/aepsite/internal/config"
	"git.home.luguber.info/inful/aepsite/internal/foundation/errors"
	"git.home.luguber.info/inful/aepsite/internal/logfields"
	"git.home.luguber.info/inful/aepsite/internal/observability"
	"git.home.luguber.info/inful/aepsite/internal/workspace"
)

// Options configure a preview session.
type Options struct {
	Config  *config.Config
	Service build.BuildService
	// Workspace holds clones of git sources; it must be the one Service uses.
	Workspace *workspace.Manager
	Registry  *prom.Registry
	// AfterBuild runs after every build.
	AfterBuild func(*build.Report)
}

// Run builds once, then serves and rebuilds until ctx is canceled.
func Run(ctx context.Context, opts Options) error {
	cfg := opts.Config
	if cfg == nil {
		return errors.WrapError(build.ErrConfigRequired, errors.CategoryConfig, "config required").Build()
	}

	status := &buildStatus{}
	rb := newRebuilder(opts.Service, cfg, status, opts.AfterBuild)
	rb.build(ctx, false)

	srv := NewServer(cfg.Preview.Listen, cfg.Output.Root, status, opts.Registry, sampleRoot(cfg, opts.Workspace))
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()
	observability.InfoContext(ctx, "Preview server listening", logfields.Addr(cfg.Preview.Listen))

	roots := watchRoots(cfg)
	w, err := newWatcher(roots, debounce(cfg.Preview.Debounce, func() { rb.request(false) }))
	if err != nil {
		shutdown(ctx, srv)
		return errors.WrapError(err, errors.CategoryRuntime, "failed to watch sources").Build()
	}
	defer func() { _ = w.Close() }()
	observability.InfoContext(ctx, "Watching sources", logfields.Count(len(roots)))

	ref, err := newRefresher(cfg, func() { rb.request(true) })
	if err != nil {
		shutdown(ctx, srv)
		return errors.WrapError(err, errors.CategoryRuntime, "failed to schedule source refresh").Build()
	}
	if ref != nil {
		ref.Start(ctx, cfg.Preview.Refresh)
		defer func() {
			if err := ref.Stop(ctx); err != nil {
				observability.WarnContext(ctx, "Failed to stop source refresh", logfields.Error(err))
			}
		}()
	}

	go rb.loop(ctx)
	go w.run(ctx)

	select {
	case <-ctx.Done():
		shutdown(ctx, srv)
		return nil
	case err, ok := <-serveErr:
		if !ok {
			return nil
		}
		return errors.WrapError(err, errors.CategoryRuntime, "preview server failed").
			WithContext("addr", cfg.Preview.Listen).Build()
	}
}

func shutdown(ctx context.Context, srv *Server) {
	observability.InfoContext(ctx, "Shutting down preview server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		observability.WarnContext(ctx, "HTTP server shutdown error", logfields.Error(err))
	}
}

// sampleRoot resolves the AEP source directory: the configured path, or
// its clone in ws.
func sampleRoot(cfg *config.Config, ws *workspace.Manager) func() (string, error) {
	return func() (string, error) {
		src := cfg.Sources.AEP
		if !src.Remote() {
			if src.Path == "" {
				return "", errors.ConfigError("no AEP source configured").Build()
			}
			return src.Path, nil
		}
		if ws == nil {
			return "", errors.ConfigError("no workspace for the AEP git source").Build()
		}
		return ws.Subdir("aep")
	}
}
