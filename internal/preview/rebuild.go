package preview

import (
	"context"
	"sync"

	"git.home.luguber.info/inful/aepsite/internal/build"
	"git.home.luguber.info/inful/aepsite/internal/config"
	"git.home.luguber.info/inful/aepsite/internal/logfields"
	"git.home.luguber.info/inful/aepsite/internal/observability"
)

// buildStatus tracks the latest build for the status endpoints.
type buildStatus struct {
	mu           sync.RWMutex
	report       *build.Report
	lastError    error
	builds       int
	hasGoodBuild bool
}

func (bs *buildStatus) set(report *build.Report, err error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.builds++
	bs.report = report
	bs.lastError = err
	if err == nil && report != nil && report.Status.IsSuccess() {
		bs.hasGoodBuild = true
	}
}

// snapshot returns the latest report, the number of builds and the latest
// build error.
func (bs *buildStatus) snapshot() (*build.Report, int, error) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.report, bs.builds, bs.lastError
}

func (bs *buildStatus) good() bool {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.hasGoodBuild
}

// rebuilder runs builds one at a time. Requests that arrive while a build
// runs collapse into a single follow-up build.
type rebuilder struct {
	svc    build.BuildService
	cfg    *config.Config
	status *buildStatus
	after  func(*build.Report)

	mu      sync.Mutex
	pending bool
	refresh bool
	wake    chan struct{}
}

func newRebuilder(svc build.BuildService, cfg *config.Config, status *buildStatus, after func(*build.Report)) *rebuilder {
	return &rebuilder{
		svc:    svc,
		cfg:    cfg,
		status: status,
		after:  after,
		wake:   make(chan struct{}, 1),
	}
}

// request asks for a build. With refresh set the build pulls git sources;
// otherwise existing clones are reused.
func (b *rebuilder) request(refresh bool) {
	b.mu.Lock()
	b.pending = true
	b.refresh = b.refresh || refresh
	b.mu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}
}

func (b *rebuilder) take() (ok, refresh bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.pending {
		return false, false
	}
	refresh = b.refresh
	b.pending, b.refresh = false, false
	return true, refresh
}

// loop serves requests until ctx is done.
func (b *rebuilder) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-b.wake:
			if ok, refresh := b.take(); ok {
				b.build(ctx, !refresh)
			}
		}
	}
}

func (b *rebuilder) build(ctx context.Context, offline bool) {
	report, err := b.svc.Run(ctx, build.BuildRequest{
		Config:  b.cfg,
		Options: build.BuildOptions{Offline: offline},
	})
	b.status.set(report, err)
	if err != nil {
		observability.WarnContext(ctx, "Rebuild failed", logfields.Error(err))
	}
	if b.after != nil && report != nil {
		b.after(report)
	}
}
