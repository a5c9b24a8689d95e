package preview

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/aepsite/internal/config"
	"git.home.luguber.info/inful/aepsite/internal/observability"
)

// refresher periodically requests a build that pulls git sources.
type refresher struct {
	scheduler gocron.Scheduler
}

// hasRemoteSources reports whether any source is fetched with git.
func hasRemoteSources(cfg *config.Config) bool {
	return cfg.Sources.AEP.Remote() || cfg.Sources.Linter.Remote() || cfg.Sources.Components.Remote()
}

// newRefresher schedules request every interval. It returns nil when the
// interval is zero or nothing is fetched with git.
func newRefresher(cfg *config.Config, request func()) (*refresher, error) {
	if cfg.Preview.Refresh <= 0 || !hasRemoteSources(cfg) {
		return nil, nil
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	_, err = s.NewJob(
		gocron.DurationJob(cfg.Preview.Refresh),
		gocron.NewTask(request),
		gocron.WithName("source-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to create source refresh job: %w", err)
	}
	return &refresher{scheduler: s}, nil
}

func (r *refresher) Start(ctx context.Context, interval time.Duration) {
	observability.InfoContext(ctx, "Starting source refresh", slog.Duration("interval", interval))
	r.scheduler.Start()
}

func (r *refresher) Stop(ctx context.Context) error {
	observability.InfoContext(ctx, "Stopping source refresh")
	return r.scheduler.Shutdown()
}
