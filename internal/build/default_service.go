package build

import (
	"context"
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/aepsite/internal/assemble"
	"git.home.luguber.info/inful/aepsite/internal/config"
	"git.home.luguber.info/inful/aepsite/internal/docmodel"
	"git.home.luguber.info/inful/aepsite/internal/foundation/errors"
	"git.home.luguber.info/inful/aepsite/internal/git"
	"git.home.luguber.info/inful/aepsite/internal/logfields"
	"git.home.luguber.info/inful/aepsite/internal/metrics"
	"git.home.luguber.info/inful/aepsite/internal/notify"
	"git.home.luguber.info/inful/aepsite/internal/observability"
	"git.home.luguber.info/inful/aepsite/internal/output"
	"git.home.luguber.info/inful/aepsite/internal/state"
	"git.home.luguber.info/inful/aepsite/internal/workspace"
)

// DefaultBuildService is the standard implementation of BuildService.
type DefaultBuildService struct {
	workspace        *workspace.Manager
	gitClientFactory func(dir string) *git.Client
	recorder         metrics.Recorder
	publisher        notify.Publisher
	render           func(doc docmodel.Document, slug string) ([]byte, error)
}

// NewBuildService creates a DefaultBuildService with default dependencies.
func NewBuildService() *DefaultBuildService {
	return &DefaultBuildService{
		gitClientFactory: git.NewClient,
		recorder:         metrics.NoopRecorder{},
		publisher:        notify.NoopPublisher{},
		render:           assemble.Render,
	}
}

// WithWorkspace reuses m for git sources across runs. Without it every run
// creates its workspace from the configuration and cleans it up afterwards.
func (s *DefaultBuildService) WithWorkspace(m *workspace.Manager) *DefaultBuildService {
	s.workspace = m
	return s
}

// WithGitClientFactory allows injecting a custom git client factory (for testing).
func (s *DefaultBuildService) WithGitClientFactory(factory func(dir string) *git.Client) *DefaultBuildService {
	s.gitClientFactory = factory
	return s
}

// WithRecorder sets the metrics recorder.
func (s *DefaultBuildService) WithRecorder(r metrics.Recorder) *DefaultBuildService {
	if r != nil {
		s.recorder = r
	}
	return s
}

// WithPublisher sets where build-completed events go.
func (s *DefaultBuildService) WithPublisher(p notify.Publisher) *DefaultBuildService {
	if p != nil {
		s.publisher = p
	}
	return s
}

// Run executes the complete build pipeline.
func (s *DefaultBuildService) Run(ctx context.Context, req BuildRequest) (*Report, error) {
	report := &Report{BuildID: uuid.NewString(), StartTime: time.Now()}
	ctx = observability.WithBuildID(ctx, report.BuildID)

	if req.Config == nil {
		return s.finish(ctx, report, nil, errors.WrapError(ErrConfigRequired, errors.CategoryConfig, "config required").Build())
	}
	cfg := req.Config

	store := s.openStore(ctx, cfg, req.Options, report)
	if store != nil {
		defer func() {
			if err := store.Close(); err != nil {
				observability.WarnContext(ctx, "Failed to close state store", logfields.Error(err))
			}
		}()
	}

	opts := []output.Option{output.WithDryRun(req.Options.DryRun)}
	if store != nil {
		opts = append(opts, output.WithStore(store))
	}
	r := newRun(s, cfg, req.Options, report, output.NewWriter(cfg.Output.Root, report.BuildID, opts...))
	defer r.close(ctx)

	observability.InfoContext(ctx, "Starting build",
		logfields.Path(cfg.Output.Root), logfields.Count(len(cfg.Editions)))
	err := r.execute(ctx)
	return s.finish(ctx, report, store, err)
}

// openStore opens the build-state database; failures only disable
// unchanged-output detection.
func (s *DefaultBuildService) openStore(ctx context.Context, cfg *config.Config, opts BuildOptions, report *Report) state.Store {
	if cfg.Output.StateDB == "" || opts.DryRun {
		return nil
	}
	path := cfg.Output.StateDB
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.Output.Root, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		report.warn(ctx, "State store unavailable", logfields.Path(path), logfields.Error(err))
		return nil
	}
	store, err := state.NewSQLiteStore(path)
	if err != nil {
		report.warn(ctx, "State store unavailable", logfields.Path(path), logfields.Error(err))
		return nil
	}
	return store
}

func (s *DefaultBuildService) finish(ctx context.Context, report *Report, store state.Store, err error) (*Report, error) {
	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)

	outcome := metrics.BuildOutcomeSuccess
	switch {
	case err != nil && stderrors.Is(err, context.Canceled):
		report.Status = BuildStatusCancelled
		outcome = metrics.BuildOutcomeCanceled
	case err != nil:
		report.Status = BuildStatusFailed
		outcome = metrics.BuildOutcomeFailed
	case len(report.Warnings) > 0 || len(report.Skipped) > 0:
		report.Status = BuildStatusWarning
		outcome = metrics.BuildOutcomeWarning
	default:
		report.Status = BuildStatusSuccess
	}
	if err != nil {
		report.Error = err.Error()
	}
	s.recorder.IncBuildOutcome(outcome)
	s.recorder.ObserveBuildDuration(report.Duration)

	if store != nil {
		if serr := store.RecordBuild(context.WithoutCancel(ctx), report.stateBuild()); serr != nil {
			observability.WarnContext(ctx, "Failed to record build", logfields.Error(serr))
		}
	}
	if perr := s.publisher.Publish(context.WithoutCancel(ctx), report.Event()); perr != nil {
		observability.WarnContext(ctx, "Failed to publish build event", logfields.Error(perr))
	}

	observability.InfoContext(ctx, "Build finished",
		logfields.Duration(report.Duration),
		logfields.Count(report.Documents()),
		slog.String("status", string(report.Status)),
		slog.Int("skipped", len(report.Skipped)),
		slog.Int("warnings", len(report.Warnings)),
		slog.Int("written", report.Outputs.Written),
		slog.Int("unchanged", report.Outputs.Unchanged))
	return report, err
}
