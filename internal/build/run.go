package build

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/aepsite/internal/config"
	"git.home.luguber.info/inful/aepsite/internal/corpus"
	"git.home.luguber.info/inful/aepsite/internal/docmodel"
	"git.home.luguber.info/inful/aepsite/internal/logfields"
	"git.home.luguber.info/inful/aepsite/internal/metrics"
	"git.home.luguber.info/inful/aepsite/internal/observability"
	"git.home.luguber.info/inful/aepsite/internal/output"
	"git.home.luguber.info/inful/aepsite/internal/sidebar"
	"git.home.luguber.info/inful/aepsite/internal/sitestructure"
	"git.home.luguber.info/inful/aepsite/internal/workspace"
)

// Stage names, used as log and metric labels.
const (
	StageSources    = "sources"
	StageAEPs       = "aeps"
	StagePages      = "pages"
	StageBlog       = "blog"
	StageLinter     = "linter"
	StageSchemas    = "schemas"
	StageSiteConfig = "site_config"
	StageNavigation = "navigation"
	StageExport     = "export"
)

// run holds the state of one build.
type run struct {
	svc    *DefaultBuildService
	cfg    *config.Config
	opts   BuildOptions
	report *Report
	writer *output.Writer

	workspace *workspace.Manager
	ownsWS    bool

	aep        corpus.AEPRepo
	linter     corpus.LinterRepo
	components corpus.ComponentsRepo
	hasAEP     bool
	hasLinter  bool
	hasComps   bool

	groups    docmodel.Groups
	structure *sitestructure.Structure
	redirects sidebar.Redirects
	// written holds the documents written per edition name.
	written map[string][]docmodel.Document
}

func newRun(svc *DefaultBuildService, cfg *config.Config, opts BuildOptions, report *Report, w *output.Writer) *run {
	return &run{
		svc:       svc,
		cfg:       cfg,
		opts:      opts,
		report:    report,
		writer:    w,
		structure: sitestructure.New(),
		redirects: sidebar.Redirects{},
		written:   map[string][]docmodel.Document{},
	}
}

func (r *run) execute(ctx context.Context) error {
	stages := []struct {
		name string
		fn   func(context.Context) error
	}{
		{StageSources, r.sources},
		{StageAEPs, r.aeps},
		{StagePages, r.pages},
		{StageBlog, r.blog},
		{StageLinter, r.linterRules},
		{StageSchemas, r.schemas},
		{StageSiteConfig, r.siteConfig},
		{StageNavigation, r.navigation},
		{StageExport, r.export},
	}
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			r.svc.recorder.IncStageResult(st.name, metrics.ResultCanceled)
			return err
		}
		if err := r.stage(ctx, st.name, st.fn); err != nil {
			return err
		}
	}
	r.report.Outputs = r.writer.Summary()
	return nil
}

func (r *run) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	ctx = observability.WithStage(ctx, name)
	warnings := len(r.report.Warnings)

	err := fn(ctx)
	r.svc.recorder.ObserveStageDuration(name, time.Since(start))
	switch {
	case err != nil:
		r.svc.recorder.IncStageResult(name, metrics.ResultFatal)
		observability.ErrorContext(ctx, "Stage failed", logfields.Error(err))
	case len(r.report.Warnings) > warnings:
		r.svc.recorder.IncStageResult(name, metrics.ResultWarning)
	default:
		r.svc.recorder.IncStageResult(name, metrics.ResultSuccess)
	}
	observability.DebugContext(ctx, "Stage complete", logfields.Duration(time.Since(start)))
	return err
}

// write stores data at rel and counts the outcome.
func (r *run) write(ctx context.Context, rel string, data []byte) error {
	outcome, err := r.writer.Write(ctx, rel, data)
	if err != nil {
		return err
	}
	r.svc.recorder.IncOutput(string(outcome))
	return nil
}

// copyFile copies src to rel. A missing source is a warning; a failed write
// is returned.
func (r *run) copyFile(ctx context.Context, src, rel string) error {
	outcome, err := r.writer.Copy(ctx, src, rel)
	if err != nil {
		if output.IsWriteFailure(err) {
			return err
		}
		r.report.warn(ctx, "Failed to read file to copy", logfields.Path(src), logfields.Error(err))
		return nil
	}
	r.svc.recorder.IncOutput(string(outcome))
	return nil
}

// contentPath joins parts below the content directory.
func (r *run) contentPath(parts ...string) string {
	return filepath.ToSlash(filepath.Join(append([]string{r.cfg.Output.ContentDir}, parts...)...))
}

func (r *run) generatedPath(name string) string {
	return filepath.ToSlash(filepath.Join(r.cfg.Output.GeneratedDir, name))
}

func (r *run) publicPath(rel string) string {
	return filepath.ToSlash(filepath.Join(r.cfg.Output.PublicDir, rel))
}

func (r *run) close(ctx context.Context) {
	if r.workspace == nil || !r.ownsWS {
		return
	}
	if err := r.workspace.Cleanup(ctx); err != nil {
		observability.WarnContext(ctx, "Failed to cleanup workspace", logfields.Error(err))
	}
}

func readFile(path string) ([]byte, error) {
	return os.ReadFile(path) //nolint:gosec // corpus paths come from discovery
}
