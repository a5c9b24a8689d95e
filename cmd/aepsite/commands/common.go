// Package commands implements the aepsite sub-commands.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/aepsite/internal/build"
	"git.home.luguber.info/inful/aepsite/internal/config"
	"git.home.luguber.info/inful/aepsite/internal/logfields"
	"git.home.luguber.info/inful/aepsite/internal/metrics"
	"git.home.luguber.info/inful/aepsite/internal/notify"
)

// Global is passed to every command's Run.
type Global struct {
	Logger *slog.Logger
	// Out receives command results; logs go to stderr.
	Out io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path (default: aepsite.yaml when present)"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log format: text or json (default: logging.format)"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Generate the site from the configured sources"`
	Sample  SampleCmd  `cmd:"" help:"Print the snippet a sample tag would embed"`
	Sidebar SidebarCmd `cmd:"" help:"Regenerate sidebar.json from a site structure snapshot"`
	Preview PreviewCmd `cmd:"" help:"Build, serve and rebuild on source changes"`
	Init    InitCmd    `cmd:"" help:"Write an annotated configuration file"`
}

// AfterApply runs after flag parsing; it installs a logger from the flags
// until a configuration is loaded.
func (c *CLI) AfterApply() error {
	c.setupLogging(config.LoggingConfig{})
	return nil
}

// setupLogging installs the default slog logger. Flags win over cfg.
func (c *CLI) setupLogging(cfg config.LoggingConfig) {
	level := config.NormalizeLogLevel(cfg.Level).SlogLevel()
	if c.Verbose {
		level = slog.LevelDebug
	}
	format := cfg.Format
	if c.LogFormat != "" {
		format = c.LogFormat
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if config.NormalizeLogFormat(format) == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// loadConfig resolves the configuration and applies its logging section.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Resolve(c.Config)
	if err != nil {
		return nil, err
	}
	c.setupLogging(cfg.Logging)
	return cfg, nil
}

// instrumented is a build service with its metrics registry and publisher.
type instrumented struct {
	svc       *build.DefaultBuildService
	registry  *prom.Registry
	publisher notify.Publisher
	textfile  string
}

// newBuildService wires metrics and notifications into a build service.
// A NATS connection failure only disables notifications.
func newBuildService(ctx context.Context, cfg *config.Config) *instrumented {
	reg := prom.NewRegistry()
	pub, err := notify.New(cfg.Notify)
	if err != nil {
		slog.WarnContext(ctx, "Build notifications disabled", logfields.URL(cfg.Notify.URL), logfields.Error(err))
		pub = notify.NoopPublisher{}
	}
	return &instrumented{
		svc:       build.NewBuildService().WithRecorder(metrics.NewPrometheusRecorder(reg)).WithPublisher(pub),
		registry:  reg,
		publisher: pub,
		textfile:  cfg.Metrics.Textfile,
	}
}

// writeMetrics writes the metrics textfile when one is configured.
func (i *instrumented) writeMetrics(ctx context.Context) {
	if i.textfile == "" {
		return
	}
	if err := metrics.WriteTextfile(i.textfile, i.registry); err != nil {
		slog.WarnContext(ctx, "Failed to write metrics textfile", logfields.Path(i.textfile), logfields.Error(err))
	}
}

func (i *instrumented) Close() { i.publisher.Close() }

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
