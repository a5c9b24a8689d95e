// Package config loads aepsite.yaml.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/aepsite/internal/foundation/errors"
	"git.home.luguber.info/inful/aepsite/internal/versioning"
)

// DefaultFile is read when no --config flag is given and the file exists.
const DefaultFile = "aepsite.yaml"

// Environment overrides for the three source locations.
const (
	EnvAEPLocation        = "AEP_LOCATION"
	EnvLinterLocation     = "AEP_LINTER_LOC"
	EnvComponentsLocation = "AEP_COMPONENTS_LOC"
)

// Config is the aepsite configuration.
type Config struct {
	Sources  SourcesConfig        `yaml:"sources"`
	Editions []versioning.Edition `yaml:"editions"`
	Output   OutputConfig         `yaml:"output"`
	Rewrite  RewriteConfig        `yaml:"rewrite"`
	Export   ExportConfig         `yaml:"export"`
	Build    BuildConfig          `yaml:"build"`
	Preview  PreviewConfig        `yaml:"preview"`
	Notify   NotifyConfig         `yaml:"notify"`
	Metrics  MetricsConfig        `yaml:"metrics"`
	Logging  LoggingConfig        `yaml:"logging"`
}

// Source is a corpus location: a local path, or a git repository cloned
// into the workspace when URL is set.
type Source struct {
	Path   string `yaml:"path,omitempty"`
	URL    string `yaml:"url,omitempty"`
	Branch string `yaml:"branch,omitempty"`
}

// Remote reports whether the source is cloned from git.
func (s Source) Remote() bool { return s.URL != "" }

// Configured reports whether the source has any location.
func (s Source) Configured() bool { return s.Path != "" || s.URL != "" }

// SourcesConfig lists the three corpora the site is built from.
type SourcesConfig struct {
	AEP        Source `yaml:"aep"`
	Linter     Source `yaml:"linter"`
	Components Source `yaml:"components"`
	// WorkDir holds git clones; a temporary directory when empty.
	WorkDir string `yaml:"work_dir,omitempty"`
	// Depth is the clone depth for git sources.
	Depth int `yaml:"depth,omitempty"`
	// Website is the site's own README, published as the Website tooling
	// page next to the linter pages.
	Website string `yaml:"website,omitempty"`
}

// OutputConfig locates generated files. Every directory except Root is
// relative to Root.
type OutputConfig struct {
	Root         string `yaml:"root"`
	ContentDir   string `yaml:"content_dir"`
	GeneratedDir string `yaml:"generated_dir"`
	PublicDir    string `yaml:"public_dir"`
	AssetsDir    string `yaml:"assets_dir"`
	// StateDB is the build-state database; empty disables unchanged detection.
	StateDB string `yaml:"state_db,omitempty"`
	DryRun  bool   `yaml:"dry_run,omitempty"`
}

// ImportsConfig holds the module paths generated components import from.
type ImportsConfig struct {
	Callout  string `yaml:"callout"`
	Tabs     string `yaml:"tabs"`
	CrossRef string `yaml:"cross_ref"`
	Sample   string `yaml:"sample"`
	Image    string `yaml:"image"`
}

// RewriteConfig tunes the text rewriter.
type RewriteConfig struct {
	Callouts      map[string]string `yaml:"callouts,omitempty"`
	RuleColors    map[string]string `yaml:"rule_colors,omitempty"`
	FenceAliases  map[string]string `yaml:"fence_aliases,omitempty"`
	Imports       ImportsConfig     `yaml:"imports"`
	InlineSamples bool              `yaml:"inline_samples,omitempty"`
}

// ExportConfig configures llms.txt.
type ExportConfig struct {
	LLMSPrefix string `yaml:"llms_prefix"`
	LLMSFile   string `yaml:"llms_file"`
}

// BuildConfig holds build tuning.
type BuildConfig struct {
	Workers int `yaml:"workers"`
}

// PreviewConfig configures aepsite preview.
type PreviewConfig struct {
	Listen   string        `yaml:"listen"`
	Debounce time.Duration `yaml:"debounce"`
	// Refresh is how often git sources are pulled; zero disables it.
	Refresh time.Duration `yaml:"refresh,omitempty"`
}

// NotifyConfig enables NATS build-completed events when URL is set.
type NotifyConfig struct {
	URL     string `yaml:"url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
	// JetStream publishes with acknowledgement; a stream must cover Subject.
	JetStream bool `yaml:"jetstream,omitempty"`
}

// MetricsConfig enables a Prometheus textfile written after every build.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// LoggingConfig configures slog.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Resolve loads path, or DefaultFile when path is empty and that file
// exists, or the defaults otherwise.
func Resolve(path string) (*Config, error) {
	if path == "" {
		if _, err := os.Stat(DefaultFile); err != nil {
			loadEnvFiles()
			cfg := Default()
			applyEnvOverrides(cfg)
			return cfg, cfg.Validate()
		}
		path = DefaultFile
	}
	return Load(path)
}

// Load reads configuration from path. Environment variables in the file are
// expanded after .env files are loaded.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewError(errors.CategoryNotFound, "configuration file not found").
				WithContext("path", path).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			WithContext("path", path).Build()
	}
	cfg, err := Parse([]byte(os.ExpandEnv(string(data))))
	if err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML and fills unset fields with defaults. It does not
// validate.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse config").Build()
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// loadEnvFiles loads .env and .env.local; variables already set win.
func loadEnvFiles() {
	for _, name := range []string{".env", ".env.local"} {
		if _, err := os.Stat(name); err == nil {
			_ = godotenv.Load(name)
		}
	}
}

func applyEnvOverrides(cfg *Config) {
	overrides := []struct {
		env string
		src *Source
	}{
		{EnvAEPLocation, &cfg.Sources.AEP},
		{EnvLinterLocation, &cfg.Sources.Linter},
		{EnvComponentsLocation, &cfg.Sources.Components},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.src = Source{Path: v}
		}
	}
}

// EditionList returns the configured editions in order.
func (c *Config) EditionList() versioning.Editions {
	return versioning.Editions(c.Editions)
}
