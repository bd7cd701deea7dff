package commands

import (
	"github.com/arthur-debert/nox/pkg/archive"
	"github.com/arthur-debert/nox/pkg/config"
	"github.com/arthur-debert/nox/pkg/fetch"
	"github.com/arthur-debert/nox/pkg/filesystem"
	"github.com/arthur-debert/nox/pkg/install"
	"github.com/arthur-debert/nox/pkg/logging"
	"github.com/arthur-debert/nox/pkg/metrics"
	"github.com/arthur-debert/nox/pkg/packages"
	"github.com/arthur-debert/nox/pkg/paths"
	"github.com/arthur-debert/nox/pkg/registry"
	"github.com/arthur-debert/nox/pkg/shell"
	"github.com/arthur-debert/nox/pkg/store"
)

// Options locates the settings nox starts from
type Options struct {
	// ConfigFile overrides $XDG_CONFIG_HOME/nox/config.toml
	ConfigFile string
	// Overrides are dotted settings keys applied last, e.g. "sync.jobs"
	Overrides map[string]interface{}
}

// Environment is everything a command needs, wired once per process
type Environment struct {
	Paths        paths.Paths
	Config       *config.Config
	Registry     *registry.Registry
	Store        *store.Store
	Orchestrator *install.Orchestrator
	Shell        *shell.Runner
	Metrics      *metrics.Metrics
}

// Setup loads settings and package definitions and wires the store,
// fetcher, extractor and orchestrator together
func Setup(opts Options) (*Environment, error) {
	logger := logging.GetLogger("commands")

	p, err := paths.New("")
	if err != nil {
		return nil, err
	}

	configFile := p.ConfigFile()
	if opts.ConfigFile != "" {
		if configFile, err = p.NormalizePath(opts.ConfigFile); err != nil {
			return nil, err
		}
	}
	cfg, err := config.LoadConfiguration(configFile, opts.Overrides)
	if err != nil {
		return nil, err
	}

	if cfg.Store.Dir != "" {
		if p, err = paths.New(cfg.Store.Dir); err != nil {
			return nil, err
		}
	}

	reg, err := packages.NewRegistry(p.PackagesDir())
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	runner := shell.NewRunner(p.ManifestFile())
	fs := filesystem.NewOS()
	st := store.New(fs, p)

	orch := install.New(install.Options{
		Registry: reg,
		Store:    st,
		Fetcher: fetch.New(
			fetch.WithAttempts(cfg.Fetch.Retries),
			fetch.WithRetryDelay(cfg.Fetch.Backoff),
			fetch.WithTimeout(cfg.Fetch.Timeout),
			fetch.WithMetrics(m),
		),
		Extractor: archive.New(),
		Shell:     runner,
		FS:        fs,
		StoreDir:  p.StoreDir(),
		Metrics:   m,
	})

	logger.Debug().
		Str("store", p.StoreDir()).
		Int("packages", reg.Count()).
		Msg("Environment ready")

	return &Environment{
		Paths:        p,
		Config:       cfg,
		Registry:     reg,
		Store:        st,
		Orchestrator: orch,
		Shell:        runner,
		Metrics:      m,
	}, nil
}

// Flush writes the metrics textfile when metrics are enabled
func (e *Environment) Flush() error {
	if !e.Config.Metrics.Enabled {
		return nil
	}
	file := e.Config.Metrics.File
	if file == "" {
		file = e.Paths.MetricsFile()
	}
	return e.Metrics.WriteTextfile(paths.ExpandHome(file))
}
