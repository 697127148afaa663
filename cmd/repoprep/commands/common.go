package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/repoprep/internal/config"
	ferrors "git.home.luguber.info/inful/repoprep/internal/foundation/errors"
	"git.home.luguber.info/inful/repoprep/internal/metrics"
	"git.home.luguber.info/inful/repoprep/internal/observability"
	"git.home.luguber.info/inful/repoprep/internal/version"
)

// Global is the per-invocation state shared with subcommands.
type Global struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Config   *config.Config
	Recorder *metrics.PrometheusRecorder // nil unless a metrics textfile is configured
	ExitCode int                         // non-error exit status requested by a command
}

// NewGlobal returns a Global writing to the process streams.
func NewGlobal(ctx context.Context) *Global {
	return &Global{Ctx: ctx, Stdout: os.Stdout, Stderr: os.Stderr}
}

func (g *Global) recorder() metrics.Recorder {
	if g.Recorder == nil {
		return metrics.NoopRecorder{}
	}
	return g.Recorder
}

// FlushMetrics writes collected metrics to the configured textfile, if any.
func (g *Global) FlushMetrics() error {
	if g.Recorder == nil || g.Config == nil || g.Config.Metrics.Textfile == "" {
		return nil
	}
	if err := g.Recorder.WriteTextfile(g.Config.Metrics.Textfile); err != nil {
		return ferrors.FileSystemError("failed to write metrics textfile").
			WithCause(err).
			WithContext("path", g.Config.Metrics.Textfile).
			Build()
	}
	return nil
}

// CLI definition & global flags.
type CLI struct {
	Config      string           `short:"c" help:"Configuration file path" default:"repoprep.yaml"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	LogFormat   string           `name:"log-format" help:"Log output format (text, json)" default:""`
	MetricsFile string           `name:"metrics-file" help:"Write Prometheus metrics to this textfile on exit" type:"path"`
	VersionFlag kong.VersionFlag `name:"version" help:"Show version and exit"`

	Setup   SetupCmd   `cmd:"" help:"Prepare a writable, checkpointed working directory for PATH"`
	Probe   ProbeCmd   `cmd:"" help:"Report whether PATH is writable by this process"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// Vars returns the kong interpolation variables.
func Vars() kong.Vars {
	return kong.Vars{"version": version.String()}
}

// AfterApply runs after flag parsing; load configuration and set up logging once.
func (c *CLI) AfterApply(g *Global) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.MetricsFile != "" {
		cfg.Metrics.Textfile = c.MetricsFile
	}
	if c.LogFormat != "" {
		cfg.Logging.Format = config.NormalizeLogFormat(c.LogFormat)
	}

	level := cfg.Logging.Level.SlogLevel()
	if c.Verbose {
		level = slog.LevelDebug
	}
	g.Logger = observability.NewLogger(g.Stderr, level, string(cfg.Logging.Format))
	slog.SetDefault(g.Logger)

	g.Config = cfg
	if cfg.Metrics.Textfile != "" {
		g.Recorder = metrics.NewPrometheusRecorder(nil)
	}
	return nil
}
