package config

import (
	"os"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/repoprep/internal/foundation/errors"
)

const (
	DefaultScratchDir  = "repos"
	DefaultPrefix      = "workspace-"
	DefaultGitBinary   = "git"
	DefaultAuthorName  = "Pentest Agent"
	DefaultAuthorEmail = "agent@localhost"
	DefaultMessage     = "Initial checkpoint: Local repository setup"
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// WorkspaceDefaultApplier handles Workspace configuration defaults.
type WorkspaceDefaultApplier struct{}

func (WorkspaceDefaultApplier) Domain() string { return "workspace" }

func (WorkspaceDefaultApplier) ApplyDefaults(cfg *Config) error {
	root := cfg.Workspace.ScratchRoot
	if root == "" {
		root = DefaultScratchDir
	}
	// Relative roots resolve against the process working directory.
	abs, err := filepath.Abs(root)
	if err != nil {
		return ferrors.ConfigError("failed to resolve scratch root").
			WithCause(err).
			WithContext("scratch_root", root).
			Build()
	}
	cfg.Workspace.ScratchRoot = abs
	if cfg.Workspace.Prefix == "" {
		cfg.Workspace.Prefix = DefaultPrefix
	}
	return nil
}

// CheckpointDefaultApplier handles Checkpoint configuration defaults.
type CheckpointDefaultApplier struct{}

func (CheckpointDefaultApplier) Domain() string { return "checkpoint" }

func (CheckpointDefaultApplier) ApplyDefaults(cfg *Config) error {
	c := &cfg.Checkpoint
	c.Backend = NormalizeBackend(string(c.Backend))
	if c.GitBinary == "" {
		c.GitBinary = DefaultGitBinary
	}
	if c.AuthorName == "" {
		c.AuthorName = DefaultAuthorName
	}
	if c.AuthorEmail == "" {
		c.AuthorEmail = DefaultAuthorEmail
	}
	if c.Message == "" {
		c.Message = DefaultMessage
	}
	return nil
}

// LoggingDefaultApplier handles Logging configuration defaults.
type LoggingDefaultApplier struct{}

func (LoggingDefaultApplier) Domain() string { return "logging" }

func (LoggingDefaultApplier) ApplyDefaults(cfg *Config) error {
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
	return nil
}

var defaultAppliers = []DefaultApplier{
	WorkspaceDefaultApplier{},
	CheckpointDefaultApplier{},
	LoggingDefaultApplier{},
}

// ApplyDefaults runs every domain applier in order.
func ApplyDefaults(cfg *Config) error {
	for _, a := range defaultAppliers {
		if err := a.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}

// envOverride describes one environment variable that replaces a config field.
type envOverride struct {
	name  string
	apply func(cfg *Config, v string)
}

var envOverrides = []envOverride{
	{"REPOPREP_SCRATCH_ROOT", func(cfg *Config, v string) { cfg.Workspace.ScratchRoot = v }},
	{"REPOPREP_CHECKPOINT_BACKEND", func(cfg *Config, v string) { cfg.Checkpoint.Backend = BackendKind(v) }},
	{"REPOPREP_GIT_BINARY", func(cfg *Config, v string) { cfg.Checkpoint.GitBinary = v }},
	{"REPOPREP_LOG_LEVEL", func(cfg *Config, v string) { cfg.Logging.Level = LogLevel(v) }},
}

func applyEnvOverrides(cfg *Config) {
	for _, o := range envOverrides {
		if v, ok := os.LookupEnv(o.name); ok && v != "" {
			o.apply(cfg, v)
		}
	}
}
