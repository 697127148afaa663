// Package config loads repoprep configuration from YAML, .env files and the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/repoprep/internal/foundation/errors"
	"git.home.luguber.info/inful/repoprep/internal/retry"
)

// Config represents the application configuration.
type Config struct {
	Workspace  WorkspaceConfig  `yaml:"workspace"`
	Checkpoint CheckpointConfig `yaml:"checkpoint"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// WorkspaceConfig controls where isolated copies are created.
type WorkspaceConfig struct {
	ScratchRoot string         `yaml:"scratch_root"` // defaults to <cwd>/repos
	Prefix      string         `yaml:"prefix"`       // defaults to "workspace-"
	LockCopies  *bool          `yaml:"lock_copies,omitempty"`
	LockWait    LockWaitConfig `yaml:"lock_wait"`
}

// LockWaitConfig controls the backoff while another setup holds the source lock.
// Zero values fall back to retry.DefaultPolicy.
type LockWaitConfig struct {
	Mode       string        `yaml:"mode"` // fixed|linear|exponential
	Initial    time.Duration `yaml:"initial"`
	Max        time.Duration `yaml:"max"`
	MaxRetries int           `yaml:"max_retries"` // 0 waits until canceled
}

// LockPolicy builds the lock-wait backoff policy.
func (w WorkspaceConfig) LockPolicy() retry.Policy {
	lw := w.LockWait
	return retry.NewPolicy(retry.BackoffMode(lw.Mode), lw.Initial, lw.Max, lw.MaxRetries)
}

// LocksEnabled reports whether copies of the same source are serialized.
func (w WorkspaceConfig) LocksEnabled() bool {
	return w.LockCopies == nil || *w.LockCopies
}

// CheckpointConfig controls baseline commit creation.
type CheckpointConfig struct {
	Enabled     *bool       `yaml:"enabled,omitempty"`
	Backend     BackendKind `yaml:"backend"`
	GitBinary   string      `yaml:"git_binary"`
	AuthorName  string      `yaml:"author_name"`
	AuthorEmail string      `yaml:"author_email"`
	Message     string      `yaml:"message"`
}

// IsEnabled reports whether the checkpoint stage runs. Omitted means enabled.
func (c CheckpointConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// LoggingConfig controls the process logger.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig controls metrics export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"` // node-exporter textfile path; empty disables export
}

// Load reads configuration from configPath. A missing file is not an error:
// defaults (plus environment overrides) are returned instead.
func Load(configPath string) (*Config, error) {
	loadEnvFile()

	cfg := &Config{}
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			expanded := os.ExpandEnv(string(data))
			if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
				return nil, ferrors.ConfigError("failed to parse configuration file").
					WithCause(err).
					WithContext("path", configPath).
					Build()
			}
		case os.IsNotExist(err):
		default:
			return nil, ferrors.ConfigError("failed to read configuration file").
				WithCause(err).
				WithContext("path", configPath).
				Build()
		}
	}

	applyEnvOverrides(cfg)
	if err := ApplyDefaults(cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a configuration populated with defaults only.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := ApplyDefaults(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// BoolPtr is a helper for optional boolean fields.
func BoolPtr(v bool) *bool { return &v }

func (c *Config) String() string {
	return fmt.Sprintf("scratch_root=%s backend=%s checkpoint=%t", c.Workspace.ScratchRoot, c.Checkpoint.Backend, c.Checkpoint.IsEnabled())
}
