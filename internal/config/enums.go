package config

import (
	"log/slog"

	"git.home.luguber.info/inful/repoprep/internal/foundation/normalization"
)

// BackendKind selects how checkpoints talk to git.
type BackendKind string

const (
	BackendExec  BackendKind = "exec"  // git command-line tool
	BackendGoGit BackendKind = "gogit" // in-process go-git
)

var backendNormalizer = normalization.NewNormalizer(map[string]BackendKind{
	"exec":   BackendExec,
	"cli":    BackendExec,
	"gogit":  BackendGoGit,
	"go-git": BackendGoGit,
}, BackendExec)

// NormalizeBackend maps raw input to a BackendKind, defaulting to exec.
func NormalizeBackend(raw string) BackendKind {
	return backendNormalizer.Normalize(raw)
}

// ParseBackend is the strict variant used for CLI flags.
func ParseBackend(raw string) (BackendKind, error) {
	return backendNormalizer.Parse(raw)
}

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevelNormalizer = normalization.NewNormalizer(map[string]LogLevel{
	"debug": LogLevelDebug,
	"info":  LogLevelInfo,
	"warn":  LogLevelWarn,
	"error": LogLevelError,
}, LogLevelInfo)

func NormalizeLogLevel(raw string) LogLevel {
	return logLevelNormalizer.Normalize(raw)
}

// SlogLevel converts the level to its slog equivalent.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormatNormalizer = normalization.NewNormalizer(map[string]LogFormat{
	"json": LogFormatJSON,
	"text": LogFormatText,
}, LogFormatText)

func NormalizeLogFormat(raw string) LogFormat {
	return logFormatNormalizer.Normalize(raw)
}
