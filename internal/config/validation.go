package config

import (
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/repoprep/internal/foundation/errors"
	"git.home.luguber.info/inful/repoprep/internal/retry"
)

// Validate checks a defaulted configuration.
func Validate(cfg *Config) error {
	if !filepath.IsAbs(cfg.Workspace.ScratchRoot) {
		return ferrors.ValidationError("scratch root must be absolute").
			WithContext("scratch_root", cfg.Workspace.ScratchRoot).
			Build()
	}
	if strings.ContainsRune(cfg.Workspace.Prefix, filepath.Separator) {
		return ferrors.ValidationError("workspace prefix must not contain a path separator").
			WithContext("prefix", cfg.Workspace.Prefix).
			Build()
	}
	if err := validateLockWait(cfg.Workspace.LockWait); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.Checkpoint.AuthorName) == "" || strings.TrimSpace(cfg.Checkpoint.AuthorEmail) == "" {
		return ferrors.ValidationError("checkpoint author name and email must not be blank").Build()
	}
	if strings.TrimSpace(cfg.Checkpoint.Message) == "" {
		return ferrors.ValidationError("checkpoint message must not be blank").Build()
	}
	return nil
}

func validateLockWait(lw LockWaitConfig) error {
	switch retry.BackoffMode(lw.Mode) {
	case "", retry.BackoffFixed, retry.BackoffLinear, retry.BackoffExponential:
	default:
		return ferrors.ValidationError("unknown lock wait mode").
			WithContext("mode", lw.Mode).
			Build()
	}
	if lw.Initial < 0 || lw.Max < 0 || lw.MaxRetries < 0 {
		return ferrors.ValidationError("lock wait durations and retries must not be negative").Build()
	}
	return nil
}
