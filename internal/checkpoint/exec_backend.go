package checkpoint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrGitUnavailable is returned when the git binary cannot be found.
var ErrGitUnavailable = errors.New("git executable not available")

// ExecBackend drives the git command-line tool.
type ExecBackend struct {
	binary string
}

// NewExecBackend returns a backend invoking binary ("git" when empty).
func NewExecBackend(binary string) *ExecBackend {
	if binary == "" {
		binary = "git"
	}
	return &ExecBackend{binary: binary}
}

func (b *ExecBackend) Name() string { return "exec" }

func (b *ExecBackend) Init(ctx context.Context, dir string) error {
	_, err := b.run(ctx, dir, "init")
	return err
}

func (b *ExecBackend) ConfigureIdentity(ctx context.Context, dir string, id Identity) error {
	if _, err := b.run(ctx, dir, "config", "--replace-all", "user.name", id.Name); err != nil {
		return err
	}
	_, err := b.run(ctx, dir, "config", "--replace-all", "user.email", id.Email)
	return err
}

func (b *ExecBackend) CommitAll(ctx context.Context, dir, message string, _ Identity) (string, error) {
	if _, err := b.run(ctx, dir, "add", "-A"); err != nil {
		return "", err
	}
	if _, err := b.run(ctx, dir, "commit", "-m", message, "--allow-empty"); err != nil {
		return "", err
	}
	return b.run(ctx, dir, "rev-parse", "HEAD")
}

func (b *ExecBackend) run(ctx context.Context, dir string, args ...string) (string, error) {
	path, err := exec.LookPath(b.binary)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGitUnavailable, err)
	}

	// #nosec G204 -- invoking git with configured binary and controlled args
	cmd := exec.CommandContext(ctx, path, append([]string{"-C", dir}, args...)...)
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("git %s failed: %w: %s", args[0], err, msg)
		}
		return "", fmt.Errorf("git %s failed: %w", args[0], err)
	}
	return strings.TrimSpace(string(out)), nil
}
