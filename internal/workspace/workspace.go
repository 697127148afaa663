package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/repoprep/internal/logfields"
	"git.home.luguber.info/inful/repoprep/internal/metrics"
	"git.home.luguber.info/inful/repoprep/internal/observability"
	"git.home.luguber.info/inful/repoprep/internal/retry"
	"git.home.luguber.info/inful/repoprep/internal/writability"
)

// Mode says how a working directory was obtained.
type Mode string

const (
	ModeInPlace Mode = "in_place"
	ModeCopy    Mode = "copy"
)

// DefaultPrefix names copy directories.
const DefaultPrefix = "workspace-"

// ErrNotDirectory is returned when the source exists but is not a directory.
var ErrNotDirectory = errors.New("source is not a directory")

// Provisioned describes the outcome of a successful Provision call.
type Provisioned struct {
	Path  string
	Mode  Mode
	Stats CopyStats // zero for ModeInPlace
}

// Provisioner decides between in-place use and an isolated copy.
type Provisioner struct {
	scratchRoot string
	prefix      string
	prober      writability.Prober
	lockCopies  bool
	lockPolicy  retry.Policy
	recorder    metrics.Recorder
}

// Option configures a Provisioner.
type Option func(*Provisioner)

// WithProber replaces the access(2) based writability check.
func WithProber(p writability.Prober) Option {
	return func(pr *Provisioner) { pr.prober = p }
}

// WithPrefix sets the copy directory name prefix.
func WithPrefix(prefix string) Option {
	return func(pr *Provisioner) {
		if prefix != "" {
			pr.prefix = prefix
		}
	}
}

// WithCopyLock enables or disables the per-source advisory lock.
func WithCopyLock(enabled bool) Option {
	return func(pr *Provisioner) { pr.lockCopies = enabled }
}

// WithLockPolicy sets the backoff used while waiting for a contended source lock.
func WithLockPolicy(policy retry.Policy) Option {
	return func(pr *Provisioner) { pr.lockPolicy = policy }
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(pr *Provisioner) {
		if r != nil {
			pr.recorder = r
		}
	}
}

// NewProvisioner creates a provisioner that places copies under scratchRoot.
func NewProvisioner(scratchRoot string, opts ...Option) *Provisioner {
	p := &Provisioner{
		scratchRoot: scratchRoot,
		prefix:      DefaultPrefix,
		prober:      writability.AccessProber{},
		lockCopies:  true,
		lockPolicy:  retry.DefaultPolicy(),
		recorder:    metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Provision returns a writable working directory for sourceDir, which must be
// an absolute path to an existing directory. Errors are returned unclassified.
func (p *Provisioner) Provision(ctx context.Context, sourceDir string) (Provisioned, error) {
	info, err := os.Stat(sourceDir)
	if err != nil {
		return Provisioned{}, fmt.Errorf("stat source directory: %w", err)
	}
	if !info.IsDir() {
		return Provisioned{}, fmt.Errorf("%w: %s", ErrNotDirectory, sourceDir)
	}

	if p.prober.Writable(sourceDir) {
		observability.DebugContext(ctx, "Source directory writable, using in place", logfields.WorkingDir(sourceDir))
		return Provisioned{Path: sourceDir, Mode: ModeInPlace}, nil
	}

	return p.provisionCopy(ctx, sourceDir)
}

func (p *Provisioner) provisionCopy(ctx context.Context, sourceDir string) (Provisioned, error) {
	if p.scratchRoot == "" {
		return Provisioned{}, errors.New("scratch root not configured")
	}
	if err := os.MkdirAll(p.scratchRoot, 0o750); err != nil {
		return Provisioned{}, fmt.Errorf("failed to create scratch root: %w", err)
	}

	if p.lockCopies {
		lock, err := AcquireSourceLock(ctx, filepath.Join(p.scratchRoot, lockDirName), sourceDir, p.lockPolicy)
		if err != nil {
			return Provisioned{}, err
		}
		defer func() {
			if rerr := lock.Release(); rerr != nil {
				observability.WarnContext(ctx, "Failed to release source lock", logfields.Path(lock.Path()), logfields.Error(rerr))
			}
		}()
	}

	workDir, err := os.MkdirTemp(p.scratchRoot, p.prefix)
	if err != nil {
		return Provisioned{}, fmt.Errorf("failed to create workspace directory: %w", err)
	}

	observability.InfoContext(ctx, "Repository not writable, creating workspace copy", logfields.WorkingDir(workDir))

	start := time.Now()
	stats, err := CopyTree(ctx, sourceDir, workDir)
	p.recorder.ObserveCopyDuration(time.Since(start), err == nil)
	if err != nil {
		if rerr := os.RemoveAll(workDir); rerr != nil {
			observability.WarnContext(ctx, "Failed to remove partial workspace copy", logfields.WorkingDir(workDir), logfields.Error(rerr))
		}
		return Provisioned{}, fmt.Errorf("failed to copy repository: %w", err)
	}

	observability.InfoContext(ctx, "Workspace copy created",
		logfields.WorkingDir(workDir),
		slog.Int("files_copied", stats.Files),
		slog.Int("files_skipped", stats.Skipped),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))

	return Provisioned{Path: workDir, Mode: ModeCopy, Stats: stats}, nil
}
