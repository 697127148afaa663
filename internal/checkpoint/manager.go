package checkpoint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/repoprep/internal/foundation/errors"
	"git.home.luguber.info/inful/repoprep/internal/logfields"
	"git.home.luguber.info/inful/repoprep/internal/metrics"
	"git.home.luguber.info/inful/repoprep/internal/observability"
)

// MarkerDir is the version-control metadata entry whose presence means the
// directory is already a repository.
const MarkerDir = ".git"

// Checkpoint steps, used in logs, metrics and warnings.
const (
	StepInit      = "init"
	StepConfigure = "configure"
	StepCommit    = "commit"
)

const (
	DefaultAuthorName  = "Pentest Agent"
	DefaultAuthorEmail = "agent@localhost"
	DefaultMessage     = "Initial checkpoint: Local repository setup"
)

// Identity is the commit author written into the repository configuration.
type Identity struct {
	Name  string
	Email string
}

// Backend performs the individual git operations.
type Backend interface {
	Name() string
	Init(ctx context.Context, dir string) error
	// ConfigureIdentity sets user.name and user.email, replacing existing values.
	ConfigureIdentity(ctx context.Context, dir string, id Identity) error
	// CommitAll stages the entire worktree and commits it, allowing an
	// empty commit. It returns the new commit hash.
	CommitAll(ctx context.Context, dir, message string, id Identity) (string, error)
}

// Report describes what a checkpoint run achieved.
type Report struct {
	Backend     string
	Initialized bool // a repository was created by this run
	Existing    bool // metadata was already present
	Configured  bool
	Committed   bool
	Commit      string
	Warnings    []error
}

// OK reports whether every step succeeded.
func (r Report) OK() bool {
	return r.Committed && len(r.Warnings) == 0
}

// Manager runs the checkpoint steps against a Backend.
type Manager struct {
	backend  Backend
	identity Identity
	message  string
	recorder metrics.Recorder
}

// Option configures a Manager.
type Option func(*Manager)

// WithIdentity sets the commit author. Blank fields keep their defaults.
func WithIdentity(id Identity) Option {
	return func(m *Manager) {
		if id.Name != "" {
			m.identity.Name = id.Name
		}
		if id.Email != "" {
			m.identity.Email = id.Email
		}
	}
}

// WithMessage sets the checkpoint commit message.
func WithMessage(msg string) Option {
	return func(m *Manager) {
		if msg != "" {
			m.message = msg
		}
	}
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(m *Manager) {
		if r != nil {
			m.recorder = r
		}
	}
}

// NewManager creates a Manager using backend.
func NewManager(backend Backend, opts ...Option) *Manager {
	m := &Manager{
		backend:  backend,
		identity: Identity{Name: DefaultAuthorName, Email: DefaultAuthorEmail},
		message:  DefaultMessage,
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// HasMetadata reports whether dir already contains version-control metadata.
func HasMetadata(dir string) bool {
	_, err := os.Lstat(filepath.Join(dir, MarkerDir))
	return err == nil
}

// Checkpoint ensures dir is a repository, configures the author identity and
// commits the whole tree. Failures never abort the caller; a failed init
// skips the remaining steps, a failed identity configuration does not.
func (m *Manager) Checkpoint(ctx context.Context, dir string) (report Report) {
	report.Backend = m.backend.Name()
	ctx = observability.WithStage(ctx, "checkpoint")

	defer func() {
		if rec := recover(); rec != nil {
			m.warn(ctx, &report, "panic", dir, fmt.Errorf("checkpoint panicked: %v", rec))
		}
	}()

	if HasMetadata(dir) {
		report.Existing = true
		observability.DebugContext(ctx, "Git metadata present, skipping init", logfields.WorkingDir(dir))
	} else {
		err := m.backend.Init(ctx, dir)
		m.recorder.IncCheckpointStep(StepInit, err == nil)
		if err != nil {
			m.warn(ctx, &report, StepInit, dir, err)
			return report
		}
		report.Initialized = true
		observability.InfoContext(ctx, "Git repository initialized", logfields.WorkingDir(dir), logfields.Backend(report.Backend))
	}

	err := m.backend.ConfigureIdentity(ctx, dir, m.identity)
	m.recorder.IncCheckpointStep(StepConfigure, err == nil)
	if err != nil {
		m.warn(ctx, &report, StepConfigure, dir, err)
	} else {
		report.Configured = true
	}

	hash, err := m.backend.CommitAll(ctx, dir, m.message, m.identity)
	m.recorder.IncCheckpointStep(StepCommit, err == nil)
	if err != nil {
		m.warn(ctx, &report, StepCommit, dir, err)
		return report
	}
	report.Committed = true
	report.Commit = hash
	observability.InfoContext(ctx, "Initial checkpoint created", logfields.WorkingDir(dir), logfields.Commit(hash))
	return report
}

func (m *Manager) warn(ctx context.Context, report *Report, step, dir string, err error) {
	classified := ferrors.GitError("git setup step failed").
		WithCause(err).
		WithContext("step", step).
		WithContext("working_dir", dir).
		WithContext("backend", report.Backend).
		Build()
	report.Warnings = append(report.Warnings, classified)
	observability.WarnContext(ctx, "Git setup warning", logfields.Step(step), logfields.WorkingDir(dir), logfields.Error(err))
}
