package setup

import (
	"context"
	"path/filepath"

	"git.home.luguber.info/inful/repoprep/internal/checkpoint"
	"git.home.luguber.info/inful/repoprep/internal/config"
	"git.home.luguber.info/inful/repoprep/internal/foundation"
	ferrors "git.home.luguber.info/inful/repoprep/internal/foundation/errors"
	"git.home.luguber.info/inful/repoprep/internal/logfields"
	"git.home.luguber.info/inful/repoprep/internal/metrics"
	"git.home.luguber.info/inful/repoprep/internal/observability"
	"git.home.luguber.info/inful/repoprep/internal/workspace"
	"git.home.luguber.info/inful/repoprep/internal/writability"
)

// Workspace is a prepared working directory.
type Workspace struct {
	Path       string
	SourcePath string
	Mode       workspace.Mode
	RunID      string
	Copy       workspace.CopyStats
	Checkpoint checkpoint.Report // zero when checkpointing is disabled
}

// Result is the outcome of Service.Setup.
type Result = foundation.Result[Workspace, *ferrors.ClassifiedError]

// Service wires provisioning and checkpointing from configuration.
type Service struct {
	provisioner *workspace.Provisioner
	checkpoints *checkpoint.Manager // nil when disabled
	recorder    metrics.Recorder
}

type serviceOptions struct {
	prober   writability.Prober
	recorder metrics.Recorder
	backend  checkpoint.Backend
}

// Option configures a Service.
type Option func(*serviceOptions)

// WithProber overrides the writability check.
func WithProber(p writability.Prober) Option {
	return func(o *serviceOptions) { o.prober = p }
}

// WithRecorder attaches a metrics recorder to every stage.
func WithRecorder(r metrics.Recorder) Option {
	return func(o *serviceOptions) {
		if r != nil {
			o.recorder = r
		}
	}
}

// WithBackend overrides the configured checkpoint backend.
func WithBackend(b checkpoint.Backend) Option {
	return func(o *serviceOptions) { o.backend = b }
}

// NewService builds a Service from cfg, which must have defaults applied.
func NewService(cfg *config.Config, opts ...Option) *Service {
	o := serviceOptions{prober: writability.AccessProber{}, recorder: metrics.NoopRecorder{}}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Service{
		provisioner: workspace.NewProvisioner(cfg.Workspace.ScratchRoot,
			workspace.WithProber(o.prober),
			workspace.WithPrefix(cfg.Workspace.Prefix),
			workspace.WithCopyLock(cfg.Workspace.LocksEnabled()),
			workspace.WithLockPolicy(cfg.Workspace.LockPolicy()),
			workspace.WithRecorder(o.recorder),
		),
		recorder: o.recorder,
	}

	if cfg.Checkpoint.IsEnabled() {
		backend := o.backend
		if backend == nil {
			backend = backendFor(cfg.Checkpoint)
		}
		s.checkpoints = checkpoint.NewManager(backend,
			checkpoint.WithIdentity(checkpoint.Identity{Name: cfg.Checkpoint.AuthorName, Email: cfg.Checkpoint.AuthorEmail}),
			checkpoint.WithMessage(cfg.Checkpoint.Message),
			checkpoint.WithRecorder(o.recorder),
		)
	}
	return s
}

func backendFor(cfg config.CheckpointConfig) checkpoint.Backend {
	if cfg.Backend == config.BackendGoGit {
		return checkpoint.NewGoGitBackend()
	}
	return checkpoint.NewExecBackend(cfg.GitBinary)
}

// Setup returns a writable working directory for sourcePath. The directory is
// the source itself when it is writable, otherwise a fresh copy under the
// scratch root. Checkpoint problems are reported in Workspace.Checkpoint and
// never fail the call.
func (s *Service) Setup(ctx context.Context, sourcePath string) Result {
	runID := observability.NewRunID()
	ctx = observability.WithRunID(ctx, runID)

	abs, err := filepath.Abs(sourcePath)
	if err != nil {
		return s.fail(sourcePath, err)
	}
	ctx = observability.WithSourcePath(ctx, abs)

	prov, err := s.provisioner.Provision(ctx, abs)
	if err != nil {
		return s.fail(sourcePath, err)
	}

	ws := Workspace{
		Path:       prov.Path,
		SourcePath: abs,
		Mode:       prov.Mode,
		RunID:      runID,
		Copy:       prov.Stats,
	}
	if s.checkpoints != nil {
		ws.Checkpoint = s.checkpoints.Checkpoint(ctx, prov.Path)
	}

	s.recorder.IncSetupOutcome(string(ws.Mode), metrics.OutcomeSuccess)
	observability.InfoContext(ctx, "Local repository ready",
		logfields.WorkingDir(ws.Path),
		logfields.Mode(string(ws.Mode)))
	return foundation.Ok[Workspace, *ferrors.ClassifiedError](ws)
}

func (s *Service) fail(sourcePath string, err error) Result {
	classified := Classify(sourcePath, err)
	s.recorder.IncSetupOutcome("unknown", metrics.OutcomeFailed)
	return foundation.Err[Workspace](classified)
}

// SetupLocalRepo prepares sourcePath using default configuration and returns
// the working directory.
func SetupLocalRepo(ctx context.Context, sourcePath string) (string, error) {
	cfg, err := config.Default()
	if err != nil {
		return "", err
	}
	ws, err := NewService(cfg).Setup(ctx, sourcePath).Tuple()
	if err != nil {
		return "", err
	}
	return ws.Path, nil
}
