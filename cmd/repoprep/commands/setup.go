package commands

import (
	"encoding/json"
	"fmt"

	"git.home.luguber.info/inful/repoprep/internal/config"
	ferrors "git.home.luguber.info/inful/repoprep/internal/foundation/errors"
	"git.home.luguber.info/inful/repoprep/internal/setup"
)

// SetupCmd implements the 'setup' command.
type SetupCmd struct {
	Path         string `arg:"" help:"Directory to prepare"`
	ScratchRoot  string `name:"scratch-root" help:"Directory that holds isolated copies" type:"path"`
	Backend      string `help:"Checkpoint backend (exec, gogit)"`
	NoCheckpoint bool   `name:"no-checkpoint" help:"Skip the baseline checkpoint"`
	JSON         bool   `name:"json" help:"Print the result as JSON"`
}

type setupOutput struct {
	Path         string            `json:"path"`
	SourcePath   string            `json:"source_path"`
	Mode         string            `json:"mode"`
	RunID        string            `json:"run_id"`
	FilesCopied  int               `json:"files_copied"`
	FilesSkipped int               `json:"files_skipped"`
	Checkpoint   *checkpointOutput `json:"checkpoint,omitempty"`
}

type checkpointOutput struct {
	Backend     string   `json:"backend"`
	Initialized bool     `json:"initialized"`
	Committed   bool     `json:"committed"`
	Commit      string   `json:"commit,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
}

func (s *SetupCmd) Run(g *Global) error {
	cfg, err := s.effectiveConfig(g.Config)
	if err != nil {
		return err
	}

	ws, err := setup.NewService(cfg, setup.WithRecorder(g.recorder())).Setup(g.Ctx, s.Path).Tuple()
	if err != nil {
		return err
	}

	if !s.JSON {
		_, err = fmt.Fprintln(g.Stdout, ws.Path)
		return err
	}

	out := setupOutput{
		Path:         ws.Path,
		SourcePath:   ws.SourcePath,
		Mode:         string(ws.Mode),
		RunID:        ws.RunID,
		FilesCopied:  ws.Copy.Files,
		FilesSkipped: ws.Copy.Skipped,
	}
	if ws.Checkpoint.Backend != "" {
		cp := &checkpointOutput{
			Backend:     ws.Checkpoint.Backend,
			Initialized: ws.Checkpoint.Initialized,
			Committed:   ws.Checkpoint.Committed,
			Commit:      ws.Checkpoint.Commit,
		}
		for _, w := range ws.Checkpoint.Warnings {
			cp.Warnings = append(cp.Warnings, w.Error())
		}
		out.Checkpoint = cp
	}
	enc := json.NewEncoder(g.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func (s *SetupCmd) effectiveConfig(base *config.Config) (*config.Config, error) {
	cfg := *base
	if s.ScratchRoot != "" {
		cfg.Workspace.ScratchRoot = s.ScratchRoot
	}
	if s.Backend != "" {
		backend, err := config.ParseBackend(s.Backend)
		if err != nil {
			return nil, ferrors.ValidationError("invalid checkpoint backend").
				WithCause(err).
				WithContext("backend", s.Backend).
				Build()
		}
		cfg.Checkpoint.Backend = backend
	}
	if s.NoCheckpoint {
		cfg.Checkpoint.Enabled = config.BoolPtr(false)
	}
	if err := config.Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
