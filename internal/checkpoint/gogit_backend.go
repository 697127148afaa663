package checkpoint

import (
	"context"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GoGitBackend performs checkpoint operations in process with go-git.
type GoGitBackend struct {
	now func() time.Time
}

// NewGoGitBackend returns a go-git backed Backend.
func NewGoGitBackend() *GoGitBackend {
	return &GoGitBackend{now: time.Now}
}

func (b *GoGitBackend) Name() string { return "gogit" }

func (b *GoGitBackend) Init(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := git.PlainInit(dir, false); err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	return nil
}

func (b *GoGitBackend) ConfigureIdentity(ctx context.Context, dir string, id Identity) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return fmt.Errorf("open repository: %w", err)
	}
	cfg, err := repo.Config()
	if err != nil {
		return fmt.Errorf("read repository config: %w", err)
	}
	cfg.User.Name = id.Name
	cfg.User.Email = id.Email
	if err := repo.SetConfig(cfg); err != nil {
		return fmt.Errorf("write repository config: %w", err)
	}
	return nil
}

func (b *GoGitBackend) CommitAll(ctx context.Context, dir, message string, id Identity) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return "", fmt.Errorf("open repository: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("get worktree: %w", err)
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return "", fmt.Errorf("stage worktree: %w", err)
	}
	hash, err := wt.Commit(message, &git.CommitOptions{
		AllowEmptyCommits: true,
		Author:            &object.Signature{Name: id.Name, Email: id.Email, When: b.now()},
	})
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return hash.String(), nil
}
