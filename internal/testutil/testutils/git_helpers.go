package helpers

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// SetupTestGitRepo initializes a temporary git repository for testing.
// Returns the repository, its worktree, and the absolute path to the temporary directory.
func SetupTestGitRepo(t *testing.T) (*git.Repository, *git.Worktree, string) {
	t.Helper()

	tempDir := t.TempDir()

	repo, err := git.PlainInit(tempDir, false)
	if err != nil {
		t.Fatalf("failed to initialize git repo: %v", err)
	}

	w, err := repo.Worktree()
	if err != nil {
		t.Fatalf("failed to get worktree: %v", err)
	}

	return repo, w, tempDir
}

// CommitFiles writes files (relative path -> content) into the worktree and commits them.
func CommitFiles(t *testing.T, w *git.Worktree, dir, message string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		full := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
			t.Fatalf("failed to create dir for %s: %v", rel, err)
		}
		if err := os.WriteFile(full, []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
		if _, err := w.Add(rel); err != nil {
			t.Fatalf("failed to stage %s: %v", rel, err)
		}
	}

	_, err := w.Commit(message, &git.CommitOptions{
		AllowEmptyCommits: true,
		Author:            &object.Signature{Name: "Test", Email: "test@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatalf("failed to commit: %v", err)
	}
}

// CommitCount returns the number of commits reachable from HEAD of the repository at dir.
func CommitCount(t *testing.T, dir string) int {
	t.Helper()

	repo, err := git.PlainOpen(dir)
	if err != nil {
		t.Fatalf("failed to open repo %s: %v", dir, err)
	}
	iter, err := repo.Log(&git.LogOptions{})
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	count := 0
	if err := iter.ForEach(func(*object.Commit) error {
		count++
		return nil
	}); err != nil {
		t.Fatalf("failed to iterate log: %v", err)
	}
	return count
}

// RequireGit skips the test when the git binary is unavailable and isolates
// it from the user's global and system git configuration.
func RequireGit(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
	IsolateGitConfig(t)
}

// IsolateGitConfig points git at an empty global config for the duration of the test.
func IsolateGitConfig(t *testing.T) {
	t.Helper()

	t.Setenv("GIT_CONFIG_GLOBAL", filepath.Join(t.TempDir(), "gitconfig"))
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
}
