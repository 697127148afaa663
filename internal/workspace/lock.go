package workspace

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"

	"git.home.luguber.info/inful/repoprep/internal/retry"
)

const lockDirName = ".locks"

// ErrLockBusy is returned when the retry budget runs out while another
// process holds the lock.
var ErrLockBusy = errors.New("source lock busy")

// SourceLock is an exclusive advisory lock keyed by a resolved source path.
type SourceLock struct {
	file *os.File
	path string
}

// LockPath returns the lock file used for sourcePath under lockDir. Paths
// reaching the same directory through symlinks share a lock.
func LockPath(lockDir, sourcePath string) string {
	key := filepath.Clean(sourcePath)
	if resolved, err := filepath.EvalSymlinks(key); err == nil {
		key = resolved
	}
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(lockDir, hex.EncodeToString(sum[:8])+".lock")
}

// AcquireSourceLock blocks until the lock for sourcePath is held, ctx is done
// or policy is exhausted. Lock files are left in place after release.
func AcquireSourceLock(ctx context.Context, lockDir, sourcePath string, policy retry.Policy) (*SourceLock, error) {
	if err := os.MkdirAll(lockDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	path := LockPath(lockDir, sourcePath)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}
	if err := policy.Validate(); err != nil {
		policy = retry.DefaultPolicy()
	}

	for attempt := 1; ; attempt++ {
		err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			return &SourceLock{file: f, path: path}, nil
		}
		if !errors.Is(err, unix.EWOULDBLOCK) && !errors.Is(err, unix.EINTR) {
			_ = f.Close()
			return nil, fmt.Errorf("failed to lock %s: %w", path, err)
		}
		if policy.Exhausted(attempt) {
			_ = f.Close()
			return nil, fmt.Errorf("%w: %s", ErrLockBusy, path)
		}
		timer := time.NewTimer(policy.Delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			_ = f.Close()
			return nil, fmt.Errorf("waiting for source lock: %w", ctx.Err())
		case <-timer.C:
		}
	}
}

// Path returns the lock file path.
func (l *SourceLock) Path() string {
	return l.path
}

// Release unlocks and closes the lock file. Safe to call more than once.
func (l *SourceLock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
	if cerr := l.file.Close(); err == nil {
		err = cerr
	}
	l.file = nil
	return err
}
