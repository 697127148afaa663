package workspace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrDestinationInsideSource is returned when dst lies within src.
var ErrDestinationInsideSource = errors.New("destination is inside source")

// CopyStats counts what CopyTree did.
type CopyStats struct {
	Files    int
	Dirs     int
	Symlinks int
	Skipped  int
}

// CopyTree recursively copies the contents of src into dst, creating dst if
// needed. Existing files and symlinks at the destination are never
// overwritten and do not fail the copy; existing directories are merged into.
// Symlinks are recreated, not followed. Copied entries keep their permission
// bits with owner write (and owner rwx for directories) added.
func CopyTree(ctx context.Context, src, dst string) (CopyStats, error) {
	var stats CopyStats

	src = filepath.Clean(src)
	dst = filepath.Clean(dst)
	if rel, err := filepath.Rel(src, dst); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return stats, fmt.Errorf("%w: %s -> %s", ErrDestinationInsideSource, src, dst)
	}
	if err := os.MkdirAll(dst, 0o750); err != nil {
		return stats, err
	}

	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		target := filepath.Join(dst, rel)

		switch {
		case d.IsDir():
			created, err := copyDir(path, target)
			if err != nil {
				return err
			}
			if created == dirConflict {
				stats.Skipped++
				return fs.SkipDir
			}
			if created == dirCreated {
				stats.Dirs++
			}
		case d.Type()&fs.ModeSymlink != 0:
			ok, err := copySymlink(path, target)
			if err != nil {
				return err
			}
			if ok {
				stats.Symlinks++
			} else {
				stats.Skipped++
			}
		case d.Type().IsRegular():
			ok, err := copyFile(path, target)
			if err != nil {
				return err
			}
			if ok {
				stats.Files++
			} else {
				stats.Skipped++
			}
		default:
			// sockets, devices and named pipes
			stats.Skipped++
		}
		return nil
	})
	return stats, err
}

type dirResult int

const (
	dirCreated dirResult = iota
	dirMerged
	dirConflict
)

func copyDir(src, dst string) (dirResult, error) {
	info, err := os.Stat(src)
	if err != nil {
		return 0, err
	}
	perm := info.Mode().Perm() | 0o700
	if err := os.Mkdir(dst, perm); err != nil {
		if !errors.Is(err, fs.ErrExist) {
			return 0, err
		}
		existing, lerr := os.Lstat(dst)
		if lerr != nil {
			return 0, lerr
		}
		if existing.IsDir() {
			return dirMerged, nil
		}
		return dirConflict, nil
	}
	// Mkdir is subject to the umask.
	if err := os.Chmod(dst, perm); err != nil {
		return 0, err
	}
	return dirCreated, nil
}

func copySymlink(src, dst string) (bool, error) {
	link, err := os.Readlink(src)
	if err != nil {
		return false, err
	}
	if err := os.Symlink(link, dst); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// copyFile copies a single regular file. It reports false when dst already exists.
func copyFile(src, dst string) (copied bool, err error) {
	info, err := os.Stat(src)
	if err != nil {
		return false, err
	}
	perm := info.Mode().Perm() | 0o200

	srcFile, err := os.Open(src)
	if err != nil {
		return false, err
	}
	defer func() {
		_ = srcFile.Close()
	}()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		if cerr := dstFile.Close(); cerr != nil && err == nil {
			copied, err = false, cerr
		}
	}()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return false, err
	}
	if err := dstFile.Chmod(perm); err != nil {
		return false, err
	}
	return true, nil
}
