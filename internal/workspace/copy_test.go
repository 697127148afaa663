package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCopyTree_SkipsExistingEntries(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{
		"keep.txt":     "from source",
		"new.txt":      "new",
		"dir/keep.txt": "from source",
		"dir/new.txt":  "new",
	})
	writeTree(t, dst, map[string]string{
		"keep.txt":     "existing",
		"dir/keep.txt": "existing",
	})

	stats, err := CopyTree(context.Background(), src, dst)
	require.NoError(t, err)
	require.Equal(t, 2, stats.Files)
	require.Equal(t, 2, stats.Skipped)
	require.Zero(t, stats.Dirs, "existing directories are merged, not created")

	for rel, want := range map[string]string{
		"keep.txt":     "existing",
		"dir/keep.txt": "existing",
		"new.txt":      "new",
		"dir/new.txt":  "new",
	} {
		data, err := os.ReadFile(filepath.Join(dst, rel))
		require.NoError(t, err)
		require.Equal(t, want, string(data), rel)
	}
}

func TestCopyTree_FileBlockingDirectoryIsSkipped(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{"sub/a.txt": "a"})
	require.NoError(t, os.WriteFile(filepath.Join(dst, "sub"), []byte("file"), 0o600))

	stats, err := CopyTree(context.Background(), src, dst)
	require.NoError(t, err)
	require.Equal(t, 1, stats.Skipped)
	require.Zero(t, stats.Files)
}

func TestCopyTree_RecreatesSymlinks(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{"target.txt": "t"})
	require.NoError(t, os.Symlink("target.txt", filepath.Join(src, "link")))

	stats, err := CopyTree(context.Background(), src, dst)
	require.NoError(t, err)
	require.Equal(t, 1, stats.Symlinks)

	link, err := os.Readlink(filepath.Join(dst, "link"))
	require.NoError(t, err)
	require.Equal(t, "target.txt", link)
}

func TestCopyTree_AddsOwnerWritePermission(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")
	writeTree(t, src, map[string]string{"ro/file.txt": "r"})
	require.NoError(t, os.Chmod(filepath.Join(src, "ro", "file.txt"), 0o444))
	require.NoError(t, os.Chmod(filepath.Join(src, "ro"), 0o555))
	t.Cleanup(func() { _ = os.Chmod(filepath.Join(src, "ro"), 0o755) })

	_, err := CopyTree(context.Background(), src, dst)
	require.NoError(t, err)

	dirInfo, err := os.Stat(filepath.Join(dst, "ro"))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o755), dirInfo.Mode().Perm())

	fileInfo, err := os.Stat(filepath.Join(dst, "ro", "file.txt"))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o644), fileInfo.Mode().Perm())
}

func TestCopyTree_RejectsDestinationInsideSource(t *testing.T) {
	src := t.TempDir()
	_, err := CopyTree(context.Background(), src, filepath.Join(src, "repos", "workspace-1"))
	require.ErrorIs(t, err, ErrDestinationInsideSource)

	_, err = CopyTree(context.Background(), src, src)
	require.ErrorIs(t, err, ErrDestinationInsideSource)
}

func TestCopyTree_DotDotNamedChildIsInside(t *testing.T) {
	src := t.TempDir()
	_, err := CopyTree(context.Background(), src, filepath.Join(src, "..cache"))
	require.ErrorIs(t, err, ErrDestinationInsideSource)

	sibling := filepath.Join(filepath.Dir(src), filepath.Base(src)+"-copy")
	t.Cleanup(func() { _ = os.RemoveAll(sibling) })
	_, err = CopyTree(context.Background(), src, sibling)
	require.NoError(t, err)
}

func TestCopyTree_EmptySource(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")

	stats, err := CopyTree(context.Background(), src, dst)
	require.NoError(t, err)
	require.Equal(t, CopyStats{}, stats)
	require.DirExists(t, dst)
}
