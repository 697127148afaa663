package helpers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// FileAssertions provides utilities for asserting file system state in tests.
type FileAssertions struct {
	t       *testing.T
	baseDir string
}

// NewFileAssertions creates a new file assertions helper.
func NewFileAssertions(t *testing.T, baseDir string) *FileAssertions {
	return &FileAssertions{
		t:       t,
		baseDir: baseDir,
	}
}

// AssertDirExists validates that a directory exists.
func (fa *FileAssertions) AssertDirExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)
	if stat, err := os.Stat(fullPath); os.IsNotExist(err) {
		fa.t.Errorf("Expected directory to exist: %s", fullPath)
	} else if err == nil && !stat.IsDir() {
		fa.t.Errorf("Expected %s to be a directory, but it's a file", fullPath)
	}
	return fa
}

// AssertFileContains validates that a file contains expected content.
func (fa *FileAssertions) AssertFileContains(relativePath, expectedContent string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)

	// #nosec G304 - test helper, paths are controlled by test code
	content, err := os.ReadFile(fullPath)
	if err != nil {
		fa.t.Errorf("Failed to read file %s: %v", fullPath, err)
		return fa
	}

	if !strings.Contains(string(content), expectedContent) {
		fa.t.Errorf("Expected file %s to contain %q\nActual content:\n%s",
			relativePath, expectedContent, string(content))
	}
	return fa
}

// AssertMirrors validates that every regular file under other exists under
// the base directory with identical content.
func (fa *FileAssertions) AssertMirrors(other string) *FileAssertions {
	fa.t.Helper()
	err := filepath.WalkDir(other, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.Type().IsRegular() {
			return err
		}
		rel, err := filepath.Rel(other, path)
		if err != nil {
			return err
		}
		// #nosec G304 - test helper, paths are controlled by test code
		want, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		// #nosec G304 - test helper, paths are controlled by test code
		got, err := os.ReadFile(filepath.Join(fa.baseDir, rel))
		if err != nil {
			fa.t.Errorf("Missing mirrored file %s: %v", rel, err)
			return nil
		}
		if string(got) != string(want) {
			fa.t.Errorf("Mirrored file %s differs", rel)
		}
		return nil
	})
	if err != nil {
		fa.t.Errorf("Failed to walk %s: %v", other, err)
	}
	return fa
}

// AssertAbsent validates that a path does not exist.
func (fa *FileAssertions) AssertAbsent(relativePath string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)
	if _, err := os.Lstat(fullPath); err == nil {
		fa.t.Errorf("Expected %s to be absent", fullPath)
	}
	return fa
}
