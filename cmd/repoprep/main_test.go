package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	helpers "git.home.luguber.info/inful/repoprep/internal/testutil/testutils"
)

type cliResult struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, args ...string) cliResult {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(context.Background(), args, &out, &errOut)
	return cliResult{code: code, stdout: out.String(), stderr: errOut.String()}
}

// isolate runs the test from an empty directory so no repoprep.yaml or .env is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	helpers.IsolateGitConfig(t)
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestSetupCommand_PrintsWorkingDirectory(t *testing.T) {
	isolate(t)
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "index.html"), []byte("<html/>"), 0o600))

	res := runCLI(t, "setup", src, "--backend", "gogit")
	require.Equal(t, 0, res.code, res.stderr)
	require.Equal(t, src, strings.TrimSpace(res.stdout))
	require.DirExists(t, filepath.Join(src, ".git"))
}

func TestSetupCommand_JSON(t *testing.T) {
	isolate(t)
	src := t.TempDir()

	res := runCLI(t, "setup", src, "--backend", "go-git", "--json")
	require.Equal(t, 0, res.code, res.stderr)

	var out setupJSON
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	require.Equal(t, src, out.Path)
	require.Equal(t, "in_place", out.Mode)
	require.NotEmpty(t, out.RunID)
	require.NotNil(t, out.Checkpoint)
	require.True(t, out.Checkpoint.Committed)
	require.Len(t, out.Checkpoint.Commit, 40)
}

type setupJSON struct {
	Path       string `json:"path"`
	Mode       string `json:"mode"`
	RunID      string `json:"run_id"`
	Checkpoint *struct {
		Committed bool   `json:"committed"`
		Commit    string `json:"commit"`
	} `json:"checkpoint"`
}

func TestSetupCommand_NoCheckpoint(t *testing.T) {
	isolate(t)
	src := t.TempDir()

	res := runCLI(t, "setup", src, "--no-checkpoint", "--json")
	require.Equal(t, 0, res.code, res.stderr)
	require.NoDirExists(t, filepath.Join(src, ".git"))
	require.NotContains(t, res.stdout, `"checkpoint"`)
}

func TestSetupCommand_MissingSource(t *testing.T) {
	isolate(t)
	missing := filepath.Join(t.TempDir(), "nope")

	res := runCLI(t, "setup", missing)
	require.Equal(t, 11, res.code)
	require.Contains(t, res.stderr, "Error: local repository setup failed")
	require.Equal(t, 1, strings.Count(res.stderr, "level=ERROR"), res.stderr)
	require.Empty(t, res.stdout)
}

func TestSetupCommand_VerboseShowsContext(t *testing.T) {
	isolate(t)
	missing := filepath.Join(t.TempDir(), "nope")

	res := runCLI(t, "-v", "setup", missing)
	require.Equal(t, 11, res.code)
	require.Contains(t, res.stderr, "source_path: "+missing)
}

func TestSetupCommand_InvalidBackend(t *testing.T) {
	isolate(t)

	res := runCLI(t, "setup", t.TempDir(), "--backend", "svn")
	require.Equal(t, 2, res.code)
	require.Contains(t, res.stderr, "invalid checkpoint backend")
}

func TestSetupCommand_ConfigFile(t *testing.T) {
	dir := isolate(t)
	scratch := filepath.Join(dir, "scratch")
	cfg := "workspace:\n  scratch_root: " + scratch + "\ncheckpoint:\n  backend: gogit\n  author_name: Config Author\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.yaml"), []byte(cfg), 0o600))

	res := runCLI(t, "-c", "custom.yaml", "setup", t.TempDir(), "--json")
	require.Equal(t, 0, res.code, res.stderr)
	require.Contains(t, res.stdout, `"backend": "gogit"`)
}

func TestSetupCommand_BrokenConfig(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "repoprep.yaml"), []byte("workspace: [unterminated"), 0o600))

	res := runCLI(t, "setup", t.TempDir())
	require.Equal(t, 7, res.code)
	require.Contains(t, res.stderr, "failed to parse configuration file")
}

func TestSetupCommand_MetricsFile(t *testing.T) {
	dir := isolate(t)
	metricsFile := filepath.Join(dir, "repoprep.prom")

	res := runCLI(t, "--metrics-file", metricsFile, "setup", t.TempDir(), "--backend", "gogit")
	require.Equal(t, 0, res.code, res.stderr)

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	require.Contains(t, string(data), `repoprep_setup_total{mode="in_place",outcome="success"} 1`)
	require.Contains(t, string(data), "repoprep_checkpoint_steps_total")
}

func TestProbeCommand(t *testing.T) {
	isolate(t)

	res := runCLI(t, "probe", t.TempDir())
	require.Equal(t, 0, res.code, res.stderr)
	require.Equal(t, "writable", strings.TrimSpace(res.stdout))

	res = runCLI(t, "probe", filepath.Join(t.TempDir(), "missing"))
	require.Equal(t, 1, res.code)
	require.Equal(t, "not writable", strings.TrimSpace(res.stdout))
	require.Empty(t, res.stderr)
}

func TestVersionCommand(t *testing.T) {
	isolate(t)

	res := runCLI(t, "version")
	require.Equal(t, 0, res.code)
	require.True(t, strings.HasPrefix(res.stdout, "repoprep "))
}

func TestUnknownCommand(t *testing.T) {
	isolate(t)

	res := runCLI(t, "frobnicate")
	require.Equal(t, 2, res.code)
	require.Contains(t, res.stderr, "Error:")
}
