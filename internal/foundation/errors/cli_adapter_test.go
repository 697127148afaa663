package errors

import (
	"bytes"
	stderrors "errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "validation", err: ValidationError("bad").Build(), expected: 2},
		{name: "config", err: ConfigError("bad").Build(), expected: 7},
		{name: "git", err: GitError("bad").Build(), expected: 8},
		{name: "internal", err: InternalError("bad").Build(), expected: 10},
		{name: "filesystem", err: FileSystemError("bad").Build(), expected: 11},
		{name: "unclassified", err: stderrors.New("boom"), expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	err := FileSystemError("local repository setup failed").
		WithCause(stderrors.New("no such file or directory")).
		WithContext("source_path", "/tmp/missing").
		Build()

	quiet := NewCLIErrorAdapter(false, slog.Default())
	require.Equal(t, "Error: local repository setup failed", quiet.FormatError(err))

	verbose := NewCLIErrorAdapter(true, slog.Default())
	msg := verbose.FormatError(err)
	require.Contains(t, msg, "no such file or directory")
	require.Contains(t, msg, "source_path: /tmp/missing")

	require.Equal(t, "Error: plain", quiet.FormatError(stderrors.New("plain")))
	require.Empty(t, quiet.FormatError(nil))
}

func TestCLIErrorAdapter_Report(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	adapter := NewCLIErrorAdapter(false, logger).WithOutput(&out)

	code := adapter.Report(FileSystemError("copy failed").Build())
	require.Equal(t, 11, code)
	require.Equal(t, "Error: copy failed\n", out.String())

	require.Equal(t, 0, adapter.Report(nil))
}
