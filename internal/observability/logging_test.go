package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestWithRunID(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-123")
	require.Equal(t, "run-123", extractLogContext(ctx).RunID)
}

func TestContextValuesAccumulate(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-1")
	ctx = WithSourcePath(ctx, "/src")
	ctx = WithStage(ctx, "provision")

	lc := extractLogContext(ctx)
	require.Equal(t, LogContext{RunID: "run-1", SourcePath: "/src", Stage: "provision"}, lc)
}

func TestNewRunID_IsUUID(t *testing.T) {
	id := NewRunID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	require.NotEqual(t, id, NewRunID())
}

func TestInfoContext_IncludesContextAttrs(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	ctx := WithStage(WithRunID(context.Background(), "run-9"), "checkpoint")
	InfoContext(ctx, "hello", slog.String("k", "v"))
	DebugContext(ctx, "dbg")

	out := buf.String()
	require.Contains(t, out, "run_id=run-9")
	require.Contains(t, out, "stage=checkpoint")
	require.Contains(t, out, "k=v")
	require.Equal(t, 2, strings.Count(out, "run_id=run-9"))
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo, "json")
	logger.Info("ready", "working_dir", "/w")
	logger.Debug("hidden")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "ready", rec["msg"])
	require.Equal(t, "/w", rec["working_dir"])
}
