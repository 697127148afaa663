package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeySourcePath = "source_path"
	KeyWorkingDir = "working_dir"
	KeyMode       = "mode"
	KeyStep       = "step"
	KeyRunID      = "run_id"
	KeyBackend    = "backend"
	KeyCommit     = "commit"
	KeyPath       = "path"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func SourcePath(p string) slog.Attr { return slog.String(KeySourcePath, p) }
func WorkingDir(p string) slog.Attr { return slog.String(KeyWorkingDir, p) }
func Mode(m string) slog.Attr { return slog.String(KeyMode, m) }
func Step(s string) slog.Attr { return slog.String(KeyStep, s) }
func RunID(id string) slog.Attr { return slog.String(KeyRunID, id) }
func Backend(b string) slog.Attr { return slog.String(KeyBackend, b) }
func Commit(hash string) slog.Attr { return slog.String(KeyCommit, hash) }
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
