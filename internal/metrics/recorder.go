package metrics

import "time"

// Outcome labels for setup results.
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
)

// Recorder defines observability hooks for setup runs.
type Recorder interface {
	// IncSetupOutcome counts a finished setup by mode (in_place|copy|unknown) and outcome.
	IncSetupOutcome(mode, outcome string)
	ObserveCopyDuration(d time.Duration, success bool)
	// IncCheckpointStep counts a checkpoint step (init|configure|commit) result.
	IncCheckpointStep(step string, success bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncSetupOutcome(string, string) {}
func (NoopRecorder) ObserveCopyDuration(time.Duration, bool) {}
func (NoopRecorder) IncCheckpointStep(string, bool) {}

func resultLabel(success bool) string {
	if success {
		return OutcomeSuccess
	}
	return OutcomeFailed
}
