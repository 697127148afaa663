package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg             *prom.Registry
	setupOutcomes   *prom.CounterVec
	copyDuration    *prom.HistogramVec
	checkpointSteps *prom.CounterVec
}

// NewPrometheusRecorder constructs PrometheusRecorder metrics and registers them on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		setupOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "repoprep",
			Name:      "setup_total",
			Help:      "Setup runs by working directory mode and outcome",
		}, []string{"mode", "outcome"}),
		copyDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "repoprep",
			Name:      "copy_duration_seconds",
			Help:      "Duration of workspace copies",
			Buckets:   prom.ExponentialBuckets(0.01, 4, 8),
		}, []string{"result"}),
		checkpointSteps: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "repoprep",
			Name:      "checkpoint_steps_total",
			Help:      "Checkpoint step results",
		}, []string{"step", "result"}),
	}
	reg.MustRegister(pr.setupOutcomes, pr.copyDuration, pr.checkpointSteps)
	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.reg
}

func (p *PrometheusRecorder) IncSetupOutcome(mode, outcome string) {
	if p == nil {
		return
	}
	p.setupOutcomes.WithLabelValues(mode, outcome).Inc()
}

func (p *PrometheusRecorder) ObserveCopyDuration(d time.Duration, success bool) {
	if p == nil {
		return
	}
	p.copyDuration.WithLabelValues(resultLabel(success)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncCheckpointStep(step string, success bool) {
	if p == nil {
		return
	}
	p.checkpointSteps.WithLabelValues(step, resultLabel(success)).Inc()
}

// WriteTextfile atomically writes all registered metrics to filename in the
// text exposition format.
func (p *PrometheusRecorder) WriteTextfile(filename string) error {
	return prom.WriteToTextfile(filename, p.reg)
}
