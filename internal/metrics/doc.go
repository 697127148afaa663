// Package metrics records setup outcomes.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics never need nil checks at call sites:
//
//	rec := metrics.NewPrometheusRecorder(prom.NewRegistry())
//	svc := setup.NewService(cfg, setup.WithRecorder(rec))
//
// A one-shot CLI run has no scrape endpoint; PrometheusRecorder.WriteTextfile
// writes the registry in the node-exporter textfile format instead.
package metrics
