// Package metrics records build metrics.
//
// Components receive a Recorder and default to NoopRecorder, so metrics
// collection never needs nil checks:
//
//	recorder := metrics.NewPrometheusRecorder(registry)
//	svc := build.NewService(cfg).WithRecorder(recorder)
//
// The Prometheus recorder is scraped through HTTPHandler by the preview
// server, or dumped once per build with WriteTextfile for node_exporter's
// textfile collector.
package metrics
