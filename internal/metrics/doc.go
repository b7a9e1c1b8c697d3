// Package metrics holds observability hooks for remote todo calls.
//
// Callers depend on the Recorder interface; NoopRecorder is the default and
// PrometheusRecorder forwards to a prometheus registry.
package metrics
