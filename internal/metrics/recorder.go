package metrics

import "time"

// Outcome labels shared by every recorder.
const (
	OutcomeSuccess  = "success"
	OutcomeCanceled = "canceled"
)

// Recorder observes remote calls. op is the logical operation (list, get,
// create, update, delete); outcome is OutcomeSuccess, OutcomeCanceled or a
// failure kind name.
type Recorder interface {
	ObserveCall(op, outcome string, d time.Duration)
}

// NoopRecorder is used when metrics are not configured.
type NoopRecorder struct{}

func (NoopRecorder) ObserveCall(string, string, time.Duration) {}
