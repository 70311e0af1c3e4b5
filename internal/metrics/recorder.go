// Package metrics defines observability hooks for document scrubbing, with a
// Prometheus-backed implementation and a no-op default.
package metrics

import "time"

// Outcome labels for the documents counter.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Recorder defines observability hooks for scrub operations. Implementations
// may forward to Prometheus, OpenTelemetry, etc.
type Recorder interface {
	ObserveScrubDuration(d time.Duration)
	IncDocuments(outcome string)
	AddMentionsLinked(n int)
	AddMentionsKept(n int)
	AddReferencesShortened(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not
// configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveScrubDuration(time.Duration) {}
func (NoopRecorder) IncDocuments(string)                {}
func (NoopRecorder) AddMentionsLinked(int)              {}
func (NoopRecorder) AddMentionsKept(int)                {}
func (NoopRecorder) AddReferencesShortened(int)         {}
