// Package metrics provides observability hooks for fixup runs.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder (Null Object pattern), so metrics collection needs no nil
// checks at call sites. The Prometheus implementation is activated in watch
// mode when a metrics listener is configured.
package metrics

import "time"

// ResultLabel enumerates step result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFatal   ResultLabel = "fatal"
)

// Recorder defines observability hooks for pipeline run and step metrics.
// Implementations may forward to Prometheus, OpenTelemetry, etc.
type Recorder interface {
	ObserveStepDuration(step string, d time.Duration)
	ObserveRunDuration(d time.Duration)
	IncStepResult(step string, result ResultLabel)
	IncRunOutcome(outcome string) // outcome: success|failed
	SetPagesCollected(n int)
	SetRulesEmitted(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStepDuration(string, time.Duration) {}
func (NoopRecorder) ObserveRunDuration(time.Duration)          {}
func (NoopRecorder) IncStepResult(string, ResultLabel)         {}
func (NoopRecorder) IncRunOutcome(string)                      {}
func (NoopRecorder) SetPagesCollected(int)                     {}
func (NoopRecorder) SetRulesEmitted(int)                       {}
