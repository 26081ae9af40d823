package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncUserRegistered is a no-op.
func (n *NoopRecorder) IncUserRegistered() {}

// IncUserNotFound is a no-op.
func (n *NoopRecorder) IncUserNotFound() {}

// IncExerciseLogged is a no-op.
func (n *NoopRecorder) IncExerciseLogged() {}

// IncExerciseRejected is a no-op.
func (n *NoopRecorder) IncExerciseRejected(reason string) {}

// ObserveLogQuery is a no-op.
func (n *NoopRecorder) ObserveLogQuery(entries int, duration time.Duration) {}

// IncRateLimited is a no-op.
func (n *NoopRecorder) IncRateLimited() {}
