// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Directory metrics
	IncUserRegistered()
	IncUserNotFound()

	// Exercise log metrics
	IncExerciseLogged()
	IncExerciseRejected(reason string) // reason: "duration" or "date"
	ObserveLogQuery(entries int, duration time.Duration)

	// Transport metrics
	IncRateLimited()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
