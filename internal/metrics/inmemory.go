package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered           uint64
	UserNotFound              uint64
	ExercisesLogged           uint64
	ExercisesRejectedDate     uint64
	ExercisesRejectedDuration uint64
	LogQueries                uint64
	LogQueryEntriesTotal      uint64
	LogQueryDurationTotalNs   int64
	RateLimited               uint64
}

// InMemoryRecorder keeps counters in memory. It backs the /metrics endpoint.
type InMemoryRecorder struct {
	usersRegistered           uint64
	userNotFound              uint64
	exercisesLogged           uint64
	exercisesRejectedDate     uint64
	exercisesRejectedDuration uint64
	logQueries                uint64
	logQueryEntriesTotal      uint64
	logQueryDurationTotalNs   int64
	rateLimited               uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered:           atomic.LoadUint64(&m.usersRegistered),
		UserNotFound:              atomic.LoadUint64(&m.userNotFound),
		ExercisesLogged:           atomic.LoadUint64(&m.exercisesLogged),
		ExercisesRejectedDate:     atomic.LoadUint64(&m.exercisesRejectedDate),
		ExercisesRejectedDuration: atomic.LoadUint64(&m.exercisesRejectedDuration),
		LogQueries:                atomic.LoadUint64(&m.logQueries),
		LogQueryEntriesTotal:      atomic.LoadUint64(&m.logQueryEntriesTotal),
		LogQueryDurationTotalNs:   atomic.LoadInt64(&m.logQueryDurationTotalNs),
		RateLimited:               atomic.LoadUint64(&m.rateLimited),
	}
}

// IncUserRegistered increments the registration counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	atomic.AddUint64(&m.usersRegistered, 1)
}

// IncUserNotFound increments the unknown-user counter.
func (m *InMemoryRecorder) IncUserNotFound() {
	atomic.AddUint64(&m.userNotFound, 1)
}

// IncExerciseLogged increments the appended-entries counter.
func (m *InMemoryRecorder) IncExerciseLogged() {
	atomic.AddUint64(&m.exercisesLogged, 1)
}

// IncExerciseRejected increments the rejected-entries counter for reason.
func (m *InMemoryRecorder) IncExerciseRejected(reason string) {
	if reason == "date" {
		atomic.AddUint64(&m.exercisesRejectedDate, 1)
		return
	}
	atomic.AddUint64(&m.exercisesRejectedDuration, 1)
}

// ObserveLogQuery records one log query.
func (m *InMemoryRecorder) ObserveLogQuery(entries int, duration time.Duration) {
	atomic.AddUint64(&m.logQueries, 1)
	atomic.AddUint64(&m.logQueryEntriesTotal, uint64(entries))
	atomic.AddInt64(&m.logQueryDurationTotalNs, duration.Nanoseconds())
}

// IncRateLimited increments the rejected-by-rate-limit counter.
func (m *InMemoryRecorder) IncRateLimited() {
	atomic.AddUint64(&m.rateLimited, 1)
}
