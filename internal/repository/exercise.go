package repository

import (
	"sync"
	"time"

	"github.com/exlog/exercisetracker/internal/model"
)

// LogFilter narrows a log query. Nil fields are not applied.
type LogFilter struct {
	From  *time.Time // inclusive
	To    *time.Time // inclusive
	Limit *int       // keep the first Limit matches in insertion order
}

// ExerciseLog holds exercise entries for all users in append order.
type ExerciseLog struct {
	mu      sync.RWMutex
	entries []model.Exercise
}

// NewExerciseLog creates an empty log.
func NewExerciseLog() *ExerciseLog {
	return &ExerciseLog{}
}

// Append stores a new entry at the end of the log. The caller is
// responsible for checking that userID refers to a registered user.
func (l *ExerciseLog) Append(userID, description string, duration int, date time.Time) model.Exercise {
	entry := model.Exercise{
		UserID:      userID,
		Description: description,
		Duration:    duration,
		Date:        date,
	}

	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()

	return entry
}

// Query returns the user's entries matching filter, in insertion order.
// A Limit of zero or less yields no entries.
func (l *ExerciseLog) Query(userID string, filter LogFilter) []model.Exercise {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]model.Exercise, 0)
	if filter.Limit != nil && *filter.Limit <= 0 {
		return result
	}

	for _, entry := range l.entries {
		if entry.UserID != userID {
			continue
		}
		if filter.From != nil && entry.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && entry.Date.After(*filter.To) {
			continue
		}

		result = append(result, entry)
		if filter.Limit != nil && len(result) == *filter.Limit {
			break
		}
	}

	return result
}

// Len returns the total number of entries across all users.
func (l *ExerciseLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
