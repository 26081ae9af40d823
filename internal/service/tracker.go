// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/exlog/exercisetracker/internal/metrics"
	"github.com/exlog/exercisetracker/internal/model"
	"github.com/exlog/exercisetracker/internal/repository"
)

// Service errors.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidDuration = errors.New("invalid duration")
	ErrInvalidDate     = errors.New("invalid date")
)

// UserStore is the user directory the service resolves identities against.
type UserStore interface {
	Register(username string) model.User
	ListAll() []model.User
	FindByID(id string) (model.User, error)
}

// ExerciseStore is the append-only exercise log.
type ExerciseStore interface {
	Append(userID, description string, duration int, date time.Time) model.Exercise
	Query(userID string, filter repository.LogFilter) []model.Exercise
}

var (
	_ UserStore     = (*repository.UserDirectory)(nil)
	_ ExerciseStore = (*repository.ExerciseLog)(nil)
)

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TrackerService validates identities and coerces raw input before
// touching the stores.
type TrackerService struct {
	users     UserStore
	exercises ExerciseStore
	clock     Clock
	metrics   metrics.Recorder
}

// NewTrackerService creates a new TrackerService.
func NewTrackerService(users UserStore, exercises ExerciseStore, clock Clock, recorder metrics.Recorder) *TrackerService {
	if clock == nil {
		clock = realClock{}
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &TrackerService{
		users:     users,
		exercises: exercises,
		clock:     clock,
		metrics:   recorder,
	}
}

// CreateUser registers a new user.
func (s *TrackerService) CreateUser(ctx context.Context, username string) (*model.User, error) {
	user := s.users.Register(username)
	s.metrics.IncUserRegistered()
	return &user, nil
}

// ListUsers returns all users in registration order.
func (s *TrackerService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.ListAll(), nil
}

// GetUser resolves a user by id.
func (s *TrackerService) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncUserNotFound()
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// AddExerciseInput carries raw caller input for a new entry.
type AddExerciseInput struct {
	UserID      string
	Description string
	Duration    string
	Date        string // empty means now
}

// ExerciseResult is an appended entry together with its owner.
type ExerciseResult struct {
	User     model.User
	Exercise model.Exercise
}

// AddExercise appends an entry to a registered user's log.
func (s *TrackerService) AddExercise(ctx context.Context, input AddExerciseInput) (*ExerciseResult, error) {
	user, err := s.GetUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	duration, err := parseDuration(input.Duration)
	if err != nil {
		s.metrics.IncExerciseRejected("duration")
		return nil, err
	}

	date, err := parseOptionalDate(input.Date)
	if err != nil {
		s.metrics.IncExerciseRejected("date")
		return nil, err
	}
	if date == nil {
		now := s.clock.Now()
		date = &now
	}

	entry := s.exercises.Append(user.ID, input.Description, duration, *date)
	s.metrics.IncExerciseLogged()

	return &ExerciseResult{User: *user, Exercise: entry}, nil
}

// GetLogInput carries raw query parameters for a log lookup.
type GetLogInput struct {
	UserID string
	From   string
	To     string
	Limit  string
}

// LogResult is a user's filtered exercise history.
type LogResult struct {
	User model.User
	From *time.Time
	To   *time.Time
	Log  []model.Exercise
}

// Count returns the number of entries in the result.
func (r *LogResult) Count() int {
	return len(r.Log)
}

// GetLog returns a registered user's exercise history.
func (s *TrackerService) GetLog(ctx context.Context, input GetLogInput) (*LogResult, error) {
	start := time.Now()

	user, err := s.GetUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	from, err := parseOptionalDate(input.From)
	if err != nil {
		return nil, err
	}
	to, err := parseOptionalDate(input.To)
	if err != nil {
		return nil, err
	}

	entries := s.exercises.Query(user.ID, repository.LogFilter{
		From:  from,
		To:    to,
		Limit: parseLimit(input.Limit),
	})

	s.metrics.ObserveLogQuery(len(entries), time.Since(start))

	return &LogResult{
		User: *user,
		From: from,
		To:   to,
		Log:  entries,
	}, nil
}
