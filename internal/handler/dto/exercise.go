// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/exlog/exercisetracker/internal/model"
)

// CreateUserRequest represents the request body for registering a user.
type CreateUserRequest struct {
	Username string `json:"username"`
}

// AddExerciseRequest represents the request body for logging an exercise.
type AddExerciseRequest struct {
	Description string  `json:"description"`
	Duration    RawText `json:"duration"`
	Date        string  `json:"date"`
}

// RawText captures a JSON string or number as its literal text, so numeric
// coercion happens in one place for form and JSON bodies alike.
type RawText string

// UnmarshalJSON implements json.Unmarshaler.
func (t *RawText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = RawText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	f, err := n.Float64()
	if err != nil {
		return err
	}
	*t = RawText(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	Username string `json:"username"`
	ID       string `json:"_id"`
}

// ExerciseResponse represents a freshly logged exercise.
type ExerciseResponse struct {
	ID          string `json:"_id"`
	Username    string `json:"username"`
	Date        string `json:"date"`
	Duration    int    `json:"duration"`
	Description string `json:"description"`
}

// LogEntry is one exercise inside a log response.
type LogEntry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogResponse represents a user's exercise history.
type LogResponse struct {
	ID       string     `json:"_id"`
	Username string     `json:"username"`
	From     string     `json:"from,omitempty"`
	To       string     `json:"to,omitempty"`
	Count    int        `json:"count"`
	Log      []LogEntry `json:"log"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		Username: user.Username,
		ID:       user.ID,
	}
}

// ToUserListResponse converts users to their DTOs, keeping order.
func ToUserListResponse(users []model.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = *ToUserResponse(&users[i])
	}
	return responses
}

// ToExerciseResponse merges the owner and the new entry into one object.
func ToExerciseResponse(user *model.User, exercise *model.Exercise) *ExerciseResponse {
	return &ExerciseResponse{
		ID:          user.ID,
		Username:    user.Username,
		Date:        exercise.FormattedDate(),
		Duration:    exercise.Duration,
		Description: exercise.Description,
	}
}

// ToLogResponse converts a filtered history to LogResponse DTO.
func ToLogResponse(user *model.User, from, to *time.Time, entries []model.Exercise) *LogResponse {
	log := make([]LogEntry, len(entries))
	for i := range entries {
		log[i] = LogEntry{
			Description: entries[i].Description,
			Duration:    entries[i].Duration,
			Date:        entries[i].FormattedDate(),
		}
	}

	resp := &LogResponse{
		ID:       user.ID,
		Username: user.Username,
		Count:    len(log),
		Log:      log,
	}
	if from != nil {
		resp.From = model.FormatDate(*from)
	}
	if to != nil {
		resp.To = model.FormatDate(*to)
	}
	return resp
}
