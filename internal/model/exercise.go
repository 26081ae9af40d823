package model

import (
	"errors"
	"strings"
	"time"
)

// DateLayout renders a calendar date the way browsers print Date.toDateString.
const DateLayout = "Mon Jan 02 2006"

// ErrInvalidDate is returned when a date-like value matches no accepted layout.
var ErrInvalidDate = errors.New("invalid date")

// dateLayouts are tried in order. Layouts without a zone parse as UTC.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006/01/02",
	DateLayout,
	"January 2, 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
}

// Exercise is a single logged activity. Entries are immutable once appended.
type Exercise struct {
	UserID      string    `json:"user_id"`
	Description string    `json:"description"`
	Duration    int       `json:"duration"` // minutes
	Date        time.Time `json:"date"`
}

// ParseDate parses a caller-supplied date. A bare calendar date such as
// "1990-01-01" means midnight UTC of that day.
func ParseDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, ErrInvalidDate
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, ErrInvalidDate
}

// FormatDate renders t as a calendar date without a time component.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// FormattedDate returns the entry date in DateLayout.
func (e *Exercise) FormattedDate() string {
	return FormatDate(e.Date)
}
