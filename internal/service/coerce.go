package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/exlog/exercisetracker/internal/model"
)

// parseLeadingInt reads an optionally signed run of decimal digits from the
// start of raw, ignoring leading whitespace and anything after the digits.
// "60", " 60min" and "60.9" all yield 60.
func parseLeadingInt(raw string) (int, bool) {
	s := strings.TrimLeft(raw, " \t\r\n")

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseDuration coerces a caller-supplied duration in minutes.
func parseDuration(raw string) (int, error) {
	n, ok := parseLeadingInt(raw)
	if !ok {
		return 0, ErrInvalidDuration
	}
	return n, nil
}

// parseLimit coerces an optional limit. An absent value means no limit; a
// supplied value without leading digits counts as zero.
func parseLimit(raw string) *int {
	if raw == "" {
		return nil
	}
	n, _ := parseLeadingInt(raw)
	return &n
}

// parseOptionalDate returns nil for an empty value.
func parseOptionalDate(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := model.ParseDate(raw)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &t, nil
}
