// Package repository provides the in-memory stores backing the tracker.
// State lives for the process lifetime only.
package repository

import "errors"

// Common errors for repository operations.
var (
	ErrUserNotFound = errors.New("user not found")
)
