// Package model defines domain entities for the application.
package model

// User is a registered account that exercises are logged against.
// Usernames are not unique; the ID is.
type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}
