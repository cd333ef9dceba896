// Package domain holds the entities the server stores and serves.
package domain

import "time"

// User is an account that owns games.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    *time.Time // nil until the first update
}

// Touch sets UpdatedAt to now.
func (u *User) Touch() {
	now := time.Now().UTC()
	u.UpdatedAt = &now
}
