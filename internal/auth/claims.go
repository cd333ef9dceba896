package auth

import "time"

// SessionClaims is what a verified access token asserts. It lives only for
// the duration of a request and is never stored.
type SessionClaims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	TokenID   string
}
