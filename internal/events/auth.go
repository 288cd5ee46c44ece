package events

import "time"

// AuthKind names what happened in an AuthEvent
type AuthKind string

const (
	UserRegistered AuthKind = "registered"
	LoginSucceeded AuthKind = "login_succeeded"
	LoginFailed    AuthKind = "login_failed"
)

// AuthEvent is published by the auth service. UserID is zero for failed
// logins. The attempted email is not carried.
type AuthEvent struct {
	Kind   AuthKind
	UserID int64
	Role   string
	At     time.Time
}
