package tracker

import "errors"

var (
	// ErrSessionNotFound is returned when the session id does not
	// resolve to a stored session (or belongs to another user).
	ErrSessionNotFound = errors.New("session not found")

	// ErrActiveSession is returned by Begin when the user already has
	// a session with no end time. The caller must end it first.
	ErrActiveSession = errors.New("user already has an active session")

	// ErrSessionCompleted is returned when recording into, or
	// completing, a session whose end time is already set.
	ErrSessionCompleted = errors.New("session already completed")
)
