package apperrors

import "errors"

// Sentinel errors shared by the match lifecycle and court allocation
// packages. Controllers translate these to HTTP statuses; everything else
// propagates as an internal error.
var (
	// ErrInvalidTransition means the requested action is not legal from the
	// entity's current status.
	ErrInvalidTransition = errors.New("action not allowed from current status")

	// ErrUnauthorized means the actor lacks the capability or relationship
	// the action requires (not a participant, not the counterpart, not an
	// organizer).
	ErrUnauthorized = errors.New("actor not authorized for this action")

	// ErrInvalidInput covers malformed or tied scores.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict means a concurrent write won the race on the same match or
	// court. Callers may re-read and retry.
	ErrConflict = errors.New("concurrent update conflict")

	// ErrUnavailable means the target court is not available, or the match is
	// not bound to the targeted court.
	ErrUnavailable = errors.New("resource unavailable")

	// ErrNotFound means the referenced match or court does not exist.
	ErrNotFound = errors.New("resource not found")
)
