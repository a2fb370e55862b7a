package lead

import "errors"

var (
	// ErrInvalidStatus is returned for a transition target outside the five
	// defined pipeline stages. This is a programming error, never reachable
	// through the intended UI, and callers should surface it loudly.
	ErrInvalidStatus = errors.New("invalid lead status")

	// ErrNotFound is returned when the store has no lead with the given id.
	ErrNotFound = errors.New("lead not found")

	// ErrConflict is returned when an update carries a stale version.
	// The caller should re-fetch the lead and retry.
	ErrConflict = errors.New("lead was modified by another request")

	// ErrEmptyNote is returned for a note append with no text.
	ErrEmptyNote = errors.New("note text must not be empty")

	// ErrNoFollowUpTime is returned for a follow-up without a scheduled time.
	ErrNoFollowUpTime = errors.New("follow-up time is required")
)
