package reminder

import "errors"

var (
	// ErrEventNotFound is returned when the referenced event does not exist
	ErrEventNotFound = errors.New("event not found")
	// ErrLogNotFound is returned when the referenced reminder log does not exist
	ErrLogNotFound = errors.New("reminder log not found")
	// ErrNotRecurring is returned when rollover is requested for a one-off event
	ErrNotRecurring = errors.New("event is not recurring")
	// ErrAlreadySent is returned when retry is requested for a log whose
	// attempt already succeeded
	ErrAlreadySent = errors.New("reminder already sent")
)
