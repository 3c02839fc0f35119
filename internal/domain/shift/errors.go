package shift

import "errors"

// Shift domain errors
var (
	ErrUnknownEventType = errors.New("unknown event type")
	ErrRecordNotFound   = errors.New("shift record not found")
	ErrMalformedRow     = errors.New("malformed shift row")
)
