package eventlog

import "errors"

// Sentinel kinds for event log read failures.
var (
	// ErrMalformedLog means the file is not a JSON object at all.
	ErrMalformedLog = errors.New("event log is not a JSON object")

	// ErrEventsNotList means the events field is missing, null or not a
	// list. A log without a usable events list is a broken input, not a
	// log with zero events.
	ErrEventsNotList = errors.New("event log events field is not a list")
)
