package scheduling

import "errors"

var (
	// ErrInvalidTimeRange rejects ranges whose end is not after their start.
	ErrInvalidTimeRange = errors.New("invalid time range: end must be after start")
	// ErrInvalidDuration rejects non-positive slot durations.
	ErrInvalidDuration = errors.New("invalid duration: must be a positive number of minutes")
)
