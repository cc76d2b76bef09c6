package coverage

import "errors"

var (
	// ErrMalformedReport is returned when a report line cannot be parsed.
	ErrMalformedReport = errors.New("malformed coverage report")
	// ErrEmptyReport is returned when the input contains no coverage records.
	ErrEmptyReport = errors.New("coverage report is empty")
)
