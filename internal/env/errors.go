package env

import "errors"

var (
	// ErrMalformedValue is returned when a variable is defined but its value is not valid UTF-8 text.
	ErrMalformedValue = errors.New("environment value is not valid text")
)
