package config

import "errors"

var (
	// ErrUnknownProvider is returned when a provider name or value is not one of the supported CI providers.
	ErrUnknownProvider = errors.New("unknown CI provider")
	// ErrInvalidSettings is returned when uploader settings fail validation.
	ErrInvalidSettings = errors.New("invalid settings")
)
