package upload

import "errors"

var (
	// ErrMissingRepoToken is returned when a job has no repo token to authenticate with.
	ErrMissingRepoToken = errors.New("repo token is required to upload coverage")
	// ErrRejected is returned when the service answers with an error.
	ErrRejected = errors.New("coverage upload rejected")
)
