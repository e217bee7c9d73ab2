package batch

import "errors"

var (
	// ErrEngineRequired is returned when a Runner is created without an engine.
	ErrEngineRequired = errors.New("pipeline engine required")

	// ErrInvalidJob is returned when a job line cannot be parsed.
	ErrInvalidJob = errors.New("invalid job")
)
