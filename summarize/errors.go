package summarize

import "errors"

var (
	// ErrGeneratorRequired is returned when a Summarizer is created without a generator.
	ErrGeneratorRequired = errors.New("generator required")

	// ErrWorkerPanic is returned when a summarization request panicked.
	ErrWorkerPanic = errors.New("summarization worker panicked")
)
