package pipeline

import "errors"

var (
	// ErrNilState is returned when Run is called without a state.
	ErrNilState = errors.New("state required")

	// ErrStageDefect is returned when a stage panicked.
	ErrStageDefect = errors.New("stage defect")

	// ErrRegistryRequired is returned when an Engine is created without an extractor registry.
	ErrRegistryRequired = errors.New("extractor registry required")

	// ErrGeneratorRequired is returned when an Engine is created without a generator.
	ErrGeneratorRequired = errors.New("generator required")
)
