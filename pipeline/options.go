package pipeline

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/summarit/chunk"
)

// ErrorPolicy decides whether the engine keeps visiting stages after a failure.
type ErrorPolicy int

const (
	// ErrorPolicyContinue visits every stage regardless of earlier failures.
	// Later stages see empty inputs, so no model request is made after an
	// extraction failure.
	ErrorPolicyContinue ErrorPolicy = iota

	// ErrorPolicyHalt stops at the first recorded failure.
	ErrorPolicyHalt
)

func (p ErrorPolicy) String() string {
	switch p {
	case ErrorPolicyContinue:
		return "continue"
	case ErrorPolicyHalt:
		return "halt"
	default:
		return fmt.Sprintf("ErrorPolicy(%d)", int(p))
	}
}

// Option configures an Engine.
type Option func(*Engine) error

// WithErrorPolicy sets the failure policy.
// Default is ErrorPolicyContinue.
func WithErrorPolicy(policy ErrorPolicy) Option {
	return func(e *Engine) error {
		if policy != ErrorPolicyContinue && policy != ErrorPolicyHalt {
			return fmt.Errorf("unknown error policy %d", int(policy))
		}
		e.policy = policy
		return nil
	}
}

// WithChunker replaces the default chunker.
func WithChunker(c *chunk.Chunker) Option {
	return func(e *Engine) error {
		if c == nil {
			return fmt.Errorf("chunker is nil")
		}
		e.chunker = c
		return nil
	}
}

// WithPoolSize sets the number of chunks summarized concurrently.
// Default is 4.
func WithPoolSize(size int) Option {
	return func(e *Engine) error {
		e.poolSize = size
		return nil
	}
}

// WithCallTimeout bounds every model request made by the engine.
// Default is no bound beyond the caller's context.
func WithCallTimeout(timeout time.Duration) Option {
	return func(e *Engine) error {
		e.callTimeout = timeout
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}
