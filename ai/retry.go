// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
var ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

// RetryWithBackoff retries an operation with exponential backoff.
// maxAttempts: maximum number of attempts (must be > 0)
// baseDelay: base delay between retries (doubles on each retry)
// Returns the error from the last attempt if all attempts fail.
func RetryWithBackoff(ctx context.Context, operation func() error, maxAttempts int, baseDelay time.Duration) error {
	if maxAttempts <= 0 {
		return ErrInvalidMaxAttempts
	}

	var lastErr error
	delay := baseDelay
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = operation()
		if lastErr == nil {
			if attempt > 1 {
				slog.Debug("operation succeeded after retry", "attempt", attempt)
			}
			return nil
		}

		if attempt == maxAttempts {
			break
		}
		slog.Debug("operation failed, will retry", "attempt", attempt, "maxAttempts", maxAttempts, "err", lastErr)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}

	return lastErr
}

// RetryGenerator decorates a Generator so that failed requests are retried
// with exponential backoff. Context cancellation is never retried.
type RetryGenerator struct {
	next        Generator
	maxAttempts int
	baseDelay   time.Duration
}

var _ Generator = (*RetryGenerator)(nil)

// NewRetryGenerator wraps next. With maxAttempts <= 1 next is returned unchanged.
func NewRetryGenerator(next Generator, maxAttempts int, baseDelay time.Duration) Generator {
	if maxAttempts <= 1 {
		return next
	}
	return &RetryGenerator{next: next, maxAttempts: maxAttempts, baseDelay: baseDelay}
}

// GenerateText implements Generator.
func (g *RetryGenerator) GenerateText(ctx context.Context, system, user string) (string, error) {
	var out string
	err := RetryWithBackoff(ctx, func() error {
		text, err := g.next.GenerateText(ctx, system, user)
		if err != nil {
			return err
		}
		out = text
		return nil
	}, g.maxAttempts, g.baseDelay)
	return out, err
}
