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


package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/summarit/ai"
)

// DefaultPoolSize is the default number of concurrent chunk requests.
const DefaultPoolSize = 4

// Summarizer runs chunk and reduce requests against a Generator.
// The worker pool is shared by every call, so concurrent pipeline runs
// together never exceed the pool size in flight.
type Summarizer struct {
	generator   ai.Generator
	pool        *ants.Pool
	callTimeout time.Duration
	logger      *slog.Logger
}

// Option configures a Summarizer.
type Option func(*Summarizer) error

// WithPoolSize sets the maximum number of concurrent chunk requests.
// Default is 4, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Summarizer) error {
		if size < 1 {
			size = 1
		}

		if s.pool != nil {
			s.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		s.pool = pool
		return nil
	}
}

// WithCallTimeout bounds each model request. Zero means no bound beyond the
// caller's context.
func WithCallTimeout(timeout time.Duration) Option {
	return func(s *Summarizer) error {
		if timeout < 0 {
			timeout = 0
		}
		s.callTimeout = timeout
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Summarizer) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// New creates a Summarizer. Call Release when done to stop the worker pool.
func New(generator ai.Generator, opts ...Option) (*Summarizer, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	s := &Summarizer{
		generator: generator,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			s.Release()
			return nil, err
		}
	}

	if s.pool == nil {
		pool, err := ants.NewPool(DefaultPoolSize)
		if err != nil {
			return nil, err
		}
		s.pool = pool
	}

	s.logger = s.logger.With("component", "summarizer")
	return s, nil
}

// PoolSize returns the worker pool capacity.
func (s *Summarizer) PoolSize() int {
	return s.pool.Cap()
}

// Release stops the worker pool.
func (s *Summarizer) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}

// SummarizeChunks returns one summary per chunk, in chunk order. On the first
// failure no further requests are started and the error is returned with the
// 1-based chunk number; summaries already produced are discarded.
func (s *Summarizer) SummarizeChunks(ctx context.Context, chunks []string) ([]string, error) {
	if len(chunks) == 0 {
		return []string{}, nil
	}

	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg        sync.WaitGroup
		once      sync.Once
		firstErr  error
		summaries = make([]string, len(chunks))
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	start := time.Now()
	for i, chunk := range chunks {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		err := s.pool.Submit(func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					fail(fmt.Errorf("chunk %d: %w: %v", i+1, ErrWorkerPanic, r))
				}
			}()

			if ctx.Err() != nil {
				return
			}

			summary, err := s.generate(ctx, ChunkSystemPrompt, ChunkPrompt(chunk))
			if err != nil {
				fail(fmt.Errorf("chunk %d: %w", i+1, err))
				return
			}
			summaries[i] = summary
		})
		if err != nil {
			wg.Done()
			fail(fmt.Errorf("chunk %d: submit: %w", i+1, err))
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		s.logger.Warn("chunk summarization failed", "chunks", len(chunks), "err", firstErr)
		return nil, firstErr
	}
	if err := parent.Err(); err != nil {
		return nil, err
	}

	s.logger.Debug("summarized chunks", "chunks", len(chunks), "duration", time.Since(start))
	return summaries, nil
}

// Reduce merges summaries into the final summary. No request is made for
// zero or one summaries.
func (s *Summarizer) Reduce(ctx context.Context, summaries []string) (string, error) {
	switch len(summaries) {
	case 0:
		return "", nil
	case 1:
		return summaries[0], nil
	}

	final, err := s.generate(ctx, ReduceSystemPrompt, ReducePrompt(summaries))
	if err != nil {
		return "", err
	}

	s.logger.Debug("reduced summaries", "summaries", len(summaries), "length", len(final))
	return final, nil
}

func (s *Summarizer) generate(ctx context.Context, system, user string) (string, error) {
	if s.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.callTimeout)
		defer cancel()
	}
	return s.generator.GenerateText(ctx, system, user)
}
