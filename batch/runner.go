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


package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/summarit/core"
)

// Engine runs one pipeline state to completion.
type Engine interface {
	Run(ctx context.Context, state *core.State) (*core.State, error)
}

// Summary describes a finished batch.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Elapsed   time.Duration
}

// Runner executes jobs concurrently through an Engine.
type Runner struct {
	engine         Engine
	pool           *ants.Pool
	progress       io.Writer
	reportInterval int
	logger         *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner) error

// WithConcurrency sets how many jobs run at the same time.
// Default is 1, with a minimum of 1.
func WithConcurrency(size int) Option {
	return func(r *Runner) error {
		if size < 1 {
			size = 1
		}
		if r.pool != nil {
			r.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		r.pool = pool
		return nil
	}
}

// WithProgress reports progress to w every interval jobs.
// Default is no progress output.
func WithProgress(w io.Writer, interval int) Option {
	return func(r *Runner) error {
		r.progress = w
		r.reportInterval = interval
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRunner creates a Runner. Call Release when done.
func NewRunner(engine Engine, opts ...Option) (*Runner, error) {
	if engine == nil {
		return nil, ErrEngineRequired
	}

	r := &Runner{
		engine:   engine,
		progress: io.Discard,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			r.Release()
			return nil, err
		}
	}
	if r.pool == nil {
		pool, err := ants.NewPool(1)
		if err != nil {
			return nil, err
		}
		r.pool = pool
	}
	r.logger = r.logger.With("component", "batch-runner")
	return r, nil
}

// Release stops the worker pool.
func (r *Runner) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
}

// Run executes jobs and returns their results in input order. A job whose
// engine run fails outright is reported as a failed result; the batch goes
// on. Cancelling ctx stops submitting new jobs and returns ctx's error along
// with the results gathered so far.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Result, Summary, error) {
	results := make([]Result, len(jobs))
	tracker := NewProgressTracker(r.progress, len(jobs), r.reportInterval)
	tracker.Start()

	var wg sync.WaitGroup
	var submitErr error
	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			submitErr = err
			break
		}

		wg.Add(1)
		err := r.pool.Submit(func() {
			defer wg.Done()
			results[i] = r.runJob(ctx, job)
			tracker.Done(results[i].Failed())
		})
		if err != nil {
			wg.Done()
			submitErr = fmt.Errorf("submit job %s: %w", job.ID, err)
			break
		}
	}
	wg.Wait()
	tracker.Finish()

	summary := Summary{Total: len(jobs), Elapsed: tracker.Elapsed()}
	for _, res := range results {
		switch {
		case res.ID == "":
		case res.Failed():
			summary.Failed++
		default:
			summary.Succeeded++
		}
	}

	r.logger.Info("batch finished",
		"total", summary.Total,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"elapsed", summary.Elapsed)

	return results, summary, submitErr
}

func (r *Runner) runJob(ctx context.Context, job Job) Result {
	state, err := r.engine.Run(ctx, core.NewState(job.InputType, job.Content))
	res := resultFromState(job, state)
	if err != nil {
		r.logger.Error("job failed", "id", job.ID, "err", err)
		res.Error = err.Error()
		res.FinalSummary = ""
	}
	return res
}
