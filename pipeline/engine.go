package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/summarit/ai"
	"github.com/poiesic/summarit/chunk"
	"github.com/poiesic/summarit/core"
	"github.com/poiesic/summarit/extract"
	"github.com/poiesic/summarit/summarize"
)

// Stage names recorded on core.State.Trace.
const (
	StageChunk     = "chunk"
	StageSummarize = "summarize"
	StageReduce    = "reduce"
)

// ExtractStage returns the trace name of the extraction stage for t.
func ExtractStage(t core.InputType) string {
	return "extract_" + string(t)
}

// Engine runs states through the summarization workflow.
// An Engine is safe for concurrent use; each Run owns its state.
type Engine struct {
	registry    *extract.Registry
	chunker     *chunk.Chunker
	summarizer  *summarize.Summarizer
	policy      ErrorPolicy
	poolSize    int
	callTimeout time.Duration
	logger      *slog.Logger
}

type stage struct {
	name string
	run  func(ctx context.Context, state *core.State) error
}

// New creates an Engine that extracts through registry and summarizes with
// generator. Call Close when done.
func New(registry *extract.Registry, generator ai.Generator, opts ...Option) (*Engine, error) {
	if registry == nil {
		return nil, ErrRegistryRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	e := &Engine{
		registry: registry,
		poolSize: summarize.DefaultPoolSize,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	e.logger = e.logger.With("component", "pipeline")

	if e.chunker == nil {
		c, err := chunk.New(chunk.WithLogger(e.logger))
		if err != nil {
			return nil, err
		}
		e.chunker = c
	}

	s, err := summarize.New(generator,
		summarize.WithPoolSize(e.poolSize),
		summarize.WithCallTimeout(e.callTimeout),
		summarize.WithLogger(e.logger),
	)
	if err != nil {
		return nil, err
	}
	e.summarizer = s

	return e, nil
}

// Close releases the summarization worker pool.
func (e *Engine) Close() error {
	e.summarizer.Release()
	return nil
}

// Policy returns the configured error policy.
func (e *Engine) Policy() ErrorPolicy {
	return e.policy
}

// Run drives state from routing to the terminal step and returns it.
// Stage failures are recorded on state.Err; the returned error is non-nil only
// for a nil state, a state with derived fields already populated, or a stage
// that panicked.
func (e *Engine) Run(ctx context.Context, state *core.State) (*core.State, error) {
	if state == nil {
		return nil, ErrNilState
	}
	if err := core.ValidateInitialState(state); err != nil {
		return state, err
	}
	if state.Metadata == nil {
		state.Metadata = core.NewMetadata()
	}

	start := time.Now()
	defer e.terminate(state, start)

	if state.Failed() {
		e.logger.Debug("state already failed, skipping", "inputType", state.InputType, "err", state.Err)
		return state, nil
	}

	if _, ok := e.registry.Lookup(state.InputType); !ok {
		state.Fail(extract.RoutingError(state.InputType))
		return state, nil
	}

	for _, st := range e.stages(state.InputType) {
		if err := e.runStage(ctx, state, st); err != nil {
			return state, err
		}
		if state.Failed() && e.policy == ErrorPolicyHalt {
			break
		}
	}
	return state, nil
}

func (e *Engine) stages(t core.InputType) []stage {
	return []stage{
		{name: ExtractStage(t), run: e.extract},
		{name: StageChunk, run: e.chunk},
		{name: StageSummarize, run: e.summarize},
		{name: StageReduce, run: e.reduce},
	}
}

// runStage records the visit, runs the stage and files its failure. A panic
// is recovered and returned as ErrStageDefect.
func (e *Engine) runStage(ctx context.Context, state *core.State, st stage) (err error) {
	state.Visit(st.name)

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("stage panicked", "stage", st.name, "panic", r)
			err = fmt.Errorf("%w: %s: %v", ErrStageDefect, st.name, r)
		}
	}()

	stageErr := st.run(ctx, state)
	if stageErr == nil {
		return nil
	}

	var serr *core.StageError
	if !errors.As(stageErr, &serr) {
		e.logger.Error("stage defect", "stage", st.name, "err", stageErr)
		return fmt.Errorf("%w: %s: %w", ErrStageDefect, st.name, stageErr)
	}

	if state.Fail(serr) {
		e.logger.Warn("stage failed", "stage", st.name, "inputType", state.InputType, "err", serr)
	} else {
		e.logger.Warn("stage failed after earlier failure", "stage", st.name, "err", serr, "first", state.Err)
	}
	return nil
}

func (e *Engine) extract(ctx context.Context, state *core.State) error {
	result, serr := e.registry.Extract(ctx, state.InputType, state.Content)
	if serr != nil {
		return serr
	}
	state.ExtractedText = result.Text
	state.Metadata.Merge(result.Metadata)
	return nil
}

func (e *Engine) chunk(_ context.Context, state *core.State) error {
	chunks, err := e.chunker.Split(state.ExtractedText)
	if err != nil {
		return core.NewStageError(core.ErrChunking, "Chunking", err)
	}
	state.Chunks = chunks
	state.Metadata.Set(core.MetaNumChunks, len(chunks))
	return nil
}

func (e *Engine) summarize(ctx context.Context, state *core.State) error {
	summaries, err := e.summarizer.SummarizeChunks(ctx, state.Chunks)
	if err != nil {
		if errors.Is(err, summarize.ErrWorkerPanic) {
			return err
		}
		return core.NewStageError(core.ErrSummarization, "Chunk summarization", err)
	}
	state.Summaries = summaries
	return nil
}

func (e *Engine) reduce(ctx context.Context, state *core.State) error {
	final, err := e.summarizer.Reduce(ctx, state.Summaries)
	if err != nil {
		return core.NewStageError(core.ErrReduction, "Final summarization", err)
	}
	state.FinalSummary = final
	return nil
}

// terminate enforces that a failed state carries no final summary.
func (e *Engine) terminate(state *core.State, start time.Time) {
	if state.Failed() && state.FinalSummary != "" {
		state.FinalSummary = ""
	}
	if !state.Failed() && len(state.Chunks) == 0 {
		e.logger.Warn("pipeline finished without text to summarize",
			"inputType", state.InputType,
			"contentLength", len(state.Content))
	}
	e.logger.Info("pipeline finished",
		"inputType", state.InputType,
		"stages", len(state.Trace),
		"chunks", len(state.Chunks),
		"failed", state.Failed(),
		"duration", time.Since(start))
}
