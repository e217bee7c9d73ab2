package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/poiesic/summarit"
	"github.com/poiesic/summarit/batch"
	"github.com/poiesic/summarit/chunk"
	"github.com/poiesic/summarit/config"
	"github.com/poiesic/summarit/core"
	"github.com/poiesic/summarit/pipeline"
	"github.com/urfave/cli/v2"
)

// errRunFailed is returned when the pipeline finished with a recorded failure.
var errRunFailed = errors.New("summarization failed")

func runCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	content, err := readContent(c.String("file"), c.Args().Slice(), c.App.Reader)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c.Bool("halt"))
	if err != nil {
		return err
	}

	svc, err := newService(cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	inputType := core.InputType(strings.ToLower(strings.TrimSpace(c.String("type"))))
	state, err := svc.Summarize(ctx, inputType, content)
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	out := c.App.Writer
	if c.Bool("json") {
		res := batch.Result{
			ID:           "run",
			InputType:    string(inputType),
			FinalSummary: state.FinalSummary,
			Error:        state.ErrorMessage(),
			Trace:        state.Trace,
			Metadata:     state.Metadata.Map(),
		}
		if err := batch.WriteResults(out, []batch.Result{res}); err != nil {
			return err
		}
	} else if !state.Failed() {
		printMetadata(c.App.ErrWriter, state.Metadata)
		fmt.Fprintln(out, state.FinalSummary)
	}

	if state.Failed() {
		return fmt.Errorf("%w: %s", errRunFailed, state.ErrorMessage())
	}
	return nil
}

func batchCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if c.Int("jobs") <= 0 {
		return fmt.Errorf("jobs must be greater than 0")
	}
	if c.Int("report-interval") <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}

	in, closeIn, err := openInput(c.String("input"), c.App.Reader)
	if err != nil {
		return err
	}
	jobs, err := batch.ReadJobs(in)
	closeIn()
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c.Bool("halt"))
	if err != nil {
		return err
	}

	svc, err := newService(cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	runner, err := svc.NewBatchRunner(
		batch.WithConcurrency(c.Int("jobs")),
		batch.WithProgress(c.App.ErrWriter, c.Int("report-interval")),
	)
	if err != nil {
		return fmt.Errorf("failed to create batch runner: %w", err)
	}
	defer runner.Release()

	fmt.Fprintf(c.App.ErrWriter, "Jobs: %d\n", len(jobs))
	fmt.Fprintf(c.App.ErrWriter, "Model: %s @ %s\n", cfg.LLMModel, cfg.LLMHost)
	fmt.Fprintln(c.App.ErrWriter)

	results, summary, runErr := runner.Run(ctx, jobs)

	out, closeOut, err := createOutput(c.String("output"), c.App.Writer)
	if err != nil {
		return err
	}
	defer closeOut()

	if err := batch.WriteResults(out, completed(results)); err != nil {
		return err
	}

	fmt.Fprintf(c.App.ErrWriter, "Succeeded: %d, failed: %d, elapsed: %s\n",
		summary.Succeeded, summary.Failed, summary.Elapsed.Round(time.Millisecond))

	if runErr != nil {
		return fmt.Errorf("batch interrupted: %w", runErr)
	}
	return nil
}

func loadConfig(halt bool) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if halt {
		cfg.HaltOnError = true
	}
	return cfg, nil
}

// newService wires the production capabilities into a summarization service.
func newService(cfg *config.Config) (*summarit.Service, error) {
	chunker, err := chunk.New(
		chunk.WithChunkSize(cfg.ChunkSize),
		chunk.WithChunkOverlap(cfg.ChunkOverlap),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chunker: %w", err)
	}

	svc, err := summarit.NewService(
		summarit.WithAIConfig(cfg.AIConfig()),
		summarit.WithPipelineOptions(
			pipeline.WithChunker(chunker),
			pipeline.WithPoolSize(cfg.MaxConcurrency),
			pipeline.WithCallTimeout(cfg.CallTimeout),
			pipeline.WithErrorPolicy(cfg.ErrorPolicy()),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create summarization service: %w", err)
	}
	return svc, nil
}

// readContent returns the file contents when path is set, otherwise the
// arguments joined by spaces.
func readContent(path string, args []string, stdin io.Reader) (string, error) {
	if path == "" {
		if len(args) == 0 {
			return "", fmt.Errorf("content argument or --file is required")
		}
		return strings.Join(args, " "), nil
	}
	if len(args) > 0 {
		return "", fmt.Errorf("use either a content argument or --file, not both")
	}

	in, closeIn, err := openInput(path, stdin)
	if err != nil {
		return "", err
	}
	defer closeIn()

	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func openInput(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == "-" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func createOutput(path string, stdout io.Writer) (io.Writer, func(), error) {
	if path == "-" {
		return stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// completed drops the slots of jobs that never ran.
func completed(results []batch.Result) []batch.Result {
	out := make([]batch.Result, 0, len(results))
	for _, res := range results {
		if res.ID != "" {
			out = append(out, res)
		}
	}
	return out
}

func printMetadata(w io.Writer, md *core.Metadata) {
	if md == nil || md.Len() == 0 {
		return
	}
	m := md.Map()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s: %v\n", k, m[k])
	}
	fmt.Fprintln(w)
}
