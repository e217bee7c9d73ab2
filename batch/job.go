package batch

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/poiesic/summarit/core"
	"github.com/tidwall/gjson"
)

const maxLineSize = 16 << 20

// Job is one input to summarize.
type Job struct {
	ID        string
	InputType core.InputType
	Content   string
}

// Result is the outcome of one job.
type Result struct {
	ID           string         `json:"id"`
	InputType    string         `json:"input_type"`
	FinalSummary string         `json:"final_summary,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	Error        string         `json:"error,omitempty"`
	Trace        []string       `json:"trace,omitempty"`
}

// Failed reports whether the job produced an error.
func (r Result) Failed() bool {
	return r.Error != ""
}

// ParseJob decodes one JSON Lines record. lineNo names jobs without an id.
// The type is not checked against the supported set; unsupported types fail
// in the pipeline router like any other input.
func ParseJob(line string, lineNo int) (Job, error) {
	if !gjson.Valid(line) {
		return Job{}, fmt.Errorf("%w: line %d: malformed JSON", ErrInvalidJob, lineNo)
	}
	record := gjson.Parse(line)
	if !record.IsObject() {
		return Job{}, fmt.Errorf("%w: line %d: expected an object", ErrInvalidJob, lineNo)
	}

	typ := strings.ToLower(strings.TrimSpace(record.Get("type").String()))
	if typ == "" {
		return Job{}, fmt.Errorf("%w: line %d: missing type", ErrInvalidJob, lineNo)
	}

	content := record.Get("content")
	if !content.Exists() {
		return Job{}, fmt.Errorf("%w: line %d: missing content", ErrInvalidJob, lineNo)
	}
	text := content.Raw
	if content.Type == gjson.String {
		text = content.Str
	}

	id := record.Get("id").String()
	if id == "" {
		id = fmt.Sprintf("line-%d", lineNo)
	}

	return Job{ID: id, InputType: core.InputType(typ), Content: text}, nil
}

// ReadJobs parses every job in r. Blank lines and lines starting with "#"
// are skipped.
func ReadJobs(r io.Reader) ([]Job, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var jobs []Job
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		job, err := ParseJob(line, lineNo)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read jobs: %w", err)
	}
	return jobs, nil
}

// WriteResults writes results as JSON Lines.
func WriteResults(w io.Writer, results []Result) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, res := range results {
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("write result %s: %w", res.ID, err)
		}
	}
	return nil
}

// resultFromState converts a terminal pipeline state.
func resultFromState(job Job, state *core.State) Result {
	res := Result{
		ID:        job.ID,
		InputType: string(job.InputType),
	}
	if state == nil {
		return res
	}
	res.FinalSummary = state.FinalSummary
	res.Error = state.ErrorMessage()
	res.Trace = state.Trace
	if state.Metadata != nil && state.Metadata.Len() > 0 {
		res.Metadata = state.Metadata.Map()
	}
	return res
}
