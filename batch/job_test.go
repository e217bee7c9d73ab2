package batch

import (
	"bytes"
	"strings"
	"testing"

	"github.com/poiesic/summarit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJob(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Job
		wantErr bool
	}{
		{
			name: "string content",
			line: `{"id":"a","type":"text","content":"hello"}`,
			want: Job{ID: "a", InputType: core.InputText, Content: "hello"},
		},
		{
			name: "digest with inline items",
			line: `{"type":"digest","content":["one", "two"]}`,
			want: Job{ID: "line-7", InputType: core.InputDigest, Content: `["one", "two"]`},
		},
		{
			name: "type is normalized",
			line: `{"id":"b","type":" PDF ","content":"/tmp/x.pdf"}`,
			want: Job{ID: "b", InputType: core.InputPDF, Content: "/tmp/x.pdf"},
		},
		{
			name: "unknown type passes through",
			line: `{"id":"c","type":"spreadsheet","content":"x"}`,
			want: Job{ID: "c", InputType: core.InputType("spreadsheet"), Content: "x"},
		},
		{name: "malformed", line: `{"type":`, wantErr: true},
		{name: "not an object", line: `["text"]`, wantErr: true},
		{name: "missing type", line: `{"content":"x"}`, wantErr: true},
		{name: "missing content", line: `{"type":"text"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job, err := ParseJob(tt.line, 7)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidJob)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, job)
		})
	}
}

func TestReadJobs(t *testing.T) {
	input := strings.Join([]string{
		`# weekly batch`,
		`{"id":"first","type":"text","content":"alpha"}`,
		``,
		`{"type":"url","content":"https://example.com"}`,
	}, "\n")

	jobs, err := ReadJobs(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "first", jobs[0].ID)
	assert.Equal(t, "line-4", jobs[1].ID)
	assert.Equal(t, core.InputURL, jobs[1].InputType)
}

func TestReadJobs_ReportsLine(t *testing.T) {
	input := "{\"type\":\"text\",\"content\":\"ok\"}\n{oops}\n"

	_, err := ReadJobs(strings.NewReader(input))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidJob)
	assert.Contains(t, err.Error(), "line 2")
}

func TestWriteResults(t *testing.T) {
	var buf bytes.Buffer
	err := WriteResults(&buf, []Result{
		{ID: "a", InputType: "text", FinalSummary: "<short>", Trace: []string{"extract_text"}},
		{ID: "b", InputType: "pdf", Error: "PDF extraction error: boom"},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"final_summary":"<short>"`)
	assert.NotContains(t, lines[0], `"error"`)
	assert.Contains(t, lines[1], `"error":"PDF extraction error: boom"`)
	assert.NotContains(t, lines[1], `"final_summary"`)
}
