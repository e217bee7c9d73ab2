package mock

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/poiesic/summarit/ai"
)

// MockTranscriber is a test double for ai.Transcriber.
type MockTranscriber struct {
	// TranscribeFunc is called by Transcribe if set.
	// If nil, returns a transcript naming the file.
	TranscribeFunc func(ctx context.Context, path string) (*ai.Transcript, error)

	mu    sync.Mutex
	paths []string
}

// NewMockTranscriber creates a mock transcriber with default behavior.
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{}
}

// WithTranscribeFunc sets the behavior of Transcribe and returns the mock.
func (m *MockTranscriber) WithTranscribeFunc(fn func(ctx context.Context, path string) (*ai.Transcript, error)) *MockTranscriber {
	m.TranscribeFunc = fn
	return m
}

// Transcribe records the path and returns the configured transcript.
func (m *MockTranscriber) Transcribe(ctx context.Context, path string) (*ai.Transcript, error) {
	m.mu.Lock()
	m.paths = append(m.paths, path)
	fn := m.TranscribeFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, path)
	}

	return &ai.Transcript{
		Text:     "transcript of " + filepath.Base(path),
		Language: "en",
	}, nil
}

// CallCount returns the number of times Transcribe was called.
func (m *MockTranscriber) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.paths)
}

// Paths returns the files passed to Transcribe in arrival order.
func (m *MockTranscriber) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.paths))
	copy(out, m.paths)
	return out
}

// Reset clears recorded calls and custom behavior.
func (m *MockTranscriber) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paths = nil
	m.TranscribeFunc = nil
}
