package mock

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
)

// GenerateCall records the arguments of one GenerateText invocation.
type GenerateCall struct {
	System string
	User   string
}

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields and is safe for
// concurrent use.
type MockGenerator struct {
	// GenerateTextFunc is called by GenerateText if set.
	// If nil, uses default deterministic behavior.
	GenerateTextFunc func(ctx context.Context, system, user string) (string, error)

	mu    sync.Mutex
	calls []GenerateCall
}

// NewMockGenerator creates a mock generator with default deterministic behavior.
// Note: Returns concrete type to allow test assertions via GetMockGenerator().
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// WithGenerateTextFunc sets the behavior of GenerateText and returns the mock.
func (m *MockGenerator) WithGenerateTextFunc(fn func(ctx context.Context, system, user string) (string, error)) *MockGenerator {
	m.GenerateTextFunc = fn
	return m
}

// GenerateText records the call and returns a deterministic reply derived from
// the user instruction.
func (m *MockGenerator) GenerateText(ctx context.Context, system, user string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, GenerateCall{System: system, User: user})
	fn := m.GenerateTextFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, system, user)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	// Default: stable digest of the instruction
	h := fnv.New32a()
	h.Write([]byte(user))
	return fmt.Sprintf("summary-%08x", h.Sum32()), nil
}

// CallCount returns the number of times GenerateText was called.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Calls returns a copy of the recorded invocations in arrival order.
func (m *MockGenerator) Calls() []GenerateCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]GenerateCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// Reset clears recorded calls and custom behavior.
func (m *MockGenerator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.GenerateTextFunc = nil
}
