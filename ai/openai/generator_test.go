package openai

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/summarit/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// fakeModel implements llms.Model for testing
type fakeModel struct {
	reply    string
	noChoice bool
	err      error

	messages []llms.MessageContent
	options  llms.CallOptions
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.messages = messages
	for _, opt := range options {
		opt(&f.options)
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.noChoice {
		return &llms.ContentResponse{}, nil
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.reply}},
	}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func textOf(t *testing.T, msg llms.MessageContent) string {
	t.Helper()
	require.Len(t, msg.Parts, 1)
	part, ok := msg.Parts[0].(llms.TextContent)
	require.True(t, ok, "expected text part, got %T", msg.Parts[0])
	return part.Text
}

func TestGenerator_GenerateText(t *testing.T) {
	model := &fakeModel{reply: "  a short summary \n"}
	g := newGeneratorWithModel(model, 0.3)

	got, err := g.GenerateText(context.Background(), "be brief", "Summarize this text:\n\nhello")
	require.NoError(t, err)
	assert.Equal(t, "a short summary", got)

	require.Len(t, model.messages, 2)
	assert.Equal(t, llms.ChatMessageTypeSystem, model.messages[0].Role)
	assert.Equal(t, "be brief", textOf(t, model.messages[0]))
	assert.Equal(t, llms.ChatMessageTypeHuman, model.messages[1].Role)
	assert.Equal(t, "Summarize this text:\n\nhello", textOf(t, model.messages[1]))
	assert.InDelta(t, 0.3, model.options.Temperature, 1e-9)
}

func TestGenerator_GenerateText_Errors(t *testing.T) {
	boom := errors.New("connection refused")

	tests := []struct {
		name    string
		model   *fakeModel
		wantErr error
	}{
		{name: "client error", model: &fakeModel{err: boom}, wantErr: boom},
		{name: "no choices", model: &fakeModel{noChoice: true}, wantErr: ErrEmptyResponse},
		{name: "blank reply", model: &fakeModel{reply: "   "}, wantErr: ErrEmptyResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGeneratorWithModel(tt.model, 0.3)
			got, err := g.GenerateText(context.Background(), "s", "u")
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, got)
		})
	}
}

func TestNewGenerator_InvalidConfig(t *testing.T) {
	cfg := ai.NewConfig(ai.WithGenerationModel(""))
	_, err := NewGenerator(cfg)
	assert.Error(t, err)
}

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider(ai.NewConfig(ai.WithAPIKey("test-key")))
	require.NoError(t, err)
	defer provider.Close()

	assert.NotNil(t, provider.Generator())
	assert.NotNil(t, provider.Transcriber())
}
