package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	oai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/poiesic/summarit/ai"
	"github.com/tidwall/gjson"
)

// ErrEmptyTranscript is returned when the service produced no text.
var ErrEmptyTranscript = errors.New("transcription is empty")

// Transcriber implements ai.Transcriber using the OpenAI audio transcription API.
// Responses are requested in verbose JSON so the detected language is available.
type Transcriber struct {
	client oai.Client
	model  string
	logger *slog.Logger
}

// newTranscriber is an internal constructor that returns the concrete type.
func newTranscriber(config *ai.Config, opts ...option.RequestOption) (*Transcriber, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	opts = append([]option.RequestOption{
		option.WithAPIKey(config.Token()),
		option.WithBaseURL(config.TranscriptionHost),
	}, opts...)

	return &Transcriber{
		client: oai.NewClient(opts...),
		model:  config.TranscriptionModel,
		logger: slog.Default().With("component", "openai-transcriber"),
	}, nil
}

// NewTranscriber creates a new transcriber using the provided configuration.
//
// Returns ai.Transcriber interface to enforce abstraction.
func NewTranscriber(config *ai.Config) (ai.Transcriber, error) {
	return newTranscriber(config)
}

// Transcribe uploads the audio file at path and returns the transcript.
func (t *Transcriber) Transcribe(ctx context.Context, path string) (*ai.Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			t.logger.Warn("failed to close audio file", "path", path, "err", err)
		}
	}()

	resp, err := t.client.Audio.Transcriptions.New(ctx, oai.AudioTranscriptionNewParams{
		File:           f,
		Model:          oai.AudioModel(t.model),
		ResponseFormat: oai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}

	raw := resp.RawJSON()
	text := strings.TrimSpace(gjson.Get(raw, "text").String())
	if text == "" {
		return nil, ErrEmptyTranscript
	}

	transcript := &ai.Transcript{
		Text:     text,
		Language: strings.TrimSpace(gjson.Get(raw, "language").String()),
	}

	t.logger.Debug("transcribed audio",
		"path", path,
		"language", transcript.Language,
		"length", len(transcript.Text))

	return transcript, nil
}
