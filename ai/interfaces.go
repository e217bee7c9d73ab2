package ai

import "context"

// Generator produces text from a language model.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// GenerateText sends a system instruction and a user instruction to the model
	// and returns the model's reply.
	// Returns an error if the request fails or the model returns no content.
	GenerateText(ctx context.Context, system, user string) (string, error)
}

// Transcriber converts recorded speech into text.
// Implementations must be thread-safe for concurrent use.
type Transcriber interface {
	// Transcribe reads the audio file at path and returns its transcript.
	// Returns an error if the file cannot be read or transcription fails.
	Transcribe(ctx context.Context, path string) (*Transcript, error)
}

// Transcript is the result of a speech-to-text request.
type Transcript struct {
	// Text is the full transcription.
	Text string

	// Language is the detected spoken language, empty if the service did not report one.
	Language string
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
type AIProvider interface {
	// Generator returns the language model service.
	// The returned Generator is safe for concurrent use.
	Generator() Generator

	// Transcriber returns the speech-to-text service.
	// The returned Transcriber is safe for concurrent use.
	Transcriber() Transcriber

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
