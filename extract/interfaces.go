package extract

import (
	"context"

	"github.com/poiesic/summarit/core"
)

// Result is the outcome of one extraction.
type Result struct {
	Text     string
	Metadata *core.Metadata
}

// Extractor converts the content of one input type into text.
// Implementations must be safe for concurrent use.
type Extractor interface {
	Extract(ctx context.Context, content string) (*Result, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(ctx context.Context, content string) (*Result, error)

// Extract calls f.
func (f ExtractorFunc) Extract(ctx context.Context, content string) (*Result, error) {
	return f(ctx, content)
}

// DocumentFetcher loads a document and returns its text fragments in order,
// one per page for paged formats.
type DocumentFetcher interface {
	FetchDocument(ctx context.Context, location string) ([]string, error)
}

// VideoContent holds the raw text sources available for a video.
// Subtitle payloads are unprocessed WebVTT or SRT documents.
type VideoContent struct {
	Title           string
	Description     string
	ManualSubtitles string
	AutoCaptions    string
}

// VideoSource looks up the text sources of a video.
type VideoSource interface {
	FetchVideo(ctx context.Context, url string) (*VideoContent, error)
}

// ItemDecoder parses a serialized digest payload into its items.
type ItemDecoder interface {
	DecodeItemList(payload string) ([]string, error)
}
