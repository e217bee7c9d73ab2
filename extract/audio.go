package extract

import (
	"context"
	"strings"

	"github.com/poiesic/summarit/ai"
	"github.com/poiesic/summarit/core"
)

const unknownLanguage = "unknown"

type audioExtractor struct {
	transcriber ai.Transcriber
}

func (e audioExtractor) Extract(ctx context.Context, content string) (*Result, error) {
	if e.transcriber == nil {
		return nil, ErrCapabilityMissing
	}
	path := strings.TrimSpace(content)
	if path == "" {
		return nil, ErrEmptyPath
	}

	transcript, err := e.transcriber.Transcribe(ctx, path)
	if err != nil {
		return nil, err
	}

	language := transcript.Language
	if language == "" {
		language = unknownLanguage
	}

	return &Result{
		Text: transcript.Text,
		Metadata: core.NewMetadata().
			Set(core.MetaSource, "audio").
			Set(core.MetaFilePath, content).
			Set(core.MetaLanguage, language),
	}, nil
}
