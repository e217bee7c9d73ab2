package extract

import (
	"context"
	"unicode/utf8"

	"github.com/poiesic/summarit/core"
)

// literalExtractor passes the content through verbatim.
type literalExtractor struct {
	source string
}

func (e literalExtractor) Extract(_ context.Context, content string) (*Result, error) {
	return &Result{
		Text: content,
		Metadata: core.NewMetadata().
			Set(core.MetaSource, e.source).
			Set(core.MetaLength, utf8.RuneCountInString(content)),
	}, nil
}
