package extract

import (
	"context"
	"regexp"
	"strings"

	"github.com/poiesic/summarit/core"
	"mvdan.cc/xurls/v2"
)

// fragmentSeparator joins the pages or documents a fetcher returns.
const fragmentSeparator = "\n\n"

// webURL matches absolute http and https addresses.
var webURL = func() *regexp.Regexp {
	re, err := xurls.StrictMatchingScheme(`https?://`)
	if err != nil {
		panic(err)
	}
	return re
}()

type pdfExtractor struct {
	fetcher DocumentFetcher
}

func (e pdfExtractor) Extract(ctx context.Context, content string) (*Result, error) {
	if e.fetcher == nil {
		return nil, ErrCapabilityMissing
	}
	path := strings.TrimSpace(content)
	if path == "" {
		return nil, ErrEmptyPath
	}

	pages, err := e.fetcher.FetchDocument(ctx, path)
	if err != nil {
		return nil, err
	}

	return &Result{
		Text: strings.Join(pages, fragmentSeparator),
		Metadata: core.NewMetadata().
			Set(core.MetaSource, "pdf").
			Set(core.MetaPages, len(pages)).
			Set(core.MetaFilePath, content),
	}, nil
}

type urlExtractor struct {
	fetcher DocumentFetcher
}

func (e urlExtractor) Extract(ctx context.Context, content string) (*Result, error) {
	if e.fetcher == nil {
		return nil, ErrCapabilityMissing
	}
	location := strings.TrimSpace(content)
	if location == "" || webURL.FindString(location) != location {
		return nil, ErrInvalidURL
	}

	docs, err := e.fetcher.FetchDocument(ctx, location)
	if err != nil {
		return nil, err
	}

	return &Result{
		Text: strings.Join(docs, fragmentSeparator),
		Metadata: core.NewMetadata().
			Set(core.MetaSource, "url").
			Set(core.MetaURL, content),
	}, nil
}
