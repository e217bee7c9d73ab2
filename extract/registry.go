package extract

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/summarit/ai"
	"github.com/poiesic/summarit/core"
)

// Registry maps input types to extractors and holds the capabilities they use.
// A Registry is immutable after construction and safe for concurrent use.
type Registry struct {
	pdf         DocumentFetcher
	web         DocumentFetcher
	video       VideoSource
	transcriber ai.Transcriber
	decoder     ItemDecoder
	logger      *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry) error

// WithPDFFetcher sets the capability used for PDF inputs.
func WithPDFFetcher(f DocumentFetcher) Option {
	return func(r *Registry) error {
		r.pdf = f
		return nil
	}
}

// WithWebFetcher sets the capability used for URL inputs.
func WithWebFetcher(f DocumentFetcher) Option {
	return func(r *Registry) error {
		r.web = f
		return nil
	}
}

// WithVideoSource sets the capability used for video inputs.
func WithVideoSource(s VideoSource) Option {
	return func(r *Registry) error {
		r.video = s
		return nil
	}
}

// WithTranscriber sets the capability used for audio inputs.
func WithTranscriber(t ai.Transcriber) Option {
	return func(r *Registry) error {
		r.transcriber = t
		return nil
	}
}

// WithItemDecoder replaces the digest payload decoder.
// Default is JSONItemDecoder.
func WithItemDecoder(d ItemDecoder) Option {
	return func(r *Registry) error {
		if d == nil {
			return fmt.Errorf("item decoder: %w", ErrCapabilityMissing)
		}
		r.decoder = d
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRegistry creates a registry. Capabilities left unset make the matching
// input types fail with ErrCapabilityMissing when they are extracted.
func NewRegistry(opts ...Option) (*Registry, error) {
	r := &Registry{
		decoder: JSONItemDecoder{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	r.logger = r.logger.With("component", "extract-registry")
	return r, nil
}

// Lookup returns the extractor for t. It reports false for types outside the
// supported set.
func (r *Registry) Lookup(t core.InputType) (Extractor, bool) {
	switch t {
	case core.InputText:
		return literalExtractor{source: "direct_text"}, true
	case core.InputPDF:
		return pdfExtractor{fetcher: r.pdf}, true
	case core.InputURL:
		return urlExtractor{fetcher: r.web}, true
	case core.InputEmail:
		return literalExtractor{source: "email"}, true
	case core.InputVideo:
		return videoExtractor{source: r.video}, true
	case core.InputAudio:
		return audioExtractor{transcriber: r.transcriber}, true
	case core.InputDigest:
		return digestExtractor{decoder: r.decoder}, true
	default:
		return nil, false
	}
}

// Extract routes content to the extractor for t. Unsupported types yield a
// routing error; extractor failures yield an extraction error labelled with
// the input type.
func (r *Registry) Extract(ctx context.Context, t core.InputType, content string) (*Result, *core.StageError) {
	extractor, ok := r.Lookup(t)
	if !ok {
		return nil, RoutingError(t)
	}

	result, err := extractor.Extract(ctx, content)
	if err != nil {
		r.logger.Debug("extraction failed", "inputType", t, "err", err)
		return nil, core.NewStageError(core.ErrExtraction, t.Label()+" extraction", err)
	}
	if result.Metadata == nil {
		result.Metadata = core.NewMetadata()
	}

	r.logger.Debug("extracted content", "inputType", t, "length", len(result.Text))
	return result, nil
}

// RoutingError describes an input type that has no extractor.
func RoutingError(t core.InputType) *core.StageError {
	return core.NewStageError(core.ErrRouting, "Routing",
		fmt.Errorf("%w %q", core.ErrUnknownInputType, string(t)))
}
