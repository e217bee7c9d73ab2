package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/poiesic/summarit/core"
	"github.com/tidwall/gjson"
)

// JSONItemDecoder decodes a JSON array. String elements are used as is; any
// other element is kept as its compact JSON text.
type JSONItemDecoder struct{}

// DecodeItemList implements ItemDecoder.
func (JSONItemDecoder) DecodeItemList(payload string) ([]string, error) {
	if !gjson.Valid(payload) {
		return nil, fmt.Errorf("decode item list: %w", ErrMalformedPayload)
	}
	list := gjson.Parse(payload)
	if !list.IsArray() {
		return nil, ErrNotItemList
	}

	items := make([]string, 0)
	list.ForEach(func(_, item gjson.Result) bool {
		if item.Type == gjson.String {
			items = append(items, item.Str)
		} else {
			items = append(items, gjson.Get(item.Raw, "@ugly").Raw)
		}
		return true
	})
	return items, nil
}

// FormatDigest renders items as numbered blocks:
//
//	"\n\n=== Item 1 ===\n<first>\n\n\n=== Item 2 ===\n<second>\n"
func FormatDigest(items []string) string {
	var b strings.Builder
	for i, item := range items {
		fmt.Fprintf(&b, "\n\n=== Item %d ===\n%s\n", i+1, item)
	}
	return b.String()
}

type digestExtractor struct {
	decoder ItemDecoder
}

func (e digestExtractor) Extract(_ context.Context, content string) (*Result, error) {
	items, err := e.decoder.DecodeItemList(content)
	if err != nil {
		return nil, err
	}

	return &Result{
		Text: FormatDigest(items),
		Metadata: core.NewMetadata().
			Set(core.MetaSource, "digest").
			Set(core.MetaNumItems, len(items)),
	}, nil
}
