package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONItemDecoder(t *testing.T) {
	d := JSONItemDecoder{}

	items, err := d.DecodeItemList(`["first", {"title": "second", "n": 2}, 3]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", `{"title":"second","n":2}`, "3"}, items)

	items, err = d.DecodeItemList(`[]`)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = d.DecodeItemList(`null`)
	assert.ErrorIs(t, err, ErrNotItemList)

	_, err = d.DecodeItemList(`{"a": 1}`)
	assert.ErrorIs(t, err, ErrNotItemList)

	_, err = d.DecodeItemList(`[1, 2`)
	assert.ErrorIs(t, err, ErrMalformedPayload)

	_, err = d.DecodeItemList(``)
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

func TestFormatDigest(t *testing.T) {
	assert.Equal(t, "", FormatDigest(nil))
	assert.Equal(t, "\n\n=== Item 1 ===\nonly\n", FormatDigest([]string{"only"}))
}
