package chunk

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("w%05d", i)
	}
	return strings.Join(parts, " ")
}

func TestChunker_Defaults(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	assert.Equal(t, 4000, c.Size())
	assert.Equal(t, 200, c.Overlap())
}

func TestChunker_EmptyText(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	for _, text := range []string{"", "   ", "\n\n\t"} {
		chunks, err := c.Split(text)
		require.NoError(t, err)
		assert.Empty(t, chunks)
	}
}

func TestChunker_ShortTextIsOneChunk(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	chunks, err := c.Split("A short paragraph.\n\nAnd another one.")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "A short paragraph.\n\nAnd another one.", chunks[0])
}

func TestChunker_LongTextOverlaps(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	text := words(2000) // 14000 runes
	chunks, err := c.Split(text)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(chunks), 4)

	for i, chunk := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), 4000, "chunk %d too long", i)
	}

	for i := 1; i < len(chunks); i++ {
		first := strings.Fields(chunks[i])[0]
		assert.Contains(t, chunks[i-1], first, "chunk %d does not overlap its predecessor", i)
	}

	for _, w := range []string{"w00000", "w01000", "w01999"} {
		found := false
		for _, chunk := range chunks {
			if strings.Contains(chunk, w) {
				found = true
				break
			}
		}
		assert.True(t, found, "word %s lost", w)
	}
}

func TestChunker_CountsRunes(t *testing.T) {
	c, err := New(WithChunkSize(10), WithChunkOverlap(0))
	require.NoError(t, err)

	// Each word is 4 runes but 12 bytes.
	chunks, err := c.Split("日本語だ 日本語だ 日本語だ")
	require.NoError(t, err)
	assert.Equal(t, []string{"日本語だ 日本語だ", "日本語だ"}, chunks)
}

func TestChunker_InvalidOptions(t *testing.T) {
	_, err := New(WithChunkSize(0))
	assert.ErrorIs(t, err, ErrInvalidChunkSize)

	_, err = New(WithChunkOverlap(-1))
	assert.ErrorIs(t, err, ErrInvalidOverlap)

	_, err = New(WithChunkSize(100), WithChunkOverlap(100))
	assert.ErrorIs(t, err, ErrInvalidOverlap)

	_, err = New(WithSeparators())
	assert.ErrorIs(t, err, ErrNoSeparators)
}
