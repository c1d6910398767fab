package commando

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkShortText(t *testing.T) {
	assert.Equal(t, []string{"hello"}, Chunk("hello", 10))
	assert.Empty(t, Chunk("", 10))
}

func TestChunkPrefersNewlines(t *testing.T) {
	text := "aaaa\nbbbb\ncccc"
	chunks := Chunk(text, 10)
	assert.Equal(t, []string{"aaaa\nbbbb\n", "cccc"}, chunks)
}

func TestChunkHardSplit(t *testing.T) {
	text := strings.Repeat("x", 25)
	chunks := Chunk(text, 10)
	assert.Equal(t, []string{strings.Repeat("x", 10), strings.Repeat("x", 10), strings.Repeat("x", 5)}, chunks)
}

func TestChunkIsLosslessAndBounded(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 300; i++ {
		b.WriteString("línea número ")
		b.WriteString(strings.Repeat("é", i%17))
		b.WriteString("\n")
	}
	text := b.String()

	chunks := Chunk(text, MessageLimit)
	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), MessageLimit)
		assert.True(t, utf8.ValidString(c))
	}
	assert.Equal(t, text, strings.Join(chunks, ""))
	assert.NotEqual(t, chunks[0], chunks[1])
}
