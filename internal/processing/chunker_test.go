package processing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkTextSplitsOnBlankLines(t *testing.T) {
	text := "first paragraph\n\nsecond paragraph\n\n\nthird paragraph"
	chunks := ChunkText(text)
	assert.Equal(t, []string{"first paragraph", "second paragraph", "third paragraph"}, chunks)
}

func TestChunkTextSkipsEmptyParagraphs(t *testing.T) {
	chunks := ChunkText("a\n\n   \n\nb")
	assert.Equal(t, []string{"a", "b"}, chunks)
}

func TestChunkTextSplitsLongParagraphsWithOverlap(t *testing.T) {
	long := strings.Repeat("x", 2500)
	chunks := ChunkText(long)

	assert.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), maxChunkSize)
	}
	// Overlapping windows must cover the whole paragraph.
	total := 0
	for _, c := range chunks {
		total += len(c)
	}
	assert.GreaterOrEqual(t, total, len(long))
}

func TestChunkTextEmptyInput(t *testing.T) {
	assert.Empty(t, ChunkText(""))
	assert.Empty(t, ChunkText("\n\n\n"))
}
