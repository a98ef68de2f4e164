package service

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tieubaoca/rag-be/config"
	"github.com/tieubaoca/rag-be/types"
)

func newTestChunker(t *testing.T, size, overlap int) *ChunkerService {
	t.Helper()
	chunker, err := NewChunkerService(&config.Config{ChunkSize: size, ChunkOverlap: overlap}, zap.NewNop())
	require.NoError(t, err)
	return chunker
}

// longText builds a few thousand characters of non-repeating prose so
// chunk offsets are unambiguous.
func longText(minLen int) string {
	var b strings.Builder
	for i := 0; b.Len() < minLen; i++ {
		fmt.Fprintf(&b, "Paragraph %d discusses subject %d in moderate detail across a full sentence. ", i, i*7)
	}
	return strings.TrimSpace(b.String())
}

func TestNewChunkerServiceRejectsBadConfig(t *testing.T) {
	_, err := NewChunkerService(&config.Config{ChunkSize: 0, ChunkOverlap: 0}, zap.NewNop())
	assert.Error(t, err)

	_, err = NewChunkerService(&config.Config{ChunkSize: 100, ChunkOverlap: -1}, zap.NewNop())
	assert.Error(t, err)

	_, err = NewChunkerService(&config.Config{ChunkSize: 100, ChunkOverlap: 100}, zap.NewNop())
	assert.Error(t, err, "overlap equal to size must be rejected")
}

func TestSplitEmptyInput(t *testing.T) {
	chunker := newTestChunker(t, 1000, 200)

	chunks, err := chunker.Split(nil, 0)
	require.NoError(t, err)
	assert.NotNil(t, chunks)
	assert.Empty(t, chunks)
}

func TestSplitShortDocumentIsSingleChunk(t *testing.T) {
	chunker := newTestChunker(t, 1000, 200)
	doc := types.Document{
		Content:  "A short document.",
		Metadata: map[string]string{types.MetaSource: "short.txt"},
	}

	chunks, err := chunker.Split([]types.Document{doc}, 0)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, doc.Content, chunks[0].Content)
	assert.Equal(t, "short.txt", chunks[0].Metadata[types.MetaSource])
	assert.Equal(t, "0", chunks[0].Metadata[types.MetaStartIndex])
}

func TestSplitLongDocument(t *testing.T) {
	chunker := newTestChunker(t, 1000, 200)
	content := longText(3000)
	doc := types.Document{
		Content:  content,
		Metadata: map[string]string{types.MetaSource: "long.txt"},
	}

	chunks, err := chunker.Split([]types.Document{doc}, 0)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(chunks), 3)

	prevEnd := 0
	for i, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk.Content), 1000)
		assert.Equal(t, "long.txt", chunk.Metadata[types.MetaSource],
			"every chunk keeps the parent metadata")

		start, err := strconv.Atoi(chunk.Metadata[types.MetaStartIndex])
		require.NoError(t, err)
		assert.Equal(t, chunk.Content, content[start:start+len(chunk.Content)],
			"start_index must point at the chunk inside the parent")
		if i > 0 {
			assert.LessOrEqual(t, start, prevEnd, "chunks must not leave gaps")
		}
		prevEnd = start + len(chunk.Content)
	}
	assert.Equal(t, len(content), prevEnd, "last chunk must reach the end of the document")
}

func TestSplitOverridesChunkSize(t *testing.T) {
	chunker := newTestChunker(t, 1000, 20)
	doc := types.Document{Content: longText(800)}

	chunks, err := chunker.Split([]types.Document{doc}, 100)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk.Content), 100)
	}
}

func TestSplitPrefersParagraphBoundaries(t *testing.T) {
	chunker := newTestChunker(t, 40, 0)
	doc := types.Document{Content: "First paragraph here.\n\nSecond paragraph here."}

	chunks, err := chunker.Split([]types.Document{doc}, 0)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "First paragraph here.", chunks[0].Content)
	assert.Equal(t, "Second paragraph here.", chunks[1].Content)
}
