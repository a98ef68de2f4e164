package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tieubaoca/rag-be/database"
	"github.com/tieubaoca/rag-be/types"
)

// recordingStore is a canned VectorStore that counts ReadNearest calls.
type recordingStore struct {
	results []database.SearchResult
	err     error
	calls   int
	lastK   int
}

func (s *recordingStore) Write(context.Context, []types.Document) error { return nil }

func (s *recordingStore) ReadNearest(_ context.Context, _ string, k int) ([]database.SearchResult, error) {
	s.calls++
	s.lastK = k
	return s.results, s.err
}

func (s *recordingStore) Retriever() database.Retriever { return nil }

func neighbor(content string, score float32) database.SearchResult {
	return database.SearchResult{
		Content: content,
		Score:   score,
		Metadata: map[string]string{
			types.MetaSource: content + " title",
			types.MetaRow:    "7",
		},
	}
}

func TestSearchFiltersBelowThreshold(t *testing.T) {
	store := &recordingStore{results: []database.SearchResult{
		neighbor("first", 0.9),
		neighbor("second", 0.5),
		neighbor("third", 0.2),
		neighbor("fourth", 0.1),
	}}
	svc := NewSearchService(store, zap.NewNop())

	results, err := svc.Search(context.Background(), "anything", 4)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "first", results[0].Content)
	assert.Equal(t, "second", results[1].Content)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestSearchBlankQuerySkipsStore(t *testing.T) {
	store := &recordingStore{err: errors.New("must not be called")}
	svc := NewSearchService(store, zap.NewNop())

	for _, query := range []string{"", "   ", "\n\t"} {
		results, err := svc.Search(context.Background(), query, 5)
		require.NoError(t, err)
		assert.Empty(t, results)
	}
	assert.Zero(t, store.calls, "blank queries must not reach the store")
}

func TestSearchDefaultsK(t *testing.T) {
	store := &recordingStore{}
	svc := NewSearchService(store, zap.NewNop())

	_, err := svc.Search(context.Background(), "query", 0)
	require.NoError(t, err)
	assert.Equal(t, 5, store.lastK)
}

func TestSearchRoundsScores(t *testing.T) {
	store := &recordingStore{results: []database.SearchResult{
		neighbor("chunk", 0.87654321),
	}}
	svc := NewSearchService(store, zap.NewNop())

	results, err := svc.Search(context.Background(), "query", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.InDelta(t, 0.8765, results[0].Score, 1e-9)
}

func TestSearchMapsMetadata(t *testing.T) {
	store := &recordingStore{results: []database.SearchResult{
		neighbor("chunk", 0.8),
		{Content: "bare", Score: 0.7},
	}}
	svc := NewSearchService(store, zap.NewNop())

	results, err := svc.Search(context.Background(), "query", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "chunk title", results[0].Source)
	assert.Equal(t, "chunk title", results[0].JobTitle)
	assert.Equal(t, "7", results[0].ID)

	assert.Equal(t, "Unknown", results[1].Source)
	assert.Equal(t, "N/A", results[1].ID)
}

func TestSearchPropagatesStoreNotFound(t *testing.T) {
	store := &recordingStore{err: fmt.Errorf("%w: run ingestion first", database.ErrStoreNotFound)}
	svc := NewSearchService(store, zap.NewNop())

	_, err := svc.Search(context.Background(), "query", 5)
	assert.ErrorIs(t, err, database.ErrStoreNotFound)
}
