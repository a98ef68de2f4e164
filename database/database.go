package database

import (
	"context"
	"errors"

	"github.com/tieubaoca/rag-be/types"
)

var (
	// ErrStoreNotFound means the persistence path does not exist yet.
	// Callers surface this as "run ingestion first".
	ErrStoreNotFound = errors.New("vector store not found")

	// ErrUnsupportedStore is returned by the factory for an unknown
	// vector_store value. Misconfiguration fails fast, never defaults.
	ErrUnsupportedStore = errors.New("unsupported vector store type")

	// ErrProviderMismatch means the persisted store was built with a
	// different embedding provider or model than the one configured now.
	ErrProviderMismatch = errors.New("vector store embedding provider mismatch")
)

// Embedder maps text to fixed-dimension vectors. Implementations live in
// the service package; the store depends only on this contract.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
}

// SearchResult is a stored chunk returned from a similarity query, with
// a cosine-derived relevance score in roughly [0,1].
type SearchResult struct {
	ID       string
	Content  string
	Metadata map[string]string
	Score    float32
}

// VectorStore persists embedded chunks and answers nearest-neighbor
// queries. Write replaces the whole store; there is no incremental
// upsert, so chunks embedded with different provider configs can never
// mix in one index.
type VectorStore interface {
	Write(ctx context.Context, chunks []types.Document) error
	ReadNearest(ctx context.Context, query string, k int) ([]SearchResult, error)
	Retriever() Retriever
}

// Retriever is the fixed-k neighbor-fetch view used by generation.
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]SearchResult, error)
}
