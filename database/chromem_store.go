package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	chromem "github.com/philippgille/chromem-go"
	"go.uber.org/zap"

	"github.com/tieubaoca/rag-be/types"
)

const (
	documentCollection = "documents"
	retrieverK         = 5
	manifestFile       = "manifest.json"
)

// storeManifest records which embedding configuration built the store.
// Querying with a different provider would produce meaningless scores or
// opaque vector-length errors, so reads validate it up front.
type storeManifest struct {
	Provider  string `json:"provider"`
	Model     string `json:"model"`
	Dimension int    `json:"dimension"`
}

// ChromemStore persists chunks in an embedded chromem-go database under
// a single directory. The directory is wiped and rebuilt on every Write.
type ChromemStore struct {
	path     string
	provider string
	model    string
	embedder Embedder
	logger   *zap.Logger
}

func NewChromemStore(path, provider, model string, embedder Embedder, logger *zap.Logger) (*ChromemStore, error) {
	if path == "" {
		return nil, errors.New("persistence path is required")
	}
	if embedder == nil {
		return nil, errors.New("embedder is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChromemStore{
		path:     path,
		provider: provider,
		model:    model,
		embedder: embedder,
		logger:   logger,
	}, nil
}

// embeddingFunc bridges our Embedder to chromem's query-time callback.
func (s *ChromemStore) embeddingFunc() chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		return s.embedder.EmbedQuery(ctx, text)
	}
}

// Write deletes any existing store at the path and persists the given
// chunks from scratch. An empty chunk slice is a warning, not an error.
func (s *ChromemStore) Write(ctx context.Context, chunks []types.Document) error {
	if len(chunks) == 0 {
		s.logger.Warn("no chunks provided, skipping vector store write")
		return nil
	}

	if err := os.RemoveAll(s.path); err != nil {
		return fmt.Errorf("removing existing store at %s: %w", s.path, err)
	}

	db, err := chromem.NewPersistentDB(s.path, false)
	if err != nil {
		return fmt.Errorf("creating vector store at %s: %w", s.path, err)
	}

	collection, err := db.GetOrCreateCollection(documentCollection, nil, s.embeddingFunc())
	if err != nil {
		return fmt.Errorf("creating collection: %w", err)
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}
	embeddings, err := s.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding %d chunks: %w", len(chunks), err)
	}
	if len(embeddings) != len(chunks) {
		return fmt.Errorf("embedder returned %d vectors for %d chunks", len(embeddings), len(chunks))
	}

	docs := make([]chromem.Document, len(chunks))
	for i, chunk := range chunks {
		docs[i] = chromem.Document{
			ID:        uuid.NewString(),
			Content:   chunk.Content,
			Metadata:  chunk.Metadata,
			Embedding: embeddings[i],
		}
	}
	// Embeddings are precomputed, no need for write concurrency
	if err := collection.AddDocuments(ctx, docs, 1); err != nil {
		return fmt.Errorf("persisting chunks: %w", err)
	}

	if err := s.writeManifest(len(embeddings[0])); err != nil {
		return err
	}

	s.logger.Info("vector store persisted",
		zap.String("path", s.path),
		zap.Int("chunks", len(chunks)),
		zap.String("provider", s.provider),
	)
	return nil
}

// ReadNearest embeds the query and returns up to k stored chunks ordered
// by descending relevance score.
func (s *ChromemStore) ReadNearest(ctx context.Context, query string, k int) ([]SearchResult, error) {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s, run ingestion first", ErrStoreNotFound, s.path)
		}
		return nil, fmt.Errorf("checking store path %s: %w", s.path, err)
	}
	if err := s.checkManifest(); err != nil {
		return nil, err
	}

	db, err := chromem.NewPersistentDB(s.path, false)
	if err != nil {
		return nil, fmt.Errorf("opening vector store at %s: %w", s.path, err)
	}

	collection := db.GetCollection(documentCollection, s.embeddingFunc())
	if collection == nil {
		return nil, fmt.Errorf("%w at %s, run ingestion first", ErrStoreNotFound, s.path)
	}

	count := collection.Count()
	if count == 0 {
		return []SearchResult{}, nil
	}
	// chromem rejects nResults above the collection size
	if k > count {
		k = count
	}

	results, err := collection.Query(ctx, query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("querying vector store: %w", err)
	}

	searchResults := make([]SearchResult, len(results))
	for i, r := range results {
		searchResults[i] = SearchResult{
			ID:       r.ID,
			Content:  r.Content,
			Metadata: r.Metadata,
			Score:    r.Similarity,
		}
	}
	return searchResults, nil
}

// Retriever returns the fixed-k view used by the generation pipeline.
func (s *ChromemStore) Retriever() Retriever {
	return &fixedKRetriever{store: s, k: retrieverK}
}

type fixedKRetriever struct {
	store *ChromemStore
	k     int
}

func (r *fixedKRetriever) Retrieve(ctx context.Context, query string) ([]SearchResult, error) {
	return r.store.ReadNearest(ctx, query, r.k)
}

func (s *ChromemStore) writeManifest(dimension int) error {
	manifest := storeManifest{
		Provider:  s.provider,
		Model:     s.model,
		Dimension: dimension,
	}
	data, err := json.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("encoding store manifest: %w", err)
	}
	path := filepath.Join(s.path, manifestFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing store manifest: %w", err)
	}
	return nil
}

func (s *ChromemStore) checkManifest() error {
	data, err := os.ReadFile(filepath.Join(s.path, manifestFile))
	if err != nil {
		if os.IsNotExist(err) {
			// Store predates manifests, nothing to validate against
			s.logger.Warn("vector store has no manifest, skipping provider check",
				zap.String("path", s.path))
			return nil
		}
		return fmt.Errorf("reading store manifest: %w", err)
	}

	var manifest storeManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return fmt.Errorf("decoding store manifest: %w", err)
	}
	if manifest.Provider != s.provider || manifest.Model != s.model {
		return fmt.Errorf("%w: store was built with %s/%s but %s/%s is configured, re-run ingestion",
			ErrProviderMismatch, manifest.Provider, manifest.Model, s.provider, s.model)
	}
	return nil
}
