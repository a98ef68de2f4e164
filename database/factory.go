package database

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tieubaoca/rag-be/config"
)

type storeFactory func(cfg *config.Config, embedder Embedder, logger *zap.Logger) (VectorStore, error)

// storeRegistry maps vector_store values to constructors. Chroma is the
// only backend wired today; adding one means adding an entry here.
var storeRegistry = map[string]storeFactory{
	config.VectorStoreChroma: newChromaStore,
}

// NewVectorStore constructs the configured vector store implementation.
// An unrecognized type is a configuration error, not a silent default.
func NewVectorStore(cfg *config.Config, embedder Embedder, logger *zap.Logger) (VectorStore, error) {
	factory, ok := storeRegistry[cfg.VectorStore]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedStore, cfg.VectorStore)
	}
	return factory(cfg, embedder, logger)
}

func newChromaStore(cfg *config.Config, embedder Embedder, logger *zap.Logger) (VectorStore, error) {
	return NewChromemStore(cfg.VectorDBPath, cfg.EmbeddingProvider, cfg.EmbeddingModelName(), embedder, logger)
}
