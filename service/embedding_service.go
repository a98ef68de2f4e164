package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/tieubaoca/rag-be/config"
	"github.com/tieubaoca/rag-be/database"
)

// ErrUnsupportedEmbeddingProvider is returned for an unknown
// embedding_provider value.
var ErrUnsupportedEmbeddingProvider = errors.New("unsupported embedding provider")

type embedderFactory func(cfg *config.Config, logger *zap.Logger) (database.Embedder, error)

var embedderRegistry = map[string]embedderFactory{
	config.ProviderOpenAI:      newOpenAIEmbedder,
	config.ProviderGoogle:      newGeminiEmbedder,
	config.ProviderHuggingFace: newFastEmbedEmbedder,
}

// NewEmbedder constructs the configured embedding provider. Unknown
// values fail here, at construction, not on the first embed call.
func NewEmbedder(cfg *config.Config, logger *zap.Logger) (database.Embedder, error) {
	factory, ok := embedderRegistry[cfg.EmbeddingProvider]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEmbeddingProvider, cfg.EmbeddingProvider)
	}
	return factory(cfg, logger)
}
