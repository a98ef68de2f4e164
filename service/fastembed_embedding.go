package service

import (
	"context"
	"fmt"

	fastembed "github.com/anush008/fastembed-go"
	"go.uber.org/zap"

	"github.com/tieubaoca/rag-be/config"
	"github.com/tieubaoca/rag-be/database"
)

// fastEmbedModels maps HuggingFace model names to fastembed constants.
var fastEmbedModels = map[string]fastembed.EmbeddingModel{
	"BAAI/bge-small-en-v1.5":                 fastembed.BGESmallENV15,
	"BAAI/bge-small-en":                      fastembed.BGESmallEN,
	"BAAI/bge-base-en-v1.5":                  fastembed.BGEBaseENV15,
	"BAAI/bge-base-en":                       fastembed.BGEBaseEN,
	"sentence-transformers/all-MiniLM-L6-v2": fastembed.AllMiniLML6V2,
}

// FastEmbedEmbedder runs HuggingFace sentence-embedding models locally
// through ONNX. No network access is needed once the model files are in
// the cache directory.
type FastEmbedEmbedder struct {
	model *fastembed.FlagEmbedding
}

func newFastEmbedEmbedder(cfg *config.Config, logger *zap.Logger) (database.Embedder, error) {
	model, ok := fastEmbedModels[cfg.FastEmbedModel]
	if !ok {
		return nil, fmt.Errorf("%w: unknown fastembed model %q", ErrUnsupportedEmbeddingProvider, cfg.FastEmbedModel)
	}

	showProgress := false
	flagEmbedding, err := fastembed.NewFlagEmbedding(&fastembed.InitOptions{
		Model:                model,
		CacheDir:             cfg.FastEmbedCacheDir,
		MaxLength:            512,
		ShowDownloadProgress: &showProgress,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing fastembed model %s: %w", cfg.FastEmbedModel, err)
	}

	logger.Info("using local HuggingFace embeddings",
		zap.String("model", cfg.FastEmbedModel),
		zap.String("cache_dir", cfg.FastEmbedCacheDir))
	return &FastEmbedEmbedder{model: flagEmbedding}, nil
}

// EmbedDocuments uses the "passage: " prefix recommended for BGE models.
func (e *FastEmbedEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	vectors, err := e.model.PassageEmbed(texts, 256)
	if err != nil {
		return nil, fmt.Errorf("fastembed passage embed: %w", err)
	}
	return vectors, nil
}

// EmbedQuery uses the "query: " prefix recommended for BGE models.
func (e *FastEmbedEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	vector, err := e.model.QueryEmbed(text)
	if err != nil {
		return nil, fmt.Errorf("fastembed query embed: %w", err)
	}
	return vector, nil
}

// Close releases the ONNX runtime resources.
func (e *FastEmbedEmbedder) Close() error {
	return e.model.Destroy()
}
