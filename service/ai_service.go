package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/tieubaoca/rag-be/config"
	"github.com/tieubaoca/rag-be/types"
)

// ErrUnsupportedLLMProvider is returned for an unknown llm_provider
// value.
var ErrUnsupportedLLMProvider = errors.New("unsupported llm provider")

// AIService generates text from a prompt. Implementations wrap one
// hosted LLM each.
type AIService interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateStream(ctx context.Context, prompt string, handler types.StreamHandler) error
}

type aiFactory func(cfg *config.Config, logger *zap.Logger) (AIService, error)

var aiRegistry = map[string]aiFactory{
	config.ProviderOpenAI: newOpenAIService,
	config.ProviderGoogle: newGeminiService,
}

// NewAIService constructs the configured LLM backend, failing fast on an
// unknown provider just like the store factory.
func NewAIService(cfg *config.Config, logger *zap.Logger) (AIService, error) {
	factory, ok := aiRegistry[cfg.LLMProvider]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLLMProvider, cfg.LLMProvider)
	}
	return factory(cfg, logger)
}
