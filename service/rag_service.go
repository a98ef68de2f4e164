package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tieubaoca/rag-be/database"
	"github.com/tieubaoca/rag-be/types"
)

// ragPromptTemplate grounds the model's answer in retrieved context
// only. The {context} and {question} slots are filled per call.
const ragPromptTemplate = `Answer the question based only on the following context:
{context}

Question: {question}`

// RAGService runs the generation pipeline: retrieve top-k chunks, join
// them into a context block, fill the prompt template and invoke the
// configured LLM. There is no state between calls and no retries;
// generation failures propagate to the caller.
type RAGService struct {
	retriever database.Retriever
	ai        AIService
	logger    *zap.Logger
}

func NewRAGService(retriever database.Retriever, ai AIService, logger *zap.Logger) *RAGService {
	return &RAGService{
		retriever: retriever,
		ai:        ai,
		logger:    logger,
	}
}

// Answer returns the LLM's plain-text answer to the question.
func (s *RAGService) Answer(ctx context.Context, question string) (string, error) {
	prompt, err := s.buildPrompt(ctx, question)
	if err != nil {
		return "", err
	}
	answer, err := s.ai.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generating answer: %w", err)
	}
	return answer, nil
}

// AnswerStream behaves like Answer but hands answer fragments to the
// handler as the model produces them.
func (s *RAGService) AnswerStream(ctx context.Context, question string, handler types.StreamHandler) error {
	prompt, err := s.buildPrompt(ctx, question)
	if err != nil {
		return err
	}
	if err := s.ai.GenerateStream(ctx, prompt, handler); err != nil {
		return fmt.Errorf("generating answer: %w", err)
	}
	return nil
}

func (s *RAGService) buildPrompt(ctx context.Context, question string) (string, error) {
	neighbors, err := s.retriever.Retrieve(ctx, question)
	if err != nil {
		return "", fmt.Errorf("retrieving context: %w", err)
	}

	contents := make([]string, 0, len(neighbors))
	for _, neighbor := range neighbors {
		contents = append(contents, neighbor.Content)
	}
	contextBlock := strings.Join(contents, "\n\n")

	s.logger.Debug("built RAG prompt",
		zap.String("question", question),
		zap.Int("context_chunks", len(neighbors)))
	return strings.NewReplacer(
		"{context}", contextBlock,
		"{question}", question,
	).Replace(ragPromptTemplate), nil
}
