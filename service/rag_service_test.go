package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tieubaoca/rag-be/database"
	"github.com/tieubaoca/rag-be/types"
)

type stubRetriever struct {
	results []database.SearchResult
	err     error
}

func (r *stubRetriever) Retrieve(context.Context, string) ([]database.SearchResult, error) {
	return r.results, r.err
}

type capturingAI struct {
	prompt    string
	answer    string
	err       error
	fragments []string
}

func (a *capturingAI) Generate(_ context.Context, prompt string) (string, error) {
	a.prompt = prompt
	return a.answer, a.err
}

func (a *capturingAI) GenerateStream(_ context.Context, prompt string, handler types.StreamHandler) error {
	a.prompt = prompt
	if a.err != nil {
		return a.err
	}
	for _, fragment := range a.fragments {
		handler(fragment)
	}
	return nil
}

func TestAnswerBuildsGroundedPrompt(t *testing.T) {
	retriever := &stubRetriever{results: []database.SearchResult{
		{Content: "context one"},
		{Content: "context two"},
	}}
	ai := &capturingAI{answer: "42"}
	svc := NewRAGService(retriever, ai, zap.NewNop())

	answer, err := svc.Answer(context.Background(), "what is the answer?")
	require.NoError(t, err)
	assert.Equal(t, "42", answer)

	assert.Contains(t, ai.prompt, "context one\n\ncontext two")
	assert.Contains(t, ai.prompt, "Question: what is the answer?")
	assert.NotContains(t, ai.prompt, "{context}")
	assert.NotContains(t, ai.prompt, "{question}")
}

func TestAnswerEmptyRetrieval(t *testing.T) {
	ai := &capturingAI{answer: "I don't know."}
	svc := NewRAGService(&stubRetriever{}, ai, zap.NewNop())

	_, err := svc.Answer(context.Background(), "anything?")
	require.NoError(t, err)
	assert.Contains(t, ai.prompt, "Answer the question based only on the following context:")
}

func TestAnswerRetrieverError(t *testing.T) {
	retriever := &stubRetriever{err: errors.New("store offline")}
	svc := NewRAGService(retriever, &capturingAI{}, zap.NewNop())

	_, err := svc.Answer(context.Background(), "question")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retrieving context")
}

func TestAnswerGenerationError(t *testing.T) {
	ai := &capturingAI{err: errors.New("model unavailable")}
	svc := NewRAGService(&stubRetriever{}, ai, zap.NewNop())

	_, err := svc.Answer(context.Background(), "question")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generating answer")
}

func TestAnswerStreamForwardsFragments(t *testing.T) {
	ai := &capturingAI{fragments: []string{"The ", "answer ", "is 42."}}
	svc := NewRAGService(&stubRetriever{}, ai, zap.NewNop())

	var collected string
	err := svc.AnswerStream(context.Background(), "question", func(fragment string) {
		collected += fragment
	})
	require.NoError(t, err)
	assert.Equal(t, "The answer is 42.", collected)
}
