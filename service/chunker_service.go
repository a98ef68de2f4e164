package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"
	"go.uber.org/zap"

	"github.com/tieubaoca/rag-be/config"
	"github.com/tieubaoca/rag-be/types"
)

// ChunkerService splits documents into overlapping windows using a
// recursive character splitter that prefers paragraph, then line, then
// word boundaries before falling back to a hard cut.
type ChunkerService struct {
	chunkSize    int
	chunkOverlap int
	logger       *zap.Logger
}

func NewChunkerService(cfg *config.Config, logger *zap.Logger) (*ChunkerService, error) {
	if cfg.ChunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", cfg.ChunkSize)
	}
	if cfg.ChunkOverlap < 0 {
		return nil, fmt.Errorf("chunk overlap cannot be negative, got %d", cfg.ChunkOverlap)
	}
	if cfg.ChunkOverlap >= cfg.ChunkSize {
		return nil, fmt.Errorf("chunk overlap %d must be smaller than chunk size %d", cfg.ChunkOverlap, cfg.ChunkSize)
	}
	return &ChunkerService{
		chunkSize:    cfg.ChunkSize,
		chunkOverlap: cfg.ChunkOverlap,
		logger:       logger,
	}, nil
}

// Split chunks every document, preserving its metadata and recording the
// chunk's character offset in the parent under start_index. A chunkSize
// of zero or less means the configured default; overlap always comes
// from configuration.
func (s *ChunkerService) Split(docs []types.Document, chunkSize int) ([]types.Document, error) {
	if chunkSize <= 0 {
		chunkSize = s.chunkSize
	}
	chunks := make([]types.Document, 0, len(docs))
	if len(docs) == 0 {
		return chunks, nil
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(s.chunkOverlap),
	)

	for _, doc := range docs {
		segments, err := splitter.SplitText(doc.Content)
		if err != nil {
			return nil, fmt.Errorf("splitting document %s: %w", doc.Metadata[types.MetaSource], err)
		}

		searchFrom := 0
		for _, segment := range segments {
			if strings.TrimSpace(segment) == "" {
				continue
			}
			// Overlapping chunks repeat text, so resume the offset scan
			// just past the previous chunk's start
			start := searchFrom
			if idx := strings.Index(doc.Content[searchFrom:], segment); idx >= 0 {
				start = searchFrom + idx
				searchFrom = start + 1
			}

			metadata := doc.CloneMetadata()
			metadata[types.MetaStartIndex] = strconv.Itoa(start)
			chunks = append(chunks, types.Document{
				Content:  segment,
				Metadata: metadata,
			})
		}
	}

	s.logger.Info("split documents into chunks",
		zap.Int("documents", len(docs)),
		zap.Int("chunks", len(chunks)),
		zap.Int("chunk_size", chunkSize),
		zap.Int("chunk_overlap", s.chunkOverlap))
	return chunks, nil
}
