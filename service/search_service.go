package service

import (
	"context"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/tieubaoca/rag-be/database"
	"github.com/tieubaoca/rag-be/types"
)

// SimilarityThreshold is the fixed relevance floor for search results.
// Neighbors scoring below it are dropped from the response.
const SimilarityThreshold = 0.3

const defaultSearchK = 5

// SearchService executes similarity queries and reshapes the raw store
// results into the API response payload.
type SearchService struct {
	store  database.VectorStore
	logger *zap.Logger
}

func NewSearchService(store database.VectorStore, logger *zap.Logger) *SearchService {
	return &SearchService{
		store:  store,
		logger: logger,
	}
}

// Search returns up to k results above the relevance threshold, ordered
// by descending score. A blank query short-circuits to an empty result
// set without touching the store. A missing store propagates
// database.ErrStoreNotFound untouched so the HTTP layer can answer 503.
func (s *SearchService) Search(ctx context.Context, query string, k int) ([]types.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return []types.SearchResult{}, nil
	}
	if k <= 0 {
		k = defaultSearchK
	}

	neighbors, err := s.store.ReadNearest(ctx, query, k)
	if err != nil {
		return nil, err
	}

	results := make([]types.SearchResult, 0, len(neighbors))
	for _, neighbor := range neighbors {
		if float64(neighbor.Score) < SimilarityThreshold {
			continue
		}

		source := neighbor.Metadata[types.MetaSource]
		if source == "" {
			source = "Unknown"
		}
		id := neighbor.Metadata[types.MetaRow]
		if id == "" {
			id = "N/A"
		}
		results = append(results, types.SearchResult{
			Content:  neighbor.Content,
			Source:   source,
			JobTitle: source,
			Score:    math.Round(float64(neighbor.Score)*10000) / 10000,
			ID:       id,
		})
	}

	s.logger.Info("search completed",
		zap.String("query", query),
		zap.Int("results", len(results)))
	return results, nil
}
