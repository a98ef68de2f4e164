package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tieubaoca/rag-be/database"
	"github.com/tieubaoca/rag-be/service"
	"github.com/tieubaoca/rag-be/types"
)

type SearchHandler struct {
	searchService *service.SearchService
}

func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
	}
}

// HandleSearch serves POST /search. A blank query is a valid request
// with an empty result set; a missing vector store maps to 503 so the
// client can tell "not ingested yet" from an internal failure.
func (h *SearchHandler) HandleSearch(c *gin.Context) {
	var req types.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Detail: "invalid request: " + err.Error()})
		return
	}
	if req.K == 0 {
		req.K = 5
	}

	results, err := h.searchService.Search(c.Request.Context(), req.Query, req.K)
	if err != nil {
		if errors.Is(err, database.ErrStoreNotFound) {
			c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{Detail: "Search database not initialized. Run ingestion."})
			return
		}
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Detail: "Internal search engine error"})
		return
	}

	c.JSON(http.StatusOK, types.SearchResponse{Results: results})
}
