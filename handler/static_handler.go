package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/tieubaoca/rag-be/types"
)

// StaticHandler serves the single-page frontend.
type StaticHandler struct {
	staticDir string
}

func NewStaticHandler(staticDir string) *StaticHandler {
	return &StaticHandler{
		staticDir: staticDir,
	}
}

// ServeIndex serves the frontend entry point, 404 when the asset is
// missing.
func (h *StaticHandler) ServeIndex(c *gin.Context) {
	indexPath := filepath.Join(h.staticDir, "index.html")
	if _, err := os.Stat(indexPath); err != nil {
		c.JSON(http.StatusNotFound, types.ErrorResponse{Detail: "Frontend assets missing"})
		return
	}
	c.File(indexPath)
}
