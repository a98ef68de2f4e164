/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tieubaoca/rag-be/config"
	"github.com/tieubaoca/rag-be/database"
	"github.com/tieubaoca/rag-be/handler"
	"github.com/tieubaoca/rag-be/logger"
	"github.com/tieubaoca/rag-be/service"
)

// startCmd runs the HTTP API: semantic search, the frontend and the
// streaming chat websocket.
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the search and chat server",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		zlog, err := logger.New(cfg.LogLevel)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer zlog.Sync()

		// Initialize services
		embedder, err := service.NewEmbedder(cfg, zlog)
		if err != nil {
			zlog.Fatal("failed to initialize embedding provider", zap.Error(err))
		}
		store, err := database.NewVectorStore(cfg, embedder, zlog)
		if err != nil {
			zlog.Fatal("failed to initialize vector store", zap.Error(err))
		}
		searchService := service.NewSearchService(store, zlog)
		aiService, err := service.NewAIService(cfg, zlog)
		if err != nil {
			zlog.Fatal("failed to initialize llm provider", zap.Error(err))
		}
		ragService := service.NewRAGService(store.Retriever(), aiService, zlog)
		wsService := service.NewWebSocketService(ragService, zlog)

		// Initialize handlers
		corsHandler := handler.NewCorsHandler()
		searchHandler := handler.NewSearchHandler(searchService)
		staticHandler := handler.NewStaticHandler(cfg.StaticDir)

		// Setup Gin router
		router := gin.Default()
		router.Use(corsHandler.CorsMiddleware)

		router.GET("/", staticHandler.ServeIndex)
		router.Static("/static", cfg.StaticDir)
		router.POST("/search", searchHandler.HandleSearch)
		router.GET("/ws/chat", func(c *gin.Context) {
			wsService.HandleChat(c.Writer, c.Request)
		})

		zlog.Info("starting server", zap.String("port", cfg.Port))
		if err := router.Run(":" + cfg.Port); err != nil {
			zlog.Fatal("server error", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
