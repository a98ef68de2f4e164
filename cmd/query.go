/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tieubaoca/rag-be/config"
	"github.com/tieubaoca/rag-be/database"
	"github.com/tieubaoca/rag-be/logger"
	"github.com/tieubaoca/rag-be/service"
)

// queryCmd answers a single question using the persisted vector store.
// Query failures print an error and exit normally; only setup failures
// are fatal.
var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Ask a question against the ingested documents",
	Run: func(cmd *cobra.Command, args []string) {
		question, _ := cmd.Flags().GetString("q")
		if question == "" {
			fmt.Println("Error: please provide a question using --q")
			return
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		zlog, err := logger.New(cfg.LogLevel)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer zlog.Sync()

		embedder, err := service.NewEmbedder(cfg, zlog)
		if err != nil {
			zlog.Fatal("failed to initialize embedding provider", zap.Error(err))
		}
		store, err := database.NewVectorStore(cfg, embedder, zlog)
		if err != nil {
			zlog.Fatal("failed to initialize vector store", zap.Error(err))
		}
		aiService, err := service.NewAIService(cfg, zlog)
		if err != nil {
			zlog.Fatal("failed to initialize llm provider", zap.Error(err))
		}
		ragService := service.NewRAGService(store.Retriever(), aiService, zlog)

		fmt.Println("Thinking...")
		answer, err := ragService.Answer(context.Background(), question)
		if err != nil {
			zlog.Error("query failed", zap.Error(err))
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("\nAnswer: %s\n", answer)
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringP("q", "q", "", "Question to ask")
}
