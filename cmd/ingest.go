/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tieubaoca/rag-be/config"
	"github.com/tieubaoca/rag-be/database"
	"github.com/tieubaoca/rag-be/logger"
	"github.com/tieubaoca/rag-be/service"
)

// ingestCmd loads, chunks and embeds every supported document in the
// data directory, replacing any previously persisted vector store.
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Build the vector store from a directory of documents",
	Long: `Loads PDF, CSV and text files from the data directory, splits them
into overlapping chunks, embeds the chunks with the configured provider
and persists them to the vector store path.

Any existing store at that path is deleted before writing.`,
	Run: func(cmd *cobra.Command, args []string) {
		dataDir, _ := cmd.Flags().GetString("data")

		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		zlog, err := logger.New(cfg.LogLevel)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer zlog.Sync()

		loaderService := service.NewLoaderService(cfg, zlog)
		chunkerService, err := service.NewChunkerService(cfg, zlog)
		if err != nil {
			zlog.Fatal("invalid chunking configuration", zap.Error(err))
		}
		embedder, err := service.NewEmbedder(cfg, zlog)
		if err != nil {
			zlog.Fatal("failed to initialize embedding provider", zap.Error(err))
		}
		store, err := database.NewVectorStore(cfg, embedder, zlog)
		if err != nil {
			zlog.Fatal("failed to initialize vector store", zap.Error(err))
		}

		zlog.Info("starting ingestion", zap.String("data_dir", dataDir))
		docs, err := loaderService.Load(dataDir)
		if err != nil {
			zlog.Fatal("loading documents failed", zap.Error(err))
		}
		if len(docs) == 0 {
			zlog.Fatal("no documents loaded, aborting ingestion",
				zap.String("data_dir", dataDir))
		}

		chunks, err := chunkerService.Split(docs, 0)
		if err != nil {
			zlog.Fatal("chunking documents failed", zap.Error(err))
		}

		if err := store.Write(context.Background(), chunks); err != nil {
			zlog.Fatal("writing vector store failed", zap.Error(err))
		}
		zlog.Info("ingestion complete",
			zap.Int("documents", len(docs)),
			zap.Int("chunks", len(chunks)),
			zap.String("path", cfg.VectorDBPath))
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().StringP("data", "d", "data/raw", "Path to the directory containing raw documents")
}
