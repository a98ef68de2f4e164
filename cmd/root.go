/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rag-be",
	Short: "Retrieval-augmented generation backend",
	Long: `rag-be ingests documents into a local vector store and answers
questions about them, either as ranked search results over HTTP or as
LLM-generated answers on the command line.

  rag-be ingest --data data/raw
  rag-be query --q "What does the handbook say about overtime?"
  rag-be start`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
