/*
Copyright © 2025 tieubaoca
*/
package main

import (
	"github.com/joho/godotenv"
	"github.com/tieubaoca/rag-be/cmd"
)

func main() {
	// .env is optional, environment variables win either way
	_ = godotenv.Load()
	cmd.Execute()
}
