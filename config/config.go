package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Provider enum values. Factories dispatch on these and fail fast on
// anything else.
const (
	ProviderOpenAI      = "openai"
	ProviderGoogle      = "google"
	ProviderHuggingFace = "huggingface"

	VectorStoreChroma = "chroma"
)

// Config holds the whole application configuration. It is loaded once at
// process start from environment variables (plus an optional .env file
// read by main) and passed into every constructor; nothing mutates it
// afterwards.
type Config struct {
	Port     string `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`

	LLMProvider       string `mapstructure:"llm_provider"`
	EmbeddingProvider string `mapstructure:"embedding_provider"`
	VectorStore       string `mapstructure:"vector_store"`

	OpenAIAPIKey    string `mapstructure:"openai_api_key"`
	OpenAIModelName string `mapstructure:"openai_model_name"`
	GoogleAPIKey    string `mapstructure:"google_api_key"`
	GoogleModelName string `mapstructure:"google_model_name"`

	OpenAIEmbeddingModel string `mapstructure:"openai_embedding_model"`
	GoogleEmbeddingModel string `mapstructure:"google_embedding_model"`
	FastEmbedModel       string `mapstructure:"fastembed_model"`
	FastEmbedCacheDir    string `mapstructure:"fastembed_cache_dir"`

	ChunkSize       int    `mapstructure:"chunk_size"`
	ChunkOverlap    int    `mapstructure:"chunk_overlap"`
	VectorDBPath    string `mapstructure:"vector_db_path"`
	CSVSourceColumn string `mapstructure:"csv_source_column"`
	StaticDir       string `mapstructure:"static_dir"`
}

var defaults = map[string]interface{}{
	"port":                   "8080",
	"log_level":              "info",
	"llm_provider":           ProviderGoogle,
	"embedding_provider":     ProviderGoogle,
	"vector_store":           VectorStoreChroma,
	"openai_api_key":         "",
	"openai_model_name":      "gpt-4o",
	"google_api_key":         "",
	"google_model_name":      "gemini-1.5-flash",
	"openai_embedding_model": "text-embedding-3-small",
	"google_embedding_model": "models/embedding-001",
	"fastembed_model":        "BAAI/bge-small-en-v1.5",
	"fastembed_cache_dir":    "data/models",
	"chunk_size":             1000,
	"chunk_overlap":          200,
	"vector_db_path":         "data/vector_store",
	"csv_source_column":      "Job Title",
	"static_dir":             "static",
}

// LoadConfig reads configuration from environment variables, applying
// defaults for everything unset.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
		// AutomaticEnv alone does not surface env vars through Unmarshal
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding env var %s: %w", key, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the chunking invariants. Provider enums are validated
// by the factories that dispatch on them.
func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("chunk_overlap cannot be negative, got %d", c.ChunkOverlap)
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("chunk_overlap %d must be smaller than chunk_size %d", c.ChunkOverlap, c.ChunkSize)
	}
	return nil
}

// EmbeddingModelName returns the model name for the configured embedding
// provider. Used to stamp the vector store manifest.
func (c *Config) EmbeddingModelName() string {
	switch c.EmbeddingProvider {
	case ProviderOpenAI:
		return c.OpenAIEmbeddingModel
	case ProviderHuggingFace:
		return c.FastEmbedModel
	default:
		return c.GoogleEmbeddingModel
	}
}
