// ABOUTME: Centralized configuration for the video transcript RAG engine
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Embedding provider variants.
const (
	ProviderLocal  = "local"  // ONNX MiniLM model on this machine
	ProviderOpenAI = "openai" // OpenAI embeddings API
)

// Vector store backends.
const (
	StoreCharm    = "charm"    // Charm KV with local cosine search
	StorePostgres = "postgres" // Postgres with pgvector
)

// Config holds all configuration for the engine.
type Config struct {
	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Embedding settings
	EmbeddingProvider string
	VectorDimension   int
	ONNXModelPath     string
	ONNXTokenizerPath string

	// Chunking settings
	ChunkSeconds   int
	OverlapSeconds int

	// Retrieval settings
	TopK        int
	UpsertBatch int

	// Store settings
	StoreBackend string
	PostgresDSN  string
	CharmHost    string
	CharmDBName  string
	AutoSync     bool
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		ChatModel:      getEnv("VIDRAG_CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel: getEnv("VIDRAG_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:        getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:     getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:     getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),

		EmbeddingProvider: getEnv("VIDRAG_EMBEDDING_PROVIDER", ProviderLocal),
		VectorDimension:   getEnvInt("VIDRAG_VECTOR_DIMENSION", 384),
		ONNXModelPath:     getEnv("VIDRAG_ONNX_MODEL", "model.onnx"),
		ONNXTokenizerPath: getEnv("VIDRAG_ONNX_TOKENIZER", "tokenizer.json"),

		ChunkSeconds:   getEnvInt("VIDRAG_CHUNK_SECONDS", 30),
		OverlapSeconds: getEnvInt("VIDRAG_OVERLAP_SECONDS", 5),

		TopK:        getEnvInt("VIDRAG_TOP_K", 3),
		UpsertBatch: getEnvInt("VIDRAG_UPSERT_BATCH", 20),

		StoreBackend: getEnv("VIDRAG_STORE", StoreCharm),
		PostgresDSN:  os.Getenv("VIDRAG_POSTGRES_DSN"),
		CharmHost:    getEnv("CHARM_HOST", "cloud.charm.sh"),
		CharmDBName:  getEnv("CHARM_DB", "vidrag"),
		AutoSync:     getEnvBool("CHARM_AUTO_SYNC", true),
	}

	return cfg, cfg.Validate()
}

// Validate rejects configurations that cannot run, including chunking
// geometry that would break windower termination.
func (c *Config) Validate() error {
	if c.ChunkSeconds <= 0 {
		return fmt.Errorf("VIDRAG_CHUNK_SECONDS must be positive, got %d", c.ChunkSeconds)
	}
	if c.OverlapSeconds < 0 || c.OverlapSeconds >= c.ChunkSeconds {
		return fmt.Errorf("VIDRAG_OVERLAP_SECONDS must be in [0, %d), got %d", c.ChunkSeconds, c.OverlapSeconds)
	}
	if c.VectorDimension <= 0 {
		return fmt.Errorf("VIDRAG_VECTOR_DIMENSION must be positive, got %d", c.VectorDimension)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("VIDRAG_TOP_K must be positive, got %d", c.TopK)
	}
	if c.UpsertBatch <= 0 {
		return fmt.Errorf("VIDRAG_UPSERT_BATCH must be positive, got %d", c.UpsertBatch)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}

	switch c.EmbeddingProvider {
	case ProviderLocal:
		// Model files are checked when the session is created.
	case ProviderOpenAI:
		if c.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for the openai embedding provider")
		}
	default:
		return fmt.Errorf("unknown embedding provider %q", c.EmbeddingProvider)
	}

	switch c.StoreBackend {
	case StoreCharm:
	case StorePostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("VIDRAG_POSTGRES_DSN is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}

	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
