// ABOUTME: Tests for embedder selection and dimension validation
// ABOUTME: Uses config variants; provider calls themselves are not exercised

package embed

import (
	"errors"
	"testing"

	"github.com/harper/vidrag/internal/config"
	"github.com/harper/vidrag/internal/models"
)

func TestNew_UnknownProvider(t *testing.T) {
	cfg := &config.Config{EmbeddingProvider: "cohere"}
	if _, err := New(cfg); err == nil {
		t.Error("New() accepted unknown provider")
	}
}

func TestNewOpenAIEmbedder_RequiresKey(t *testing.T) {
	cfg := &config.Config{EmbeddingProvider: config.ProviderOpenAI}
	_, err := NewOpenAIEmbedder(cfg)
	if err == nil {
		t.Fatal("NewOpenAIEmbedder() accepted empty API key")
	}

	var provErr *models.ProviderError
	if !errors.As(err, &provErr) {
		t.Errorf("error = %T, want *models.ProviderError", err)
	}
}

func TestOpenAIEmbedder_Dimension(t *testing.T) {
	cfg := &config.Config{
		OpenAIKey:       "test-key",
		EmbeddingModel:  "text-embedding-3-small",
		VectorDimension: 384,
	}
	e, err := NewOpenAIEmbedder(cfg)
	if err != nil {
		t.Fatalf("NewOpenAIEmbedder() error = %v", err)
	}
	if e.Dimension() != 384 {
		t.Errorf("Dimension() = %d, want 384", e.Dimension())
	}
}

func TestCheckVectors(t *testing.T) {
	good := [][]float32{{1, 2, 3}, {4, 5, 6}}
	if err := checkVectors(good, 3); err != nil {
		t.Errorf("checkVectors(valid) = %v", err)
	}

	bad := [][]float32{{1, 2, 3}, {4, 5}}
	err := checkVectors(bad, 3)
	if err == nil {
		t.Fatal("checkVectors accepted short vector")
	}
	if !errors.Is(err, models.ErrDimensionMismatch) {
		t.Error("error does not match ErrDimensionMismatch")
	}
}
