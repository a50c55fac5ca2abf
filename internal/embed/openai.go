// ABOUTME: Remote embedding variant backed by the OpenAI embeddings API
// ABOUTME: Retries with exponential backoff, validates returned dimensions
package embed

import (
	"context"
	"errors"
	"time"

	"github.com/harper/vidrag/internal/config"
	"github.com/harper/vidrag/internal/models"
	"github.com/harper/vidrag/internal/util"
	openai "github.com/sashabaranov/go-openai"
)

var (
	errMissingKey    = errors.New("OpenAI API key is required")
	errShortResponse = errors.New("embeddings response shorter than input")
)

// OpenAIEmbedder calls the OpenAI embeddings endpoint. The model is
// asked for exactly the configured dimension, so a mismatch in the
// response means the deployment and index disagree.
type OpenAIEmbedder struct {
	client     *openai.Client
	model      openai.EmbeddingModel
	dimension  int
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
}

// NewOpenAIEmbedder creates the remote embedding variant from config.
func NewOpenAIEmbedder(cfg *config.Config) (*OpenAIEmbedder, error) {
	if cfg.OpenAIKey == "" {
		return nil, &models.ProviderError{Provider: "openai", Op: "init",
			Err: errMissingKey}
	}

	return &OpenAIEmbedder{
		client:     openai.NewClient(cfg.OpenAIKey),
		model:      openai.EmbeddingModel(cfg.EmbeddingModel),
		dimension:  cfg.VectorDimension,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}, nil
}

// Dimension returns the configured vector length.
func (e *OpenAIEmbedder) Dimension() int {
	return e.dimension
}

// Embed produces the vector for one text.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch embeds all texts in a single API call, retrying transient
// failures with backoff.
func (e *OpenAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	var lastErr error

	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(util.CalculateBackoff(e.retryDelay, attempt)):
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, e.timeout)
		resp, err := e.client.CreateEmbeddings(callCtx, openai.EmbeddingRequestStrings{
			Input:      texts,
			Model:      e.model,
			Dimensions: e.dimension,
		})
		cancel()

		if err != nil {
			lastErr = err
			continue
		}
		if len(resp.Data) != len(texts) {
			lastErr = errShortResponse
			continue
		}

		vectors := make([][]float32, len(resp.Data))
		for i, d := range resp.Data {
			vectors[i] = d.Embedding
		}
		if err := checkVectors(vectors, e.dimension); err != nil {
			// Wrong-sized vectors are a configuration problem, not a
			// transient failure. Do not retry.
			return nil, err
		}
		return vectors, nil
	}

	return nil, &models.ProviderError{Provider: "openai", Op: "embed", Err: lastErr}
}

// Close is a no-op for the HTTP client.
func (e *OpenAIEmbedder) Close() error {
	return nil
}
