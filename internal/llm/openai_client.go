// ABOUTME: OpenAI client for chat completions with retry logic
// ABOUTME: Backs the follow-up classifier and the answer synthesizer
package llm

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/harper/vidrag/internal/config"
	"github.com/harper/vidrag/internal/models"
	"github.com/harper/vidrag/internal/util"
	openai "github.com/sashabaranov/go-openai"
)

// DefaultChatModel is the default model for chat completions.
const DefaultChatModel = "gpt-4o-mini"

// OpenAIClient wraps the OpenAI API client with retry logic.
type OpenAIClient struct {
	client     *openai.Client
	chatModel  string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
}

// NewOpenAIClient creates a client from configuration.
func NewOpenAIClient(cfg *config.Config) (*OpenAIClient, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = DefaultChatModel
	}

	return &OpenAIClient{
		client:     openai.NewClient(cfg.OpenAIKey),
		chatModel:  chatModel,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}, nil
}

// Complete sends one system/user exchange and returns the reply text.
// Transient failures are retried with exponential backoff.
func (c *OpenAIClient) Complete(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error) {
	var messages []openai.ChatCompletionMessage
	if system != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: user,
	})

	// The request marshals temperature with omitempty, so an exact 0
	// would fall back to the API default instead of greedy sampling.
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(util.CalculateBackoff(c.retryDelay, attempt)):
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
			Model:       c.chatModel,
			Messages:    messages,
			Temperature: temperature,
			MaxTokens:   maxTokens,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}

		return resp.Choices[0].Message.Content, nil
	}

	return "", &models.ProviderError{Provider: "openai", Op: "complete", Err: lastErr}
}
