// ABOUTME: Generator capability interface for chat completions
// ABOUTME: Implemented by the OpenAI client; faked in tests
package llm

import "context"

// Generator produces a completion for a system/user message pair.
// Temperature 0 asks for the provider's least random output; maxTokens
// bounds the reply length.
type Generator interface {
	Complete(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error)
}
