// ABOUTME: Follow-up classifier deciding whether to reuse the prior retrieval
// ABOUTME: Single deterministic yes/no completion over the two questions
package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/vidrag/internal/llm"
)

const followUpPromptFormat = `Given these two questions, is the second one a follow-up to the first one?
Consider it a follow-up if it's:
1. Asking for more details about the same topic
2. Referring to something mentioned in the first question
3. Using pronouns like "it", "that", "this" referring to the first question
4. Asking for clarification about the first question

Question 1: %s
Question 2: %s

Answer with just 'yes' or 'no'.`

// IsFollowUp asks the generation capability whether current continues
// previous. The model runs at its least random setting and the reply is
// normalized by exact case-insensitive match against "yes"; anything
// else means a fresh retrieval.
func IsFollowUp(ctx context.Context, gen llm.Generator, previous, current string) (bool, error) {
	prompt := fmt.Sprintf(followUpPromptFormat, previous, current)

	reply, err := gen.Complete(ctx, "", prompt, 0, 10)
	if err != nil {
		return false, err
	}

	return strings.EqualFold(strings.TrimSpace(reply), "yes"), nil
}
