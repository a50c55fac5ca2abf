// ABOUTME: Answer synthesis from retrieved excerpts plus short history
// ABOUTME: Grounded prompt with timestamped excerpt lines and the last two turns
package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/vidrag/internal/llm"
	"github.com/harper/vidrag/internal/models"
)

const (
	synthesizerSystemPrompt = "You are a helpful AI that answers questions about videos based on their transcripts."

	// Natural phrasing over determinism for the final answer.
	synthesizerTemperature = 0.7
	synthesizerMaxTokens   = 200

	// How many prior turns the prompt carries.
	historyTail = 2
)

// Synthesize builds a grounded prompt from the retrieved chunks and the
// tail of the conversation, and asks the generation capability to
// answer using only the supplied excerpts.
func Synthesize(ctx context.Context, gen llm.Generator, query string, chunks []models.ScoredChunk, history []models.ConversationTurn) (string, error) {
	if len(history) > historyTail {
		history = history[len(history)-historyTail:]
	}

	var historyLines []string
	for _, turn := range history {
		historyLines = append(historyLines,
			fmt.Sprintf("Human: %s\nAssistant: %s", turn.Question, turn.Answer))
	}

	var excerptLines []string
	for _, chunk := range chunks {
		excerptLines = append(excerptLines,
			fmt.Sprintf("[%ds - %ds]: %s", chunk.Start, chunk.End, chunk.Text))
	}

	prompt := fmt.Sprintf(`Answer the question based on these video transcript excerpts and our conversation history.
Use only information from the provided excerpts.

Previous conversation:
%s

Video transcript excerpts:
%s

Question: %s

Answer: `,
		strings.Join(historyLines, "\n"),
		strings.Join(excerptLines, "\n"),
		query)

	answer, err := gen.Complete(ctx, synthesizerSystemPrompt, prompt, synthesizerTemperature, synthesizerMaxTokens)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(answer), nil
}
