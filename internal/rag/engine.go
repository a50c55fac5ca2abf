// ABOUTME: Conversation engine for one video: context carry-over, retrieval, synthesis
// ABOUTME: Owns the per-session state; one engine per conversation, no sharing
package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harper/vidrag/internal/llm"
	"github.com/harper/vidrag/internal/models"
	"github.com/harper/vidrag/internal/util"
)

// Canned replies for the two non-retrieval outcomes.
const (
	ackReply     = "You're welcome! Feel free to ask anything else about the video."
	noMatchReply = "I couldn't find relevant information in the video for that question. Could you rephrase it?"
)

// acknowledgments are bare courtesy tokens that short-circuit the whole
// retrieval/synthesis flow.
var acknowledgments = map[string]bool{
	"thanks":    true,
	"thank you": true,
	"ok":        true,
	"okay":      true,
}

// Engine answers questions about a single video. It is owned by one
// conversation session and is not safe for concurrent use.
type Engine struct {
	sessionID string
	videoID   string
	videoURL  string

	retriever *Retriever
	generator llm.Generator

	lastQuestion string
	lastChunks   []models.ScoredChunk
	history      []models.ConversationTurn
}

// NewEngine creates a conversation session over the video at videoURL.
func NewEngine(videoURL string, retriever *Retriever, generator llm.Generator) (*Engine, error) {
	videoID, err := util.ExtractVideoID(videoURL)
	if err != nil {
		return nil, err
	}

	return &Engine{
		sessionID: uuid.New().String(),
		videoID:   videoID,
		videoURL:  videoURL,
		retriever: retriever,
		generator: generator,
	}, nil
}

// SessionID identifies this conversation session.
func (e *Engine) SessionID() string {
	return e.sessionID
}

// VideoID returns the id of the video this session covers.
func (e *Engine) VideoID() string {
	return e.videoID
}

// Chat answers one question. Acknowledgments get a canned reply. A
// follow-up to the previous question reuses the previous chunk set
// without a new retrieval; otherwise the question is embedded and
// searched. Empty retrievals return a canned reply and leave the
// session state untouched.
func (e *Engine) Chat(ctx context.Context, query string) (*models.ChatResponse, error) {
	if acknowledgments[strings.ToLower(strings.TrimSpace(query))] {
		return &models.ChatResponse{Answer: ackReply, Sources: []models.Source{}}, nil
	}

	usePrior := false
	if e.lastQuestion != "" && len(e.lastChunks) > 0 {
		var err error
		usePrior, err = IsFollowUp(ctx, e.generator, e.lastQuestion, query)
		if err != nil {
			return nil, fmt.Errorf("classifying follow-up: %w", err)
		}
	}

	chunks := e.lastChunks
	if !usePrior {
		var err error
		chunks, err = e.retriever.Retrieve(ctx, query, e.videoID)
		if err != nil {
			return nil, fmt.Errorf("retrieving chunks: %w", err)
		}
	}

	if len(chunks) == 0 {
		return &models.ChatResponse{Answer: noMatchReply, Sources: []models.Source{}}, nil
	}

	answer, err := Synthesize(ctx, e.generator, query, chunks, e.history)
	if err != nil {
		return nil, fmt.Errorf("synthesizing answer: %w", err)
	}

	sources := make([]models.Source, len(chunks))
	for i, chunk := range chunks {
		sources[i] = models.Source{
			Timestamp: fmt.Sprintf("%ds - %ds", chunk.Start, chunk.End),
			Text:      chunk.Text,
			URL:       util.DeepLink(e.videoURL, chunk.Start),
		}
	}

	e.history = append(e.history, models.ConversationTurn{Question: query, Answer: answer})
	if !usePrior {
		// Keep the prior context through repeated follow-ups so they
		// all reference the same chunk set.
		e.lastQuestion = query
		e.lastChunks = chunks
	}

	return &models.ChatResponse{Answer: answer, Sources: sources}, nil
}

// StartNewChat resets the session: history, last question, and last
// retrieved chunks are all cleared.
func (e *Engine) StartNewChat() {
	e.lastQuestion = ""
	e.lastChunks = nil
	e.history = nil
}

// History returns the completed turns of this session.
func (e *Engine) History() []models.ConversationTurn {
	return e.history
}
