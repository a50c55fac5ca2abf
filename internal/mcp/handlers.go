// ABOUTME: MCP tool handler implementations for the video RAG server
// ABOUTME: Keeps one conversation engine per video, created on first use
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/harper/vidrag/internal/config"
	"github.com/harper/vidrag/internal/embed"
	"github.com/harper/vidrag/internal/llm"
	"github.com/harper/vidrag/internal/rag"
	"github.com/harper/vidrag/internal/store"
	"github.com/harper/vidrag/internal/transcript"
	"github.com/harper/vidrag/internal/util"
	"github.com/mark3labs/mcp-go/mcp"
)

// sessionEntry pairs a conversation engine with the URL it was opened
// for, so deep links keep the caller's original URL form.
type sessionEntry struct {
	videoURL string
	engine   *rag.Engine
}

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	cfg       *config.Config
	embedder  embed.Embedder
	store     store.VectorStore
	generator llm.Generator

	mu       *sync.Mutex
	sessions map[string]*sessionEntry
}

// engineFor returns the conversation engine for the video, creating one
// on first use. Sessions are keyed by video id so equivalent URL forms
// share a session.
func (h *Handlers) engineFor(videoURL string) (*rag.Engine, error) {
	videoID, err := util.ExtractVideoID(videoURL)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if entry, ok := h.sessions[videoID]; ok {
		return entry.engine, nil
	}

	retriever := rag.NewRetriever(h.embedder, h.store, h.cfg.TopK)
	engine, err := rag.NewEngine(videoURL, retriever, h.generator)
	if err != nil {
		return nil, err
	}
	h.sessions[videoID] = &sessionEntry{videoURL: videoURL, engine: engine}
	return engine, nil
}

// IndexVideo handles the index_video tool
func (h *Handlers) IndexVideo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	videoURL, err := request.RequireString("video_url")
	if err != nil {
		return mcp.NewToolResultError("video_url argument is required and must be a string"), nil
	}
	transcriptPath, err := request.RequireString("transcript_path")
	if err != nil {
		return mcp.NewToolResultError("transcript_path argument is required and must be a string"), nil
	}

	videoID, err := util.ExtractVideoID(videoURL)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid video URL: %v", err)), nil
	}

	windower, err := transcript.NewWindower(h.cfg.ChunkSeconds, h.cfg.OverlapSeconds)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid chunking configuration: %v", err)), nil
	}

	indexer := rag.NewIndexer(windower, h.embedder, h.store, h.cfg.UpsertBatch)
	result, err := indexer.IndexFile(ctx, videoID, transcriptPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("indexing failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"video_id": result.VideoID,
		"segments": result.Segments,
		"chunks":   result.Chunks,
		"skipped":  result.Skipped,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// AskVideo handles the ask_video tool
func (h *Handlers) AskVideo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	videoURL, err := request.RequireString("video_url")
	if err != nil {
		return mcp.NewToolResultError("video_url argument is required and must be a string"), nil
	}
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}

	engine, err := h.engineFor(videoURL)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid video URL: %v", err)), nil
	}

	chatResp, err := engine.Chat(ctx, question)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("chat failed: %v", err)), nil
	}

	sources := make([]map[string]interface{}, 0, len(chatResp.Sources))
	for _, source := range chatResp.Sources {
		sources = append(sources, map[string]interface{}{
			"timestamp": source.Timestamp,
			"text":      source.Text,
			"url":       source.URL,
		})
	}

	response := map[string]interface{}{
		"session_id": engine.SessionID(),
		"answer":     chatResp.Answer,
		"sources":    sources,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// FindMoment handles the find_moment tool
func (h *Handlers) FindMoment(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	videoURL, err := request.RequireString("video_url")
	if err != nil {
		return mcp.NewToolResultError("video_url argument is required and must be a string"), nil
	}
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	limit := request.GetInt("limit", h.cfg.TopK)
	if limit < 1 {
		limit = h.cfg.TopK
	}

	videoID, err := util.ExtractVideoID(videoURL)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid video URL: %v", err)), nil
	}

	retriever := rag.NewRetriever(h.embedder, h.store, limit)
	chunks, err := retriever.Retrieve(ctx, query, videoID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	moments := make([]map[string]interface{}, 0, len(chunks))
	for _, chunk := range chunks {
		moments = append(moments, map[string]interface{}{
			"start":      chunk.Start,
			"end":        chunk.End,
			"text":       chunk.Text,
			"similarity": chunk.Score,
			"url":        util.DeepLink(videoURL, chunk.Start),
		})
	}

	response := map[string]interface{}{
		"video_id": videoID,
		"moments":  moments,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// NewChat handles the new_chat tool
func (h *Handlers) NewChat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	videoURL, err := request.RequireString("video_url")
	if err != nil {
		return mcp.NewToolResultError("video_url argument is required and must be a string"), nil
	}

	engine, err := h.engineFor(videoURL)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid video URL: %v", err)), nil
	}
	engine.StartNewChat()

	response := map[string]interface{}{
		"session_id": engine.SessionID(),
		"video_id":   engine.VideoID(),
		"reset":      true,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}
