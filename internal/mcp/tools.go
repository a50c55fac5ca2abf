// ABOUTME: MCP tool definitions and registration for the video RAG server
// ABOUTME: Defines JSON schemas for the 4 transcript tools
package mcp

import (
	"sync"

	"github.com/harper/vidrag/internal/config"
	"github.com/harper/vidrag/internal/embed"
	"github.com/harper/vidrag/internal/llm"
	"github.com/harper/vidrag/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, cfg *config.Config, embedder embed.Embedder, vs store.VectorStore, generator llm.Generator) *Handlers {
	handlers := &Handlers{
		cfg:       cfg,
		embedder:  embedder,
		store:     vs,
		generator: generator,
		sessions:  make(map[string]*sessionEntry),
		mu:        &sync.Mutex{},
	}

	// 1. index_video - Chunk and embed a transcript into the vector store
	server.AddTool(mcp.Tool{
		Name:        "index_video",
		Description: "Index a video transcript so its content can be searched and asked about. Videos that are already indexed are skipped.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"video_url": map[string]interface{}{
					"type":        "string",
					"description": "YouTube URL of the video",
				},
				"transcript_path": map[string]interface{}{
					"type":        "string",
					"description": "Path to the transcript file with [HH:MM:SS] timestamped lines",
				},
			},
			Required: []string{"video_url", "transcript_path"},
		},
	}, handlers.IndexVideo)

	// 2. ask_video - Conversational Q&A over an indexed video
	server.AddTool(mcp.Tool{
		Name:        "ask_video",
		Description: "Ask a question about an indexed video. Follow-up questions reuse the context of the previous answer within the same session.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"video_url": map[string]interface{}{
					"type":        "string",
					"description": "YouTube URL of the video",
				},
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Question about the video content",
				},
			},
			Required: []string{"video_url", "question"},
		},
	}, handlers.AskVideo)

	// 3. find_moment - Raw similarity search without synthesis
	server.AddTool(mcp.Tool{
		Name:        "find_moment",
		Description: "Find the transcript moments most similar to a query, with timestamps and deep links. Returns raw matches without generating an answer.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"video_url": map[string]interface{}{
					"type":        "string",
					"description": "YouTube URL of the video",
				},
				"query": map[string]interface{}{
					"type":        "string",
					"description": "What to look for in the video",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of moments to return (default: 3)",
					"default":     3,
				},
			},
			Required: []string{"video_url", "query"},
		},
	}, handlers.FindMoment)

	// 4. new_chat - Reset the conversation session for a video
	server.AddTool(mcp.Tool{
		Name:        "new_chat",
		Description: "Start a fresh conversation about a video, clearing the previous question context and history.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"video_url": map[string]interface{}{
					"type":        "string",
					"description": "YouTube URL of the video",
				},
			},
			Required: []string{"video_url"},
		},
	}, handlers.NewChat)

	return handlers
}
