// ABOUTME: CLI command to ask a single question about an indexed video
// ABOUTME: Prints the grounded answer with timestamped source links
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/vidrag/internal/llm"
	"github.com/harper/vidrag/internal/models"
	"github.com/harper/vidrag/internal/rag"
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <video-url> <question>",
		Short: "Ask a question about an indexed video",
		Long: `Ask one question about an indexed video and print the answer
with its transcript sources.

For a multi-turn conversation with follow-up handling, use
'vidrag chat' instead.

Examples:
  vidrag ask "https://youtube.com/watch?v=dQw4w9WgXcQ" "What is the main topic?"
  vidrag ask --format json "https://youtu.be/dQw4w9WgXcQ" "How does it end?"`,
		Args: cobra.ExactArgs(2),
		RunE: runAsk,
	}

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	videoURL, question := args[0], args[1]

	s, err := newStack()
	if err != nil {
		return err
	}
	defer s.Close()

	generator, err := llm.NewOpenAIClient(s.cfg)
	if err != nil {
		return fmt.Errorf("initializing LLM client: %w", err)
	}

	retriever := rag.NewRetriever(s.embedder, s.store, s.cfg.TopK)
	engine, err := rag.NewEngine(videoURL, retriever, generator)
	if err != nil {
		return fmt.Errorf("parsing video URL: %w", err)
	}

	resp, err := engine.Chat(cmd.Context(), question)
	if err != nil {
		return fmt.Errorf("answering question: %w", err)
	}

	return printResponse(cmd, resp)
}

// printResponse writes a chat response in the selected output format.
func printResponse(cmd *cobra.Command, resp *models.ChatResponse) error {
	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", resp.Answer)

	if len(resp.Sources) > 0 && !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nSources:\n")
		for _, source := range resp.Sources {
			fmt.Fprintf(cmd.OutOrStdout(), "  [%s] %s\n", source.Timestamp, truncate(source.Text, 70))
			fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", source.URL)
		}
	}
	return nil
}
