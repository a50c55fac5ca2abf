// ABOUTME: CLI command for an interactive conversation about a video
// ABOUTME: REPL over stdin with follow-up context carry-over and /new reset
package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/vidrag/internal/llm"
	"github.com/harper/vidrag/internal/rag"
)

// NewChatCmd creates the chat command
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat <video-url>",
		Short: "Have a conversation about an indexed video",
		Long: `Start an interactive conversation about an indexed video.

Follow-up questions reuse the context of the previous answer, so
"tell me more about that" works. Type /new to start a fresh
conversation and /exit (or Ctrl-D) to quit.

Examples:
  vidrag chat "https://youtube.com/watch?v=dQw4w9WgXcQ"`,
		Args: cobra.ExactArgs(1),
		RunE: runChat,
	}

	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	videoURL := args[0]

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

	out := cmd.OutOrStdout()
	if !quiet {
		fmt.Fprintf(out, "Chatting about video %s (session %s)\n", engine.VideoID(), engine.SessionID())
		fmt.Fprintln(out, "Type /new for a fresh conversation, /exit to quit.")
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/exit" || line == "/quit":
			return scanner.Err()
		case line == "/new":
			engine.StartNewChat()
			if !quiet {
				fmt.Fprintln(out, "Started a new conversation.")
			}
			continue
		}

		resp, err := engine.Chat(cmd.Context(), line)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			continue
		}

		if err := printResponse(cmd, resp); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}

	return scanner.Err()
}
