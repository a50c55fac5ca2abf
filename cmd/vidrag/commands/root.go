// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Defines the vidrag banner and verbose/quiet/format handling
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
██╗   ██╗██╗██████╗ ██████╗  █████╗  ██████╗
██║   ██║██║██╔══██╗██╔══██╗██╔══██╗██╔════╝
██║   ██║██║██║  ██║██████╔╝███████║██║  ███╗
╚██╗ ██╔╝██║██║  ██║██╔══██╗██╔══██║██║   ██║
 ╚████╔╝ ██║██████╔╝██║  ██║██║  ██║╚██████╔╝
  ╚═══╝  ╚═╝╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝ ╚═════╝`

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vidrag",
		Short: "Ask questions about video transcripts",
		Long: banner + `

vidrag indexes timestamped video transcripts and answers questions
about them with sources that deep-link into the video.

Index a transcript once, then ask questions or search for moments.
Follow-up questions reuse the context of the previous answer.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format (auto, table, json)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(
		NewIndexCmd(),
		NewAskCmd(),
		NewChatCmd(),
		NewSearchCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
