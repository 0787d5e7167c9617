// Package commands implements the CLI commands for the agentic chat tool.
package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the root command with all subcommands registered.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "agentic",
		Short: "Conversational agent CLI with bounded context",
		Long: `agentic runs chat sessions against a pluggable agent backend while
keeping the conversation inside a fixed token budget. When usage crosses the
cleanup threshold, the oldest messages are trimmed automatically.

Examples:
  agentic chat                 # interactive session
  agentic chat "quick question"
  agentic chat --agent mock    # offline deterministic backend`,
		Version: version,
	}

	rootCmd.AddCommand(newChatCmd())

	rootCmd.PersistentFlags().StringP("config", "c", "", "path to the configuration file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	return rootCmd
}

// setupLogging installs the default slog logger. The verbose flag wins over
// the configured level.
func setupLogging(level string, verbose bool) {
	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
