package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/andreinakagawa/agentic-ai-basic-cli/agent"
	"github.com/andreinakagawa/agentic-ai-basic-cli/internal/cli"
	"github.com/andreinakagawa/agentic-ai-basic-cli/internal/config"
	"github.com/andreinakagawa/agentic-ai-basic-cli/internal/provider"
	"github.com/andreinakagawa/agentic-ai-basic-cli/internal/textstat"
	"github.com/andreinakagawa/agentic-ai-basic-cli/session"
	"github.com/andreinakagawa/agentic-ai-basic-cli/tools"
)

func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Chat with the agent",
		Long: `Start a conversation with the agent. Pass a message for a single
exchange or no arguments for an interactive session.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runChat,
	}

	cmd.Flags().StringP("model", "m", "", "model to use for the anthropic backend")
	cmd.Flags().StringP("agent", "a", "", "agent backend: mock or anthropic")
	cmd.Flags().String("system", "", "system prompt to seed the session with")
	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Parent().PersistentFlags().GetBool("verbose")
	setupLogging(cfg.LogLevel, verbose)

	ctrl, err := buildController(cmd, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(args) > 0 {
		return runOneShot(ctx, ctrl, args[0])
	}
	return runInteractive(ctx, ctrl)
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Parent().PersistentFlags().GetString("config")
	if path == "" {
		path = config.FindConfigFile()
	}
	var cfg *config.Config
	if path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.Load()
	}

	if v, _ := cmd.Flags().GetString("agent"); v != "" {
		cfg.Agent = v
	}
	if v, _ := cmd.Flags().GetString("model"); v != "" {
		cfg.Model = v
	}
	return cfg, cfg.Validate()
}

// buildController assembles the session: backend selection, validated config,
// and optional system prompt seeding.
func buildController(cmd *cobra.Command, cfg *config.Config) (*session.Controller, error) {
	sc, err := cfg.Session()
	if err != nil {
		return nil, err
	}

	var backend agent.Agent
	switch cfg.Agent {
	case "anthropic":
		if os.Getenv("ANTHROPIC_API_KEY") == "" {
			slog.Warn("ANTHROPIC_API_KEY not set, falling back to mock backend")
			backend = &agent.Mock{}
			break
		}
		model := provider.DefaultModel
		if cfg.Model != "" {
			model = anthropic.Model(cfg.Model)
		}
		backend = provider.NewAnthropic(provider.NewClient(), model, tools.Registry())
	default:
		backend = &agent.Mock{}
	}

	ctrl, err := session.New(backend, sc)
	if err != nil {
		return nil, err
	}

	prompt := cfg.SystemPrompt
	if v, _ := cmd.Flags().GetString("system"); v != "" {
		prompt = v
	}
	if prompt != "" {
		ctrl.AppendSystem(prompt, textstat.EstimateTokens(prompt))
	}

	slog.Debug("session ready",
		"session_id", ctrl.Info().ID,
		"backend", cfg.Agent,
		"context_window", sc.ContextWindow)
	return ctrl, nil
}

func runOneShot(ctx context.Context, ctrl *session.Controller, input string) error {
	res, err := ctrl.Turn(ctx, input)
	if err != nil {
		return err
	}
	fmt.Println(cli.AssistantReply(res.Output))
	if res.CleanupOccurred {
		fmt.Println(cli.CleanupNotice(*res))
	}
	return nil
}

func runInteractive(ctx context.Context, ctrl *session.Controller) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cli.UserPrompt(),
		HistoryFile:     filepath.Join(os.TempDir(), "agentic_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "/exit",
	})
	if err != nil {
		return fmt.Errorf("init readline: %w", err)
	}
	defer rl.Close()

	fmt.Println(cli.Welcome(ctrl.Info()))

	for {
		if ctx.Err() != nil {
			break
		}

		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if strings.TrimSpace(line) == "" {
				break
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		cmd, err := cli.Parse(line)
		if err != nil {
			fmt.Println(cli.Error(err))
			continue
		}

		switch cmd.Kind {
		case cli.KindExit:
			fmt.Println(cli.Goodbye(ctrl.Info()))
			return nil
		case cli.KindHelp:
			fmt.Println(cli.Help())
		case cli.KindSession:
			fmt.Println(cli.SessionInfo(ctrl.Info()))
		case cli.KindClear:
			ctrl.Clear()
			fmt.Println(cli.ContextUsage(ctrl.Info()))
		case cli.KindExport:
			path, err := cli.Export(cmd.Arg, ctrl.Info(), ctrl.History())
			if err != nil {
				fmt.Println(cli.Error(err))
				continue
			}
			fmt.Printf("transcript written to %s\n", path)
		case cli.KindMessage:
			if cmd.Arg == "" {
				continue
			}
			runTurn(ctx, ctrl, cmd.Arg)
		}
	}

	fmt.Println(cli.Goodbye(ctrl.Info()))
	return nil
}

// runTurn executes one exchange and renders the outcome. Collaborator
// failures are recoverable: the error is shown and the loop continues.
func runTurn(ctx context.Context, ctrl *session.Controller, input string) {
	res, err := ctrl.Turn(ctx, input)
	if err != nil {
		var agentErr *session.AgentError
		if errors.As(err, &agentErr) {
			fmt.Println(cli.Error(agentErr))
			return
		}
		fmt.Println(cli.Error(err))
		return
	}

	fmt.Println(cli.AssistantReply(res.Output))
	if res.CleanupOccurred {
		fmt.Println(cli.CleanupNotice(*res))
	}
	slog.Debug("turn finished",
		"usage", fmt.Sprintf("%.2f", res.Usage),
		"band", res.Band.String())
}
