// Command chatgraph runs the interactive routing chatbot: a router
// classifies each message and dispatches to a chat agent or a GitHub tool
// agent, with conversations checkpointed by thread ID.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	chatgraph "github.com/randalmurphal/chatgraph/pkg/chatgraph"
	"github.com/randalmurphal/chatgraph/pkg/chatgraph/agent"
	"github.com/randalmurphal/chatgraph/pkg/chatgraph/checkpoint"
	"github.com/randalmurphal/chatgraph/pkg/chatgraph/config"
	cgerrors "github.com/randalmurphal/chatgraph/pkg/chatgraph/errors"
	"github.com/randalmurphal/chatgraph/pkg/chatgraph/github"
	"github.com/randalmurphal/chatgraph/pkg/chatgraph/llm"
	"github.com/randalmurphal/chatgraph/pkg/chatgraph/session"
	"github.com/randalmurphal/chatgraph/pkg/chatgraph/state"
)

func main() {
	configPath := flag.String("config", "", "path to config file (.yaml or .json)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Critical error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	settings, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := newLogger(settings.Log)
	slog.SetDefault(logger)

	// LLM client with retry on transient failures.
	retryCfg := cgerrors.DefaultRetry
	retryCfg.MaxAttempts = settings.LLM.MaxRetries
	client := llm.NewRetryClient(
		llm.NewOpenAIClient(settings.LLM.APIKey,
			llm.WithBaseURL(settings.LLM.BaseURL),
			llm.WithModel(settings.LLM.Model),
			llm.WithTemperature(settings.LLM.Temperature),
			llm.WithTimeout(settings.LLM.Timeout.Std()),
		),
		retryCfg,
	)

	gh := github.NewClient(settings.GitHub.Token,
		github.WithBaseURL(settings.GitHub.BaseURL),
		github.WithTimeout(settings.GitHub.Timeout.Std()),
	)

	store, err := newStore(settings.Checkpoint)
	if err != nil {
		return err
	}
	defer store.Close()

	router := agent.NewRouter(client)
	chatAgent := agent.NewChatAgent(client)
	githubAgent := agent.NewGitHubAgent(client, gh)

	graph := chatgraph.NewGraph[state.State]().
		AddNode("route", chatgraph.Passthrough[state.State]).
		AddNode("chat_agent", agent.Node(chatAgent.Respond)).
		AddNode("github_agent", agent.Node(githubAgent.Respond)).
		AddConditionalEdges("route", router.Route, map[string]string{
			agent.LabelChatAgent:   "chat_agent",
			agent.LabelGitHubAgent: "github_agent",
		}).
		AddEdge("chat_agent", chatgraph.END).
		AddEdge("github_agent", chatgraph.END).
		SetEntry("route")

	compiled, err := graph.Compile()
	if err != nil {
		return fmt.Errorf("compile graph: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mgr := session.NewManager(compiled, store,
		session.WithLogger(logger),
		session.WithLLM(client),
		session.WithSummarizer(session.NewSummarizer(client)),
	)

	fmt.Println("🤖 chatgraph (DeepSeek + GitHub agent with routing)")
	return mgr.Run(ctx)
}

// newLogger builds a slog logger from log settings.
func newLogger(cfg config.LogSettings) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// newStore builds the configured checkpoint backend.
func newStore(cfg config.CheckpointSettings) (checkpoint.Store, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return checkpoint.NewFileStore(cfg.Dir), nil
	case config.BackendSQLite:
		return checkpoint.NewSQLiteStore(cfg.Path)
	case config.BackendMemory:
		return checkpoint.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown checkpoint backend %q", cfg.Backend)
	}
}
