/*
Package chatgraph provides graph-based orchestration for multi-agent
conversational workflows.

# Overview

chatgraph is a Go library for building and executing directed graphs where
nodes are conversational agents and edges define dispatch. It powers a
router-plus-agents chatbot: a router classifies each user message and hands
it to a general chat agent or a GitHub tool agent, all sharing one
append-only conversation state.

The library is inspired by LangGraph but built for Go with:
  - Type-safe generics for state management
  - Compile-time validation of graph structure and route tables
  - Thread-keyed checkpointing with save-time summarization
  - OpenTelemetry integration for observability

# Basic Usage

Create a graph with nodes and edges, then compile and run:

	func echo(ctx chatgraph.Context, st state.State) (state.State, error) {
	    last, _ := st.LastUserMessage()
	    return st.Append(state.Assistant("you said: " + last.Content)), nil
	}

	func main() {
	    graph := chatgraph.NewGraph[state.State]().
	        AddNode("echo", echo).
	        AddEdge("echo", chatgraph.END).
	        SetEntry("echo")

	    compiled, err := graph.Compile()
	    if err != nil {
	        log.Fatal(err)
	    }

	    ctx := chatgraph.NewContext(context.Background())
	    result, err := compiled.Run(ctx, state.State{}.Append(state.User("hi")))
	    if err != nil {
	        log.Fatal(err)
	    }
	    last, _ := result.LastMessage()
	    fmt.Println(last.Content) // "you said: hi"
	}

# Conditional Dispatch

Use conditional edges with a route table for decision points:

	graph.AddConditionalEdges("route", router.Route, map[string]string{
	    "chat_agent":   "chat_agent",
	    "github_agent": "github_agent",
	})

The router function returns a label; the table maps each label to a node ID
(or END). Every table target is validated at Compile() time, so an
unroutable label is a construction error rather than a runtime surprise. A
nil table makes the router's return value a node ID directly.

# State and Merging

state.State carries the conversation: an append-only message list plus a
summary. Agents return partial states and the agent.Node adapter merges
them:

	chatNode := agent.Node(chatAgent.Respond)

Merging concatenates message lists and overwrites scalar fields only when
the delta carries a non-zero value.

# Sessions and Checkpointing

The session package drives multi-turn conversations and persists them by
thread ID:

	store := checkpoint.NewFileStore("checkpoints")
	defer store.Close()

	mgr := session.NewManager(compiled, store,
	    session.WithLLM(client),
	    session.WithSummarizer(session.NewSummarizer(client)))
	if err := mgr.Run(ctx); err != nil {
	    log.Fatal(err)
	}

On save the conversation is summarized in a few sentences and written as
one snapshot per thread; resuming a thread replays its full message
history. File, SQLite, and in-memory backends are provided.

# LLM Integration

Nodes reach the completion client through the execution context:

	ctx := chatgraph.NewContext(context.Background(),
	    chatgraph.WithLLM(llm.NewRetryClient(
	        llm.NewOpenAIClient(apiKey), cgerrors.DefaultRetry)))

llm.OpenAIClient speaks the OpenAI-compatible chat-completions protocol
(DeepSeek by default); llm.RetryClient adds bounded exponential backoff
for transient failures.

# Observability

Enable logging, metrics, and tracing:

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	result, err := compiled.Run(ctx, st,
	    chatgraph.WithObservabilityLogger(logger),
	    chatgraph.WithMetrics(true),
	    chatgraph.WithTracing(true),
	    chatgraph.WithRunID("run-123"))

Logs include structured fields: run_id, node_id, duration_ms, attempt.
OpenTelemetry metrics: chatgraph.node.executions, chatgraph.route.decisions,
chatgraph.turns, chatgraph.checkpoint.size_bytes, etc.
OpenTelemetry tracing: chatgraph.run > chatgraph.node.{id} spans.

# Error Handling

Errors include context about which node failed:

	result, err := compiled.Run(ctx, st)
	var nodeErr *chatgraph.NodeError
	if errors.As(err, &nodeErr) {
	    log.Printf("Node %s failed: %v", nodeErr.NodeID, nodeErr.Err)
	}

	var routerErr *chatgraph.RouterError
	if errors.As(err, &routerErr) {
	    log.Printf("Router from %s returned %q", routerErr.FromNode, routerErr.Returned)
	}

Panics in nodes are recovered and converted to PanicError with stack trace.

# Thread Safety

  - Graph[S] is NOT safe for concurrent use during construction
  - CompiledGraph[S] IS safe for concurrent use (immutable)
  - Context IS safe for concurrent use
  - checkpoint.Store implementations are safe for concurrent use
  - session.Manager serializes turns per thread

# Subpackages

  - state: Conversation state, messages, and merge semantics
  - agent: Router, chat agent, and GitHub tool agent
  - llm: Completion client interface, OpenAI-compatible client, retry
  - github: Minimal GitHub REST client for the tool agent
  - checkpoint: Thread-keyed stores (file, SQLite, memory)
  - session: Thread identity, interactive loop, save-time summarization
  - config: YAML/JSON settings with environment overrides
  - observability: Logging, metrics, and tracing helpers
  - errors: Error taxonomy and retry with backoff
*/
package chatgraph
