// Package session drives multi-turn conversations over a compiled graph:
// it owns thread identity, the interactive loop, and checkpoint persistence
// with save-time summarization.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	chatgraph "github.com/randalmurphal/chatgraph/pkg/chatgraph"
	"github.com/randalmurphal/chatgraph/pkg/chatgraph/checkpoint"
	"github.com/randalmurphal/chatgraph/pkg/chatgraph/llm"
	"github.com/randalmurphal/chatgraph/pkg/chatgraph/observability"
	"github.com/randalmurphal/chatgraph/pkg/chatgraph/state"
)

// exitWords end the interactive loop and save the thread.
var exitWords = map[string]bool{"exit": true, "quit": true, "bye": true}

// NewThreadID generates a fresh thread identifier. IDs are lowercase ULIDs,
// so they sort by creation time and are safe as file names and table keys.
func NewThreadID() string {
	return strings.ToLower(ulid.Make().String())
}

// Manager runs conversation turns against a compiled graph and persists
// them to a checkpoint store. Turns on the same thread are serialized; a
// Manager may drive many threads concurrently.
type Manager struct {
	graph      *chatgraph.CompiledGraph[state.State]
	store      checkpoint.Store
	summarizer *Summarizer
	llmClient  llm.Client
	logger     *slog.Logger
	metrics    observability.MetricsRecorder
	in         io.Reader
	out        io.Writer

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the logger used for turn and checkpoint events.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) { m.logger = logger }
}

// WithSummarizer sets the save-time conversation summarizer.
// Without one, checkpoints are saved with the last known summary.
func WithSummarizer(s *Summarizer) ManagerOption {
	return func(m *Manager) { m.summarizer = s }
}

// WithLLM sets the completion client exposed to graph nodes.
func WithLLM(client llm.Client) ManagerOption {
	return func(m *Manager) { m.llmClient = client }
}

// WithMetrics sets the metrics recorder for turns and checkpoint saves.
func WithMetrics(rec observability.MetricsRecorder) ManagerOption {
	return func(m *Manager) { m.metrics = rec }
}

// WithIO sets the reader and writer for the interactive loop.
// Defaults to stdin and stdout.
func WithIO(in io.Reader, out io.Writer) ManagerOption {
	return func(m *Manager) {
		m.in = in
		m.out = out
	}
}

// NewManager creates a session manager over a compiled graph and store.
func NewManager(graph *chatgraph.CompiledGraph[state.State], store checkpoint.Store, opts ...ManagerOption) *Manager {
	m := &Manager{
		graph:   graph,
		store:   store,
		logger:  slog.Default(),
		metrics: observability.NoopMetrics{},
		in:      os.Stdin,
		out:     os.Stdout,
		locks:   make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// threadLock returns the mutex serializing turns for one thread.
func (m *Manager) threadLock(threadID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	lock, ok := m.locks[threadID]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[threadID] = lock
	}
	return lock
}

// Load returns the persisted state for a thread. A thread that has never
// been saved yields an empty state, not an error.
func (m *Manager) Load(threadID string) (state.State, error) {
	cp, err := m.store.Load(threadID)
	if errors.Is(err, checkpoint.ErrNotFound) {
		return state.State{}, nil
	}
	if err != nil {
		observability.LogCheckpointError(m.logger, threadID, "load", err)
		return state.State{}, fmt.Errorf("load thread %s: %w", threadID, err)
	}
	return cp.State(), nil
}

// Turn appends the user's input to the state and runs the graph once.
// Turns on the same thread never interleave.
func (m *Manager) Turn(ctx context.Context, threadID, input string, st state.State) (state.State, error) {
	lock := m.threadLock(threadID)
	lock.Lock()
	defer lock.Unlock()

	start := time.Now()
	gctx := chatgraph.NewContext(ctx,
		chatgraph.WithLogger(m.logger),
		chatgraph.WithLLM(m.llmClient),
	)

	next, err := m.graph.Run(gctx, st.Append(state.User(input)),
		chatgraph.WithObservabilityLogger(m.logger),
	)
	elapsed := time.Since(start)
	m.metrics.RecordTurn(ctx, err == nil, elapsed)
	if err != nil {
		return st, fmt.Errorf("turn on thread %s: %w", threadID, err)
	}

	observability.LogTurn(m.logger, threadID, float64(elapsed.Milliseconds()), next.Len())
	return next, nil
}

// Save summarizes the conversation and persists it for later resumption.
// A summarization failure degrades to saving without a fresh summary; a
// store failure is returned to the caller.
func (m *Manager) Save(ctx context.Context, threadID string, st state.State) error {
	if m.summarizer != nil && st.Len() > 0 {
		summary, err := m.summarizer.Summarize(ctx, st)
		if err != nil {
			m.logger.Warn("summarization failed, saving without fresh summary",
				"thread_id", threadID, "error", err)
		} else {
			st.Summary = summary
		}
	}

	cp := checkpoint.New(threadID, st)
	if err := m.store.Save(cp); err != nil {
		observability.LogCheckpointError(m.logger, threadID, "save", err)
		return fmt.Errorf("save thread %s: %w", threadID, err)
	}

	observability.LogCheckpointSave(m.logger, threadID, st.Len())
	if data, err := cp.Marshal(); err == nil {
		m.metrics.RecordCheckpoint(ctx, threadID, int64(len(data)))
	}
	return nil
}

// Run drives the interactive loop: prompt for a thread ID, replay its
// state, then alternate user input and graph turns until an exit word or
// EOF, saving the thread on the way out.
func (m *Manager) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(m.in)

	fmt.Fprint(m.out, "Enter chat ID (or press enter to start new): ")
	threadID := ""
	if scanner.Scan() {
		threadID = strings.TrimSpace(scanner.Text())
	}
	if threadID == "" {
		threadID = NewThreadID()
		fmt.Fprintf(m.out, "🆕 New conversation started: %s\n", threadID)
	} else {
		fmt.Fprintf(m.out, "🔁 Resuming conversation: %s\n", threadID)
	}

	st, err := m.Load(threadID)
	if err != nil {
		return err
	}

	for {
		fmt.Fprint(m.out, "\nYou: ")
		if !scanner.Scan() {
			// EOF ends the session like an exit word would.
			break
		}
		input := scanner.Text()

		if exitWords[strings.ToLower(strings.TrimSpace(input))] {
			break
		}

		next, err := m.Turn(ctx, threadID, input, st)
		if err != nil {
			fmt.Fprintf(m.out, "⚠️ Error during graph invocation: %v\n", err)
			continue
		}
		st = next

		if last, ok := st.LastMessage(); ok {
			fmt.Fprintf(m.out, "\nAI: %s\n", last.Content)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	if err := m.Save(ctx, threadID, st); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "\n💾 Saved. Resume using ID: %s\n", threadID)
	return nil
}
