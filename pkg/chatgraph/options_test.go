package chatgraph

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRunConfig(t *testing.T) {
	cfg := defaultRunConfig()

	assert.Equal(t, 1000, cfg.maxIterations)
	assert.NotNil(t, cfg.metrics)
	assert.NotNil(t, cfg.spans)
	assert.False(t, cfg.tracingEnabled)
	assert.Nil(t, cfg.logger)
}

func TestWithMaxIterations_IgnoresNonPositive(t *testing.T) {
	cfg := defaultRunConfig()
	WithMaxIterations(0)(&cfg)
	assert.Equal(t, 1000, cfg.maxIterations)

	WithMaxIterations(-3)(&cfg)
	assert.Equal(t, 1000, cfg.maxIterations)

	WithMaxIterations(7)(&cfg)
	assert.Equal(t, 7, cfg.maxIterations)
}

func TestWithRunID_OverridesContextRunID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	g := NewGraph[Counter]().
		AddNode("a", increment).
		AddEdge("a", END).
		SetEntry("a")

	compiled, err := g.Compile()
	require.NoError(t, err)

	_, err = compiled.Run(testCtx(), Counter{},
		WithRunID("override-id"),
		WithObservabilityLogger(logger),
	)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "override-id")
}

func TestWithObservabilityLogger_LogsLifecycle(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	router := func(_ Context, _ Counter) string { return "work" }
	g := NewGraph[Counter]().
		AddNode("route", Passthrough[Counter]).
		AddNode("work", increment).
		AddConditionalEdges("route", router, map[string]string{"work": "work"}).
		AddEdge("work", END).
		SetEntry("route")

	compiled, err := g.Compile()
	require.NoError(t, err)

	_, err = compiled.Run(testCtx(), Counter{}, WithObservabilityLogger(logger))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "graph run starting")
	assert.Contains(t, out, "route decided")
	assert.Contains(t, out, "graph run completed")
}

func TestRunWithTracingEnabled(t *testing.T) {
	g := NewGraph[Counter]().
		AddNode("a", increment).
		AddEdge("a", END).
		SetEntry("a")

	compiled, err := g.Compile()
	require.NoError(t, err)

	// Without a configured provider this exercises the no-op tracer path.
	result, err := compiled.Run(testCtx(), Counter{}, WithTracing(true), WithMetrics(true))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Value)
}
