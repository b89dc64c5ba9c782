package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHandler captures log records for testing.
type testHandler struct {
	buf   *bytes.Buffer
	level slog.Level
	attrs []slog.Attr
}

func newTestHandler() *testHandler {
	return &testHandler{
		buf:   &bytes.Buffer{},
		level: slog.LevelDebug,
	}
}

func (h *testHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *testHandler) Handle(_ context.Context, r slog.Record) error {
	data := map[string]any{
		"level": r.Level.String(),
		"msg":   r.Message,
	}

	for _, attr := range h.attrs {
		data[attr.Key] = attr.Value.Any()
	}

	r.Attrs(func(a slog.Attr) bool {
		data[a.Key] = a.Value.Any()
		return true
	})

	return json.NewEncoder(h.buf).Encode(data)
}

func (h *testHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newH := &testHandler{
		buf:   h.buf,
		level: h.level,
		attrs: make([]slog.Attr, len(h.attrs)+len(attrs)),
	}
	copy(newH.attrs, h.attrs)
	copy(newH.attrs[len(h.attrs):], attrs)
	return newH
}

func (h *testHandler) WithGroup(string) slog.Handler {
	return h
}

// lastRecord decodes the most recent log record from the handler.
func (h *testHandler) lastRecord(t *testing.T) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(h.buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)

	var data map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &data))
	return data
}

func TestLogRunStart(t *testing.T) {
	h := newTestHandler()
	logger := slog.New(h)

	LogRunStart(logger, "run-123")

	rec := h.lastRecord(t)
	assert.Equal(t, "graph run starting", rec["msg"])
	assert.Equal(t, "run-123", rec["run_id"])
}

func TestLogRunComplete(t *testing.T) {
	h := newTestHandler()
	logger := slog.New(h)

	LogRunComplete(logger, "run-123", 42.0, 3)

	rec := h.lastRecord(t)
	assert.Equal(t, "graph run completed", rec["msg"])
	assert.Equal(t, 42.0, rec["duration_ms"])
	assert.Equal(t, float64(3), rec["nodes_executed"])
}

func TestLogRunError(t *testing.T) {
	h := newTestHandler()
	logger := slog.New(h)

	LogRunError(logger, "run-123", errors.New("boom"), 10.0, "chat_agent")

	rec := h.lastRecord(t)
	assert.Equal(t, "graph run failed", rec["msg"])
	assert.Equal(t, "ERROR", rec["level"])
	assert.Equal(t, "boom", rec["error"])
	assert.Equal(t, "chat_agent", rec["last_node"])
}

func TestLogNodeLifecycle(t *testing.T) {
	h := newTestHandler()
	logger := slog.New(h)

	LogNodeStart(logger, "route")
	rec := h.lastRecord(t)
	assert.Equal(t, "node starting", rec["msg"])
	assert.Equal(t, "route", rec["node_id"])

	LogNodeComplete(logger, "route", 5.0)
	rec = h.lastRecord(t)
	assert.Equal(t, "node completed", rec["msg"])

	LogNodeError(logger, "route", errors.New("bad"))
	rec = h.lastRecord(t)
	assert.Equal(t, "node failed", rec["msg"])
	assert.Equal(t, "bad", rec["error"])
}

func TestLogRouteDecision(t *testing.T) {
	h := newTestHandler()
	logger := slog.New(h)

	LogRouteDecision(logger, "route", "github_agent", "github_agent")

	rec := h.lastRecord(t)
	assert.Equal(t, "route decided", rec["msg"])
	assert.Equal(t, "route", rec["from_node"])
	assert.Equal(t, "github_agent", rec["label"])
}

func TestLogTurn(t *testing.T) {
	h := newTestHandler()
	logger := slog.New(h)

	LogTurn(logger, "thread-1", 120.0, 4)

	rec := h.lastRecord(t)
	assert.Equal(t, "turn completed", rec["msg"])
	assert.Equal(t, "thread-1", rec["thread_id"])
	assert.Equal(t, float64(4), rec["messages"])
}

func TestLogCheckpoint(t *testing.T) {
	h := newTestHandler()
	logger := slog.New(h)

	LogCheckpointSave(logger, "thread-1", 2)
	rec := h.lastRecord(t)
	assert.Equal(t, "checkpoint saved", rec["msg"])

	LogCheckpointError(logger, "thread-1", "save", errors.New("disk full"))
	rec = h.lastRecord(t)
	assert.Equal(t, "checkpoint failed", rec["msg"])
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "save", rec["operation"])
}

func TestLogHelpers_NilLoggerSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		LogRunStart(nil, "run")
		LogRunComplete(nil, "run", 0, 0)
		LogRunError(nil, "run", errors.New("x"), 0, "")
		LogNodeStart(nil, "n")
		LogNodeComplete(nil, "n", 0)
		LogNodeError(nil, "n", errors.New("x"))
		LogRouteDecision(nil, "a", "b", "c")
		LogTurn(nil, "t", 0, 0)
		LogCheckpointSave(nil, "t", 0)
		LogCheckpointError(nil, "t", "save", errors.New("x"))
	})
}

func TestTimedOperation(t *testing.T) {
	done := TimedOperation()
	time.Sleep(5 * time.Millisecond)
	assert.GreaterOrEqual(t, done(), 0.0)
}
