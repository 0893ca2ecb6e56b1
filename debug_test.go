package trellis

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDebugApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	a := NewApp(Config{
		Locale: "en-US",
		Debug:  true,
		Logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
	})
	return a, &buf
}

func TestDebugTreeDepthWarning(t *testing.T) {
	a, buf := newDebugApp(t)
	p := a.NewPanel("level0", Rect{})
	for i := 1; i <= debugMaxTreeDepth; i++ {
		p = panel(p, "deep", Rect{})
	}
	assert.Contains(t, buf.String(), "tree depth exceeds threshold")
}

func TestDebugChildCountWarning(t *testing.T) {
	a, buf := newDebugApp(t)
	parent := a.NewPanel("crowded", Rect{})
	for range debugMaxChildCount {
		panel(parent, "c", Rect{})
	}
	assert.NotContains(t, buf.String(), "child count exceeds threshold")

	panel(parent, "one too many", Rect{})
	assert.Contains(t, buf.String(), "child count exceeds threshold")
}

func TestDebugLogsLoopActivity(t *testing.T) {
	a, buf := newDebugApp(t)
	r := rootPanel(a, "r", Rect{Width: 10, Height: 10})
	a.SetRenderer(&recordingRenderer{})

	r.OnPointerMove = func(*Event) { a.DispatchKey(KeyEvent{Key: 1}) }
	moveTo(a, 1, 1)
	r.Focus(FocusKeyboard)
	a.IncreaseAnimationCount()
	require.NoError(t, a.Step(context.Background()))

	out := buf.String()
	assert.Contains(t, out, "input deferred to next loop turn")
	assert.Contains(t, out, "focus changed")
	assert.Contains(t, out, "mode=polling")
	assert.Contains(t, out, "loop turn")
}

func TestDebugDisabledIsQuiet(t *testing.T) {
	a, buf := newDebugApp(t)
	a.SetDebugMode(false)
	p := a.NewPanel("p", Rect{})
	p.Dispose()
	assert.NotPanics(t, func() { a.NewPanel("q", Rect{}).AddChild(p) })
	a.TriggerCallback(99, nil)
	a.Pump()
	assert.Empty(t, buf.String())
}
