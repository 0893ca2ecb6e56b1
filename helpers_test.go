package trellis

import (
	"io"
	"log/slog"
	"testing"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	return NewApp(Config{
		Locale: "en-US",
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

// eventLog records deliveries as "name:Type", with a "*" suffix for pinned
// deliveries.
type eventLog struct {
	entries []string
}

func (l *eventLog) record(e *Event) {
	s := e.Panel.Name + ":" + e.Type.String()
	if e.Pinned {
		s += "*"
	}
	l.entries = append(l.entries, s)
}

// track wires every event callback of each panel to the log.
func (l *eventLog) track(panels ...*Panel) {
	for _, p := range panels {
		p.OnPointerEnter = l.record
		p.OnPointerMove = l.record
		p.OnPointerLeave = l.record
		p.OnPointerButton = l.record
		p.OnPointerWheel = l.record
		p.OnKey = l.record
		p.OnFocusGet = l.record
		p.OnFocusLose = l.record
	}
}

func (l *eventLog) take() []string {
	out := l.entries
	l.entries = nil
	return out
}

// panel creates and finishes a child of parent at r.
func panel(parent *Panel, name string, r Rect) *Panel {
	p := parent.app.NewPanel(name, r)
	parent.AddChild(p.Finish())
	return p
}

// rootPanel creates, finishes, and registers a root at r.
func rootPanel(a *App, name string, r Rect) *Panel {
	return a.NewPanel(name, r).FinishAsRoot()
}

func names(panels []*Panel) []string {
	out := make([]string, len(panels))
	for i, p := range panels {
		out[i] = p.Name
	}
	return out
}

func moveTo(a *App, x, y float64) {
	a.DispatchMove(MoveEvent{Point: Vec2{x, y}, Prev: a.Cursor()})
}

type recordingRenderer struct {
	frames [][]string
	err    error
}

func (r *recordingRenderer) Render(panels []*Panel) error {
	r.frames = append(r.frames, names(panels))
	return r.err
}
