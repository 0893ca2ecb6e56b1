package trellis

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	FromX   float64 `json:"fromX,omitempty"`
	FromY   float64 `json:"fromY,omitempty"`
	ToX     float64 `json:"toX,omitempty"`
	ToY     float64 `json:"toY,omitempty"`
	Frames  int     `json:"frames,omitempty"`
	Notches int     `json:"notches,omitempty"`
	Key     int     `json:"key,omitempty"`
	Pressed bool    `json:"pressed,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input across loop ticks for automated
// interaction tests. Attach it with App.SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool

	// OnMark is called for every "mark" step with the step's label, on the
	// tick the step runs. Tests use it to take snapshots of panel state.
	OnMark func(a *App, label string)
}

var testActions = map[string]bool{
	"move": true, "click": true, "press": true, "release": true, "drag": true,
	"wheel": true, "key": true, "wait": true, "mark": true,
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached via App.SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !testActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner. Its step runs at the start of every
// Tick, before injected input is consumed.
func (a *App) SetTestRunner(runner *TestRunner) {
	a.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one tick.
func (r *TestRunner) step(a *App) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(a.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "mark":
		if r.OnMark != nil {
			r.OnMark(a, st.Label)
		}
	case "move":
		a.InjectMove(st.X, st.Y)
	case "click":
		a.InjectClick(st.X, st.Y)
	case "press":
		a.InjectPress(st.X, st.Y)
	case "release":
		a.InjectRelease(st.X, st.Y)
	case "drag":
		a.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wheel":
		a.InjectWheel(st.X, st.Y, st.Notches)
	case "key":
		a.InjectKey(st.Key, st.Pressed)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this tick counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(a.injectQueue) == 0 {
		r.done = true
	}
}
