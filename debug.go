package trellis

import (
	"fmt"
	"log/slog"
	"time"
)

// debugStats holds per-turn loop timings. Only populated in debug mode.
type debugStats struct {
	pumpTime   time.Duration
	renderTime time.Duration
	messages   int
	drawn      int
	mode       LoopMode
}

// debugLog reports one loop turn at debug level.
func (a *App) debugLog(stats debugStats) {
	if !a.debug {
		return
	}
	a.log.Debug("loop turn",
		slog.String("mode", stats.mode.String()),
		slog.Int("messages", stats.messages),
		slog.Duration("pump", stats.pumpTime),
		slog.Duration("render", stats.renderTime),
		slog.Int("drawn", stats.drawn),
		slog.Uint64("animations", uint64(a.animationCount)))
}

// debugCheckDisposed panics with a descriptive message when a disposed panel
// is used in a tree operation. Callers only invoke it in debug mode.
func debugCheckDisposed(p *Panel, op string) {
	if p.disposed {
		panic(fmt.Sprintf("trellis debug: %s on disposed panel %q (ID was %d)", op, p.Name, p.id))
	}
}

const debugMaxTreeDepth = 32

// debugCheckTreeDepth warns if the tree depth at p exceeds debugMaxTreeDepth.
func debugCheckTreeDepth(a *App, p *Panel) {
	depth := 0
	for n := p; n != nil; n = n.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		a.log.Warn("tree depth exceeds threshold",
			slog.Int("depth", depth),
			slog.Int("threshold", debugMaxTreeDepth),
			slog.String("panel", p.Name))
	}
}

const debugMaxChildCount = 1000

// debugCheckChildCount warns if p has more than debugMaxChildCount children.
func debugCheckChildCount(a *App, p *Panel) {
	if n := p.scope.children.Len(); n > debugMaxChildCount {
		a.log.Warn("child count exceeds threshold",
			slog.String("panel", p.Name),
			slog.Int("children", n),
			slog.Int("threshold", debugMaxChildCount))
	}
}
