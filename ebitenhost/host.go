// Package ebitenhost runs a trellis App inside an Ebitengine window.
//
// The host polls ebiten input every tick and turns it into typed trellis
// events, forwards window lifecycle changes, steps the App loop, and paints
// the App's draw list. Frames are only redrawn when the App needs one, so an
// idle UI costs next to nothing.
//
//	app := trellis.NewApp(cfg)
//	// ... build panels ...
//	if err := ebitenhost.Run(app); err != nil {
//		log.Fatal(err)
//	}
package ebitenhost

import (
	"context"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/trellis"
)

// PaintFunc draws one panel. Panels arrive in painter order.
type PaintFunc func(screen *ebiten.Image, p *trellis.Panel)

// Host implements ebiten.Game for a trellis App.
type Host struct {
	app *trellis.App

	// Paint draws a panel. Nil uses DefaultPaint.
	Paint PaintFunc
	// Background fills the screen before panels are drawn. Nil uses the
	// theme's background.
	Background color.Color
	// ShowFPS overlays FPS and TPS counters on every drawn frame.
	ShowFPS bool

	pointer pointerState
	keys    []ebiten.Key

	width, height int
	minimized     bool
}

// New creates a host for app.
func New(app *trellis.App) *Host {
	return &Host{app: app}
}

// App returns the hosted App.
func (h *Host) App() *trellis.App { return h.app }

// Update polls input and runs one App tick.
func (h *Host) Update() error {
	if ebiten.IsWindowMinimized() {
		h.minimized = true
	} else if h.minimized {
		h.minimized = false
		h.app.HandleWindow(trellis.WindowEvent{Kind: trellis.WindowRestored})
	}

	// Injected input replaces the real pointer while it drains.
	if !h.minimized && !h.app.Injecting() {
		mods := readModifiers()
		h.pollPointer(mods)
		h.pollKeys(mods)
	}

	tps := ebiten.TPS()
	if tps <= 0 {
		tps = h.app.Config().TPS
	}
	h.app.Tick(1 / float32(tps))
	if h.app.Quitting() {
		return ebiten.Termination
	}
	return nil
}

// Draw paints the draw list if the App asked for a frame. The screen is not
// cleared between frames, so skipping keeps the last frame on screen.
func (h *Host) Draw(screen *ebiten.Image) {
	if !h.app.NeedsRender() {
		return
	}
	bg := h.Background
	if bg == nil {
		bg = paletteFor(h.app.Theme()).background
	}
	screen.Fill(bg)

	paint := h.Paint
	if paint == nil {
		paint = DefaultPaint
	}
	for _, p := range h.app.DrawList() {
		paint(screen, p)
	}
	if h.ShowFPS {
		drawFPS(screen)
	}
	h.app.Rendered()
}

// Layout reports the logical screen size and forwards size changes to the
// App's window panel.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != h.width || outsideHeight != h.height {
		h.width, h.height = outsideWidth, outsideHeight
		h.app.HandleWindow(trellis.WindowEvent{
			Kind: trellis.WindowResized,
			Size: trellis.Vec2{X: float64(outsideWidth), Y: float64(outsideHeight)},
		})
	}
	return outsideWidth, outsideHeight
}

// Run opens a window configured from app.Config and runs app until it quits
// or the window is closed.
func Run(app *trellis.App) error {
	return RunHost(New(app))
}

// RunHost is like Run with a preconfigured Host.
func RunHost(h *Host) error {
	cfg := h.app.Config()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetScreenClearedEveryFrame(false)
	if cfg.ThemeFile != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := h.app.WatchTheme(ctx, cfg.ThemeFile); err != nil {
			h.app.Logger().Error("theme watcher disabled", slog.Any("err", err))
		}
	}
	return ebiten.RunGame(h)
}

// palette is the default look for a theme.
type palette struct {
	background color.Color
	fill       color.Color
	border     color.Color
	focus      color.Color
}

var (
	lightPalette = palette{
		background: color.RGBA{0xf2, 0xf2, 0xf2, 0xff},
		fill:       color.RGBA{0xff, 0xff, 0xff, 0xff},
		border:     color.RGBA{0x9a, 0x9a, 0xa6, 0xff},
		focus:      color.RGBA{0x2f, 0x7d, 0xf6, 0xff},
	}
	darkPalette = palette{
		background: color.RGBA{0x1e, 0x1e, 0x28, 0xff},
		fill:       color.RGBA{0x2c, 0x2c, 0x3a, 0xff},
		border:     color.RGBA{0x5a, 0x5a, 0x70, 0xff},
		focus:      color.RGBA{0x50, 0xb4, 0xff, 0xff},
	}
)

func paletteFor(theme string) palette {
	if theme == "dark" {
		return darkPalette
	}
	return lightPalette
}

// DefaultPaint draws a panel as a filled rectangle with a border. Panels
// holding keyboard focus get the focus color as border. A panel whose
// UserData is a color.Color is filled with it.
func DefaultPaint(screen *ebiten.Image, p *trellis.Panel) {
	pal := paletteFor(p.App().Theme())
	r := p.AbsoluteRect()
	x, y, w, hgt := float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height)

	fill := pal.fill
	if c, ok := p.UserData.(color.Color); ok {
		fill = c
	}
	vector.DrawFilledRect(screen, x, y, w, hgt, fill, false)

	border := pal.border
	if p.HasFocus(trellis.FocusKeyboard) {
		border = pal.focus
	}
	vector.StrokeRect(screen, x, y, w, hgt, 1, border, false)
}
