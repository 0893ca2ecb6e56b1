package trellis

import "log/slog"

// HandleWindow applies a window lifecycle notification. Must be called on the
// UI thread; other goroutines use PostWindow.
func (a *App) HandleWindow(e WindowEvent) {
	switch e.Kind {
	case WindowResized:
		if p := a.WindowPanel(); p != nil {
			p.Resize(e.Size.X, e.Size.Y)
		}
		a.Invalidate()
	case WindowRestored:
		// Whatever moved under the pointer while minimized is stale.
		a.Invalidate()
		a.queue.post(message{kind: msgInput, input: MoveEvent{
			Point:   a.cursor,
			Prev:    a.cursor,
			Buttons: a.buttons,
		}})
	case ThemeChanged:
		if e.Theme == a.theme {
			return
		}
		a.theme = e.Theme
		a.log.Info("theme changed", slog.String("theme", e.Theme))
		a.broadcast(func(p *Panel) {
			if p.OnThemeChange != nil {
				p.OnThemeChange(p, e.Theme)
			}
			for _, b := range p.behaviors {
				if h, ok := b.(ThemeHandler); ok {
					h.ThemeChanged(p, e.Theme)
				}
			}
		})
		a.Invalidate()
	case LocaleChanged:
		if e.Locale == a.locale {
			return
		}
		a.locale = e.Locale
		a.log.Info("locale changed", slog.String("locale", e.Locale))
		a.broadcast(func(p *Panel) {
			if p.OnLocaleChange != nil {
				p.OnLocaleChange(p, e.Locale)
			}
			for _, b := range p.behaviors {
				if h, ok := b.(ThemeHandler); ok {
					h.LocaleChanged(p, e.Locale)
				}
			}
		})
		a.Invalidate()
	}
}

// PostWindow queues a window notification for the next loop turn. Safe from
// any goroutine.
func (a *App) PostWindow(e WindowEvent) {
	a.queue.post(message{kind: msgWindow, window: e})
}
