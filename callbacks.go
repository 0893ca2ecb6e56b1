package trellis

import "log/slog"

// RegisterCallback associates fn with id. fn later runs on the UI thread for
// every TriggerCallback(id, ...). Registering an id again replaces its function.
// Safe from any goroutine.
func (a *App) RegisterCallback(id uint64, fn func(payload any)) {
	a.cbMu.Lock()
	a.callbacks[id] = fn
	a.cbMu.Unlock()
}

// UnregisterCallback removes the function registered for id. Payloads already
// queued for id are dropped when they come up. Safe from any goroutine.
func (a *App) UnregisterCallback(id uint64) {
	a.cbMu.Lock()
	delete(a.callbacks, id)
	a.cbMu.Unlock()
}

// TriggerCallback queues payload for the function registered under id. The
// function runs on the UI thread during the next loop turn. Safe from any
// goroutine.
func (a *App) TriggerCallback(id uint64, payload any) {
	a.queue.post(message{kind: msgCallback, id: id, payload: payload})
}

// Post queues fn to run on the UI thread during the next loop turn. Safe from
// any goroutine.
func (a *App) Post(fn func()) {
	if fn == nil {
		return
	}
	a.queue.post(message{kind: msgFunc, fn: fn})
}

func (a *App) runCallback(id uint64, payload any) {
	a.cbMu.RLock()
	fn := a.callbacks[id]
	a.cbMu.RUnlock()
	if fn == nil {
		if a.debug {
			a.log.Debug("callback dropped", slog.Uint64("id", id))
		}
		return
	}
	fn(payload)
}
