package game

import "time"

// schedule runs fn after d on the engine's clock. fn is invoked with the
// engine lock held and must re-validate the state it expects (round
// sequence, phase, acting seat) before mutating, so a timer superseded by a
// newer transition degrades to a no-op. A non-positive delay runs fn inline
// on the caller's (already locked) control path, which keeps the simulator
// and tests fully synchronous.
func (e *Engine) schedule(d time.Duration, fn func()) {
	if d <= 0 {
		fn()
		return
	}
	e.clock.AfterFunc(d, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		fn()
	})
}
