package multicursor

import "time"

// Tick advances the caret blink. It returns true if visibility changed and
// the host should repaint. Blinking only runs while the engine is active.
func (e *Engine) Tick(now time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.activeLocked() || e.blinkInterval <= 0 {
		if !e.blinkVisible {
			e.blinkVisible = true
			return true
		}
		return false
	}

	if now.Sub(e.lastBlink) >= e.blinkInterval {
		e.blinkVisible = !e.blinkVisible
		e.lastBlink = now
		return true
	}
	return false
}

// BlinkVisible reports whether carets should currently be drawn.
func (e *Engine) BlinkVisible() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.blinkVisible
}

// BlinkInterval returns the configured blink period.
func (e *Engine) BlinkInterval() time.Duration {
	return e.blinkInterval
}
