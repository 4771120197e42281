package multicursor

import "time"

// DefaultBlinkInterval is the caret blink period while the engine is active.
const DefaultBlinkInterval = 500 * time.Millisecond

// Logger is the subset of a leveled logger the engine reports to.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}

// Option configures an Engine during creation.
type Option func(*Engine)

// WithBlinkInterval sets the blink period. Non-positive values disable blinking.
func WithBlinkInterval(d time.Duration) Option {
	return func(e *Engine) {
		e.blinkInterval = d
	}
}

// WithLogger sets the logger for state transitions.
func WithLogger(l Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithClock replaces time.Now for blink bookkeeping.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}
