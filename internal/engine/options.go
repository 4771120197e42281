package engine

import (
	"time"

	"github.com/dshills/suptext/internal/syntax"
)

// Logger is the subset of a leveled logger the editor reports to.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}

// Option configures an Editor during creation.
type Option func(*Editor)

// WithContent sets the initial document text.
func WithContent(content string) Option {
	return func(e *Editor) {
		e.initContent = content
	}
}

// WithLanguage sets the initial language.
func WithLanguage(language string) Option {
	return func(e *Editor) {
		e.initLanguage = language
	}
}

// WithRegistry sets the rule table registry. The built-in languages are
// used when none is given.
func WithRegistry(reg *syntax.Registry) Option {
	return func(e *Editor) {
		e.registry = reg
	}
}

// WithLineCache sets the lifetimes of the classified line cache.
func WithLineCache(expiration, cleanup time.Duration) Option {
	return func(e *Editor) {
		e.cacheExpiration = expiration
		e.cacheCleanup = cleanup
	}
}

// WithSink sets where redraws are delivered.
func WithSink(s Sink) Option {
	return func(e *Editor) {
		if s != nil {
			e.sink = s
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithClock replaces time.Now for blink bookkeeping.
func WithClock(now func() time.Time) Option {
	return func(e *Editor) {
		if now != nil {
			e.now = now
		}
	}
}
