package watcher

import (
	"context"
	"path/filepath"
)

// Logger receives reload diagnostics.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}

// Handler reacts to a change of one file.
type Handler func(ev Event) error

// Target is a document whose content follows a file.
type Target interface {
	Text() string
	SetText(text string)
}

// ReloadText returns a handler that reads the file with load and replaces
// target's content when it differs. Removals are ignored so the last
// content stays open.
func ReloadText(target Target, load func(path string) (string, error)) Handler {
	return func(ev Event) error {
		if ev.Op == OpRemove {
			return nil
		}
		text, err := load(ev.Path)
		if err != nil {
			return err
		}
		if text != target.Text() {
			target.SetText(text)
		}
		return nil
	}
}

// Dispatch routes events to the handler registered for their path until
// ctx is done or the watcher closes. Handler and watcher errors are
// logged, not returned.
func Dispatch(ctx context.Context, w *Watcher, handlers map[string]Handler, log Logger) error {
	if log == nil {
		log = nopLogger{}
	}

	byPath := make(map[string]Handler, len(handlers))
	for path, h := range handlers {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		byPath[abs] = h
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			h, ok := byPath[ev.Path]
			if !ok {
				continue
			}
			log.Debug("file %s: %s", ev.Op, ev.Path)
			if err := h(ev); err != nil {
				log.Warn("reload %s: %v", ev.Path, err)
			}

		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			log.Warn("watch: %v", err)
		}
	}
}
