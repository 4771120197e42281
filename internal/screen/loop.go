package screen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/suptext/internal/engine"
)

// Logger receives loop diagnostics.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}

// Loop feeds terminal events to an editor and repaints after each one.
//
// Bindings beyond the editor's own keys:
//
//	Ctrl-Q  quit
//	Ctrl-S  save
//	Ctrl-D  select all occurrences of the selection or word
//	Ctrl-Z  undo
//	Ctrl-Y  redo
//	Ctrl-/  toggle comment
//	Ctrl-L  repaint
type Loop struct {
	screen tcell.Screen
	view   *View
	ed     *engine.Editor

	name     string
	save     func() error
	tick     time.Duration
	log      Logger
	bindings map[tcell.Key]func() bool
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithName sets the document name shown in the status line.
func WithName(name string) LoopOption {
	return func(l *Loop) { l.name = name }
}

// WithSave sets the Ctrl-S action.
func WithSave(save func() error) LoopOption {
	return func(l *Loop) { l.save = save }
}

// WithTick sets how often the blink clock is polled.
func WithTick(d time.Duration) LoopOption {
	return func(l *Loop) {
		if d > 0 {
			l.tick = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log Logger) LoopOption {
	return func(l *Loop) {
		if log != nil {
			l.log = log
		}
	}
}

// NewLoop creates a loop. The editor must have been built with view as
// its sink.
func NewLoop(screen tcell.Screen, view *View, ed *engine.Editor, opts ...LoopOption) *Loop {
	l := &Loop{
		screen: screen,
		view:   view,
		ed:     ed,
		name:   "[scratch]",
		tick:   50 * time.Millisecond,
		log:    nopLogger{},
	}
	for _, opt := range opts {
		opt(l)
	}
	l.bindings = map[tcell.Key]func() bool{
		tcell.KeyCtrlQ:          func() bool { return true },
		tcell.KeyCtrlS:          l.doSave,
		tcell.KeyCtrlD:          l.selectAll,
		tcell.KeyCtrlZ:          func() bool { l.report("undo", l.ed.Undo()); return false },
		tcell.KeyCtrlY:          func() bool { l.report("redo", l.ed.Redo()); return false },
		tcell.KeyCtrlUnderscore: func() bool { l.ed.ToggleComment(); return false },
		tcell.KeyCtrlL:          func() bool { l.screen.Sync(); l.view.Draw(); return false },
	}
	return l
}

// Run processes events until Ctrl-Q, the screen is finalized or ctx is
// done. The caller owns the screen's Init and Fini.
func (l *Loop) Run(ctx context.Context) error {
	events := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(events)
		for {
			ev := l.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(l.tick)
	defer ticker.Stop()

	l.refresh()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if l.Handle(ev) {
				return nil
			}
			l.refresh()

		case now := <-ticker.C:
			if l.ed.Tick(now) {
				l.ed.Flush()
			}
		}
	}
}

// Handle applies one event and reports whether the loop should quit.
func (l *Loop) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		l.screen.Sync()
		l.view.Draw()

	case *tcell.EventKey:
		l.view.SetMessage("")
		if fn, ok := l.bindings[ev.Key()]; ok {
			return fn()
		}
		k := engine.FromTcell(ev)
		if k.Code == engine.KeyNone {
			return false
		}
		if !l.ed.HandleKey(k) {
			l.log.Debug("unhandled key %s", k.Code)
		}
	}
	return false
}

func (l *Loop) refresh() {
	line, col := l.ed.CursorPosition()
	status := fmt.Sprintf("%s  %s  Ln %d, Col %d", l.name, l.ed.Language(), line, col)
	if l.ed.IsMultiCursor() {
		status += fmt.Sprintf("  %d cursors", len(l.ed.Cursors()))
	}
	l.view.SetStatus(status)
	if l.ed.Flush() == 0 {
		l.ed.Redraw()
	}
}

func (l *Loop) doSave() bool {
	if l.save == nil {
		l.view.SetMessage("no file to save")
		return false
	}
	if err := l.save(); err != nil {
		l.log.Warn("save: %v", err)
		l.view.SetMessage("save failed: %v", err)
		return false
	}
	l.view.SetMessage("saved")
	return false
}

func (l *Loop) selectAll() bool {
	n := l.ed.SelectAllOccurrences("")
	switch n {
	case 0:
		l.view.SetMessage("no matches")
	case 1:
		l.view.SetMessage("1 match")
	default:
		l.view.SetMessage("%d matches", n)
	}
	return false
}

func (l *Loop) report(op string, err error) {
	switch {
	case err == nil:
	case errors.Is(err, engine.ErrNothingToUndo), errors.Is(err, engine.ErrNothingToRedo):
		l.view.SetMessage("%s: nothing to do", op)
	default:
		l.view.SetMessage("%s: %v", op, err)
	}
}
