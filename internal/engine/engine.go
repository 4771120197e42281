package engine

import (
	"errors"
	"sync"
	"time"

	"github.com/dshills/suptext/internal/config"
	"github.com/dshills/suptext/internal/engine/buffer"
	"github.com/dshills/suptext/internal/engine/cursor"
	"github.com/dshills/suptext/internal/engine/history"
	"github.com/dshills/suptext/internal/engine/multicursor"
	"github.com/dshills/suptext/internal/syntax"
)

// Re-export commonly used types for convenience.
type (
	// ByteOffset is a byte position in the buffer.
	ByteOffset = buffer.ByteOffset

	// Point represents a line/column position.
	Point = buffer.Point

	// Cursor is an anchor/position pair.
	Cursor = cursor.Cursor

	// Direction is a cursor movement direction.
	Direction = multicursor.Direction
)

// Re-export movement directions.
const (
	Left  = multicursor.Left
	Right = multicursor.Right
	Up    = multicursor.Up
	Down  = multicursor.Down
)

// Editor is one open document: its text, undo history, single primary
// cursor, optional multi-cursor set, and syntax classification.
type Editor struct {
	mu sync.Mutex

	cfg config.Editor

	buf     *buffer.Buffer
	hist    *history.History
	multi   *multicursor.Engine
	syntax  *syntax.Provider
	primary cursor.Cursor

	sink  Sink
	sched *Scheduler
	dirty dirtyLines

	// redrawQueued is set while a redraw task sits on the scheduler.
	redrawQueued bool

	log Logger
	now func() time.Time

	// Construction-time options.
	initContent     string
	initLanguage    string
	registry        *syntax.Registry
	cacheExpiration time.Duration
	cacheCleanup    time.Duration
}

// New creates an editor configured by cfg.
func New(cfg config.Editor, opts ...Option) *Editor {
	e := &Editor{
		cfg:          cfg,
		sink:         NopSink{},
		sched:        NewScheduler(),
		log:          nopLogger{},
		now:          time.Now,
		initLanguage: syntax.PlainText,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.registry == nil {
		reg, err := syntax.NewRegistry(syntax.Builtin()...)
		if err != nil {
			e.log.Warn("built-in rule tables: %v", err)
		}
		e.registry = reg
	}

	e.buf = buffer.NewBufferFromString(e.initContent,
		buffer.WithTabWidth(cfg.TabSize),
		buffer.WithDetectedLineEnding(e.initContent),
	)
	e.hist = history.NewHistory(cfg.MaxUndo)
	e.syntax = syntax.NewProvider(e.registry, e.initLanguage, e.cacheExpiration, e.cacheCleanup)
	e.multi = multicursor.New(e.buf, e.hist,
		multicursor.WithBlinkInterval(cfg.BlinkInterval.Std()),
		multicursor.WithLogger(e.log),
		multicursor.WithClock(e.now),
	)
	e.dirty.markFull()
	return e
}

// Config returns the editor settings.
func (e *Editor) Config() config.Editor {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// SetCaseSensitive sets whether occurrence selection matches case.
func (e *Editor) SetCaseSensitive(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cfg.CaseSensitive = on
}

// Buffer returns the underlying buffer. Mutating it directly bypasses undo
// and multi-cursor bookkeeping; use SetText for wholesale replacement.
func (e *Editor) Buffer() *buffer.Buffer {
	return e.buf
}

// History returns the undo history.
func (e *Editor) History() *history.History {
	return e.hist
}

// MultiCursor returns the multi-cursor engine.
func (e *Editor) MultiCursor() *multicursor.Engine {
	return e.multi
}

// Syntax returns the line classifier.
func (e *Editor) Syntax() *syntax.Provider {
	return e.syntax
}

// Text returns the document text.
func (e *Editor) Text() string {
	return e.buf.Text()
}

// Len returns the document length in bytes.
func (e *Editor) Len() ByteOffset {
	return e.buf.Len()
}

// Language returns the active language.
func (e *Editor) Language() string {
	return e.syntax.Language()
}

// SetLanguage switches the active language and repaints.
func (e *Editor) SetLanguage(language string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.syntax.SetLanguage(language)
	e.dirty.markFull()
	e.scheduleRedrawLocked()
}

// Cursor returns the primary cursor.
func (e *Editor) Cursor() Cursor {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.primary
}

// SetCursor moves the primary cursor, clamped to the document. It leaves
// multi-cursor mode.
func (e *Editor) SetCursor(c Cursor) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.leaveMultiLocked()
	e.primary = e.clamp(c)
	e.scheduleRedrawLocked()
}

// Cursors returns the cursors a sink should draw: the multi-cursor set when
// active, otherwise the primary cursor alone.
func (e *Editor) Cursors() []Cursor {
	if cs := e.multi.Cursors(); e.multi.IsActive() {
		return cs
	}
	return []Cursor{e.Cursor()}
}

// IsMultiCursor reports whether multi-cursor mode is active.
func (e *Editor) IsMultiCursor() bool {
	return e.multi.IsActive()
}

// SetText replaces the whole document, as when the file changes on disk.
// Multi-cursor mode ends and undo history is cleared.
func (e *Editor) SetText(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.multi.Invalidate()
	e.buf.SetText(text)
	e.hist.Clear()
	e.primary = e.clamp(e.primary)
	e.dirty.markFull()
	e.scheduleRedrawLocked()
	e.log.Debug("document replaced (%d bytes)", len(text))
}

// SetRegistry replaces the language rules and repaints the document.
func (e *Editor) SetRegistry(reg *syntax.Registry) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.syntax.SetRegistry(reg)
	e.dirty.markFull()
	e.scheduleRedrawLocked()
	e.log.Info("syntax rules reloaded (%d languages)", len(reg.Languages()))
}

// SelectAllOccurrences selects every occurrence of term, entering
// multi-cursor mode when there are at least two. An empty term uses the
// primary selection, or the word under the primary cursor. Case
// sensitivity follows the editor settings. Returns the match count.
func (e *Editor) SelectAllOccurrences(term string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	if term == "" {
		term = e.selectionOrWordLocked()
	}
	n := e.multi.SelectAllOccurrences(term, e.cfg.CaseSensitive)
	e.scheduleRedrawLocked()
	return n
}

// CancelMultiCursor leaves multi-cursor mode. The primary cursor moves to
// the first cursor of the set.
func (e *Editor) CancelMultiCursor() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.leaveMultiLocked()
	e.scheduleRedrawLocked()
}

// Tick advances the blink clock and schedules a redraw when the caret
// visibility flips.
func (e *Editor) Tick(now time.Time) bool {
	if !e.multi.Tick(now) {
		return false
	}
	e.mu.Lock()
	e.scheduleRedrawLocked()
	e.mu.Unlock()
	return true
}

// Undo reverts the most recent edit group. Multi-cursor mode ends.
func (e *Editor) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.multi.Cancel()
	g, err := e.hist.Undo(e.buf)
	if err != nil {
		if errors.Is(err, history.ErrNothingToUndo) {
			return ErrNothingToUndo
		}
		return err
	}
	e.primary = e.firstOf(g.CursorsBefore)
	e.dirty.markFull()
	e.scheduleRedrawLocked()
	return nil
}

// Redo reapplies the most recently undone group. Multi-cursor mode ends.
func (e *Editor) Redo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.multi.Cancel()
	g, err := e.hist.Redo(e.buf)
	if err != nil {
		if errors.Is(err, history.ErrNothingToRedo) {
			return ErrNothingToRedo
		}
		return err
	}
	e.primary = e.firstOf(g.CursorsAfter)
	e.dirty.markFull()
	e.scheduleRedrawLocked()
	return nil
}

// Flush runs pending deferred work, including redraws.
func (e *Editor) Flush() int {
	return e.sched.Run()
}

// Redraw delivers the dirty lines and cursors to the sink immediately.
func (e *Editor) Redraw() {
	e.mu.Lock()
	lines, count := e.takeDirtyLocked()
	e.redrawQueued = false
	e.mu.Unlock()

	cs := e.Cursors()
	points := make([]Point, len(cs))
	for i, c := range cs {
		points[i] = e.buf.OffsetToPoint(c.Position)
	}

	e.sink.Lines(lines, count)
	e.sink.Cursors(CursorSnapshot{
		Cursors:      cs,
		Points:       points,
		MultiCursor:  e.multi.IsActive(),
		BlinkVisible: !e.multi.IsActive() || e.multi.BlinkVisible(),
	})
}

func (e *Editor) takeDirtyLocked() ([]Line, int) {
	count := int(e.buf.LineCount())
	nums := e.dirty.take(count)
	lines := make([]Line, len(nums))
	for i, n := range nums {
		text := e.buf.LineText(uint32(n))
		lines[i] = Line{Number: n, Text: text, Spans: e.syntax.Line(text)}
	}
	return lines, count
}

func (e *Editor) scheduleRedrawLocked() {
	if e.redrawQueued {
		return
	}
	e.redrawQueued = true
	e.sched.Defer(e.Redraw)
}

// leaveMultiLocked ends multi-cursor mode, keeping the first cursor as the
// primary cursor.
func (e *Editor) leaveMultiLocked() {
	if !e.multi.IsActive() {
		return
	}
	e.primary = e.firstOf(e.multi.Cursors())
	e.multi.Cancel()
}

func (e *Editor) firstOf(cs []Cursor) Cursor {
	if len(cs) == 0 {
		return e.clamp(e.primary)
	}
	return e.clamp(cs[0])
}

func (e *Editor) clamp(c Cursor) Cursor {
	return cursor.New(e.buf.Clamp(c.Anchor), e.buf.Clamp(c.Position))
}
