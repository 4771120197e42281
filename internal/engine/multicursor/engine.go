package multicursor

import (
	"sync"
	"time"

	"github.com/dshills/suptext/internal/engine/buffer"
	"github.com/dshills/suptext/internal/engine/cursor"
	"github.com/dshills/suptext/internal/engine/history"
	"github.com/dshills/suptext/internal/engine/search"
)

// State is the engine's activation state.
type State int

const (
	// Inactive means no cursor set is held.
	Inactive State = iota
	// Active means batch operations apply to the cursor set.
	Active
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}

// MinCursors is the number of cursors needed to enter the active state.
const MinCursors = 2

// Engine holds a cursor set over one buffer and applies batch edits to it.
type Engine struct {
	mu sync.Mutex

	buf  *buffer.Buffer
	hist *history.History

	state   State
	cursors *cursor.Set

	blinkInterval time.Duration
	blinkVisible  bool
	lastBlink     time.Time

	now func() time.Time
	log Logger
}

// New creates an inactive engine over buf. hist may be nil, in which case
// batches are not recorded for undo.
func New(buf *buffer.Buffer, hist *history.History, opts ...Option) *Engine {
	e := &Engine{
		buf:           buf,
		hist:          hist,
		cursors:       cursor.NewSet(),
		blinkInterval: DefaultBlinkInterval,
		blinkVisible:  true,
		now:           time.Now,
		log:           nopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// IsActive returns true if batch operations will apply.
func (e *Engine) IsActive() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.activeLocked()
}

// Cursors returns the current cursor set in ascending order.
func (e *Engine) Cursors() []cursor.Cursor {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursors.All()
}

// Len returns the number of cursors held.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursors.Len()
}

// SelectAllOccurrences seeds one selection per occurrence of term, anchored
// at the match start with the position at the match end. Two or more matches
// activate the engine; otherwise it is left inactive with no cursors.
// Returns the number of cursors now active.
func (e *Engine) SelectAllOccurrences(term string, caseSensitive bool) int {
	matches := search.FindAll(e.buf.Text(), term, caseSensitive)

	cursors := make([]cursor.Cursor, len(matches))
	for i, m := range matches {
		cursors[i] = cursor.New(m.Start, m.End)
	}

	if !e.Activate(cursors) {
		e.log.Debug("select all %q: %d match(es), staying inactive", term, len(matches))
		return 0
	}
	return len(cursors)
}

// Activate replaces the cursor set with cursors and enters the active state
// if there are at least MinCursors of them. Otherwise the engine is cleared.
func (e *Engine) Activate(cursors []cursor.Cursor) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(cursors) < MinCursors {
		e.clearLocked()
		return false
	}

	length := e.buf.Len()
	set := cursor.NewSet(cursors...)
	e.cursors = cursor.NewSet(set.Ascending()...).Clamp(length)
	e.state = Active
	e.blinkVisible = true
	e.lastBlink = e.now()
	e.log.Info("multi-cursor active with %d cursors", e.cursors.Len())
	return true
}

// Cancel leaves the active state and drops the cursor set.
func (e *Engine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == Active {
		e.log.Info("multi-cursor cancelled")
	}
	e.clearLocked()
}

// Invalidate is called after the document was replaced wholesale.
// Held offsets are meaningless afterwards, so the engine deactivates.
func (e *Engine) Invalidate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == Active {
		e.log.Info("multi-cursor invalidated by document replace")
	}
	e.clearLocked()
}

func (e *Engine) clearLocked() {
	e.state = Inactive
	e.cursors = cursor.NewSet()
	e.blinkVisible = true
}

func (e *Engine) activeLocked() bool {
	return e.state == Active && !e.cursors.IsEmpty()
}
