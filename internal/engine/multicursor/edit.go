package multicursor

import (
	"sort"

	"github.com/dshills/suptext/internal/engine/buffer"
	"github.com/dshills/suptext/internal/engine/cursor"
	"github.com/dshills/suptext/internal/engine/history"
)

// InsertAtAll replaces every selection with text, or inserts text at every
// collapsed cursor. Each cursor collapses to the end of its inserted text.
func (e *Engine) InsertAtAll(text string) []cursor.Cursor {
	return e.batch("insert", true, func(c cursor.Cursor) (buffer.Edit, bool) {
		return buffer.Edit{Range: c.Range(), NewText: text}, true
	})
}

// DeleteBeforeAll deletes every selection, or the character before every
// collapsed cursor. Cursors at offset 0 are left alone.
func (e *Engine) DeleteBeforeAll() []cursor.Cursor {
	return e.batch("delete-before", false, func(c cursor.Cursor) (buffer.Edit, bool) {
		if c.HasSelection() {
			return buffer.NewDelete(c.Start(), c.End()), true
		}
		if c.Position == 0 {
			return buffer.Edit{}, false
		}
		return buffer.NewDelete(e.buf.PrevChar(c.Position), c.Position), true
	})
}

// DeleteAfterAll deletes every selection, or the character after every
// collapsed cursor. Cursors at the end of the buffer are left alone.
func (e *Engine) DeleteAfterAll() []cursor.Cursor {
	return e.batch("delete-after", false, func(c cursor.Cursor) (buffer.Edit, bool) {
		if c.HasSelection() {
			return buffer.NewDelete(c.Start(), c.End()), true
		}
		if c.Position >= e.buf.Len() {
			return buffer.Edit{}, false
		}
		return buffer.NewDelete(c.Position, e.buf.NextChar(c.Position)), true
	})
}

// editFunc returns the edit to apply at a clamped cursor, or false to leave
// that cursor unchanged.
type editFunc func(c cursor.Cursor) (buffer.Edit, bool)

type placed struct {
	start  buffer.ByteOffset
	cursor cursor.Cursor
}

// batch runs edit at every cursor in descending start order, records the
// applied edits as one history group and stores the ascending result.
// When toEnd is set a cursor collapses to the end of its new text, otherwise
// to the start.
func (e *Engine) batch(name string, toEnd bool, edit editFunc) []cursor.Cursor {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.activeLocked() {
		return nil
	}

	group := history.NewGroup(name, e.cursors.All())
	desc := e.cursors.Descending()
	results := make([]placed, 0, len(desc))

	for _, c := range desc {
		length := e.buf.Len()
		if c.IsCollapsed() && c.Position > length {
			e.log.Debug("%s: skipping cursor %s past end %d", name, c, length)
			results = append(results, placed{start: length, cursor: cursor.At(length)})
			continue
		}

		c = e.clampLocked(c)
		next := cursor.At(c.Position)

		if ed, ok := edit(c); ok && !ed.IsNoOp() {
			res, err := e.buf.ApplyEdit(ed)
			if err != nil {
				e.log.Warn("%s: skipping cursor %s: %v", name, c, err)
			} else {
				group.Record(res)
				if toEnd {
					next = cursor.At(res.NewRange.End)
				} else {
					next = cursor.At(res.NewRange.Start)
				}
				// Cursors already visited lie at or right of this edit.
				for i := range results {
					if results[i].start > res.OldRange.Start {
						results[i].cursor = results[i].cursor.Shift(res.Delta)
					}
				}
			}
		}
		results = append(results, placed{start: c.Start(), cursor: next})
	}

	length := e.buf.Len()
	ascending := make([]cursor.Cursor, len(results))
	for i, p := range results {
		ascending[len(results)-1-i] = p.cursor.Clamp(length)
	}
	// Coincident deletions can leave the reversed results out of order.
	sort.SliceStable(ascending, func(i, j int) bool {
		return ascending[i].Start() < ascending[j].Start()
	})
	e.cursors = cursor.NewSet(ascending...)
	e.blinkVisible = true
	e.lastBlink = e.now()

	group.CursorsAfter = e.cursors.All()
	if e.hist != nil {
		e.hist.Push(group)
	}
	return e.cursors.All()
}

// clampLocked limits both ends of c to the buffer and onto rune boundaries.
func (e *Engine) clampLocked(c cursor.Cursor) cursor.Cursor {
	return cursor.New(e.buf.Clamp(c.Anchor), e.buf.Clamp(c.Position))
}
