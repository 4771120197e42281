package multicursor

import (
	"github.com/dshills/suptext/internal/engine/buffer"
	"github.com/dshills/suptext/internal/engine/cursor"
)

// Direction is a cursor movement direction.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// MoveAll collapses every cursor to its position endpoint and moves it one
// step in dir. Left and right step one character; up and down keep the
// column on the adjacent line, clamped to that line's length. Cursors that
// become coincident are kept as separate cursors.
func (e *Engine) MoveAll(dir Direction) []cursor.Cursor {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.activeLocked() {
		return nil
	}

	e.cursors = e.cursors.Map(func(c cursor.Cursor) cursor.Cursor {
		return cursor.At(e.step(e.buf.Clamp(c.Position), dir))
	})
	e.blinkVisible = true
	e.lastBlink = e.now()
	return e.cursors.All()
}

// CollapseAll drops every selection, keeping each cursor at its position
// endpoint. The buffer is not touched.
func (e *Engine) CollapseAll() []cursor.Cursor {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.activeLocked() {
		return nil
	}
	length := e.buf.Len()
	e.cursors = e.cursors.Map(func(c cursor.Cursor) cursor.Cursor {
		return c.Collapse().Clamp(length)
	})
	return e.cursors.All()
}

func (e *Engine) step(pos buffer.ByteOffset, dir Direction) buffer.ByteOffset {
	switch dir {
	case Left:
		return e.buf.PrevChar(pos)
	case Right:
		return e.buf.NextChar(pos)
	case Up, Down:
		pt := e.buf.OffsetToPoint(pos)
		if dir == Up {
			if pt.Line == 0 {
				return pos
			}
			pt.Line--
		} else {
			if pt.Line+1 >= e.buf.LineCount() {
				return pos
			}
			pt.Line++
		}
		return e.buf.PointToOffset(pt)
	default:
		return pos
	}
}
