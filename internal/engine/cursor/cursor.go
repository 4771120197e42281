package cursor

import (
	"fmt"

	"github.com/dshills/suptext/internal/engine/buffer"
)

// ByteOffset is an alias for buffer.ByteOffset for convenience.
type ByteOffset = buffer.ByteOffset

// Range is an alias for buffer.Range for convenience.
type Range = buffer.Range

// Cursor is an (anchor, position) pair in the document's offset space.
// Anchor is where a selection started; Position is where typing occurs.
// When Anchor == Position the cursor is collapsed and selects nothing.
// Cursor is an immutable value type.
type Cursor struct {
	Anchor   ByteOffset
	Position ByteOffset
}

// New creates a cursor selecting from anchor to position.
func New(anchor, position ByteOffset) Cursor {
	return Cursor{Anchor: anchor, Position: position}
}

// At creates a collapsed cursor at offset.
func At(offset ByteOffset) Cursor {
	return Cursor{Anchor: offset, Position: offset}
}

// FromRange creates a forward selection covering r.
func FromRange(r Range) Cursor {
	return Cursor{Anchor: r.Start, Position: r.End}
}

// IsCollapsed returns true if the cursor has no selection.
func (c Cursor) IsCollapsed() bool {
	return c.Anchor == c.Position
}

// HasSelection returns true if the cursor selects at least one byte.
func (c Cursor) HasSelection() bool {
	return c.Anchor != c.Position
}

// Start returns the lower bound of the selection.
func (c Cursor) Start() ByteOffset {
	if c.Anchor <= c.Position {
		return c.Anchor
	}
	return c.Position
}

// End returns the upper bound of the selection.
func (c Cursor) End() ByteOffset {
	if c.Anchor >= c.Position {
		return c.Anchor
	}
	return c.Position
}

// Range returns the selection as [Start, End).
func (c Cursor) Range() Range {
	return Range{Start: c.Start(), End: c.End()}
}

// Len returns the length of the selection in bytes.
func (c Cursor) Len() ByteOffset {
	return c.End() - c.Start()
}

// Collapse collapses the selection onto its position endpoint.
func (c Cursor) Collapse() Cursor {
	return At(c.Position)
}

// CollapseToStart collapses the selection onto its lower bound.
func (c Cursor) CollapseToStart() Cursor {
	return At(c.Start())
}

// MoveTo returns a collapsed cursor at offset.
func (c Cursor) MoveTo(offset ByteOffset) Cursor {
	return At(offset)
}

// Shift returns the cursor with both ends moved by delta.
func (c Cursor) Shift(delta ByteOffset) Cursor {
	return Cursor{Anchor: c.Anchor + delta, Position: c.Position + delta}
}

// Clamp returns a cursor with both ends limited to [0, maxOffset].
func (c Cursor) Clamp(maxOffset ByteOffset) Cursor {
	return Cursor{
		Anchor:   clamp(c.Anchor, maxOffset),
		Position: clamp(c.Position, maxOffset),
	}
}

// InBounds reports whether both ends lie within [0, maxOffset].
func (c Cursor) InBounds(maxOffset ByteOffset) bool {
	return c.Anchor >= 0 && c.Anchor <= maxOffset &&
		c.Position >= 0 && c.Position <= maxOffset
}

// Equals returns true if two cursors have the same anchor and position.
func (c Cursor) Equals(other Cursor) bool {
	return c == other
}

// String returns a string representation of the cursor.
func (c Cursor) String() string {
	if c.IsCollapsed() {
		return fmt.Sprintf("Cursor(%d)", c.Position)
	}
	dir := "→"
	if c.Position < c.Anchor {
		dir = "←"
	}
	return fmt.Sprintf("Selection(%d%s%d)", c.Anchor, dir, c.Position)
}

func clamp(offset, maxOffset ByteOffset) ByteOffset {
	if offset < 0 {
		return 0
	}
	if offset > maxOffset {
		return maxOffset
	}
	return offset
}
