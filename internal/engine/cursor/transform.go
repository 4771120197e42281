package cursor

import "github.com/dshills/suptext/internal/engine/buffer"

// EditResult is an alias for buffer.EditResult for convenience.
type EditResult = buffer.EditResult

// TransformOffset updates an offset after an applied edit.
//
// Transformation rules:
//   - If the edit ends at or before offset: shift offset by the edit's delta
//   - If the edit starts at or after offset: offset unchanged
//   - If the edit spans offset: move offset to the end of the new text
func TransformOffset(offset ByteOffset, res EditResult) ByteOffset {
	if res.OldRange.End <= offset {
		return offset + res.Delta
	}
	if res.OldRange.Start >= offset {
		return offset
	}
	return res.NewRange.End
}

// TransformCursor updates both ends of a cursor after an applied edit.
func TransformCursor(c Cursor, res EditResult) Cursor {
	return Cursor{
		Anchor:   TransformOffset(c.Anchor, res),
		Position: TransformOffset(c.Position, res),
	}
}

// Transform returns a new set with every cursor updated after res.
func (s *Set) Transform(res EditResult) *Set {
	return s.Map(func(c Cursor) Cursor { return TransformCursor(c, res) })
}
