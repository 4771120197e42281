package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/suptext/internal/engine/buffer"
	"github.com/dshills/suptext/internal/engine/cursor"
)

// Group is one undo unit: every buffer edit made by a single logical
// operation, in the order they were applied, plus the cursor state around it.
type Group struct {
	ID   uuid.UUID
	Name string

	// Edits are stored in application order. Undo walks them backwards.
	Edits []buffer.EditResult

	CursorsBefore []cursor.Cursor
	CursorsAfter  []cursor.Cursor

	Timestamp time.Time
}

// NewGroup starts an empty group.
func NewGroup(name string, before []cursor.Cursor) *Group {
	return &Group{
		ID:            uuid.New(),
		Name:          name,
		CursorsBefore: before,
		Timestamp:     time.Now(),
	}
}

// Record appends an applied edit.
func (g *Group) Record(res buffer.EditResult) {
	g.Edits = append(g.Edits, res)
}

// IsEmpty returns true if the group holds no edits.
func (g *Group) IsEmpty() bool {
	return len(g.Edits) == 0
}

// undo reverts the group's edits, latest first.
func (g *Group) undo(buf *buffer.Buffer) error {
	for i := len(g.Edits) - 1; i >= 0; i-- {
		if _, err := buf.ApplyEdit(g.Edits[i].Invert()); err != nil {
			return err
		}
	}
	return nil
}

// redo reapplies the group's edits in their original order.
func (g *Group) redo(buf *buffer.Buffer) error {
	for _, res := range g.Edits {
		if _, err := buf.ApplyEdit(res.Redo()); err != nil {
			return err
		}
	}
	return nil
}

// Info describes a group without exposing its edits.
type Info struct {
	ID        uuid.UUID
	Name      string
	Edits     int
	Timestamp time.Time
}

// Info returns a summary of the group.
func (g *Group) Info() Info {
	return Info{ID: g.ID, Name: g.Name, Edits: len(g.Edits), Timestamp: g.Timestamp}
}
