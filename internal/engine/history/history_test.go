package history

import (
	"errors"
	"testing"

	"github.com/dshills/suptext/internal/engine/buffer"
	"github.com/dshills/suptext/internal/engine/cursor"
)

func recordEdits(t *testing.T, buf *buffer.Buffer, name string, edits ...buffer.Edit) *Group {
	t.Helper()
	g := NewGroup(name, nil)
	for _, e := range edits {
		res, err := buf.ApplyEdit(e)
		if err != nil {
			t.Fatalf("apply %s: %v", e, err)
		}
		g.Record(res)
	}
	return g
}

func TestNewHistoryDefaults(t *testing.T) {
	h := NewHistory(0)
	if h.maxEntries != DefaultMaxEntries {
		t.Errorf("expected default max entries, got %d", h.maxEntries)
	}
	if h.CanUndo() || h.CanRedo() {
		t.Error("new history should be empty")
	}
}

func TestUndoRightToLeftBatch(t *testing.T) {
	buf := buffer.NewBufferFromString("x=0; x=0; x=0;")
	h := NewHistory(10)

	g := recordEdits(t, buf, "multi-insert",
		buffer.NewInsert(11, "=1"),
		buffer.NewInsert(6, "=1"),
		buffer.NewInsert(1, "=1"),
	)
	h.Push(g)

	if buf.Text() != "x=1=0; x=1=0; x=1=0;" {
		t.Fatalf("unexpected text %q", buf.Text())
	}

	undone, err := h.Undo(buf)
	if err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if undone.ID != g.ID {
		t.Error("undo returned a different group")
	}
	if buf.Text() != "x=0; x=0; x=0;" {
		t.Errorf("undo should revert the whole batch, got %q", buf.Text())
	}

	if _, err := h.Redo(buf); err != nil {
		t.Fatalf("redo failed: %v", err)
	}
	if buf.Text() != "x=1=0; x=1=0; x=1=0;" {
		t.Errorf("redo should reapply the batch, got %q", buf.Text())
	}
}

func TestUndoDeletesWithSelections(t *testing.T) {
	buf := buffer.NewBufferFromString("abcdefghij")
	h := NewHistory(10)

	h.Push(recordEdits(t, buf, "delete",
		buffer.NewDelete(7, 9),
		buffer.NewDelete(4, 5),
		buffer.NewDelete(1, 2),
	))
	if buf.Text() != "acdfgj" {
		t.Fatalf("unexpected text %q", buf.Text())
	}

	if _, err := h.Undo(buf); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if buf.Text() != "abcdefghij" {
		t.Errorf("unexpected text after undo %q", buf.Text())
	}
}

func TestUndoEmpty(t *testing.T) {
	h := NewHistory(10)
	buf := buffer.NewBuffer()

	if _, err := h.Undo(buf); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("expected ErrNothingToUndo, got %v", err)
	}
	if _, err := h.Redo(buf); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("expected ErrNothingToRedo, got %v", err)
	}
}

func TestPushIgnoresEmptyGroup(t *testing.T) {
	h := NewHistory(10)
	h.Push(NewGroup("noop", nil))
	h.Push(nil)
	if h.CanUndo() {
		t.Error("empty groups should not be recorded")
	}
}

func TestPushClearsRedo(t *testing.T) {
	buf := buffer.NewBufferFromString("abc")
	h := NewHistory(10)

	h.Push(recordEdits(t, buf, "one", buffer.NewInsert(3, "d")))
	if _, err := h.Undo(buf); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if !h.CanRedo() {
		t.Fatal("expected redo to be available")
	}

	h.Push(recordEdits(t, buf, "two", buffer.NewInsert(0, "z")))
	if h.CanRedo() {
		t.Error("push should clear the redo stack")
	}
}

func TestMaxEntries(t *testing.T) {
	buf := buffer.NewBuffer()
	h := NewHistory(2)

	for i := 0; i < 4; i++ {
		h.Push(recordEdits(t, buf, "insert", buffer.NewInsert(buf.Len(), "a")))
	}
	if h.UndoCount() != 2 {
		t.Errorf("expected 2 entries, got %d", h.UndoCount())
	}
}

func TestPeekUndoAndCursors(t *testing.T) {
	buf := buffer.NewBufferFromString("ab")
	h := NewHistory(10)

	g := NewGroup("type", []cursor.Cursor{cursor.At(1)})
	res, err := buf.Insert(1, "X")
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	g.Record(res)
	g.CursorsAfter = []cursor.Cursor{cursor.At(2)}
	h.Push(g)

	info, ok := h.PeekUndo()
	if !ok || info.Name != "type" || info.Edits != 1 {
		t.Errorf("unexpected info %+v", info)
	}

	undone, err := h.Undo(buf)
	if err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if undone.CursorsBefore[0] != cursor.At(1) {
		t.Errorf("expected cursors before to be kept, got %v", undone.CursorsBefore)
	}
}

func TestClear(t *testing.T) {
	buf := buffer.NewBufferFromString("ab")
	h := NewHistory(10)
	h.Push(recordEdits(t, buf, "x", buffer.NewInsert(0, "x")))
	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("clear should empty both stacks")
	}
}
