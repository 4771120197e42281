// Package history provides undo/redo for the editing core.
//
// Every logical operation (a keystroke in single-cursor mode, or one batch
// edit across all cursors in multi-cursor mode) becomes one Group. A group
// records the buffer's EditResults in the order they were applied, so undo
// inverts them latest-first and redo replays them as recorded. That keeps a
// right-to-left multi-cursor batch all-or-nothing for undo.
//
//	g := history.NewGroup("insert", cursors.All())
//	res, _ := buf.Insert(4, "x")
//	g.Record(res)
//	h.Push(g)
//
//	h.Undo(buf) // reverts every edit in g
package history
