// Package engine is the editing facade that ties the text buffer, undo
// history, syntax classification and the multi-cursor engine together.
//
// # Architecture
//
//	┌───────────────────────────────────────────────┐
//	│                    Editor                     │
//	│   HandleKey · ToggleComment · Undo · Redo     │
//	├──────────────┬──────────────┬─────────────────┤
//	│   buffer     │  multicursor │  syntax.Provider│
//	│   history    │  cursor      │  (line cache)   │
//	├──────────────┴──────────────┴─────────────────┤
//	│            Scheduler → Sink (redraw)          │
//	└───────────────────────────────────────────────┘
//
// An Editor owns one document. All mutations happen on the caller's
// goroutine; the Editor never starts goroutines of its own.
//
// # Key dispatch
//
// While multi-cursor mode is active, Escape cancels it, printable text is
// inserted at every cursor, and Backspace, Delete and the arrow keys apply
// to every cursor. Any other key falls through to single-cursor handling,
// which leaves multi-cursor mode because the cursor set no longer tracks
// the document.
//
// # Redraw
//
// Edits do not paint directly. They schedule one redraw on the Scheduler,
// and Flush delivers the painted lines and cursor snapshot to the Sink. A
// host calls Flush once per event loop iteration.
//
// # Usage
//
//	ed := engine.New(cfg.Editor,
//	    engine.WithContent("x = 0\ny = 0\n"),
//	    engine.WithLanguage("Python"),
//	    engine.WithSink(sink),
//	)
//	ed.SelectAllOccurrences("0")
//	ed.HandleKey(engine.Text("1"))
//	ed.Flush()
package engine
