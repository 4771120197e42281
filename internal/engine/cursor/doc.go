// Package cursor provides cursors and ordered cursor sets for text editing.
//
// The cursor package handles:
//
//   - Carets and selections with the Cursor (anchor, position) type
//   - Ordered multi-cursor collections via Set
//   - Cursor transformation after buffer edits
//
// Selection Model:
//
//   - Anchor: The offset where the selection started
//   - Position: The caret offset (where typing would occur)
//
// When Anchor == Position the cursor is collapsed. A selection covers
// [min(Anchor, Position), max(Anchor, Position)).
//
// Sets never merge or deduplicate. Edits that must not disturb each other's
// offsets walk Descending() and report results in ascending order.
//
// Basic usage:
//
//	s := cursor.NewSet(cursor.At(2), cursor.New(7, 9))
//	for _, c := range s.Descending() {
//	    // edit at c without shifting cursors still to be visited
//	}
//
// Thread Safety:
//
// Cursor is an immutable value type. Set values returned by this package are
// never mutated after construction and may be shared.
package cursor
