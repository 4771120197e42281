// Package multicursor applies one logical edit at every cursor of a cursor set
// against a single shared buffer.
//
// The engine is a two-state machine:
//
//   - Inactive: no cursor set; every batch operation is a no-op.
//   - Active: entered when SelectAllOccurrences finds at least two matches
//     (or Activate is given at least two cursors). Left by Cancel or by
//     Invalidate after an external full-document replace.
//
// Batch edits visit cursors in descending order of start offset, so an edit
// never moves the offsets of cursors still waiting to be visited. The
// resulting cursors are reported in ascending document order, in post-edit
// coordinates: a cursor is shifted by the deltas of every edit that started
// to its left.
//
// Offsets are clamped into [0, Len()] rather than reported as errors. A
// collapsed cursor found past the end of the buffer is skipped for that batch
// without aborting the others.
//
// Each mutating batch is recorded as one history group, so a single undo
// reverts the whole batch.
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("x=0; x=0; x=0;")
//	mc := multicursor.New(buf, history.NewHistory(0))
//
//	mc.SelectAllOccurrences("x", true) // 3
//	mc.CollapseAll()
//	mc.InsertAtAll("=1") // "x=1=0; x=1=0; x=1=0;"
package multicursor
