// Package buffer provides the owned text buffer the editing core mutates.
//
// The buffer stores UTF-8 text with LF line endings plus an index of line
// start offsets. Every write returns an EditResult describing the replaced
// range, the new range and the length delta, so callers that hold offsets
// (cursors, tokens, history) can shift them without consulting the text.
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("Hello, World!")
//
//	res, _ := buf.Insert(7, "Beautiful ") // "Hello, Beautiful World!"
//	_ = res.Delta                         // 10
//
//	buf.Delete(0, 7) // "Beautiful World!"
//
// Position Types:
//
//   - ByteOffset: Raw byte position in the buffer
//   - Point: Line and column position (0-indexed, column in characters)
//
// Characters:
//
// PrevChar and NextChar step over one user-perceived character (a grapheme
// cluster), so deleting "one character" never splits a combining sequence.
//
// Thread Safety:
//
// All Buffer methods are safe for concurrent use. The editing core itself is
// single-threaded; the lock protects readers such as file watchers.
package buffer
