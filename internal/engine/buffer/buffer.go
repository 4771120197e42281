package buffer

import (
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrEditsOverlap     = errors.New("edits overlap or are not in reverse order")
)

// LineEnding specifies the line ending style used when text leaves the buffer.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	if le == LineEndingCRLF {
		return "\\r\\n"
	}
	return "\\n"
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	if le == LineEndingCRLF {
		return "\r\n"
	}
	return "\n"
}

// Buffer holds the document text and its line index.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	text       string
	lineStarts []ByteOffset
	revisionID RevisionID
	lineEnding LineEnding
	tabWidth   int
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		lineStarts: []ByteOffset{0},
		revisionID: NewRevisionID(),
		lineEnding: LineEndingLF,
		tabWidth:   4,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.text = normalizeLineEndings(s)
	b.reindexFrom(0)
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	// Read everything first: CRLF pairs may straddle read boundaries.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBufferFromString(string(data), opts...), nil
}

// normalizeLineEndings converts CRLF and lone CR to LF.
func normalizeLineEndings(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Read Operations

// Text returns the full buffer content with LF line endings.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

// EncodedText returns the content using the buffer's line ending style.
func (b *Buffer) EncodedText() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.lineEnding == LineEndingLF {
		return b.text
	}
	return strings.ReplaceAll(b.text, "\n", b.lineEnding.Sequence())
}

// TextRange returns text in the given byte range, clamped to the buffer.
func (b *Buffer) TextRange(start, end ByteOffset) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	start, end = b.clampLocked(start), b.clampLocked(end)
	if start >= end {
		return ""
	}
	return b.text[start:end]
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(len(b.text))
}

// CharacterCount returns the number of characters (runes) in the buffer.
func (b *Buffer) CharacterCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return utf8.RuneCountInString(b.text)
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.text) == 0
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return uint32(len(b.lineStarts))
}

// LineText returns the text of a specific line (without newline).
// Returns "" for lines past the end.
func (b *Buffer) LineText(line uint32) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if int(line) >= len(b.lineStarts) {
		return ""
	}
	return b.text[b.lineStarts[line]:b.lineEndLocked(line)]
}

// Lines returns every line of the buffer without newlines.
func (b *Buffer) Lines() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	lines := make([]string, len(b.lineStarts))
	for i := range b.lineStarts {
		lines[i] = b.text[b.lineStarts[i]:b.lineEndLocked(uint32(i))]
	}
	return lines
}

// LineStartOffset returns the byte offset of the start of a line.
func (b *Buffer) LineStartOffset(line uint32) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if int(line) >= len(b.lineStarts) {
		return ByteOffset(len(b.text))
	}
	return b.lineStarts[line]
}

// LineEndOffset returns the byte offset of the end of a line (before newline).
func (b *Buffer) LineEndOffset(line uint32) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if int(line) >= len(b.lineStarts) {
		return ByteOffset(len(b.text))
	}
	return b.lineEndLocked(line)
}

// Coordinate Conversion

// OffsetToPoint converts a byte offset to line/column.
// Offsets outside the buffer are clamped.
func (b *Buffer) OffsetToPoint(offset ByteOffset) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	offset = b.clampLocked(offset)
	line := b.lineAtLocked(offset)
	col := utf8.RuneCountInString(b.text[b.lineStarts[line]:offset])
	return Point{Line: uint32(line), Column: uint32(col)}
}

// PointToOffset converts line/column to byte offset.
// The line is clamped to the last line and the column to the line's length.
func (b *Buffer) PointToOffset(point Point) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()

	line := int(point.Line)
	if line >= len(b.lineStarts) {
		line = len(b.lineStarts) - 1
	}
	start := b.lineStarts[line]
	end := b.lineEndLocked(uint32(line))

	offset := start
	for col := uint32(0); col < point.Column && offset < end; col++ {
		_, size := utf8.DecodeRuneInString(b.text[offset:end])
		offset += ByteOffset(size)
	}
	return offset
}

// Clamp returns offset limited to [0, Len()] and moved back onto a rune boundary.
func (b *Buffer) Clamp(offset ByteOffset) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.clampLocked(offset)
}

// PrevChar returns the offset of the character before offset.
// Returns 0 at the start of the buffer.
func (b *Buffer) PrevChar(offset ByteOffset) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()

	offset = b.clampLocked(offset)
	if offset == 0 {
		return 0
	}
	lineStart := b.lineStarts[b.lineAtLocked(offset)]
	if lineStart == offset {
		// The newline that ends the previous line.
		return offset - 1
	}

	pos := lineStart
	rest := b.text[lineStart:offset]
	state := -1
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if pos+ByteOffset(len(cluster)) >= offset {
			return pos
		}
		pos += ByteOffset(len(cluster))
	}
	return pos
}

// NextChar returns the offset just past the character at offset.
// Returns Len() at the end of the buffer.
func (b *Buffer) NextChar(offset ByteOffset) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()

	offset = b.clampLocked(offset)
	if offset >= ByteOffset(len(b.text)) {
		return ByteOffset(len(b.text))
	}
	if b.text[offset] == '\n' {
		return offset + 1
	}
	end := b.lineEndLocked(uint32(b.lineAtLocked(offset)))
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(b.text[offset:end], -1)
	return offset + ByteOffset(len(cluster))
}

// Write Operations

// Insert inserts text at the given offset.
func (b *Buffer) Insert(offset ByteOffset, text string) (EditResult, error) {
	return b.Replace(offset, offset, text)
}

// Delete removes text in the given range.
func (b *Buffer) Delete(start, end ByteOffset) (EditResult, error) {
	return b.Replace(start, end, "")
}

// Replace replaces text in the given range with new text.
func (b *Buffer) Replace(start, end ByteOffset, text string) (EditResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start < 0 || start > end || end > ByteOffset(len(b.text)) {
		return EditResult{}, ErrRangeInvalid
	}

	res := b.replaceLocked(start, end, text)
	b.revisionID = NewRevisionID()
	return res, nil
}

// ApplyEdit applies a single edit to the buffer.
func (b *Buffer) ApplyEdit(edit Edit) (EditResult, error) {
	return b.Replace(edit.Range.Start, edit.Range.End, edit.NewText)
}

// ApplyEdits applies multiple edits atomically.
// Edits must be in reverse order (highest offset first) so that each edit
// leaves the offsets of the ones still to come untouched. Either every edit
// is applied or none is.
func (b *Buffer) ApplyEdits(edits []Edit) ([]EditResult, error) {
	if len(edits) == 0 {
		return nil, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i := 1; i < len(edits); i++ {
		if edits[i].Range.End > edits[i-1].Range.Start {
			return nil, ErrEditsOverlap
		}
	}

	size := ByteOffset(len(b.text))
	for _, edit := range edits {
		if edit.Range.Start < 0 || edit.Range.Start > edit.Range.End ||
			edit.Range.End > size {
			return nil, ErrRangeInvalid
		}
	}

	results := make([]EditResult, 0, len(edits))
	for _, edit := range edits {
		results = append(results, b.replaceLocked(edit.Range.Start, edit.Range.End, edit.NewText))
	}

	b.revisionID = NewRevisionID()
	return results, nil
}

// SetText replaces the whole document.
func (b *Buffer) SetText(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = normalizeLineEndings(text)
	b.lineStarts = b.lineStarts[:1]
	b.reindexFrom(0)
	b.revisionID = NewRevisionID()
}

// Buffer State

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// TabWidth returns the buffer's tab width.
func (b *Buffer) TabWidth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tabWidth
}

// SetLineEnding sets the buffer's line ending style.
func (b *Buffer) SetLineEnding(le LineEnding) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lineEnding = le
}

// internal helpers; callers hold the lock.

func (b *Buffer) replaceLocked(start, end ByteOffset, text string) EditResult {
	text = normalizeLineEndings(text)
	old := b.text[start:end]
	b.text = b.text[:start] + text + b.text[end:]
	b.reindexFrom(start)

	newEnd := start + ByteOffset(len(text))
	return EditResult{
		OldRange: Range{Start: start, End: end},
		NewRange: Range{Start: start, End: newEnd},
		OldText:  old,
		NewText:  text,
		Delta:    ByteOffset(len(text)) - (end - start),
	}
}

// reindexFrom rebuilds line starts from the line containing offset onward.
// Line starts before that line are unaffected by an edit at offset.
func (b *Buffer) reindexFrom(offset ByteOffset) {
	line := b.lineAtLocked(offset)
	starts := b.lineStarts[:line+1]
	for i := int(starts[line]); i < len(b.text); i++ {
		if b.text[i] == '\n' {
			starts = append(starts, ByteOffset(i+1))
		}
	}
	b.lineStarts = starts
}

// lineAtLocked returns the index of the line containing offset.
func (b *Buffer) lineAtLocked(offset ByteOffset) int {
	i := sort.Search(len(b.lineStarts), func(i int) bool {
		return b.lineStarts[i] > offset
	})
	if i == 0 {
		return 0
	}
	return i - 1
}

func (b *Buffer) lineEndLocked(line uint32) ByteOffset {
	if int(line)+1 < len(b.lineStarts) {
		return b.lineStarts[line+1] - 1
	}
	return ByteOffset(len(b.text))
}

func (b *Buffer) clampLocked(offset ByteOffset) ByteOffset {
	if offset <= 0 {
		return 0
	}
	if offset >= ByteOffset(len(b.text)) {
		return ByteOffset(len(b.text))
	}
	for offset > 0 && !utf8.RuneStart(b.text[offset]) {
		offset--
	}
	return offset
}
