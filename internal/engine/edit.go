package engine

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/suptext/internal/engine/buffer"
	"github.com/dshills/suptext/internal/engine/cursor"
	"github.com/dshills/suptext/internal/engine/history"
	"github.com/dshills/suptext/internal/engine/multicursor"
	"github.com/dshills/suptext/internal/engine/search"
)

// HandleKey applies one key event and reports whether it was consumed.
func (e *Editor) HandleKey(k Key) bool {
	if e.multi.IsActive() && e.handleMultiKey(k) {
		return true
	}

	switch {
	case k.Printable():
		e.InsertText(k.Text)
	case k.Code == KeyEnter:
		e.Newline()
	case k.Code == KeyTab:
		e.Tab()
	case k.Code == KeyBackspace:
		e.Backspace()
	case k.Code == KeyDelete:
		e.DeleteForward()
	case k.Code == KeyEscape:
		e.CancelMultiCursor()
	case k.Code == KeyLeft:
		e.Move(Left)
	case k.Code == KeyRight:
		e.Move(Right)
	case k.Code == KeyUp:
		e.Move(Up)
	case k.Code == KeyDown:
		e.Move(Down)
	default:
		return false
	}
	return true
}

func (e *Editor) handleMultiKey(k Key) bool {
	switch {
	case k.Code == KeyEscape:
		e.CancelMultiCursor()
	case k.Printable():
		e.multi.InsertAtAll(k.Text)
		e.afterBatch()
	case k.Code == KeyBackspace:
		e.multi.DeleteBeforeAll()
		e.afterBatch()
	case k.Code == KeyDelete:
		e.multi.DeleteAfterAll()
		e.afterBatch()
	case k.Code == KeyLeft:
		e.moveAll(multicursor.Left)
	case k.Code == KeyRight:
		e.moveAll(multicursor.Right)
	case k.Code == KeyUp:
		e.moveAll(multicursor.Up)
	case k.Code == KeyDown:
		e.moveAll(multicursor.Down)
	default:
		return false
	}
	return true
}

func (e *Editor) moveAll(dir Direction) {
	e.multi.MoveAll(dir)
	e.mu.Lock()
	e.scheduleRedrawLocked()
	e.mu.Unlock()
}

// afterBatch repaints after a multi-cursor edit. The redraw is deferred so
// the sink never observes a half-applied batch.
func (e *Editor) afterBatch() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dirty.markFull()
	e.scheduleRedrawLocked()
}

// InsertText replaces the primary selection with text, or inserts it at
// the primary cursor.
func (e *Editor) InsertText(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.replaceSelectionLocked("insert", text)
}

// Backspace deletes the primary selection, or the character before the
// primary cursor.
func (e *Editor) Backspace() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.leaveMultiLocked()
	c := e.clamp(e.primary)
	if c.HasSelection() {
		e.replaceSelectionLocked("delete", "")
		return
	}
	if c.Position == 0 {
		return
	}
	e.editLocked("backspace", e.buf.PrevChar(c.Position), c.Position, "")
}

// DeleteForward deletes the primary selection, or the character after the
// primary cursor.
func (e *Editor) DeleteForward() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.leaveMultiLocked()
	c := e.clamp(e.primary)
	if c.HasSelection() {
		e.replaceSelectionLocked("delete", "")
		return
	}
	if c.Position >= e.buf.Len() {
		return
	}
	e.editLocked("delete", c.Position, e.buf.NextChar(c.Position), "")
}

// Newline breaks the line at the primary cursor. With auto-indent the new
// line repeats the current line's leading whitespace, plus one indent step
// after a Python line ending in a colon.
func (e *Editor) Newline() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.leaveMultiLocked()
	text := "\n"
	if e.cfg.AutoIndent {
		line := e.buf.LineText(e.buf.OffsetToPoint(e.primary.Position).Line)
		text += leadingWhitespace(line)
		if e.syntax.Language() == "Python" && strings.HasSuffix(strings.TrimRightFunc(line, unicode.IsSpace), ":") {
			text += strings.Repeat(" ", e.indentWidth())
		}
	}
	e.replaceSelectionLocked("newline", text)
}

// Tab inserts one indent step at the primary cursor.
func (e *Editor) Tab() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.leaveMultiLocked()
	if e.cfg.UseSpaces {
		e.replaceSelectionLocked("indent", strings.Repeat(" ", e.indentWidth()))
		return
	}
	e.replaceSelectionLocked("indent", "\t")
}

func (e *Editor) indentWidth() int {
	if e.cfg.TabSize > 0 {
		return e.cfg.TabSize
	}
	return 4
}

// Move moves the primary cursor one step, dropping any selection.
func (e *Editor) Move(dir Direction) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.leaveMultiLocked()
	pos := e.buf.Clamp(e.primary.Position)
	switch dir {
	case Left:
		pos = e.buf.PrevChar(pos)
	case Right:
		pos = e.buf.NextChar(pos)
	case Up, Down:
		pt := e.buf.OffsetToPoint(pos)
		switch {
		case dir == Up && pt.Line > 0:
			pt.Line--
		case dir == Down && pt.Line+1 < e.buf.LineCount():
			pt.Line++
		}
		pos = e.buf.PointToOffset(pt)
	}
	e.primary = cursor.At(pos)
	e.scheduleRedrawLocked()
}

// ToggleComment comments or uncomments the primary cursor's line with the
// language's line comment prefix. An uncommented line gains the prefix and
// a space after its indentation; a commented line loses the prefix and the
// spaces that follow it.
func (e *Editor) ToggleComment() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.leaveMultiLocked()
	prefix := e.syntax.Registry().CommentPrefix(e.syntax.Language())
	lineNo := e.buf.OffsetToPoint(e.primary.Position).Line
	start := e.buf.LineStartOffset(lineNo)
	end := e.buf.LineEndOffset(lineNo)
	line := e.buf.TextRange(start, end)

	stripped := strings.TrimLeft(line, " \t")
	var replacement string
	if strings.HasPrefix(stripped, prefix) {
		idx := strings.Index(line, prefix)
		replacement = line[:idx] + strings.TrimLeft(line[idx+len(prefix):], " ")
	} else {
		indent := len(line) - len(stripped)
		replacement = line[:indent] + prefix + " " + stripped
	}

	before := e.primary
	g := history.NewGroup("toggle comment", []Cursor{before})
	res, err := e.buf.Replace(start, end, replacement)
	if err != nil {
		e.log.Warn("toggle comment: %v", err)
		return
	}
	g.Record(res)
	e.primary = cursor.At(res.NewRange.End)
	g.CursorsAfter = []Cursor{e.primary}
	e.hist.Push(g)
	e.dirty.mark(int(lineNo))
	e.scheduleRedrawLocked()
}

// CursorPosition returns the primary cursor's one-based line and column.
func (e *Editor) CursorPosition() (line, column int) {
	pt := e.buf.OffsetToPoint(e.Cursor().Position)
	return int(pt.Line) + 1, int(pt.Column) + 1
}

// SetCursorPosition moves the primary cursor to a one-based line and
// column. The column is clamped to the line.
func (e *Editor) SetCursorPosition(line, column int) error {
	if line < 1 || line > int(e.buf.LineCount()) {
		return ErrLineOutOfRange
	}
	if column < 1 {
		column = 1
	}
	off := e.buf.PointToOffset(Point{Line: uint32(line - 1), Column: uint32(column - 1)})
	e.SetCursor(cursor.At(off))
	return nil
}

// GoToLine moves the primary cursor to the start of a one-based line.
func (e *Editor) GoToLine(line int) error {
	return e.SetCursorPosition(line, 1)
}

// SelectedText returns the text of the primary selection.
func (e *Editor) SelectedText() string {
	c := e.clamp(e.Cursor())
	return e.buf.TextRange(c.Start(), c.End())
}

// Find selects the next occurrence of term after the primary cursor, or
// the previous one before it when forward is false, wrapping around the
// document. Reports whether a match was found.
func (e *Editor) Find(term string, opts search.Options, forward bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	opts.Limit = 0
	matches := search.Find(e.buf.Text(), term, opts)
	if len(matches) == 0 {
		return false
	}

	c := e.clamp(e.primary)
	var m search.Match
	if forward {
		m = matches[0]
		for _, cand := range matches {
			if cand.Start >= c.End() {
				m = cand
				break
			}
		}
	} else {
		m = matches[len(matches)-1]
		for i := len(matches) - 1; i >= 0; i-- {
			if matches[i].End <= c.Start() {
				m = matches[i]
				break
			}
		}
	}

	e.leaveMultiLocked()
	e.primary = cursor.New(m.Start, m.End)
	e.scheduleRedrawLocked()
	return true
}

// ReplaceAll replaces every occurrence of term as one undoable group and
// returns the count.
func (e *Editor) ReplaceAll(term, replacement string, opts search.Options) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	opts.Limit = 0
	matches := search.Find(e.buf.Text(), term, opts)
	if len(matches) == 0 {
		return 0
	}

	edits := make([]buffer.Edit, len(matches))
	for i, m := range matches {
		edits[len(matches)-1-i] = buffer.Edit{Range: m.Range(), NewText: replacement}
	}

	e.multi.Cancel()
	g := history.NewGroup("replace all", []Cursor{e.primary})
	results, err := e.buf.ApplyEdits(edits)
	if err != nil {
		e.log.Warn("replace all: %v", err)
		return 0
	}
	for _, res := range results {
		g.Record(res)
	}
	e.primary = e.clamp(cursor.At(e.primary.Position))
	g.CursorsAfter = []Cursor{e.primary}
	e.hist.Push(g)
	e.dirty.markFull()
	e.scheduleRedrawLocked()
	return len(matches)
}

// replaceSelectionLocked replaces the primary selection (or inserts at the
// primary cursor) and leaves the cursor after the new text.
func (e *Editor) replaceSelectionLocked(name, text string) {
	e.leaveMultiLocked()
	c := e.clamp(e.primary)
	if text == "" && !c.HasSelection() {
		return
	}
	e.editLocked(name, c.Start(), c.End(), text)
}

// editLocked applies one edit as its own undo group and repaints the lines
// it touched.
func (e *Editor) editLocked(name string, start, end ByteOffset, text string) {
	linesBefore := e.buf.LineCount()
	g := history.NewGroup(name, []Cursor{e.primary})

	res, err := e.buf.Replace(start, end, text)
	if err != nil {
		e.log.Warn("%s: %v", name, err)
		return
	}
	g.Record(res)
	e.primary = cursor.At(res.NewRange.End)
	g.CursorsAfter = []Cursor{e.primary}
	e.hist.Push(g)

	first := int(e.buf.OffsetToPoint(res.NewRange.Start).Line)
	if e.buf.LineCount() != linesBefore {
		// Lines past the old end must be cleared too.
		e.dirty.markFrom(first, int(max(linesBefore, e.buf.LineCount())))
	} else {
		last := int(e.buf.OffsetToPoint(res.NewRange.End).Line)
		for l := first; l <= last; l++ {
			e.dirty.mark(l)
		}
	}
	e.scheduleRedrawLocked()
}

// selectionOrWordLocked returns the primary selection's text, or the word
// under the primary cursor.
func (e *Editor) selectionOrWordLocked() string {
	c := e.clamp(e.primary)
	if c.HasSelection() {
		return e.buf.TextRange(c.Start(), c.End())
	}

	text := e.buf.Text()
	pos := int(c.Position)
	start, end := pos, pos
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:start])
		if !isWordRune(r) {
			break
		}
		start -= size
	}
	for end < len(text) {
		r, size := utf8.DecodeRuneInString(text[end:])
		if !isWordRune(r) {
			break
		}
		end += size
	}
	return text[start:end]
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func leadingWhitespace(line string) string {
	for i, r := range line {
		if r != ' ' && r != '\t' {
			return line[:i]
		}
	}
	return line
}
