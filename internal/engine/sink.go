package engine

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/tidwall/sjson"

	"github.com/dshills/suptext/internal/engine/cursor"
	"github.com/dshills/suptext/internal/syntax"
)

// Line is one document line with its painted spans.
type Line struct {
	Number int // zero-based
	Text   string
	Spans  []syntax.Span
}

// CursorSnapshot is the caret and selection state at redraw time.
type CursorSnapshot struct {
	Cursors      []cursor.Cursor // ascending
	Points       []Point         // line/column of each cursor position
	MultiCursor  bool
	BlinkVisible bool
}

// Sink receives redraw output. It never feeds back into the editor.
type Sink interface {
	// Lines delivers the lines that changed since the last redraw, in
	// ascending order. LineCount is the document's line count.
	Lines(lines []Line, lineCount int)
	// Cursors delivers the cursor state.
	Cursors(snap CursorSnapshot)
}

// NopSink discards redraws.
type NopSink struct{}

func (NopSink) Lines([]Line, int)      {}
func (NopSink) Cursors(CursorSnapshot) {}

// Frame is one redraw captured by a RecordingSink.
type Frame struct {
	Lines     []Line
	LineCount int
	Cursors   CursorSnapshot
}

// RecordingSink keeps every redraw it receives.
type RecordingSink struct {
	mu     sync.Mutex
	frames []Frame
}

// Lines starts a new frame.
func (s *RecordingSink) Lines(lines []Line, lineCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, Frame{Lines: lines, LineCount: lineCount})
}

// Cursors completes the current frame.
func (s *RecordingSink) Cursors(snap CursorSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) == 0 {
		s.frames = append(s.frames, Frame{})
	}
	s.frames[len(s.frames)-1].Cursors = snap
}

// Frames returns a copy of the recorded frames.
func (s *RecordingSink) Frames() []Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Frame, len(s.frames))
	copy(out, s.frames)
	return out
}

// Last returns the most recent frame.
func (s *RecordingSink) Last() (Frame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) == 0 {
		return Frame{}, false
	}
	return s.frames[len(s.frames)-1], true
}

// Reset drops recorded frames.
func (s *RecordingSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = nil
}

// SpanSink writes each delivered line followed by its spans:
//
//	   1 | def foo():
//	     | function[0,7)
type SpanSink struct {
	W io.Writer
}

func (s SpanSink) Lines(lines []Line, _ int) {
	for _, l := range lines {
		fmt.Fprintf(s.W, "%4d | %s\n", l.Number+1, l.Text)
		if len(l.Spans) == 0 {
			continue
		}
		parts := make([]string, len(l.Spans))
		for i, sp := range l.Spans {
			parts[i] = sp.String()
		}
		fmt.Fprintf(s.W, "     | %s\n", strings.Join(parts, " "))
	}
}

func (s SpanSink) Cursors(snap CursorSnapshot) {
	if !snap.MultiCursor {
		return
	}
	parts := make([]string, len(snap.Cursors))
	for i, c := range snap.Cursors {
		parts[i] = c.String()
	}
	fmt.Fprintf(s.W, "cursors: %s\n", strings.Join(parts, " "))
}

// ANSISink writes delivered lines colored with a theme using 24-bit ANSI
// escapes.
type ANSISink struct {
	W     io.Writer
	Theme *syntax.Theme
}

func (s ANSISink) Lines(lines []Line, _ int) {
	theme := s.Theme
	if theme == nil {
		theme = syntax.DarkTheme()
	}
	var b strings.Builder
	for _, l := range lines {
		b.Reset()
		pos := 0
		for _, sp := range l.Spans {
			if sp.Start > pos {
				b.WriteString(l.Text[pos:sp.Start])
			}
			b.WriteString(ansi(theme.StyleFor(sp.Category)))
			b.WriteString(l.Text[sp.Start:sp.End()])
			b.WriteString("\x1b[0m")
			pos = sp.End()
		}
		b.WriteString(l.Text[pos:])
		b.WriteByte('\n')
		io.WriteString(s.W, b.String())
	}
}

func (ANSISink) Cursors(CursorSnapshot) {}

func ansi(style tcell.Style) string {
	fg, _, attrs := style.Decompose()
	var b strings.Builder
	if fg.Valid() {
		r, g, bl := fg.RGB()
		fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%dm", r, g, bl)
	}
	if attrs&tcell.AttrBold != 0 {
		b.WriteString("\x1b[1m")
	}
	if attrs&tcell.AttrItalic != 0 {
		b.WriteString("\x1b[3m")
	}
	return b.String()
}

// JSONSink writes one JSON object per delivered line:
//
//	{"line":1,"text":"def foo():","spans":[{"category":"function","start":0,"end":7}]}
type JSONSink struct {
	W io.Writer
}

func (s JSONSink) Lines(lines []Line, _ int) {
	for _, l := range lines {
		doc, err := encodeLine(l)
		if err != nil {
			continue
		}
		s.W.Write(append(doc, '\n'))
	}
}

func (JSONSink) Cursors(CursorSnapshot) {}

func encodeLine(l Line) ([]byte, error) {
	doc := []byte(`{}`)
	doc, err := sjson.SetBytes(doc, "line", l.Number+1)
	if err != nil {
		return nil, err
	}
	if doc, err = sjson.SetBytes(doc, "text", l.Text); err != nil {
		return nil, err
	}
	if doc, err = sjson.SetRawBytes(doc, "spans", []byte(`[]`)); err != nil {
		return nil, err
	}
	for i, sp := range l.Spans {
		prefix := fmt.Sprintf("spans.%d.", i)
		if doc, err = sjson.SetBytes(doc, prefix+"category", sp.Category.String()); err != nil {
			return nil, err
		}
		if doc, err = sjson.SetBytes(doc, prefix+"start", sp.Start); err != nil {
			return nil, err
		}
		if doc, err = sjson.SetBytes(doc, prefix+"end", sp.End()); err != nil {
			return nil, err
		}
	}
	return doc, nil
}
