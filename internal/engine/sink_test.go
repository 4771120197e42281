package engine

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/dshills/suptext/internal/syntax"
)

func TestJSONSink(t *testing.T) {
	var buf bytes.Buffer
	e, _ := newEditor(t, "def f00():\n\"q\" # c", "Python", WithSink(JSONSink{W: &buf}))
	e.Redraw()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d JSON lines, want 2:\n%s", len(lines), buf.String())
	}

	first := gjson.Parse(lines[0])
	if got := first.Get("line").Int(); got != 1 {
		t.Errorf("line = %d, want 1", got)
	}
	if got := first.Get("text").String(); got != "def f00():" {
		t.Errorf("text = %q", got)
	}
	if got := first.Get("spans.0.category").String(); got != "function" {
		t.Errorf("spans.0.category = %q, want function", got)
	}
	if got := first.Get("spans.0.end").Int(); got != 7 {
		t.Errorf("spans.0.end = %d, want 7", got)
	}

	second := gjson.Parse(lines[1])
	if got := second.Get("text").String(); got != `"q" # c` {
		t.Errorf("text = %q, want quoted text preserved", got)
	}
	if got := second.Get("spans.#.category").String(); got != `["string","comment"]` {
		t.Errorf("categories = %s", got)
	}
}

func TestJSONSink_EmptyLineHasEmptySpans(t *testing.T) {
	var buf bytes.Buffer
	JSONSink{W: &buf}.Lines([]Line{{Number: 4}}, 5)

	doc := gjson.Parse(buf.String())
	if !doc.Get("spans").IsArray() || len(doc.Get("spans").Array()) != 0 {
		t.Errorf("spans = %s, want []", doc.Get("spans").Raw)
	}
	if doc.Get("line").Int() != 5 {
		t.Errorf("line = %d, want 5", doc.Get("line").Int())
	}
}

func TestSpanSink(t *testing.T) {
	var buf bytes.Buffer
	SpanSink{W: &buf}.Lines([]Line{
		{Number: 0, Text: "def f00():", Spans: []syntax.Span{{Start: 0, Length: 7, Category: syntax.CategoryFunction}}},
		{Number: 1, Text: "plain"},
	}, 2)

	want := "   1 | def f00():\n     | function[0,7)\n   2 | plain\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestSpanSink_CursorsOnlyInMultiMode(t *testing.T) {
	var buf bytes.Buffer
	e, _ := newEditor(t, "ab ab", "Text", WithSink(SpanSink{W: &buf}))
	e.Redraw()
	if strings.Contains(buf.String(), "cursors:") {
		t.Error("single cursor mode printed cursors")
	}

	buf.Reset()
	e.SelectAllOccurrences("ab")
	e.Flush()
	if !strings.Contains(buf.String(), "cursors: ") {
		t.Errorf("output = %q, want cursors line", buf.String())
	}
}

func TestANSISink(t *testing.T) {
	var buf bytes.Buffer
	theme := syntax.DarkTheme()
	ANSISink{W: &buf, Theme: theme}.Lines([]Line{
		{Text: "x # c", Spans: []syntax.Span{{Start: 2, Length: 3, Category: syntax.CategoryComment}}},
	}, 1)

	out := buf.String()
	if !strings.HasPrefix(out, "x \x1b[38;2;") {
		t.Errorf("output = %q, want plain prefix then color", out)
	}
	if !strings.Contains(out, "\x1b[3m# c\x1b[0m\n") {
		t.Errorf("output = %q, want italic comment then reset", out)
	}
}

func TestRedraw_CursorPoints(t *testing.T) {
	e, sink := newEditor(t, "ab\ncd ab", "Text")
	e.SelectAllOccurrences("ab")
	e.Flush()

	last, ok := sink.Last()
	if !ok {
		t.Fatal("no frame")
	}
	pts := last.Cursors.Points
	if len(pts) != 2 {
		t.Fatalf("points = %v, want 2", pts)
	}
	if pts[0] != (Point{Line: 0, Column: 2}) || pts[1] != (Point{Line: 1, Column: 5}) {
		t.Errorf("points = %v, want (0,2) (1,5)", pts)
	}
}
