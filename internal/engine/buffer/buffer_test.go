package buffer

import (
	"errors"
	"strings"
	"testing"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer()

	if !b.IsEmpty() {
		t.Error("new buffer should be empty")
	}
	if b.Len() != 0 {
		t.Errorf("expected length 0, got %d", b.Len())
	}
	if b.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", b.LineCount())
	}
}

func TestNewBufferFromStringMultiline(t *testing.T) {
	b := NewBufferFromString("line1\nline2\nline3")

	if b.LineCount() != 3 {
		t.Errorf("expected 3 lines, got %d", b.LineCount())
	}
	for i, want := range []string{"line1", "line2", "line3"} {
		if got := b.LineText(uint32(i)); got != want {
			t.Errorf("line %d: expected %q, got %q", i, want, got)
		}
	}
	if b.LineText(7) != "" {
		t.Error("line past end should be empty")
	}
}

func TestNewBufferNormalizesCRLF(t *testing.T) {
	b := NewBufferFromString("a\r\nb\rc", WithDetectedLineEnding("a\r\nb\r\n"))

	if b.Text() != "a\nb\nc" {
		t.Errorf("expected LF-normalized text, got %q", b.Text())
	}
	if b.LineEnding() != LineEndingCRLF {
		t.Errorf("expected CRLF line ending, got %s", b.LineEnding())
	}
	if b.EncodedText() != "a\r\nb\r\nc" {
		t.Errorf("unexpected encoded text %q", b.EncodedText())
	}
}

func TestNewBufferFromReader(t *testing.T) {
	b, err := NewBufferFromReader(strings.NewReader("x=0;\ny=1;"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.LineCount() != 2 {
		t.Errorf("expected 2 lines, got %d", b.LineCount())
	}
}

func TestBufferInsert(t *testing.T) {
	b := NewBufferFromString("Hello World")

	res, err := b.Insert(5, ",")
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if res.NewRange.End != 6 {
		t.Errorf("expected end position 6, got %d", res.NewRange.End)
	}
	if res.Delta != 1 {
		t.Errorf("expected delta 1, got %d", res.Delta)
	}
	if b.Text() != "Hello, World" {
		t.Errorf("expected 'Hello, World', got %q", b.Text())
	}
}

func TestBufferInsertOutOfRange(t *testing.T) {
	b := NewBufferFromString("abc")

	if _, err := b.Insert(10, "x"); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}
	if _, err := b.Insert(-1, "x"); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}
}

func TestBufferDelete(t *testing.T) {
	b := NewBufferFromString("Hello, World")

	res, err := b.Delete(5, 7)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if res.OldText != ", " {
		t.Errorf("expected old text ', ', got %q", res.OldText)
	}
	if res.Delta != -2 {
		t.Errorf("expected delta -2, got %d", res.Delta)
	}
	if b.Text() != "HelloWorld" {
		t.Errorf("expected 'HelloWorld', got %q", b.Text())
	}
}

func TestBufferReplaceUpdatesLines(t *testing.T) {
	b := NewBufferFromString("one\ntwo\nthree")

	if _, err := b.Replace(3, 8, " "); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if b.Text() != "one three" {
		t.Errorf("unexpected text %q", b.Text())
	}
	if b.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", b.LineCount())
	}

	if _, err := b.Insert(3, "\n\n"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if b.LineCount() != 3 {
		t.Errorf("expected 3 lines, got %d", b.LineCount())
	}
	if b.LineText(2) != " three" {
		t.Errorf("unexpected line 2 %q", b.LineText(2))
	}
}

func TestBufferInvertRestores(t *testing.T) {
	b := NewBufferFromString("abcdef")

	res, err := b.Replace(1, 4, "XY")
	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if _, err := b.ApplyEdit(res.Invert()); err != nil {
		t.Fatalf("invert failed: %v", err)
	}
	if b.Text() != "abcdef" {
		t.Errorf("expected original text, got %q", b.Text())
	}
	if _, err := b.ApplyEdit(res.Redo()); err != nil {
		t.Fatalf("redo failed: %v", err)
	}
	if b.Text() != "aXYef" {
		t.Errorf("expected redone text, got %q", b.Text())
	}
}

func TestBufferApplyEdits(t *testing.T) {
	b := NewBufferFromString("x=0; x=0; x=0;")

	edits := []Edit{
		NewInsert(11, "=1"),
		NewInsert(6, "=1"),
		NewInsert(1, "=1"),
	}
	results, err := b.ApplyEdits(edits)
	if err != nil {
		t.Fatalf("apply edits failed: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}
	if b.Text() != "x=1=0; x=1=0; x=1=0;" {
		t.Errorf("unexpected text %q", b.Text())
	}
}

func TestBufferApplyEditsRejectsAscending(t *testing.T) {
	b := NewBufferFromString("abcdef")
	rev := b.RevisionID()

	_, err := b.ApplyEdits([]Edit{NewInsert(1, "x"), NewInsert(4, "y")})
	if !errors.Is(err, ErrEditsOverlap) {
		t.Errorf("expected ErrEditsOverlap, got %v", err)
	}
	if b.Text() != "abcdef" || b.RevisionID() != rev {
		t.Error("rejected batch must leave the buffer untouched")
	}
}

func TestBufferApplyEditsRejectsOutOfRange(t *testing.T) {
	b := NewBufferFromString("abc")

	_, err := b.ApplyEdits([]Edit{NewDelete(2, 9), NewInsert(0, "x")})
	if !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}
	if b.Text() != "abc" {
		t.Errorf("buffer modified by rejected batch: %q", b.Text())
	}
}

func TestBufferOffsetToPoint(t *testing.T) {
	b := NewBufferFromString("héllo\nwörld")

	tests := []struct {
		offset ByteOffset
		want   Point
	}{
		{0, Point{0, 0}},
		{3, Point{0, 2}}, // after "hé"
		{6, Point{0, 5}}, // end of line 0
		{7, Point{1, 0}},
		{int64(len("héllo\nwö")), Point{1, 2}},
		{100, Point{1, 5}},
		{-5, Point{0, 0}},
	}
	for _, tt := range tests {
		if got := b.OffsetToPoint(tt.offset); got != tt.want {
			t.Errorf("OffsetToPoint(%d) = %s, want %s", tt.offset, got, tt.want)
		}
	}
}

func TestBufferPointToOffset(t *testing.T) {
	b := NewBufferFromString("héllo\nab\n")

	tests := []struct {
		point Point
		want  ByteOffset
	}{
		{Point{0, 0}, 0},
		{Point{0, 2}, 3},
		{Point{0, 99}, 6}, // clamped to line end
		{Point{1, 1}, 8},
		{Point{2, 0}, 10}, // trailing empty line
		{Point{9, 0}, 10}, // past last line
	}
	for _, tt := range tests {
		if got := b.PointToOffset(tt.point); got != tt.want {
			t.Errorf("PointToOffset(%s) = %d, want %d", tt.point, got, tt.want)
		}
	}
}

func TestBufferCharacterCount(t *testing.T) {
	b := NewBufferFromString("aé😀")
	if b.CharacterCount() != 3 {
		t.Errorf("expected 3 characters, got %d", b.CharacterCount())
	}
	if b.Len() != int64(len("aé😀")) {
		t.Errorf("unexpected byte length %d", b.Len())
	}
}

func TestBufferClampSnapsToRuneStart(t *testing.T) {
	b := NewBufferFromString("aé")

	if got := b.Clamp(2); got != 1 {
		t.Errorf("expected clamp into rune start 1, got %d", got)
	}
	if got := b.Clamp(50); got != 3 {
		t.Errorf("expected clamp to length 3, got %d", got)
	}
}

func TestBufferPrevNextChar(t *testing.T) {
	// "e" + combining acute accent forms one grapheme cluster.
	text := "ae\u0301b\nc"
	b := NewBufferFromString(text)

	if got := b.NextChar(1); got != 4 {
		t.Errorf("NextChar over cluster: expected 4, got %d", got)
	}
	if got := b.PrevChar(4); got != 1 {
		t.Errorf("PrevChar over cluster: expected 1, got %d", got)
	}
	if got := b.PrevChar(6); got != 5 {
		t.Errorf("PrevChar at line start: expected newline offset 5, got %d", got)
	}
	if got := b.NextChar(5); got != 6 {
		t.Errorf("NextChar over newline: expected 6, got %d", got)
	}
	if got := b.PrevChar(0); got != 0 {
		t.Errorf("PrevChar at 0: expected 0, got %d", got)
	}
	if got := b.NextChar(b.Len()); got != b.Len() {
		t.Errorf("NextChar at end: expected %d, got %d", b.Len(), got)
	}
}

func TestBufferSetText(t *testing.T) {
	b := NewBufferFromString("a\nb\nc")
	rev := b.RevisionID()

	b.SetText("only")
	if b.LineCount() != 1 || b.Text() != "only" {
		t.Errorf("unexpected state after SetText: %d lines, %q", b.LineCount(), b.Text())
	}
	if b.RevisionID() == rev {
		t.Error("SetText should bump the revision")
	}
}

func TestBufferLines(t *testing.T) {
	b := NewBufferFromString("a\n\nb")
	lines := b.Lines()
	if len(lines) != 3 || lines[0] != "a" || lines[1] != "" || lines[2] != "b" {
		t.Errorf("unexpected lines %q", lines)
	}
}
