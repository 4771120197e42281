package syntax

import "fmt"

// Span is one classified region of a line, in byte offsets.
type Span struct {
	Start    int
	Length   int
	Category Category
}

// End returns the offset just past the span.
func (s Span) End() int {
	return s.Start + s.Length
}

// Contains reports whether offset lies inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End()
}

// String returns a compact representation, e.g. "keyword[0,3)".
func (s Span) String() string {
	return fmt.Sprintf("%s[%d,%d)", s.Category, s.Start, s.End())
}

// Paint resolves spans in application order into the regions a sink should
// draw. Later spans overwrite earlier ones byte by byte. The result is
// non-overlapping, ascending, clipped to [0, lineLen) and coalesced so
// adjacent bytes of the same category form one span.
func Paint(spans []Span, lineLen int) []Span {
	if len(spans) == 0 || lineLen <= 0 {
		return nil
	}

	owner := make([]Category, lineLen)
	for _, s := range spans {
		start, end := max(s.Start, 0), min(s.End(), lineLen)
		for i := start; i < end; i++ {
			owner[i] = s.Category
		}
	}

	var out []Span
	for i := 0; i < lineLen; {
		c := owner[i]
		j := i + 1
		for j < lineLen && owner[j] == c {
			j++
		}
		if c != CategoryNone {
			out = append(out, Span{Start: i, Length: j - i, Category: c})
		}
		i = j
	}
	return out
}

// CategoryAt returns the category painted at offset, or CategoryNone.
// painted must be the output of Paint.
func CategoryAt(painted []Span, offset int) Category {
	for _, s := range painted {
		if s.Start > offset {
			break
		}
		if s.Contains(offset) {
			return s.Category
		}
	}
	return CategoryNone
}
