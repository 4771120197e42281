// Package search finds literal occurrences of a term in document text.
//
// Matches are reported as byte offsets into the original text, in ascending
// order and never overlapping: after a match the scan resumes at its end.
package search

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/dshills/suptext/internal/engine/buffer"
)

// Match is one occurrence of the search term as a half-open byte range.
type Match struct {
	Start buffer.ByteOffset
	End   buffer.ByteOffset
}

// Len returns the match length in bytes.
func (m Match) Len() buffer.ByteOffset {
	return m.End - m.Start
}

// Range converts the match to a buffer range.
func (m Match) Range() buffer.Range {
	return buffer.Range{Start: m.Start, End: m.End}
}

// Options configures a search.
type Options struct {
	// CaseSensitive compares runes exactly. When false, both text and term
	// are Unicode case folded before comparison.
	CaseSensitive bool

	// WholeWord rejects matches that touch a word character on either side.
	WholeWord bool

	// Limit stops the scan after this many matches. Zero means no limit.
	Limit int
}

// FindAll returns every occurrence of term in text.
// An empty term yields nil.
func FindAll(text, term string, caseSensitive bool) []Match {
	return Find(text, term, Options{CaseSensitive: caseSensitive})
}

// Find returns the occurrences of term in text according to opts.
func Find(text, term string, opts Options) []Match {
	if term == "" || text == "" {
		return nil
	}
	if opts.CaseSensitive {
		return findExact(text, term, opts)
	}
	return findFolded(text, term, opts)
}

// Count returns the number of occurrences of term in text.
func Count(text, term string, opts Options) int {
	return len(Find(text, term, opts))
}

func findExact(text, term string, opts Options) []Match {
	var matches []Match
	pos := 0
	for pos <= len(text)-len(term) {
		i := strings.Index(text[pos:], term)
		if i < 0 {
			break
		}
		start := pos + i
		end := start + len(term)
		if opts.WholeWord && !isWordBounded(text, start, end) {
			_, size := utf8.DecodeRuneInString(text[start:])
			pos = start + size
			continue
		}
		matches = append(matches, Match{Start: buffer.ByteOffset(start), End: buffer.ByteOffset(end)})
		if opts.Limit > 0 && len(matches) >= opts.Limit {
			break
		}
		pos = end
	}
	return matches
}

// foldedText is text case folded rune by rune, with a map from folded byte
// offsets back to the original text. Offsets inside a multi-byte fold
// expansion map to -1 so matches cannot start or end mid-rune.
type foldedText struct {
	folded string
	orig   []int
}

func foldText(caser cases.Caser, text string) foldedText {
	var sb strings.Builder
	sb.Grow(len(text))
	orig := make([]int, 0, len(text)+1)

	for i, r := range text {
		f := caser.String(string(r))
		orig = append(orig, i)
		for j := 1; j < len(f); j++ {
			orig = append(orig, -1)
		}
		sb.WriteString(f)
	}
	orig = append(orig, len(text))
	return foldedText{folded: sb.String(), orig: orig}
}

func findFolded(text, term string, opts Options) []Match {
	caser := cases.Fold()
	ft := foldText(caser, text)
	needle := caser.String(term)
	if needle == "" {
		return nil
	}

	var matches []Match
	pos := 0
	for pos <= len(ft.folded)-len(needle) {
		i := strings.Index(ft.folded[pos:], needle)
		if i < 0 {
			break
		}
		fStart := pos + i
		fEnd := fStart + len(needle)
		start, end := ft.orig[fStart], ft.orig[fEnd]
		if start < 0 || end < 0 || (opts.WholeWord && !isWordBounded(text, start, end)) {
			pos = fStart + 1
			continue
		}
		matches = append(matches, Match{Start: buffer.ByteOffset(start), End: buffer.ByteOffset(end)})
		if opts.Limit > 0 && len(matches) >= opts.Limit {
			break
		}
		pos = fEnd
	}
	return matches
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isWordBounded(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}
