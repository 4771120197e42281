package syntax

import (
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// DefaultMatchTimeout bounds a single rule's scan of one line.
const DefaultMatchTimeout = 100 * time.Millisecond

// Rule pairs a pattern source with the category it assigns.
// Patterns use Perl-style syntax and may use lookaround.
type Rule struct {
	Pattern  string
	Category Category
}

// Words builds a rule matching any of the words as a whole word.
func Words(category Category, words ...string) Rule {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp2.Escape(w)
	}
	return Rule{
		Pattern:  `\b(?:` + strings.Join(quoted, "|") + `)\b`,
		Category: category,
	}
}

// Pattern builds a rule from a regular expression source.
func Pattern(category Category, pattern string) Rule {
	return Rule{Pattern: pattern, Category: category}
}

// compiledRule is a Rule ready to match.
type compiledRule struct {
	re       *regexp2.Regexp
	category Category
}

func compileRule(lang string, index int, r Rule, timeout time.Duration) (compiledRule, error) {
	if !r.Category.Valid() {
		return compiledRule{}, &PatternError{Language: lang, Index: index, Pattern: r.Pattern, Err: ErrUnknownCategory}
	}
	if r.Pattern == "" {
		return compiledRule{}, &PatternError{Language: lang, Index: index, Pattern: r.Pattern, Err: ErrEmptyPattern}
	}
	re, err := regexp2.Compile(r.Pattern, regexp2.None)
	if err != nil {
		return compiledRule{}, &PatternError{Language: lang, Index: index, Pattern: r.Pattern, Err: err}
	}
	re.MatchTimeout = timeout
	return compiledRule{re: re, category: r.Category}, nil
}

// appendSpans appends a span for every non-overlapping, non-empty match of
// the rule in line. runes is line decoded to runes and byteAt maps rune
// indices to byte offsets, with one extra entry for len(line).
// A match error, such as a timeout, ends the scan for this rule only.
func (r compiledRule) appendSpans(spans []Span, runes []rune, byteAt []int) []Span {
	m, err := r.re.FindRunesMatch(runes)
	for m != nil && err == nil {
		if m.Length > 0 {
			start := byteAt[m.Index]
			end := byteAt[m.Index+m.Length]
			spans = append(spans, Span{Start: start, Length: end - start, Category: r.category})
		}
		m, err = r.re.FindNextMatch(m)
	}
	return spans
}
