package syntax

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Language is the uncompiled definition of one language's highlighting.
type Language struct {
	Name       string
	Aliases    []string
	Extensions []string
	// Comment is the line comment prefix used by comment toggling.
	Comment string
	Rules   []Rule
}

// RuleTable is a compiled, immutable rule list for one language.
type RuleTable struct {
	language   string
	aliases    []string
	extensions []string
	comment    string
	rules      []compiledRule
}

// CompileOption configures rule compilation.
type CompileOption func(*compileConfig)

type compileConfig struct {
	timeout time.Duration
}

// WithMatchTimeout bounds each rule's scan of one line.
func WithMatchTimeout(d time.Duration) CompileOption {
	return func(c *compileConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// Compile builds a RuleTable. The first rule whose pattern does not compile
// is reported as a *PatternError and no table is returned.
func Compile(lang Language, opts ...CompileOption) (*RuleTable, error) {
	cfg := compileConfig{timeout: DefaultMatchTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	name := strings.TrimSpace(lang.Name)
	if name == "" {
		return nil, &PatternError{Index: -1, Err: ErrNoLanguageName}
	}

	t := &RuleTable{
		language:   name,
		aliases:    append([]string(nil), lang.Aliases...),
		extensions: normalizeExtensions(lang.Extensions),
		comment:    lang.Comment,
		rules:      make([]compiledRule, 0, len(lang.Rules)),
	}
	for i, r := range lang.Rules {
		cr, err := compileRule(name, i, r, cfg.timeout)
		if err != nil {
			return nil, err
		}
		t.rules = append(t.rules, cr)
	}
	return t, nil
}

// Language returns the language name.
func (t *RuleTable) Language() string {
	return t.language
}

// Extensions returns the file extensions, lower case with a leading dot.
func (t *RuleTable) Extensions() []string {
	return append([]string(nil), t.extensions...)
}

// Comment returns the line comment prefix, or "" if the language has none.
func (t *RuleTable) Comment() string {
	return t.comment
}

// Len returns the number of rules.
func (t *RuleTable) Len() int {
	return len(t.rules)
}

// Classify returns a span for every match of every rule in line, in rule
// order and left to right within a rule. Spans of different rules may
// overlap; later spans take precedence (see Paint).
// line must not contain line terminators.
func (t *RuleTable) Classify(line string) []Span {
	if t == nil || line == "" || len(t.rules) == 0 {
		return nil
	}

	runes, byteAt := indexRunes(line)
	var spans []Span
	for _, r := range t.rules {
		spans = r.appendSpans(spans, runes, byteAt)
	}
	return spans
}

// indexRunes decodes line and returns, for every rune index, its byte offset.
// The final entry is len(line).
func indexRunes(line string) ([]rune, []int) {
	n := utf8.RuneCountInString(line)
	runes := make([]rune, 0, n)
	byteAt := make([]int, 0, n+1)
	for i, r := range line {
		runes = append(runes, r)
		byteAt = append(byteAt, i)
	}
	byteAt = append(byteAt, len(line))
	return runes, byteAt
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}
