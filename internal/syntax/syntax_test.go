package syntax

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func builtinRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := NewRegistry(Builtin()...)
	require.NoError(t, err)
	return reg
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"keyword", CategoryKeyword, true},
		{"Comment", CategoryComment, true},
		{"self", CategoryIdentifierRole, true},
		{"identifier-role", CategoryIdentifierRole, true},
		{"none", CategoryNone, false},
		{"operator", CategoryNone, false},
	}
	for _, tt := range tests {
		got, ok := ParseCategory(tt.in)
		require.Equal(t, tt.ok, ok, tt.in)
		require.Equal(t, tt.want, got, tt.in)
	}
}

func TestClassifyPythonDef(t *testing.T) {
	reg := builtinRegistry(t)

	spans := reg.Classify("def foo():", "Python")
	require.Equal(t, []Span{
		{Start: 0, Length: 3, Category: CategoryKeyword},
		{Start: 0, Length: 7, Category: CategoryFunction},
	}, spans)

	painted := Paint(spans, len("def foo():"))
	require.Equal(t, []Span{{Start: 0, Length: 7, Category: CategoryFunction}}, painted)
}

func TestClassifyRuleOrderLastWriteWins(t *testing.T) {
	reg := builtinRegistry(t)

	line := `x = "a # b"  # done`
	painted := Paint(reg.Classify(line, "Python"), len(line))

	// The comment rule runs after the string rule, so "# b" inside the
	// string is painted as comment through the end of the line.
	require.Equal(t, CategoryString, CategoryAt(painted, 4))
	require.Equal(t, CategoryComment, CategoryAt(painted, 8))
	require.Equal(t, CategoryComment, CategoryAt(painted, len(line)-1))
}

func TestClassifyJavaScriptLookahead(t *testing.T) {
	reg := builtinRegistry(t)

	spans := reg.Classify("let n = parse (42);", "JavaScript")
	require.Contains(t, spans, Span{Start: 0, Length: 3, Category: CategoryKeyword})
	require.Contains(t, spans, Span{Start: 8, Length: 5, Category: CategoryFunction})
	require.Contains(t, spans, Span{Start: 15, Length: 2, Category: CategoryNumber})
}

func TestClassifyBlockCommentSingleLineOnly(t *testing.T) {
	reg := builtinRegistry(t)

	require.Contains(t, reg.Classify("a /* b */ c", "JavaScript"),
		Span{Start: 2, Length: 7, Category: CategoryComment})
	require.Empty(t, reg.Classify("/* open", "JavaScript"))
}

func TestClassifyEmptyAndUnknown(t *testing.T) {
	reg := builtinRegistry(t)

	for _, lang := range append(reg.Languages(), "Cobol", "") {
		require.Empty(t, reg.Classify("", lang))
	}
	require.Empty(t, reg.Classify("def foo():", "Cobol"))
}

func TestClassifyMultibyteOffsets(t *testing.T) {
	reg := builtinRegistry(t)

	line := `s = "héllo" # ok`
	spans := reg.Classify(line, "Python")
	require.Contains(t, spans, Span{Start: 4, Length: 8, Category: CategoryString})
	require.Contains(t, spans, Span{Start: 13, Length: 4, Category: CategoryComment})
}

func TestSQLKeywordsCaseSensitive(t *testing.T) {
	reg := builtinRegistry(t)

	require.Contains(t, reg.Classify("SELECT 1 -- x", "SQL"), Span{Start: 0, Length: 6, Category: CategoryKeyword})
	require.NotContains(t, reg.Classify("select", "SQL"), Span{Start: 0, Length: 6, Category: CategoryKeyword})
}

func TestZeroLengthMatchesSkipped(t *testing.T) {
	reg, err := NewRegistry(Language{
		Name:  "Empty",
		Rules: []Rule{Pattern(CategoryNumber, `\d*`)},
	})
	require.NoError(t, err)

	require.Equal(t, []Span{{Start: 2, Length: 2, Category: CategoryNumber}}, reg.Classify("ab12", "Empty"))
}

func TestMalformedRuleDropsOnlyItsLanguage(t *testing.T) {
	langs := append(Builtin(), Language{
		Name:  "Broken",
		Rules: []Rule{Pattern(CategoryKeyword, `(unclosed`)},
	})

	reg, err := NewRegistry(langs...)
	require.Error(t, err)

	var pe *PatternError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, "Broken", pe.Language)
	require.Equal(t, 0, pe.Index)

	_, ok := reg.Lookup("Broken")
	require.False(t, ok)
	require.Empty(t, reg.Classify("anything", "Broken"))
	require.NotEmpty(t, reg.Classify("def x", "Python"))
}

func TestBrokenOverrideRemovesPrevious(t *testing.T) {
	reg, err := Build([]Language{
		Python(),
		{Name: "python", Rules: []Rule{{Pattern: "[", Category: CategoryKeyword}}},
	})
	require.Error(t, err)
	require.Empty(t, reg.Classify("def x", "Python"))
}

func TestOverrideReplacesLanguage(t *testing.T) {
	reg, err := Build([]Language{
		Python(),
		{Name: "Python", Extensions: []string{"py"}, Rules: []Rule{Words(CategoryKeyword, "foo")}},
	})
	require.NoError(t, err)
	require.Equal(t, []Span{{Start: 0, Length: 3, Category: CategoryKeyword}}, reg.Classify("foo def", "Python"))
	require.Equal(t, 1, countOf(reg.Languages(), "Python"))

	_, ok := reg.ByExtension(".pyi")
	require.False(t, ok, "extensions of the replaced definition are dropped")
}

func countOf(names []string, name string) int {
	n := 0
	for _, s := range names {
		if s == name {
			n++
		}
	}
	return n
}

func TestDetect(t *testing.T) {
	reg := builtinRegistry(t)

	require.Equal(t, "Python", reg.Detect("/tmp/x/main.py"))
	require.Equal(t, "C++", reg.Detect("src/a.HPP"))
	require.Equal(t, "Go", reg.Detect("main.go"))
	require.Equal(t, PlainText, reg.Detect("no-extension-here"))
}

func TestCommentPrefix(t *testing.T) {
	reg := builtinRegistry(t)

	require.Equal(t, "#", reg.CommentPrefix("Python"))
	require.Equal(t, "//", reg.CommentPrefix("typescript"))
	require.Equal(t, "--", reg.CommentPrefix("SQL"))
	require.Equal(t, "#", reg.CommentPrefix("Unknown"))
}

func TestWordsEscapes(t *testing.T) {
	reg, err := NewRegistry(Language{Name: "W", Rules: []Rule{Words(CategoryKeyword, "a.b", "c")}})
	require.NoError(t, err)

	require.Equal(t, []Span{{Start: 0, Length: 3, Category: CategoryKeyword}}, reg.Classify("a.b axb", "W"))
}

func TestPaint(t *testing.T) {
	spans := []Span{
		{Start: 0, Length: 5, Category: CategoryString},
		{Start: 2, Length: 2, Category: CategoryComment},
		{Start: 8, Length: 10, Category: CategoryNumber},
	}
	require.Equal(t, []Span{
		{Start: 0, Length: 2, Category: CategoryString},
		{Start: 2, Length: 2, Category: CategoryComment},
		{Start: 4, Length: 1, Category: CategoryString},
		{Start: 8, Length: 2, Category: CategoryNumber},
	}, Paint(spans, 10))

	require.Nil(t, Paint(nil, 10))
	require.Nil(t, Paint(spans, 0))
}

func TestClassifyProperties(t *testing.T) {
	reg, err := NewRegistry(Builtin()...)
	require.NoError(t, err)
	langs := reg.Languages()

	rapid.Check(t, func(t *rapid.T) {
		line := rapid.StringMatching(`[a-zA-Z0-9 "'#/*@().=:é-]{0,40}`).Draw(t, "line")
		lang := rapid.SampledFrom(langs).Draw(t, "lang")

		spans := reg.Classify(line, lang)
		for _, s := range spans {
			if s.Start < 0 || s.Length <= 0 || s.End() > len(line) {
				t.Fatalf("span %v out of bounds for %q", s, line)
			}
		}

		painted := Paint(spans, len(line))
		prev := 0
		for _, s := range painted {
			if s.Start < prev || s.Length <= 0 || s.End() > len(line) {
				t.Fatalf("painted spans overlap or escape: %v", painted)
			}
			prev = s.End()
		}
	})
}

func TestProviderCaches(t *testing.T) {
	reg := builtinRegistry(t)
	p := NewProvider(reg, "Python", 0, 0)

	first := p.Line("import os")
	require.Equal(t, 1, p.CachedLines())
	require.Equal(t, first, p.Line("import os"))
	require.Equal(t, 1, p.CachedLines())

	p.SetLanguage("JavaScript")
	p.Line("import os")
	require.Equal(t, 2, p.CachedLines())

	require.Nil(t, p.Line(""))
	require.Len(t, p.Lines([]string{"a", "b"}), 2)

	p.Flush()
	require.Equal(t, 0, p.CachedLines())
}

func TestProviderSetRegistryIgnoresStaleLines(t *testing.T) {
	p := NewProvider(builtinRegistry(t), "Python", 0, 0)
	require.NotEmpty(t, p.Line("import os"))

	_, _, gen := p.snapshot()
	empty, err := NewRegistry()
	require.NoError(t, err)
	p.SetRegistry(empty)
	require.Equal(t, 0, p.CachedLines())

	// A line painted with the old registry lands after the flush.
	p.cache.SetDefault(cacheKey(gen, "Python", "import os"), []Span{{Start: 0, Length: 6, Category: CategoryKeyword}})
	require.Empty(t, p.Line("import os"))
}

func TestThemeByName(t *testing.T) {
	dark := ThemeByName("dark")
	require.Equal(t, "dark", dark.Name)
	require.Equal(t, "dark", ThemeByName("solarized").Name)
	require.Equal(t, "light", ThemeByName(" Light ").Name)

	fg, _, _ := dark.StyleFor(CategoryKeyword).Decompose()
	require.Equal(t, tcell.GetColor("#569cd6"), fg)
	require.Equal(t, dark.Default(), dark.StyleFor(CategoryNone))
	require.Equal(t, []string{"dark", "light"}, ThemeNames())
}

func TestParseYAML(t *testing.T) {
	src := `
languages:
  - name: Lua
    extensions: [lua]
    comment: "--"
    rules:
      - category: keyword
        words: [local, function, end]
      - category: comment
        pattern: '--[^\n]*'
`
	langs, err := ParseYAML(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, langs, 1)

	reg, err := NewRegistry(langs...)
	require.NoError(t, err)
	require.Equal(t, "Lua", reg.Detect("init.lua"))
	require.Equal(t, []Span{
		{Start: 0, Length: 5, Category: CategoryKeyword},
		{Start: 12, Length: 4, Category: CategoryComment},
	}, reg.Classify("local x = 1 -- y", "lua"))
}

func TestParseYAMLErrors(t *testing.T) {
	_, err := ParseYAML(strings.NewReader("languages:\n  - name: X\n    rules:\n      - category: bogus\n        pattern: x\n"))
	require.ErrorIs(t, err, ErrUnknownCategory)

	_, err = ParseYAML(strings.NewReader("languages:\n  - name: X\n    rules:\n      - category: keyword\n"))
	require.ErrorIs(t, err, ErrRuleShape)

	langs, err := ParseYAML(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, langs)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("languages:\n  - name: Ini\n    extensions: [.ini]\n    rules:\n      - category: comment\n        pattern: ';.*'\n"), 0o644))

	langs, err := LoadYAMLFile(path)
	require.NoError(t, err)
	require.Equal(t, "Ini", langs[0].Name)

	_, err = LoadYAMLFile(filepath.Join(t.TempDir(), "missing.yaml"))
	var se *SourceError
	require.ErrorAs(t, err, &se)
}

func TestEvalLua(t *testing.T) {
	script := `
local kw = {"local", "function", "end"}
language{
  name = "Lua",
  extensions = {".lua"},
  comment = "--",
  rules = {
    {"keyword", words = kw},
    {category = "comment", pattern = "--.*"},
  },
}
`
	langs, err := EvalLua(context.Background(), "lua.lua", script)
	require.NoError(t, err)
	require.Len(t, langs, 1)
	require.Equal(t, "--", langs[0].Comment)
	require.Len(t, langs[0].Rules, 2)

	reg, err := NewRegistry(langs...)
	require.NoError(t, err)
	require.Equal(t, []Span{
		{Start: 0, Length: 8, Category: CategoryKeyword},
		{Start: 13, Length: 3, Category: CategoryKeyword},
		{Start: 17, Length: 4, Category: CategoryComment},
	}, reg.Classify("function f() end -- x", "Lua")[:3])
}

func TestEvalLuaSandbox(t *testing.T) {
	_, err := EvalLua(context.Background(), "evil", `dofile("/etc/passwd")`)
	require.Error(t, err)

	_, err = EvalLua(context.Background(), "evil", `os.exit(1)`)
	require.Error(t, err)

	_, err = EvalLua(context.Background(), "bad", `language{ rules = {} }`)
	require.ErrorIs(t, err, ErrScriptShape)
}
