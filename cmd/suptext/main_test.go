package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cfg := filepath.Join(t.TempDir(), "none.toml")
	cmd.SetArgs(append([]string{"--config", cfg}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestHighlight(t *testing.T) {
	path := writeTemp(t, "a.py", "def f00():\n    return 1\n")

	out, _, err := run(t, "", "highlight", path)
	require.NoError(t, err)
	assert.Contains(t, out, "   1 | def f00():\n     | function[0,7)")
	assert.Contains(t, out, "   2 |     return 1")
}

func TestHighlightColor(t *testing.T) {
	path := writeTemp(t, "a.py", "# hi\n")

	out, _, err := run(t, "", "highlight", "--color", path)
	require.NoError(t, err)
	assert.Contains(t, out, "\x1b[38;2;")
	assert.Contains(t, out, "# hi\x1b[0m")
}

func TestHighlightJSON(t *testing.T) {
	path := writeTemp(t, "a.py", "def f00():\n")

	out, _, err := run(t, "", "highlight", "--format", "json", path)
	require.NoError(t, err)
	doc := gjson.Parse(strings.SplitN(out, "\n", 2)[0])
	assert.Equal(t, int64(1), doc.Get("line").Int())
	assert.Equal(t, "function", doc.Get("spans.0.category").String())

	_, _, err = run(t, "", "highlight", "--format", "xml", path)
	assert.ErrorContains(t, err, `unknown format "xml"`)
}

func TestHighlightStdinWithLanguage(t *testing.T) {
	out, _, err := run(t, "x = 1\n", "highlight", "--lang", "Python", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "number[4,5)")

	_, _, err = run(t, "x", "highlight", "--lang", "Klingon", "-")
	assert.ErrorContains(t, err, `unknown language "Klingon"`)
}

func TestEditMultiCursor(t *testing.T) {
	path := writeTemp(t, "a.txt", "foo bar foo\n")

	out, errOut, err := run(t, "", "edit", path, "--select", "foo", "--insert", "x")
	require.NoError(t, err)
	assert.Equal(t, "x bar x\n", out)
	assert.Contains(t, errOut, "selected 2 occurrences")
}

func TestEditWriteSingleMatch(t *testing.T) {
	path := writeTemp(t, "a.txt", "alpha beta\r\n")

	_, _, err := run(t, "", "edit", path, "--select", "beta", "--insert", "gamma", "--write")
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "alpha gamma\r\n", string(raw))
}

func TestEditReplaceIgnoreCase(t *testing.T) {
	path := writeTemp(t, "a.txt", "Colour colour")

	out, errOut, err := run(t, "", "edit", path, "--replace", "colour", "--with", "color", "--ignore-case")
	require.NoError(t, err)
	assert.Equal(t, "color color", out)
	assert.Contains(t, errOut, "replaced 2 occurrences")
}

func TestEditNoMatch(t *testing.T) {
	path := writeTemp(t, "a.txt", "abc")
	_, _, err := run(t, "", "edit", path, "--select", "zzz")
	assert.ErrorContains(t, err, `no occurrences of "zzz"`)
}

func TestLanguagesWithRuleFile(t *testing.T) {
	rules := writeTemp(t, "ini.yaml", `
languages:
  - name: Ini
    extensions: [.ini]
    comment: ";"
    rules:
      - category: comment
        pattern: ";.*"
`)

	out, _, err := run(t, "", "--rules", rules, "languages")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Python")
	assert.Regexp(t, `Ini\s+\.ini\s+;\s+1`, out)
}

func TestInvalidLogLevel(t *testing.T) {
	_, _, err := run(t, "", "--log-level", "loud", "languages")
	assert.ErrorContains(t, err, `invalid log level "loud"`)
}
