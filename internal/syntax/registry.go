package syntax

import (
	"errors"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// PlainText is the language reported when nothing else matches.
const PlainText = "Text"

// Registry maps language names and file extensions to rule tables.
// It is immutable once built and safe for concurrent use.
type Registry struct {
	tables map[string]*RuleTable // lower-cased name or alias
	byExt  map[string]*RuleTable
	names  []string
}

// NewRegistry compiles langs with default options. See Build.
func NewRegistry(langs ...Language) (*Registry, error) {
	return Build(langs)
}

// Build compiles every language into a registry. A language whose rules do
// not compile is left out, so it classifies as plain text; its
// *PatternError is included in the returned error, which joins all
// failures. The registry is usable even when err is non-nil.
// A later definition with the same name replaces an earlier one.
func Build(langs []Language, opts ...CompileOption) (*Registry, error) {
	r := &Registry{
		tables: make(map[string]*RuleTable),
		byExt:  make(map[string]*RuleTable),
	}

	var errs []error
	for _, lang := range langs {
		t, err := Compile(lang, opts...)
		if err != nil {
			errs = append(errs, err)
			// A broken override must not leave the previous definition active.
			r.remove(lang.Name)
			continue
		}
		r.add(t)
	}
	return r, errors.Join(errs...)
}

func (r *Registry) add(t *RuleTable) {
	r.remove(t.language)

	r.tables[strings.ToLower(t.language)] = t
	for _, a := range t.aliases {
		r.tables[strings.ToLower(a)] = t
	}
	for _, ext := range t.extensions {
		r.byExt[ext] = t
	}
	r.names = append(r.names, t.language)
}

func (r *Registry) remove(name string) {
	name = strings.TrimSpace(name)
	old, ok := r.tables[strings.ToLower(name)]
	if !ok || !strings.EqualFold(old.language, name) {
		return
	}
	for k, t := range r.tables {
		if t == old {
			delete(r.tables, k)
		}
	}
	for k, t := range r.byExt {
		if t == old {
			delete(r.byExt, k)
		}
	}
	for i, n := range r.names {
		if n == old.language {
			r.names = append(r.names[:i], r.names[i+1:]...)
			break
		}
	}
}

// Lookup returns the table for a language name or alias, ignoring case.
func (r *Registry) Lookup(language string) (*RuleTable, bool) {
	if r == nil {
		return nil, false
	}
	t, ok := r.tables[strings.ToLower(strings.TrimSpace(language))]
	return t, ok
}

// ByExtension returns the table registered for a file extension such as
// ".py" or "py".
func (r *Registry) ByExtension(ext string) (*RuleTable, bool) {
	if r == nil {
		return nil, false
	}
	exts := normalizeExtensions([]string{ext})
	if len(exts) == 0 {
		return nil, false
	}
	t, ok := r.byExt[exts[0]]
	return t, ok
}

// Languages returns the registered language names, sorted.
func (r *Registry) Languages() []string {
	if r == nil {
		return nil
	}
	out := append([]string(nil), r.names...)
	sort.Strings(out)
	return out
}

// Classify returns the spans of line under language's rules.
// An unknown language or an empty line yields no spans.
func (r *Registry) Classify(line, language string) []Span {
	t, ok := r.Lookup(language)
	if !ok {
		return nil
	}
	return t.Classify(line)
}

// CommentPrefix returns the line comment prefix for language, or "#" when the
// language is unknown or defines none.
func (r *Registry) CommentPrefix(language string) string {
	if t, ok := r.Lookup(language); ok && t.comment != "" {
		return t.comment
	}
	return "#"
}

// Detect returns the language for a file path. Registered extensions win;
// otherwise the name of a matching chroma lexer is used, and PlainText when
// nothing matches.
func (r *Registry) Detect(path string) string {
	if t, ok := r.ByExtension(filepath.Ext(path)); ok {
		return t.language
	}
	if l := lexers.Match(filepath.Base(path)); l != nil {
		name := l.Config().Name
		if t, ok := r.Lookup(name); ok {
			return t.language
		}
		return name
	}
	return PlainText
}
