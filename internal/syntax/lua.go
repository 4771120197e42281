package syntax

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultScriptTimeout bounds the evaluation of one language script.
const DefaultScriptTimeout = 2 * time.Second

// ErrScriptShape is returned when a script passes a malformed table.
var ErrScriptShape = errors.New("malformed language table")

// LoadLuaFile evaluates a Lua language script and returns the languages it
// declares. Scripts run in a sandbox with only the base, table and string
// libraries and declare languages by calling language{...}:
//
//	language{
//	  name = "Lua",
//	  extensions = {".lua"},
//	  comment = "--",
//	  rules = {
//	    {"keyword", words = {"local", "function", "end"}},
//	    {"comment", pattern = "--[^\n]*"},
//	  },
//	}
func LoadLuaFile(ctx context.Context, path string) ([]Language, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &SourceError{Source: path, Err: err}
	}
	langs, err := EvalLua(ctx, path, string(src))
	if err != nil {
		return nil, &SourceError{Source: path, Err: err}
	}
	return langs, nil
}

// EvalLua evaluates script source. name is used in error messages.
func EvalLua(ctx context.Context, name, source string) (langs []Language, err error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultScriptTimeout)
		defer cancel()
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	L.SetContext(ctx)

	openSandbox(L)

	var declErr error
	L.SetGlobal("language", L.NewFunction(func(L *lua.LState) int {
		lang, err := languageFromTable(L.CheckTable(1))
		if err != nil {
			if declErr == nil {
				declErr = err
			}
			return 0
		}
		langs = append(langs, lang)
		return 0
	}))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	fn, err := L.Load(strings.NewReader(source), name)
	if err != nil {
		return nil, err
	}
	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		return nil, err
	}
	if declErr != nil {
		return nil, declErr
	}
	return langs, nil
}

// openSandbox opens the libraries a rule script needs and removes the
// loaders that could reach the file system.
func openSandbox(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
}

func languageFromTable(t *lua.LTable) (Language, error) {
	lang := Language{
		Name:       luaString(t.RawGetString("name")),
		Aliases:    luaStrings(t.RawGetString("aliases")),
		Extensions: luaStrings(t.RawGetString("extensions")),
		Comment:    luaString(t.RawGetString("comment")),
	}
	if lang.Name == "" {
		return Language{}, fmt.Errorf("%w: %w", ErrScriptShape, ErrNoLanguageName)
	}

	rules, ok := t.RawGetString("rules").(*lua.LTable)
	if !ok {
		return lang, nil
	}
	for i := 1; i <= rules.Len(); i++ {
		rt, ok := rules.RawGetInt(i).(*lua.LTable)
		if !ok {
			return Language{}, fmt.Errorf("%w: %s rule %d is not a table", ErrScriptShape, lang.Name, i)
		}
		rule, err := ruleFromTable(rt)
		if err != nil {
			return Language{}, fmt.Errorf("%s rule %d: %w", lang.Name, i, err)
		}
		lang.Rules = append(lang.Rules, rule)
	}
	return lang, nil
}

func ruleFromTable(t *lua.LTable) (Rule, error) {
	category := luaString(t.RawGetInt(1))
	if category == "" {
		category = luaString(t.RawGetString("category"))
	}
	yr := ruleSpec{
		Category: category,
		Pattern:  luaString(t.RawGetString("pattern")),
		Words:    luaStrings(t.RawGetString("words")),
	}
	return yr.toRule()
}

func luaString(v lua.LValue) string {
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

func luaStrings(v lua.LValue) []string {
	t, ok := v.(*lua.LTable)
	if !ok {
		return nil
	}
	out := make([]string, 0, t.Len())
	for i := 1; i <= t.Len(); i++ {
		if s := luaString(t.RawGetInt(i)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
