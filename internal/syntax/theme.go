package syntax

import (
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Theme maps categories to terminal styles.
type Theme struct {
	Name       string
	Background tcell.Color
	Foreground tcell.Color
	Styles     map[Category]tcell.Style
}

// Default returns the style for uncategorized text.
func (t *Theme) Default() tcell.Style {
	return tcell.StyleDefault.Foreground(t.Foreground).Background(t.Background)
}

// StyleFor returns the style for a category, or the default style.
func (t *Theme) StyleFor(c Category) tcell.Style {
	if s, ok := t.Styles[c]; ok {
		return s
	}
	return t.Default()
}

// DarkTheme is the default theme.
func DarkTheme() *Theme {
	bg := tcell.GetColor("#1e1e1e")
	base := tcell.StyleDefault.Background(bg)
	return &Theme{
		Name:       "dark",
		Background: bg,
		Foreground: tcell.GetColor("#d4d4d4"),
		Styles: map[Category]tcell.Style{
			CategoryKeyword:        base.Foreground(tcell.GetColor("#569cd6")).Bold(true),
			CategoryBuiltin:        base.Foreground(tcell.GetColor("#4ec9b0")),
			CategoryString:         base.Foreground(tcell.GetColor("#ce9178")),
			CategoryComment:        base.Foreground(tcell.GetColor("#6a9955")).Italic(true),
			CategoryNumber:         base.Foreground(tcell.GetColor("#b5cea8")),
			CategoryFunction:       base.Foreground(tcell.GetColor("#dcdcaa")),
			CategoryDecorator:      base.Foreground(tcell.GetColor("#dcdcaa")),
			CategoryClass:          base.Foreground(tcell.GetColor("#4ec9b0")).Bold(true),
			CategoryIdentifierRole: base.Foreground(tcell.GetColor("#9cdcfe")).Italic(true),
		},
	}
}

// LightTheme mirrors DarkTheme for light backgrounds.
func LightTheme() *Theme {
	bg := tcell.GetColor("#ffffff")
	base := tcell.StyleDefault.Background(bg)
	return &Theme{
		Name:       "light",
		Background: bg,
		Foreground: tcell.GetColor("#000000"),
		Styles: map[Category]tcell.Style{
			CategoryKeyword:        base.Foreground(tcell.GetColor("#0000ff")).Bold(true),
			CategoryBuiltin:        base.Foreground(tcell.GetColor("#267f99")),
			CategoryString:         base.Foreground(tcell.GetColor("#a31515")),
			CategoryComment:        base.Foreground(tcell.GetColor("#008000")).Italic(true),
			CategoryNumber:         base.Foreground(tcell.GetColor("#098658")),
			CategoryFunction:       base.Foreground(tcell.GetColor("#795e26")),
			CategoryDecorator:      base.Foreground(tcell.GetColor("#795e26")),
			CategoryClass:          base.Foreground(tcell.GetColor("#267f99")).Bold(true),
			CategoryIdentifierRole: base.Foreground(tcell.GetColor("#001080")).Italic(true),
		},
	}
}

var themes = map[string]func() *Theme{
	"dark":  DarkTheme,
	"light": LightTheme,
}

// ThemeByName returns the named theme, falling back to DarkTheme.
func ThemeByName(name string) *Theme {
	if f, ok := themes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return f()
	}
	return DarkTheme()
}

// ThemeNames returns the built-in theme names.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
