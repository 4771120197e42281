// Package screen draws an editor onto a tcell terminal and runs its
// interactive key loop.
package screen

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/suptext/internal/engine"
	"github.com/dshills/suptext/internal/syntax"
)

// View is an engine.Sink that keeps the document lines it has been sent
// and paints the visible ones with a gutter and a status line.
type View struct {
	mu sync.Mutex

	screen   tcell.Screen
	theme    *syntax.Theme
	tabWidth int

	rows    []engine.Line
	cursors engine.CursorSnapshot
	top     int
	status  string
	message string
}

// NewView creates a view drawing to screen. A nil theme selects the dark
// theme.
func NewView(screen tcell.Screen, theme *syntax.Theme, tabWidth int) *View {
	if theme == nil {
		theme = syntax.DarkTheme()
	}
	if tabWidth < 1 {
		tabWidth = 4
	}
	return &View{screen: screen, theme: theme, tabWidth: tabWidth}
}

// Lines stores the delivered lines. Lines past lineCount are dropped.
func (v *View) Lines(lines []engine.Line, lineCount int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if lineCount < len(v.rows) {
		v.rows = v.rows[:lineCount]
	}
	for len(v.rows) < lineCount {
		v.rows = append(v.rows, engine.Line{Number: len(v.rows)})
	}
	for _, l := range lines {
		if l.Number < len(v.rows) {
			v.rows[l.Number] = l
		}
	}
}

// Cursors stores the cursor state and repaints. The engine always sends
// Cursors after Lines, so this ends a frame.
func (v *View) Cursors(snap engine.CursorSnapshot) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cursors = snap
	v.drawLocked()
}

// SetStatus sets the left part of the status line.
func (v *View) SetStatus(s string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.status = s
}

// SetMessage shows a transient message on the right of the status line.
func (v *View) SetMessage(format string, args ...any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.message = fmt.Sprintf(format, args...)
}

// Draw repaints everything, as after a resize.
func (v *View) Draw() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.drawLocked()
}

// Top returns the first visible line.
func (v *View) Top() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.top
}

func (v *View) drawLocked() {
	w, h := v.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}
	textRows := h - 1
	v.scrollLocked(textRows)

	base := v.theme.Default()
	gutterStyle := base.Dim(true)
	gutter := len(strconv.Itoa(len(v.rows))) + 1

	for y := 0; y < textRows; y++ {
		fill(v.screen, 0, y, w, base)
		n := v.top + y
		if n >= len(v.rows) {
			continue
		}
		put(v.screen, 0, y, fmt.Sprintf("%*d", gutter-1, n+1), gutterStyle)
		v.drawLine(gutter, y, w, v.rows[n])
	}

	v.drawCursorsLocked(gutter, textRows)
	v.drawStatusLocked(w, h-1)
	v.screen.Show()
}

// scrollLocked keeps the first cursor on screen.
func (v *View) scrollLocked(textRows int) {
	if len(v.cursors.Points) == 0 || textRows <= 0 {
		return
	}
	line := int(v.cursors.Points[0].Line)
	switch {
	case line < v.top:
		v.top = line
	case line >= v.top+textRows:
		v.top = line - textRows + 1
	}
	if last := len(v.rows) - 1; v.top > last && last >= 0 {
		v.top = last
	}
}

func (v *View) drawLine(x0, y, w int, l engine.Line) {
	x := x0
	col := 0
	g := uniseg.NewGraphemes(l.Text)
	for g.Next() && x < w {
		start, _ := g.Positions()
		style := v.theme.StyleFor(syntax.CategoryAt(l.Spans, start))
		cluster := g.Str()

		if cluster == "\t" {
			n := v.tabWidth - col%v.tabWidth
			for i := 0; i < n && x < w; i++ {
				v.screen.SetContent(x, y, ' ', nil, style)
				x++
			}
			col += n
			continue
		}

		runes := g.Runes()
		v.screen.SetContent(x, y, runes[0], runes[1:], style)
		width := g.Width()
		if width < 1 {
			width = 1
		}
		x += width
		col += width
	}
}

// cellColumn maps a rune column of text to a screen column, expanding tabs.
func (v *View) cellColumn(text string, column int) int {
	cells := 0
	i := 0
	for _, r := range text {
		if i >= column {
			break
		}
		if r == '\t' {
			cells += v.tabWidth - cells%v.tabWidth
		} else {
			cells += max(uniseg.StringWidth(string(r)), 1)
		}
		i++
	}
	return cells
}

func (v *View) drawCursorsLocked(x0, textRows int) {
	if !v.cursors.MultiCursor {
		if len(v.cursors.Points) == 0 {
			v.screen.HideCursor()
			return
		}
		p := v.cursors.Points[0]
		y := int(p.Line) - v.top
		if y < 0 || y >= textRows || int(p.Line) >= len(v.rows) {
			v.screen.HideCursor()
			return
		}
		v.screen.ShowCursor(x0+v.cellColumn(v.rows[p.Line].Text, int(p.Column)), y)
		return
	}

	// Multi-cursor carets blink together; the terminal cursor is hidden.
	v.screen.HideCursor()
	if !v.cursors.BlinkVisible {
		return
	}
	for _, p := range v.cursors.Points {
		y := int(p.Line) - v.top
		if y < 0 || y >= textRows || int(p.Line) >= len(v.rows) {
			continue
		}
		x := x0 + v.cellColumn(v.rows[p.Line].Text, int(p.Column))
		r, comb, style, _ := v.screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
		if r == 0 {
			r = ' '
		}
		v.screen.SetContent(x, y, r, comb, style.Reverse(true))
	}
}

func (v *View) drawStatusLocked(w, y int) {
	style := v.theme.Default().Reverse(true)
	fill(v.screen, 0, y, w, style)
	put(v.screen, 0, y, " "+v.status, style)
	if v.message != "" {
		x := w - uniseg.StringWidth(v.message) - 1
		if x > uniseg.StringWidth(v.status)+2 {
			put(v.screen, x, y, v.message, style)
		}
	}
}

func fill(s tcell.Screen, x, y, w int, style tcell.Style) {
	for ; x < w; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}

func put(s tcell.Screen, x, y int, text string, style tcell.Style) {
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		s.SetContent(x, y, runes[0], runes[1:], style)
		x += max(g.Width(), 1)
	}
}
