package screen

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/suptext/internal/config"
	"github.com/dshills/suptext/internal/engine"
	"github.com/dshills/suptext/internal/syntax"
)

func newSim(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, sim.Init())
	sim.SetSize(w, h)
	t.Cleanup(sim.Fini)
	return sim
}

func rowText(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

func setup(t *testing.T, content, lang string, opts ...LoopOption) (tcell.SimulationScreen, *View, *engine.Editor, *Loop) {
	t.Helper()
	sim := newSim(t, 60, 6)
	view := NewView(sim, syntax.DarkTheme(), 4)
	ed := engine.New(config.Default().Editor,
		engine.WithContent(content),
		engine.WithLanguage(lang),
		engine.WithSink(view),
	)
	return sim, view, ed, NewLoop(sim, view, ed, opts...)
}

func TestViewDrawsGutterAndText(t *testing.T) {
	sim, _, ed, loop := setup(t, "def f():\n\treturn 1", "Python", WithName("a.py"))
	loop.refresh()

	assert.Equal(t, "1 def f():", rowText(sim, 0))
	assert.Equal(t, "2     return 1", rowText(sim, 1))
	assert.Contains(t, rowText(sim, 5), "a.py  Python  Ln 1, Col 1")

	_, _, style, _ := sim.GetContent(6, 1) //nolint:staticcheck // GetContent is the correct API
	assert.Equal(t, syntax.DarkTheme().StyleFor(syntax.CategoryKeyword), style, "return is a keyword")

	x, y, visible := sim.GetCursor()
	assert.True(t, visible)
	assert.Equal(t, 2, x)
	assert.Equal(t, 0, y)

	require.NoError(t, ed.SetCursorPosition(2, 2))
	loop.refresh()
	x, y, _ = sim.GetCursor()
	assert.Equal(t, 6, x, "tab expands to the next stop")
	assert.Equal(t, 1, y)
}

func TestViewScrollsToCursor(t *testing.T) {
	content := strings.Repeat("x\n", 20) + "end"
	sim, view, ed, loop := setup(t, content, syntax.PlainText)

	require.NoError(t, ed.GoToLine(21))
	loop.refresh()

	assert.Equal(t, 16, view.Top())
	assert.Equal(t, "21 end", rowText(sim, 4))
}

func TestViewTruncatesDeletedLines(t *testing.T) {
	sim, _, ed, loop := setup(t, "a\nb\nc", syntax.PlainText)
	loop.refresh()
	assert.Equal(t, "3 c", rowText(sim, 2))

	ed.SetText("a")
	loop.refresh()
	assert.Equal(t, "", rowText(sim, 1))
	assert.Equal(t, "", rowText(sim, 2))
}

func TestLoopTypingAndMultiCursor(t *testing.T) {
	sim, _, ed, loop := setup(t, "foo bar foo", syntax.PlainText)

	assert.False(t, loop.Handle(tcell.NewEventKey(tcell.KeyCtrlD, 0, tcell.ModCtrl)))
	require.True(t, ed.IsMultiCursor())
	loop.refresh()
	assert.Contains(t, rowText(sim, 5), "2 cursors")
	assert.Contains(t, rowText(sim, 5), "2 matches")

	loop.Handle(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	loop.refresh()
	assert.Equal(t, "x bar x", ed.Text())
	assert.Equal(t, "1 x bar x", rowText(sim, 0))

	_, _, visible := sim.GetCursor()
	assert.False(t, visible, "terminal cursor hidden in multi-cursor mode")
	_, _, style, _ := sim.GetContent(3, 0) //nolint:staticcheck // GetContent is the correct API
	_, _, attrs := style.Decompose()
	assert.NotZero(t, attrs&tcell.AttrReverse, "caret drawn reversed")

	loop.Handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	assert.False(t, ed.IsMultiCursor())
}

func TestLoopUndoRedoMessages(t *testing.T) {
	sim, _, ed, loop := setup(t, "", syntax.PlainText)

	loop.Handle(tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl))
	loop.refresh()
	assert.Contains(t, rowText(sim, 5), "undo: nothing to do")

	loop.Handle(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))
	loop.Handle(tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl))
	assert.Equal(t, "", ed.Text())
	loop.Handle(tcell.NewEventKey(tcell.KeyCtrlY, 0, tcell.ModCtrl))
	assert.Equal(t, "a", ed.Text())
}

func TestLoopSave(t *testing.T) {
	saved := 0
	sim, _, _, loop := setup(t, "x", syntax.PlainText, WithSave(func() error { saved++; return nil }))
	loop.Handle(tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl))
	loop.refresh()
	assert.Equal(t, 1, saved)
	assert.Contains(t, rowText(sim, 5), "saved")

	sim, _, _, loop = setup(t, "x", syntax.PlainText, WithSave(func() error { return errors.New("read-only") }))
	loop.Handle(tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl))
	loop.refresh()
	assert.Contains(t, rowText(sim, 5), "save failed: read-only")
}

func TestLoopToggleComment(t *testing.T) {
	_, _, ed, loop := setup(t, "x = 1", "Python")
	loop.Handle(tcell.NewEventKey(tcell.KeyCtrlUnderscore, 0, tcell.ModCtrl))
	assert.Equal(t, "# x = 1", ed.Text())
}

func TestLoopRunQuits(t *testing.T) {
	sim, _, ed, loop := setup(t, "", syntax.PlainText)

	done := make(chan error, 1)
	go func() { done <- loop.Run(context.Background()) }()

	sim.InjectKey(tcell.KeyRune, 'h', tcell.ModNone)
	sim.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Ctrl-Q")
	}
	assert.Equal(t, "h", ed.Text())
}

func TestLoopRunContextCancel(t *testing.T) {
	_, _, _, loop := setup(t, "", syntax.PlainText)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, loop.Run(ctx), context.Canceled)
}
