package engine

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// KeyCode identifies a non-text key.
type KeyCode uint8

const (
	KeyNone KeyCode = iota
	KeyText         // printable text in Key.Text
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyEscape
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

var keyNames = [...]string{
	KeyNone:      "none",
	KeyText:      "text",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyEscape:    "escape",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyUp:        "up",
	KeyDown:      "down",
}

func (k KeyCode) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "unknown"
}

// Key is one input event.
type Key struct {
	Code KeyCode
	Text string
}

// Text returns a text key.
func Text(s string) Key {
	return Key{Code: KeyText, Text: s}
}

// Press returns a non-text key.
func Press(code KeyCode) Key {
	return Key{Code: code}
}

// Printable reports whether k carries text made only of printable runes.
func (k Key) Printable() bool {
	if k.Code != KeyText || k.Text == "" {
		return false
	}
	for _, r := range k.Text {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

// FromTcell converts a terminal key event.
func FromTcell(ev *tcell.EventKey) Key {
	switch ev.Key() {
	case tcell.KeyRune:
		return Text(string(ev.Rune()))
	case tcell.KeyEnter:
		return Press(KeyEnter)
	case tcell.KeyTab:
		return Press(KeyTab)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Press(KeyBackspace)
	case tcell.KeyDelete:
		return Press(KeyDelete)
	case tcell.KeyEscape:
		return Press(KeyEscape)
	case tcell.KeyLeft:
		return Press(KeyLeft)
	case tcell.KeyRight:
		return Press(KeyRight)
	case tcell.KeyUp:
		return Press(KeyUp)
	case tcell.KeyDown:
		return Press(KeyDown)
	default:
		return Key{}
	}
}
