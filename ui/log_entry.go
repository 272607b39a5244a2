package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// LogEntry виглядає як звичайний Entry, але дозволяє ТІЛЬКИ гортати і копіювати.
type LogEntry struct {
	widget.Entry
}

func NewLogEntry() *LogEntry {
	e := &LogEntry{}
	e.ExtendBaseWidget(e)
	e.MultiLine = true
	e.TextStyle = fyne.TextStyle{Monospace: true} // Шрифт як у терміналі
	e.Wrapping = fyne.TextWrapWord
	return e
}

// TypedRune - введення тексту ігнорується.
func (e *LogEntry) TypedRune(r rune) {}

// TypedKey пропускає тільки навігацію
func (e *LogEntry) TypedKey(key *fyne.KeyEvent) {
	switch key.Name {
	case fyne.KeyDown, fyne.KeyUp, fyne.KeyLeft, fyne.KeyRight,
		fyne.KeyPageDown, fyne.KeyPageUp, fyne.KeyHome, fyne.KeyEnd:
		e.Entry.TypedKey(key)
	}
}

// TypedShortcut дозволяє лише копіювання
func (e *LogEntry) TypedShortcut(shortcut fyne.Shortcut) {
	if _, ok := shortcut.(*fyne.ShortcutCopy); ok {
		e.Entry.TypedShortcut(shortcut)
	}
}
