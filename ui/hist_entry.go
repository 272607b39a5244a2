package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// MaxHistory - скільки команд пам'ятає поле вводу.
const MaxHistory = 100

// HistoryEntry - поле вводу команд "TARGET PAYLOAD", що пам'ятає історію
type HistoryEntry struct {
	widget.Entry
	history []string
	pointer int // поточна позиція в історії

	// OnCommand викликається для кожної непорожньої команди
	OnCommand func(target, payload string)
}

func NewHistoryEntry() *HistoryEntry {
	e := &HistoryEntry{}
	e.ExtendBaseWidget(e)
	e.PlaceHolder = "Enter command: TARGET PAYLOAD (use Up/Down for history)..."
	e.OnSubmitted = e.submit
	return e
}

// SplitCommand ділить рядок на два: "WORD1 REST OF STRING"
func SplitCommand(input string) (target, payload string, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(input), " ", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", "", false
	}
	return parts[0], strings.TrimSpace(parts[1]), true
}

func (e *HistoryEntry) submit(text string) {
	if text == "" {
		return
	}
	e.AddCommand(text)
	e.SetText("")

	if target, payload, ok := SplitCommand(text); ok && e.OnCommand != nil {
		e.OnCommand(target, payload)
	}
}

// AddCommand додає команду в історію і скидає вказівник
func (e *HistoryEntry) AddCommand(cmd string) {
	if cmd == "" {
		return
	}
	// Якщо остання команда така сама, не додаємо дублікат
	if len(e.history) > 0 && e.history[len(e.history)-1] == cmd {
		e.pointer = len(e.history)
		return
	}

	e.history = append(e.history, cmd)
	if len(e.history) > MaxHistory {
		e.history = e.history[len(e.history)-MaxHistory:]
	}
	e.pointer = len(e.history)
}

// History повертає копію історії команд.
func (e *HistoryEntry) History() []string {
	return append([]string(nil), e.history...)
}

// TypedKey перехоплює стрілки
func (e *HistoryEntry) TypedKey(key *fyne.KeyEvent) {
	switch key.Name {
	case fyne.KeyUp:
		if e.pointer > 0 {
			e.pointer--
			e.setTextAndMoveCursor(e.history[e.pointer])
		}

	case fyne.KeyDown:
		if len(e.history) == 0 {
			return
		}
		if e.pointer < len(e.history)-1 {
			e.pointer++
			e.setTextAndMoveCursor(e.history[e.pointer])
		} else {
			e.pointer = len(e.history)
			e.setTextAndMoveCursor("")
		}

	default:
		e.Entry.TypedKey(key)
	}
}

func (e *HistoryEntry) setTextAndMoveCursor(text string) {
	e.SetText(text)
	e.CursorColumn = len([]rune(text))
	e.Refresh()
}
