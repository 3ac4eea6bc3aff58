// Package input maps host key events onto engine directions.
package input

import (
	"github.com/gdamore/tcell/v2"

	"snake/internal/engine"
)

// Action is a non-steering command from the keyboard.
type Action int

const (
	None Action = iota
	Quit
	Pause
)

var runeDirections = map[rune]engine.Direction{
	'w': engine.Up,
	'W': engine.Up,
	's': engine.Down,
	'S': engine.Down,
	'a': engine.Left,
	'A': engine.Left,
	'd': engine.Right,
	'D': engine.Right,
}

// Terminal resolves a tcell key event to a direction. Arrows and WASD steer.
func Terminal(ev *tcell.EventKey) (engine.Direction, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return engine.Up, true
	case tcell.KeyDown:
		return engine.Down, true
	case tcell.KeyLeft:
		return engine.Left, true
	case tcell.KeyRight:
		return engine.Right, true
	case tcell.KeyRune:
		d, ok := runeDirections[ev.Rune()]
		return d, ok
	}
	return 0, false
}

// TerminalAction reports quit (Esc, Ctrl-C, q) and pause (p) keys.
func TerminalAction(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Quit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return Quit
		case 'p', 'P':
			return Pause
		}
	}
	return None
}
