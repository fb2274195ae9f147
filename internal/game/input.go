package game

import "github.com/gdamore/tcell/v2"

// Action represents a player-requested game action.
type Action uint8

const (
	ActionNone Action = iota
	ActionGuess
	ActionPick
	ActionCursorUp
	ActionCursorDown
	ActionCursorLeft
	ActionCursorRight
	ActionRestart
	ActionQuit
)

// keyToAction maps a tcell key event to a game action.
func keyToAction(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionCursorUp
	case tcell.KeyDown:
		return ActionCursorDown
	case tcell.KeyRight:
		return ActionCursorRight
	case tcell.KeyLeft:
		return ActionCursorLeft
	case tcell.KeyEnter:
		return ActionGuess
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	}

	switch ev.Rune() {
	case 'g', 'G', ' ':
		return ActionGuess
	case 'x', 'X':
		return ActionPick
	case 'k', 'K':
		return ActionCursorUp
	case 'j', 'J':
		return ActionCursorDown
	case 'l', 'L':
		return ActionCursorRight
	case 'h', 'H':
		return ActionCursorLeft
	case 'r', 'R':
		return ActionRestart
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}

// actionToDelta converts a cursor action to (dx, dy).
func actionToDelta(a Action) (int, int) {
	switch a {
	case ActionCursorUp:
		return 0, -1
	case ActionCursorDown:
		return 0, 1
	case ActionCursorRight:
		return 1, 0
	case ActionCursorLeft:
		return -1, 0
	}
	return 0, 0
}

// mouseTracker turns tcell's level-triggered button state into clicks.
type mouseTracker struct {
	prev tcell.ButtonMask
}

// click reports whether ev is the press edge of the primary button.
func (m *mouseTracker) click(ev *tcell.EventMouse) bool {
	btn := ev.Buttons()
	pressed := btn&tcell.Button1 != 0 && m.prev&tcell.Button1 == 0
	m.prev = btn
	return pressed
}
