package statusbar

import "github.com/riordanpawley/daybook/internal/types"

// GetHints returns the keybinding hints for the given mode
func GetHints(mode types.Mode) string {
	switch mode {
	case types.ModeNormal:
		return "j/k: tasks  a: add  x: done  enter: details  [/]: day  /: search  ?: help  q: quit"
	case types.ModeSearch:
		return "Type to search  Enter: confirm  Esc: cancel"
	case types.ModeEdit:
		return "Enter: save  Esc: cancel"
	case types.ModeConfirm:
		return "y: confirm  n: cancel"
	default:
		return ""
	}
}
