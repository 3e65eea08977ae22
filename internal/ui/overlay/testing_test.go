package overlay

import tea "github.com/charmbracelet/bubbletea"

// collect runs cmd and flattens batches into the messages they produce
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, collect(c)...)
	}
	return out
}

// msgOf returns the first message of type T produced by cmd
func msgOf[T tea.Msg](cmd tea.Cmd) (T, bool) {
	for _, msg := range collect(cmd) {
		if m, ok := msg.(T); ok {
			return m, true
		}
	}
	var zero T
	return zero, false
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
