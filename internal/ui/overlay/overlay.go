// Package overlay contains the modal dialogs drawn over the task view.
//
// Overlays never touch task state themselves. They report what the user
// chose through messages, and the app decides what to do with them.
package overlay

import tea "github.com/charmbracelet/bubbletea"

// Overlay represents a modal overlay component
type Overlay interface {
	tea.Model
	Title() string
	Size() (width, height int)
}

// CloseOverlayMsg signals that the overlay should be closed
type CloseOverlayMsg struct{}

func closeOverlay() tea.Msg {
	return CloseOverlayMsg{}
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
