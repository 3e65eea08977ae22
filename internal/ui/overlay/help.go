package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyBinding represents a single keybinding entry
type KeyBinding struct {
	Key         string
	Description string
}

// KeyCategory represents a category of keybindings
type KeyCategory struct {
	Name     string
	Bindings []KeyBinding
}

// HelpOverlay displays keybinding reference
type HelpOverlay struct {
	styles     *Styles
	scroll     int
	maxScroll  int
	viewHeight int
}

// NewHelpOverlay creates a new help overlay
func NewHelpOverlay() *HelpOverlay {
	return &HelpOverlay{
		styles:     New(),
		viewHeight: 20,
	}
}

// Init initializes the overlay
func (h *HelpOverlay) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (h *HelpOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}

	switch keyMsg.String() {
	case "esc", "q", "?":
		return h, closeOverlay
	case "j", "down":
		if h.scroll < h.maxScroll {
			h.scroll++
		}
	case "k", "up":
		if h.scroll > 0 {
			h.scroll--
		}
	case "g":
		h.scroll = 0
	case "G":
		h.scroll = h.maxScroll
	}
	return h, nil
}

// View renders the help overlay
func (h *HelpOverlay) View() string {
	var content strings.Builder
	for i, cat := range Keymap() {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(h.styles.MenuHeader.Render(cat.Name + ":"))
		content.WriteString("\n")
		for _, binding := range cat.Bindings {
			key := h.styles.MenuKey.Width(8).Render(binding.Key)
			content.WriteString("  " + key + "  " + h.styles.MenuItem.Render(binding.Description) + "\n")
		}
	}

	lines := strings.Split(strings.TrimRight(content.String(), "\n"), "\n")
	h.maxScroll = max(0, len(lines)-h.viewHeight)
	h.scroll = min(h.scroll, h.maxScroll)

	end := min(h.scroll+h.viewHeight, len(lines))
	result := strings.Join(lines[h.scroll:end], "\n")

	if h.maxScroll > 0 {
		result += "\n" + h.styles.Footer.Render("[j/k to scroll, g/G to jump]")
	}
	return result
}

// Title returns the overlay title
func (h *HelpOverlay) Title() string {
	return "Help"
}

// Size returns the overlay dimensions
func (h *HelpOverlay) Size() (width, height int) {
	return 52, h.viewHeight + 4
}

// Keymap lists the task view's keybindings by category
func Keymap() []KeyCategory {
	return []KeyCategory{
		{
			Name: "Navigation",
			Bindings: []KeyBinding{
				{Key: "j/k", Description: "Move between tasks"},
				{Key: "[ / ]", Description: "Previous / next day"},
				{Key: "t", Description: "Jump to today"},
				{Key: "g", Description: "Go to date"},
				{Key: "G", Description: "Days with pending tasks"},
			},
		},
		{
			Name: "Tasks",
			Bindings: []KeyBinding{
				{Key: "a", Description: "Add task"},
				{Key: "x/Space", Description: "Toggle done"},
				{Key: "Enter", Description: "Show or hide details"},
				{Key: "e", Description: "Edit description, priority, category"},
				{Key: "i", Description: "Rename"},
				{Key: "p/P", Description: "Cycle priority"},
				{Key: "c/C", Description: "Cycle category"},
				{Key: "d", Description: "Delete"},
			},
		},
		{
			Name: "View",
			Bindings: []KeyBinding{
				{Key: "/", Description: "Search"},
				{Key: "f", Description: "Status filter"},
				{Key: "Esc", Description: "Clear search and filter"},
				{Key: "r", Description: "Reload"},
				{Key: "E", Description: "Export CSV"},
			},
		},
		{
			Name: "Other",
			Bindings: []KeyBinding{
				{Key: "Ctrl+O", Description: "Log out"},
				{Key: "?", Description: "Help (this screen)"},
				{Key: "q", Description: "Quit"},
			},
		},
	}
}
