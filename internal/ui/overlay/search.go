package overlay

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/daybook/internal/ui/styles"
)

// SearchMsg is emitted on every keystroke for live filtering
type SearchMsg struct {
	Query string
}

// SearchOverlay is the one-line search bar over the task list
type SearchOverlay struct {
	input textinput.Model
	shown int
	total int
}

var searchStyle = lipgloss.NewStyle().
	Foreground(styles.Text).
	Background(styles.Surface0)

var matchCountStyle = lipgloss.NewStyle().
	Foreground(styles.Overlay1).
	Background(styles.Surface0)

// NewSearchOverlay opens the search bar with the current query
func NewSearchOverlay(query string) *SearchOverlay {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search title or description..."
	ti.CharLimit = 100
	ti.Width = 50
	ti.SetValue(query)
	ti.CursorEnd()
	ti.Focus()

	return &SearchOverlay{input: ti}
}

// SetMatchCount updates the "n of m" display
func (s *SearchOverlay) SetMatchCount(shown, total int) {
	s.shown = shown
	s.total = total
}

// Query returns the current input
func (s *SearchOverlay) Query() string {
	return s.input.Value()
}

// Init implements tea.Model
func (s *SearchOverlay) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (s *SearchOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			// keep the filter
			return s, closeOverlay
		case tea.KeyEsc:
			s.input.SetValue("")
			return s, tea.Batch(emit(SearchMsg{}), closeOverlay)
		}
	}

	prev := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if s.input.Value() != prev {
		return s, tea.Batch(cmd, emit(SearchMsg{Query: s.input.Value()}))
	}
	return s, cmd
}

// View implements tea.Model
func (s *SearchOverlay) View() string {
	view := s.input.View()
	if s.input.Value() != "" {
		view += matchCountStyle.Render(fmt.Sprintf(" (%d of %d)", s.shown, s.total))
	}
	return searchStyle.Render(view)
}

// Title is empty; the search bar has no frame
func (s *SearchOverlay) Title() string {
	return ""
}

// Size reports a full-width single line
func (s *SearchOverlay) Size() (width, height int) {
	return 0, 1
}
