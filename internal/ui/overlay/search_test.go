package overlay

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearchOverlay(t *testing.T) {
	s := NewSearchOverlay("gym")
	require.NotNil(t, s)
	assert.Equal(t, "gym", s.Query())
	assert.Equal(t, "", s.Title())

	width, height := s.Size()
	assert.Equal(t, 0, width, "width should be 0 for full-width")
	assert.Equal(t, 1, height)
	assert.NotNil(t, s.Init())
}

func TestSearchOverlay_Typing(t *testing.T) {
	s := NewSearchOverlay("")
	var last SearchMsg

	for _, ch := range "rep" {
		model, cmd := s.Update(runes(string(ch)))
		s = model.(*SearchOverlay)

		msg, ok := msgOf[SearchMsg](cmd)
		require.True(t, ok, "every change emits SearchMsg")
		last = msg
	}

	assert.Equal(t, "rep", last.Query)
	assert.Equal(t, "rep", s.Query())
}

func TestSearchOverlay_EnterKeepsQuery(t *testing.T) {
	s := NewSearchOverlay("gym")

	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})

	_, closed := msgOf[CloseOverlayMsg](cmd)
	assert.True(t, closed)
	_, searched := msgOf[SearchMsg](cmd)
	assert.False(t, searched, "enter must not change the filter")
	assert.Equal(t, "gym", s.Query())
}

func TestSearchOverlay_EscClears(t *testing.T) {
	s := NewSearchOverlay("gym")

	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEsc})

	msg, ok := msgOf[SearchMsg](cmd)
	require.True(t, ok)
	assert.Equal(t, "", msg.Query)
	_, closed := msgOf[CloseOverlayMsg](cmd)
	assert.True(t, closed)
	assert.Equal(t, "", s.Query())
}

func TestSearchOverlay_MatchCount(t *testing.T) {
	s := NewSearchOverlay("gym")
	s.SetMatchCount(1, 2)

	assert.Contains(t, s.View(), "(1 of 2)")

	empty := NewSearchOverlay("")
	empty.SetMatchCount(2, 2)
	assert.NotContains(t, empty.View(), "of 2")
}
