package overlay

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNewHelpOverlay(t *testing.T) {
	help := NewHelpOverlay()

	if help == nil {
		t.Fatal("NewHelpOverlay returned nil")
	}
	if help.scroll != 0 {
		t.Errorf("initial scroll should be 0, got %d", help.scroll)
	}
	if help.Title() != "Help" {
		t.Errorf("expected title 'Help', got '%s'", help.Title())
	}
	if width, height := help.Size(); width < 40 || height < 20 {
		t.Errorf("size too small: %dx%d", width, height)
	}
}

func TestHelpOverlay_View_ContainsKeyBindings(t *testing.T) {
	help := NewHelpOverlay()
	help.viewHeight = 100

	view := help.View()

	for _, want := range []string{"Navigation", "Tasks", "View", "Other", "Add task", "Export CSV", "Log out"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
	if strings.Contains(view, "to scroll") {
		t.Error("no scroll hint when everything fits")
	}
}

func TestHelpOverlay_EscapeCloses(t *testing.T) {
	for _, key := range []tea.KeyMsg{{Type: tea.KeyEsc}, runes("q"), runes("?")} {
		help := NewHelpOverlay()

		_, cmd := help.Update(key)

		if _, ok := msgOf[CloseOverlayMsg](cmd); !ok {
			t.Errorf("%q should close help", key.String())
		}
	}
}

func TestHelpOverlay_Scroll(t *testing.T) {
	help := NewHelpOverlay()
	help.viewHeight = 5
	help.View()

	if help.maxScroll == 0 {
		t.Fatal("expected content to need scrolling")
	}

	help.Update(runes("j"))
	help.Update(runes("j"))
	if help.scroll != 2 {
		t.Errorf("expected scroll 2, got %d", help.scroll)
	}

	help.Update(runes("k"))
	if help.scroll != 1 {
		t.Errorf("expected scroll 1, got %d", help.scroll)
	}

	help.Update(runes("G"))
	if help.scroll != help.maxScroll {
		t.Errorf("expected bottom %d, got %d", help.maxScroll, help.scroll)
	}
	help.Update(runes("j"))
	if help.scroll != help.maxScroll {
		t.Error("scroll must not pass the bottom")
	}

	help.Update(runes("g"))
	if help.scroll != 0 {
		t.Errorf("expected top, got %d", help.scroll)
	}
	help.Update(runes("k"))
	if help.scroll != 0 {
		t.Error("scroll must not go above the top")
	}

	if !strings.Contains(help.View(), "to scroll") {
		t.Error("view should show the scroll hint")
	}
}

func TestKeymap(t *testing.T) {
	for i, cat := range Keymap() {
		if cat.Name == "" {
			t.Errorf("category %d has empty name", i)
		}
		if len(cat.Bindings) == 0 {
			t.Errorf("category '%s' has no bindings", cat.Name)
		}
		for j, binding := range cat.Bindings {
			if binding.Key == "" || binding.Description == "" {
				t.Errorf("binding %d in '%s' is incomplete", j, cat.Name)
			}
		}
	}
}
