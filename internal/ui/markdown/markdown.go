// Package markdown renders task descriptions for the terminal.
package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

var (
	rendererMu sync.Mutex
	renderers  = map[int]*glamour.TermRenderer{}
)

// Render formats markdown text to fit width. Blank input renders as "".
// If glamour fails the trimmed input is returned unchanged.
func Render(width int, input string) string {
	value := strings.ReplaceAll(input, "\r\n", "\n")
	value = strings.TrimRight(value, "\n")
	if strings.TrimSpace(value) == "" {
		return ""
	}
	if width < 1 {
		width = 1
	}

	rendered := value
	if renderer := rendererFor(width); renderer != nil {
		if formatted, err := renderer.Render(value); err == nil {
			rendered = formatted
		}
	}
	return strings.Trim(rendered, "\n")
}

func rendererFor(width int) *glamour.TermRenderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	if cached, ok := renderers[width]; ok {
		return cached
	}
	style := styles.ASCIIStyleConfig
	style.Item.BlockPrefix = "- "
	// no document margin inside overlays
	zero := uint(0)
	style.Document.Margin = &zero
	created, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[width] = created
	return created
}
