// Package markdown renders computation results for the terminal.
package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

const defaultWidth = 80

var (
	mu        sync.Mutex
	renderers = map[int]*glamour.TermRenderer{}
)

// Render converts markdown text to styled ANSI output wrapped at width.
// Falls back to the raw text if glamour cannot render it.
func Render(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return md
	}
	r := rendererFor(width)
	if r == nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	// glamour pads with blank lines; trim for inline display.
	return strings.Trim(out, "\n")
}

// rendererFor returns a cached renderer for width, creating it on first use.
func rendererFor(width int) *glamour.TermRenderer {
	if width <= 0 {
		width = defaultWidth
	}
	mu.Lock()
	defer mu.Unlock()
	if r, ok := renderers[width]; ok {
		return r
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[width] = r
	return r
}
