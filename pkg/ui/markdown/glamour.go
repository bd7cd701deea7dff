// Package markdown renders package descriptions and info pages for the
// terminal with glamour
package markdown

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// DefaultWidth is the wrap width for info pages
const DefaultWidth = 80

// Renderer builds its glamour renderer on first use and reuses it. When
// glamour cannot be set up the markdown source is returned unchanged, which
// still reads fine in a terminal.
type Renderer struct {
	width int
	once  sync.Once
	term  *glamour.TermRenderer
}

// New returns a renderer wrapping at width columns; 0 means DefaultWidth
func New(width int) *Renderer {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Renderer{width: width}
}

// Render converts markdown to styled terminal output
func (r *Renderer) Render(source string) string {
	r.once.Do(func() {
		term, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(r.width),
		)
		if err == nil {
			r.term = term
		}
	})
	if r.term == nil {
		return source
	}
	out, err := r.term.Render(source)
	if err != nil {
		return source
	}
	return out
}
