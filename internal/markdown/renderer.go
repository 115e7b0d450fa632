// Package markdown renders markdown for the terminal with glamour.
package markdown

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// DefaultStyle is the glamour standard style used when none is configured.
const DefaultStyle = "dark"

// GlamourRenderer caches one glamour renderer per word-wrap width.
type GlamourRenderer struct {
	style string

	mu        sync.Mutex
	renderers map[int]*glamour.TermRenderer
}

// NewGlamourRenderer creates a renderer using the named glamour standard style.
func NewGlamourRenderer(style string) *GlamourRenderer {
	if style == "" {
		style = DefaultStyle
	}
	return &GlamourRenderer{style: style, renderers: make(map[int]*glamour.TermRenderer)}
}

// Render renders content wrapped at width columns.
func (g *GlamourRenderer) Render(content string, width int) (string, error) {
	r, err := g.renderer(width)
	if err != nil {
		return "", err
	}
	return r.Render(content)
}

func (g *GlamourRenderer) renderer(width int) (*glamour.TermRenderer, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if r, ok := g.renderers[width]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(g.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	g.renderers[width] = r
	return r, nil
}
