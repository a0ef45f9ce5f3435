package ui

import "github.com/gdamore/tcell/v2"

// Renderer draws plans to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws a plan with a status line beneath it.
func (r *Renderer) Render(plan Plan, status string) {
	r.screen.Clear()

	for y := range plan.Height {
		for x := range plan.Width {
			g := plan.At(x, y)
			r.screen.SetContent(x, y, g.Rune, g.Style)
		}
	}
	r.RenderMessage(status, plan.Height)

	r.screen.Show()
}

// RenderMessage writes a line of text starting at column 0.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range []rune(msg) {
		r.screen.SetContent(i, y, ch, style)
	}
}
