package overlay

import (
	"github.com/charmbracelet/lipgloss"
)

type fallbacker interface {
	Fallback() bool
}

// Frame renders o inside its bordered container with the title on top.
func Frame(o Overlay, s *Styles) string {
	view := o.View()
	if title := o.Title(); title != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, s.Title.Render(title), view)
	}

	frame := s.Frame
	if f, ok := o.(fallbacker); ok && f.Fallback() {
		frame = s.FallbackFrame
	}

	w, h := o.Size()
	return frame.Width(w).Height(h).Render(view)
}

// Place centers the framed overlay in a width x height area.
func Place(o Overlay, s *Styles, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, Frame(o, s))
}
