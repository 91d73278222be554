package overlay

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/overlayctl/internal/ui/styles"
)

// Styles holds all overlay-specific styles
type Styles struct {
	// Frame is the bordered container for registered content
	Frame lipgloss.Style
	// FallbackFrame is the container used for unknown-id fallback content
	FallbackFrame lipgloss.Style
	// Title is the overlay title style
	Title lipgloss.Style
	// Body is the main text style
	Body lipgloss.Style
	// PropKey and PropValue render the props passed at open time
	PropKey   lipgloss.Style
	PropValue lipgloss.Style
	// Separator is the style for divider lines
	Separator lipgloss.Style
	// Footer is the style for overlay footer text
	Footer lipgloss.Style
}

// New creates overlay styles from the shared theme
func New() *Styles {
	return FromTheme(styles.New())
}

// FromTheme picks the overlay styles out of s
func FromTheme(s *styles.Styles) *Styles {
	return &Styles{
		Frame:         s.Overlay,
		FallbackFrame: s.OverlayFallback,
		Title:         s.OverlayTitle,
		Body:          s.OverlayBody,
		PropKey:       s.PropKey,
		PropValue:     s.PropValue,
		Separator:     s.Separator,
		Footer:        s.Footer,
	}
}
