package styles

import "github.com/charmbracelet/lipgloss"

// Styles holds all the UI styles
type Styles struct {
	// Page list
	Header      lipgloss.Style
	Route       lipgloss.Style
	RouteActive lipgloss.Style
	RouteMarker lipgloss.Style
	Location    lipgloss.Style
	Param       lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusMode lipgloss.Style
	StatusHint lipgloss.Style
	StatusInfo lipgloss.Style

	// Overlays
	Overlay         lipgloss.Style
	OverlayFallback lipgloss.Style
	OverlayTitle    lipgloss.Style
	OverlayBody     lipgloss.Style
	PropKey         lipgloss.Style
	PropValue       lipgloss.Style
	Separator       lipgloss.Style
	Footer          lipgloss.Style

	// Toasts
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style
}

// New creates a new Styles instance with Catppuccin Macchiato theme
func New() *Styles {
	toast := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(c).
			Foreground(c).
			Padding(0, 1)
	}

	return &Styles{
		Header: lipgloss.NewStyle().
			Foreground(Subtext1).
			Bold(true).
			MarginBottom(1),

		Route: lipgloss.NewStyle().
			Foreground(Text).
			PaddingLeft(2),

		RouteActive: lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true).
			PaddingLeft(2),

		RouteMarker: lipgloss.NewStyle().
			Foreground(Lavender),

		Location: lipgloss.NewStyle().
			Foreground(Subtext0).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(Surface1),

		Param: lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true),

		StatusBar: lipgloss.NewStyle().
			Background(Surface0).
			Foreground(Subtext0).
			Padding(0, 1),

		StatusMode: lipgloss.NewStyle().
			Background(Blue).
			Foreground(Base).
			Bold(true).
			Padding(0, 1),

		StatusHint: lipgloss.NewStyle().
			Foreground(Overlay1),

		StatusInfo: lipgloss.NewStyle().
			Foreground(Subtext0),

		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface2).
			Background(Base).
			Padding(1, 2),

		OverlayFallback: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Red).
			Background(Base).
			Padding(1, 2),

		OverlayTitle: lipgloss.NewStyle().
			Foreground(Text).
			Bold(true).
			MarginBottom(1),

		OverlayBody: lipgloss.NewStyle().
			Foreground(Subtext1),

		PropKey: lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true),

		PropValue: lipgloss.NewStyle().
			Foreground(Text),

		Separator: lipgloss.NewStyle().
			Foreground(Surface1),

		Footer: lipgloss.NewStyle().
			Foreground(Overlay0).
			MarginTop(1),

		ToastInfo:    toast(Blue),
		ToastSuccess: toast(Green),
		ToastWarning: toast(Yellow),
		ToastError:   toast(Red),
	}
}

// Mode returns the status bar badge style for the named mode
func (s *Styles) Mode(name string) lipgloss.Style {
	if c, ok := ModeColors[name]; ok {
		return s.StatusMode.Background(c)
	}
	return s.StatusMode
}
