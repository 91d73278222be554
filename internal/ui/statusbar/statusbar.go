package statusbar

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/overlayctl/internal/types"
	"github.com/riordanpawley/overlayctl/internal/ui/styles"
)

// StatusBar represents the status bar at the bottom of the TUI
type StatusBar struct {
	mode      types.Mode
	width     int
	styles    *styles.Styles
	param     string
	currentID string
	selected  bool
}

// New creates a new StatusBar with the given mode, width, and styles
func New(mode types.Mode, width int, styles *styles.Styles) StatusBar {
	return StatusBar{
		mode:   mode,
		width:  width,
		styles: styles,
	}
}

// WithSelection shows the query parameter and the id it currently carries.
// present is false when the parameter is absent from the location.
func (sb StatusBar) WithSelection(param, id string, present bool) StatusBar {
	sb.param = param
	sb.currentID = id
	sb.selected = present
	return sb
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	modeBadge := sb.styles.Mode(sb.mode.String()).Render(sb.mode.String())
	separator := sb.styles.StatusHint.Render(" │ ")

	parts := []string{modeBadge}
	if sb.param != "" {
		info := sb.param + ": -"
		if sb.selected {
			info = sb.param + ": " + sb.currentID
			if sb.currentID == "" {
				info = sb.param + ": (empty)"
			}
		}
		parts = append(parts, separator, sb.styles.StatusInfo.Render(info))
	}

	if hints := GetHints(sb.mode); hints != "" {
		parts = append(parts, separator, sb.styles.StatusHint.Render(hints))
	}

	content := lipgloss.JoinHorizontal(lipgloss.Left, parts...)

	// Apply status bar style and fill width
	return sb.styles.StatusBar.Width(sb.width).Render(content)
}
