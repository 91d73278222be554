package statusbar

import "github.com/riordanpawley/overlayctl/internal/types"

// GetHints returns the keybinding hints for the given mode
func GetHints(mode types.Mode) string {
	switch mode {
	case types.ModeNormal:
		return "j/k: pages  enter: go  1-9: open  [/]: back/fwd  :: location  q: quit"
	case types.ModeOverlay:
		return "esc/x: close  [/]: back/fwd  :: location  q: quit"
	case types.ModeLocation:
		return "Enter: navigate  Esc: cancel"
	default:
		return ""
	}
}
