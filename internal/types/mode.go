// Package types contains shared types used across the terminal host.
package types

// Mode represents what currently receives key input
type Mode int

const (
	// ModeNormal drives the page list
	ModeNormal Mode = iota
	// ModeOverlay means an overlay is rendered and receives keys first
	ModeOverlay
	// ModeLocation edits the location bar
	ModeLocation
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeOverlay:
		return "OVERLAY"
	case ModeLocation:
		return "LOCATION"
	default:
		return "UNKNOWN"
	}
}
