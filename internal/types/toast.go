package types

import "time"

// DefaultToastTTL is how long a toast stays on screen
const DefaultToastTTL = 4 * time.Second

// Toast represents a notification message
type Toast struct {
	Level   ToastLevel
	Message string
	Expires time.Time
}

// ToastLevel indicates the severity of a toast
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastWarning
	ToastError
)

// NewToast returns a toast that expires DefaultToastTTL after now
func NewToast(level ToastLevel, message string, now time.Time) Toast {
	return Toast{Level: level, Message: message, Expires: now.Add(DefaultToastTTL)}
}

// Live returns the toasts that have not expired at now
func Live(toasts []Toast, now time.Time) []Toast {
	filtered := make([]Toast, 0, len(toasts))
	for _, t := range toasts {
		if t.Expires.After(now) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
