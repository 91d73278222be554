package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/riordanpawley/overlayctl/internal/core/resolver"
)

var (
	// fatih/color disables these automatically when output is not a TTY
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	headerColor  = color.New(color.FgBlue, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	valueColor   = color.New(color.FgCyan)
	dimColor     = color.New(color.FgHiBlack)
)

// printLabelValue prints an aligned label-value pair
func printLabelValue(w io.Writer, label, value string) {
	_, _ = labelColor.Fprintf(w, "%-10s ", label+":")
	_, _ = valueColor.Fprintln(w, value)
}

func printHeader(w io.Writer, title string) {
	_, _ = headerColor.Fprintf(w, "▸ %s\n", title)
}

func printWarning(w io.Writer, msg string) {
	_, _ = warningColor.Fprintf(w, "⚠ %s\n", msg)
}

// formatError formats an error for display
func formatError(err error) string {
	return errorColor.Sprintf("Error: %v", err)
}

// outcomeColor picks the color for a resolver outcome
func outcomeColor(o resolver.Outcome) *color.Color {
	switch o {
	case resolver.OutcomeContent:
		return successColor
	case resolver.OutcomeFallback:
		return warningColor
	default:
		return dimColor
	}
}

// outputJSON writes v as indented JSON
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
