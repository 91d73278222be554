package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrNoProvider is raised (as a panic) when the overlay surface is used
	// without a mounted provider.
	ErrNoProvider = errors.New("overlay surface used outside of a mounted provider")

	ErrUnknownEngine = errors.New("unknown pattern engine")
	ErrNotBool       = errors.New("pattern did not evaluate to a bool")
)

// PatternError represents a failure compiling or evaluating a display pattern
type PatternError struct {
	Op      string // "compile" or "match"
	Engine  string // regexp, ecmascript, glob, expr, cel
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	if e.Engine != "" {
		return fmt.Sprintf("pattern %s [%s %q]: %v", e.Op, e.Engine, e.Pattern, e.Err)
	}
	return fmt.Sprintf("pattern %s [%q]: %v", e.Op, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// ConfigError represents a failure loading or decoding a config file
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config [%s]: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("config: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
