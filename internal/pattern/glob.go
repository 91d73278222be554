package pattern

import (
	"github.com/gobwas/glob"
	"github.com/riordanpawley/overlayctl/internal/domain"
)

// Glob matches shell-style patterns where '*' stops at '/' and '**' does not.
type Glob struct {
	src string
	g   glob.Glob
}

// NewGlob compiles src with '/' as the separator.
func NewGlob(src string) (*Glob, error) {
	g, err := glob.Compile(src, '/')
	if err != nil {
		return nil, &domain.PatternError{Op: "compile", Engine: EngineGlob, Pattern: src, Err: err}
	}
	return &Glob{src: src, g: g}, nil
}

func (g *Glob) Match(location string) (bool, error) {
	return g.g.Match(location), nil
}

func (g *Glob) Engine() string  { return EngineGlob }
func (g *Glob) Pattern() string { return g.src }
