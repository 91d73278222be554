// Package pattern compiles conditional display patterns into domain.Matcher
// values. Several engines are available; all of them are evaluated against the
// full location string (path, query and fragment).
package pattern

import (
	"fmt"
	"strings"

	"github.com/riordanpawley/overlayctl/internal/domain"
)

// Engine names accepted by Compile.
const (
	EngineRegexp     = "regexp"
	EngineECMAScript = "ecmascript"
	EngineGlob       = "glob"
	EngineExpr       = "expr"
	EngineCEL        = "cel"
)

// DefaultEngine is used when a pattern is declared without an engine.
const DefaultEngine = EngineECMAScript

// Source describes a compiled matcher for listings and diagnostics.
type Source interface {
	Engine() string
	Pattern() string
}

// Engines returns the supported engine names.
func Engines() []string {
	return []string{EngineRegexp, EngineECMAScript, EngineGlob, EngineExpr, EngineCEL}
}

// Compile builds a matcher for src using the named engine.
func Compile(engine, src string) (domain.Matcher, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case EngineRegexp, "re2":
		return NewRegexp(src)
	case "", EngineECMAScript, "js":
		return NewECMAScript(src)
	case EngineGlob:
		return NewGlob(src)
	case EngineExpr:
		return NewExpr(src)
	case EngineCEL:
		return NewCEL(src)
	default:
		return nil, &domain.PatternError{
			Op:      "compile",
			Engine:  engine,
			Pattern: src,
			Err:     domain.ErrUnknownEngine,
		}
	}
}

// MustCompile is like Compile but panics if the pattern cannot be compiled.
func MustCompile(engine, src string) domain.Matcher {
	m, err := Compile(engine, src)
	if err != nil {
		panic(err)
	}
	return m
}

// Describe renders a matcher as "engine:pattern". Matchers that do not
// implement Source are described by their Go type.
func Describe(m domain.Matcher) string {
	if m == nil {
		return ""
	}
	if s, ok := m.(Source); ok {
		return s.Engine() + ":" + s.Pattern()
	}
	return fmt.Sprintf("%T", m)
}

// Parts is the decomposed location exposed to expression engines.
type Parts struct {
	Location string
	Path     string
	Query    string
	Fragment string
}

// Split breaks a location string into path, query (without '?') and
// fragment (without '#').
func Split(location string) Parts {
	p := Parts{Location: location}
	rest := location
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		p.Fragment = rest[i+1:]
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		p.Query = rest[i+1:]
		rest = rest[:i]
	}
	p.Path = rest
	return p
}

func (p Parts) vars() map[string]any {
	return map[string]any{
		"location": p.Location,
		"path":     p.Path,
		"query":    p.Query,
		"fragment": p.Fragment,
	}
}
