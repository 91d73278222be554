package pattern

import (
	"regexp"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/riordanpawley/overlayctl/internal/domain"
)

// Regexp matches with Go's RE2 engine.
type Regexp struct {
	src string
	re  *regexp.Regexp
}

// NewRegexp compiles src with the standard library regexp package.
func NewRegexp(src string) (*Regexp, error) {
	re, err := regexp.Compile(src)
	if err != nil {
		return nil, &domain.PatternError{Op: "compile", Engine: EngineRegexp, Pattern: src, Err: err}
	}
	return &Regexp{src: src, re: re}, nil
}

func (r *Regexp) Match(location string) (bool, error) {
	return r.re.MatchString(location), nil
}

func (r *Regexp) Engine() string  { return EngineRegexp }
func (r *Regexp) Pattern() string { return r.src }

// DefaultMatchTimeout bounds a single ECMAScript match.
const DefaultMatchTimeout = 100 * time.Millisecond

// ECMAScript matches with JavaScript RegExp semantics (lookarounds,
// backreferences). The pattern may be written as a literal, e.g. `/^\/a/i`;
// the i, m and s flags change matching.
type ECMAScript struct {
	src string
	re  *regexp2.Regexp
}

// NewECMAScript compiles src with regexp2 in ECMAScript mode.
func NewECMAScript(src string) (*ECMAScript, error) {
	body, opts := parseLiteral(src)
	re, err := regexp2.Compile(body, opts)
	if err != nil {
		return nil, &domain.PatternError{Op: "compile", Engine: EngineECMAScript, Pattern: src, Err: err}
	}
	re.MatchTimeout = DefaultMatchTimeout
	return &ECMAScript{src: src, re: re}, nil
}

// Match runs the expression. A timeout surfaces as a PatternError.
func (e *ECMAScript) Match(location string) (bool, error) {
	ok, err := e.re.MatchString(location)
	if err != nil {
		return false, &domain.PatternError{Op: "match", Engine: EngineECMAScript, Pattern: e.src, Err: err}
	}
	return ok, nil
}

func (e *ECMAScript) Engine() string  { return EngineECMAScript }
func (e *ECMAScript) Pattern() string { return e.src }

// parseLiteral accepts either a bare expression or a /body/flags literal. A
// string is only treated as a literal when everything after its last slash is
// a JavaScript flag, so plain paths like "/admin/users" stay bare.
func parseLiteral(src string) (string, regexp2.RegexOptions) {
	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	if len(src) < 2 || src[0] != '/' {
		return src, opts
	}
	end := strings.LastIndexByte(src, '/')
	if end == 0 {
		return src, opts
	}
	flags := src[end+1:]
	if strings.Trim(flags, jsFlags) != "" {
		return src, opts
	}
	for _, f := range flags {
		switch f {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			opts |= regexp2.Singleline
		}
	}
	return src[1:end], opts
}

const jsFlags = "dgimsuy"
