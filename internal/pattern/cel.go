package pattern

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/riordanpawley/overlayctl/internal/domain"
)

// CEL evaluates a Common Expression Language predicate, e.g.
// `path.startsWith('/admin') && !fragment.matches('^debug')`.
type CEL struct {
	src     string
	program cel.Program
}

// NewCEL compiles src against an environment declaring the location parts
// as strings.
func NewCEL(src string) (*CEL, error) {
	env, err := cel.NewEnv(
		cel.Variable("location", cel.StringType),
		cel.Variable("path", cel.StringType),
		cel.Variable("query", cel.StringType),
		cel.Variable("fragment", cel.StringType),
	)
	if err != nil {
		return nil, &domain.PatternError{Op: "compile", Engine: EngineCEL, Pattern: src, Err: err}
	}
	ast, iss := env.Compile(src)
	if iss.Err() != nil {
		return nil, &domain.PatternError{Op: "compile", Engine: EngineCEL, Pattern: src, Err: iss.Err()}
	}
	program, err := env.Program(ast)
	if err != nil {
		return nil, &domain.PatternError{Op: "compile", Engine: EngineCEL, Pattern: src, Err: err}
	}
	return &CEL{src: src, program: program}, nil
}

func (c *CEL) Match(location string) (bool, error) {
	out, _, err := c.program.Eval(Split(location).vars())
	if err != nil {
		return false, &domain.PatternError{Op: "match", Engine: EngineCEL, Pattern: c.src, Err: err}
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, &domain.PatternError{
			Op:      "match",
			Engine:  EngineCEL,
			Pattern: c.src,
			Err:     fmt.Errorf("%w: got %s", domain.ErrNotBool, out.Type().TypeName()),
		}
	}
	return b, nil
}

func (c *CEL) Engine() string  { return EngineCEL }
func (c *CEL) Pattern() string { return c.src }
