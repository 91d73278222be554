package pattern

import (
	"fmt"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
	"github.com/riordanpawley/overlayctl/internal/domain"
)

// Expr evaluates an expr-lang boolean expression. The environment exposes
// location, path, query and fragment, e.g. `path startsWith "/admin"`.
type Expr struct {
	src     string
	program *exprvm.Program
}

// NewExpr compiles src, requiring a bool result.
func NewExpr(src string) (*Expr, error) {
	program, err := exprlang.Compile(src, exprlang.Env(Parts{}.vars()), exprlang.AsBool())
	if err != nil {
		return nil, &domain.PatternError{Op: "compile", Engine: EngineExpr, Pattern: src, Err: err}
	}
	return &Expr{src: src, program: program}, nil
}

func (e *Expr) Match(location string) (bool, error) {
	out, err := exprlang.Run(e.program, Split(location).vars())
	if err != nil {
		return false, &domain.PatternError{Op: "match", Engine: EngineExpr, Pattern: e.src, Err: err}
	}
	b, ok := out.(bool)
	if !ok {
		return false, &domain.PatternError{
			Op:      "match",
			Engine:  EngineExpr,
			Pattern: e.src,
			Err:     fmt.Errorf("%w: got %T", domain.ErrNotBool, out),
		}
	}
	return b, nil
}

func (e *Expr) Engine() string  { return EngineExpr }
func (e *Expr) Pattern() string { return e.src }
