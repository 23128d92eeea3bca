package delta

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/statetree/delta/ir"
)

// Resolver decides the winning value for a conflict. Resolve returns the
// value to write at the conflict's path and true, or false to leave the
// default merge result in place.
type Resolver interface {
	Resolve(c Conflict) (*ir.Node, bool, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(c Conflict) (*ir.Node, bool, error)

func (f ResolverFunc) Resolve(c Conflict) (*ir.Node, bool, error) {
	return f(c)
}

// PreferA resolves every conflict to side A's value, inverting the default
// second-applied-wins policy.
func PreferA() Resolver {
	return ResolverFunc(func(c Conflict) (*ir.Node, bool, error) {
		return c.A.Clone(), true, nil
	})
}

// ExprResolver compiles src as an expr program evaluated once per
// conflict. The environment binds path (the slash-delimited path string)
// and a and b (the two sides' resulting values as plain Go values). The
// program's result becomes the winning value; a nil result leaves the
// default merge result in place.
//
//	ExprResolver(`a > b ? a : b`)
//	ExprResolver(`path == "/status" ? a : nil`)
func ExprResolver(src string) (Resolver, error) {
	prog, err := expr.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("compiling resolver: %w", err)
	}
	return &exprResolver{prog: prog}, nil
}

type exprResolver struct {
	prog *vm.Program
}

func (r *exprResolver) Resolve(c Conflict) (*ir.Node, bool, error) {
	env := map[string]any{
		"path": c.Path.String(),
		"a":    ir.ToAny(c.A),
		"b":    ir.ToAny(c.B),
	}
	out, err := expr.Run(r.prog, env)
	if err != nil {
		return nil, false, err
	}
	if out == nil {
		return nil, false, nil
	}
	v, err := ir.FromAny(out)
	if err != nil {
		return nil, false, fmt.Errorf("resolver result: %w", err)
	}
	return v, true, nil
}
