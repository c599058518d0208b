package eval

import (
	"github.com/you-not-fish/bsl/internal/ast"
	"github.com/you-not-fish/bsl/internal/diag"
	"github.com/you-not-fish/bsl/internal/syntax"
	"github.com/you-not-fish/bsl/internal/value"
)

// funApp evaluates a function application. The arity is checked before
// the arguments are evaluated.
func (ev *Evaluator) funApp(n *ast.FunAppNode, env *Environment) (value.Value, error) {
	fv, err := ev.eval(n.Fn, env)
	if err != nil {
		return nil, err
	}
	proc, ok := fv.(value.Procedure)
	if !ok {
		found := "variable"
		if t, ok := fv.(*value.StructType); ok {
			found = "structure type (do you mean make-" + t.Name + ")"
		}
		return nil, syntax.NewError(n.Fn.Span(), diag.FunctionCallExpected(found))
	}
	if err := ev.checkArity(proc, len(n.Args), n.Span()); err != nil {
		return nil, err
	}
	args := make([]value.Value, len(n.Args))
	for i, arg := range n.Args {
		if args[i], err = ev.eval(arg, env); err != nil {
			return nil, err
		}
	}
	return ev.invoke(proc, args, n.Span())
}

// apply calls proc with already evaluated arguments, as higher-order
// primitives do.
func (ev *Evaluator) apply(proc value.Procedure, args []value.Value, span syntax.Span) (value.Value, error) {
	if err := ev.checkArity(proc, len(args), span); err != nil {
		return nil, err
	}
	return ev.invoke(proc, args, span)
}

func procName(proc value.Procedure) string {
	if name := proc.ProcName(); name != "" {
		return name
	}
	return "lambda"
}

func (ev *Evaluator) checkArity(proc value.Procedure, n int, span syntax.Span) error {
	p, ok := proc.(*Primitive)
	if !ok {
		if want := proc.Arity(); want >= 0 && want != n {
			return syntax.NewError(span, diag.Arity(procName(proc), want, n))
		}
		return nil
	}
	c := p.Contract
	lo := c.Min
	if ev.conf.RelaxedArity && c.Relaxed {
		lo = c.RelaxedMin
	}
	switch {
	case n < lo && c.Max == c.Min:
		return syntax.NewError(span, diag.Arity(p.Name, c.Min, n))
	case n < lo:
		return syntax.NewError(span, diag.MinArity(p.Name, lo, n))
	case c.Max >= 0 && n > c.Max:
		return syntax.NewError(span, diag.Arity(p.Name, c.Max, n))
	}
	return nil
}

// invoke calls proc. The argument count has been checked.
func (ev *Evaluator) invoke(proc value.Procedure, args []value.Value, span syntax.Span) (value.Value, error) {
	switch p := proc.(type) {
	case *Primitive:
		if err := ev.checkTypes(p, args, span); err != nil {
			return nil, err
		}
		return p.fn(ev, args, span)

	case *Lambda:
		ev.depth++
		defer func() { ev.depth-- }()
		if ev.depth > ev.conf.MaxDepth {
			return nil, syntax.NewError(span, diag.MaxCallStackSize)
		}
		env := p.Env.Extend()
		for i, name := range p.Params {
			env.Set(name, args[i])
		}
		return ev.eval(p.Body, env)

	case *StructConstructor:
		return value.NewStruct(p.Type, append([]value.Value(nil), args...)), nil

	case *StructPredicate:
		s, ok := args[0].(*value.Struct)
		return value.Bool(ok && s.Type == p.Type), nil

	case *StructAccessor:
		s, ok := args[0].(*value.Struct)
		if !ok || s.Type != p.Type {
			return nil, syntax.NewError(span, diag.WrongType(p.ProcName(), p.Type.Name, ev.sprint(args[0])))
		}
		return s.Fields[p.Index], nil

	case *Composed:
		for i := len(p.Procs) - 1; i >= 0; i-- {
			v, err := ev.apply(p.Procs[i], args, span)
			if err != nil {
				return nil, err
			}
			args = []value.Value{v}
		}
		return args[0], nil
	}
	panic("unreachable")
}

// checkTypes enforces the argument types declared by p's contract and
// reports the first violation.
func (ev *Evaluator) checkTypes(p *Primitive, args []value.Value, span syntax.Span) error {
	c := p.Contract
	if c.OnlyArg != nil && len(args) > 0 && !c.OnlyArg.Accepts(args[0]) {
		return syntax.NewError(span, diag.WrongType(p.Name, c.OnlyArg.String(), ev.sprint(args[0])))
	}
	if c.AllArgs != nil {
		for i, arg := range args {
			if !c.AllArgs.Accepts(arg) {
				return syntax.NewError(span, diag.NthWrongType(p.Name, c.AllArgs.String(), i+1, ev.sprint(arg)))
			}
		}
	}
	for i, t := range c.ArgTypes {
		if i < len(args) && t != nil && !t.Accepts(args[i]) {
			return syntax.NewError(span, diag.NthWrongType(p.Name, t.String(), i+1, ev.sprint(args[i])))
		}
	}
	return nil
}
