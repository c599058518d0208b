package eval

import (
	"github.com/you-not-fish/bsl/internal/ast"
	"github.com/you-not-fish/bsl/internal/syntax"
	"github.com/you-not-fish/bsl/internal/types"
	"github.com/you-not-fish/bsl/internal/value"
)

// Lambda is a user-defined procedure closed over its defining
// environment.
type Lambda struct {
	Name   string
	Params []string
	Body   ast.Node
	Env    *Environment
}

func (l *Lambda) ProcName() string { return l.Name }
func (l *Lambda) Arity() int       { return len(l.Params) }
func (l *Lambda) String() string   { return value.Printer{}.Sprint(l) }

// Contract describes the arguments a primitive accepts. Arity bounds are
// checked before the arguments are evaluated, types afterwards.
type Contract struct {
	Min int // minimum number of arguments
	Max int // maximum number of arguments, or -1 if unbounded

	// RelaxedMin replaces Min when Relaxed is set and the evaluator runs
	// with relaxed arity, e.g. to allow (+) and (* 2).
	Relaxed    bool
	RelaxedMin int

	OnlyArg  types.Type   // type of the single argument
	AllArgs  types.Type   // type of every argument
	ArgTypes []types.Type // per-position types
}

func fixed(n int) Contract   { return Contract{Min: n, Max: n} }
func atLeast(n int) Contract { return Contract{Min: n, Max: -1} }

func between(lo, hi int) Contract { return Contract{Min: lo, Max: hi} }

// relaxed returns c with a relaxed minimum of n arguments.
func (c Contract) relaxed(n int) Contract {
	c.Relaxed, c.RelaxedMin = true, n
	return c
}

// only returns c requiring its single argument to have type t.
func (c Contract) only(t types.Type) Contract {
	c.OnlyArg = t
	return c
}

// all returns c requiring every argument to have type t.
func (c Contract) all(t types.Type) Contract {
	c.AllArgs = t
	return c
}

// args returns c with per-position argument types.
func (c Contract) args(ts ...types.Type) Contract {
	c.ArgTypes = ts
	return c
}

// primFn implements a primitive on evaluated, contract-checked arguments.
type primFn func(ev *Evaluator, args []value.Value, span syntax.Span) (value.Value, error)

// Primitive is a built-in procedure.
type Primitive struct {
	Name        string
	Contract    Contract
	HigherOrder bool // takes or returns procedures; hidden in first-order mode
	fn          primFn
}

func (p *Primitive) ProcName() string { return p.Name }

func (p *Primitive) Arity() int {
	if p.Contract.Min == p.Contract.Max {
		return p.Contract.Min
	}
	return -1
}

func (p *Primitive) String() string { return p.Name }

// StructConstructor is make-<name>.
type StructConstructor struct {
	Type *value.StructType
}

func (c *StructConstructor) ProcName() string { return "make-" + c.Type.Name }
func (c *StructConstructor) Arity() int       { return len(c.Type.Fields) }
func (c *StructConstructor) String() string   { return c.ProcName() }

// StructPredicate is <name>?.
type StructPredicate struct {
	Type *value.StructType
}

func (p *StructPredicate) ProcName() string { return p.Type.Name + "?" }
func (p *StructPredicate) Arity() int       { return 1 }
func (p *StructPredicate) String() string   { return p.ProcName() }

// StructAccessor is <name>-<field>.
type StructAccessor struct {
	Type  *value.StructType
	Index int
}

func (a *StructAccessor) ProcName() string { return a.Type.Name + "-" + a.Type.Fields[a.Index] }
func (a *StructAccessor) Arity() int       { return 1 }
func (a *StructAccessor) String() string   { return a.ProcName() }

// Composed is the result of compose: the procedures are applied right to
// left.
type Composed struct {
	Procs []value.Procedure
}

func (c *Composed) ProcName() string { return "" }

func (c *Composed) Arity() int {
	return c.Procs[len(c.Procs)-1].Arity()
}

func (c *Composed) String() string { return value.Printer{}.Sprint(c) }

// structProcs returns the constructor, predicate and accessors of t.
func structProcs(t *value.StructType) []value.Procedure {
	procs := []value.Procedure{&StructConstructor{t}, &StructPredicate{t}}
	for i := range t.Fields {
		procs = append(procs, &StructAccessor{t, i})
	}
	return procs
}
