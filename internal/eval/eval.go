// Package eval implements the tree-walking evaluator for BSL programs:
// environments, procedures, the primitive library, check-* tests,
// modules and the unused-code pass.
package eval

import (
	"errors"
	"math/rand"
	"time"

	"github.com/you-not-fish/bsl/internal/ast"
	"github.com/you-not-fish/bsl/internal/diag"
	"github.com/you-not-fish/bsl/internal/syntax"
	"github.com/you-not-fish/bsl/internal/types"
	"github.com/you-not-fish/bsl/internal/value"
)

// DefaultMaxDepth is the call depth limit used when Config.MaxDepth is 0.
const DefaultMaxDepth = 10000

// Config specifies the configuration for evaluation.
type Config struct {
	// MaxDepth bounds the number of nested procedure calls.
	MaxDepth int

	// HigherOrder makes the higher-order primitives (map, filter, ...)
	// available.
	HigherOrder bool

	// RelaxedArity lets variadic arithmetic take fewer arguments,
	// e.g. (+) or (* 2).
	RelaxedArity bool

	// Printer renders values in test messages and diagnostics.
	Printer value.Printer

	// Seed seeds the random number generator. Zero picks a seed from
	// the clock.
	Seed int64
}

// TestResult is the outcome of one check-* form. Failed tests carry a
// message explaining the failure.
type TestResult struct {
	Passed bool
	Msg    string
	Span   syntax.Span
}

// Result is the outcome of evaluating a program.
type Result struct {
	Values []value.Value // displayable results of top-level expressions
	Tests  []TestResult
	Err    *syntax.Error // first runtime error, if any
}

// Evaluator evaluates programs against a global environment that
// persists between calls to Eval.
type Evaluator struct {
	conf    Config
	prims   *Primitives
	modules map[string]*Module
	global  *Environment
	rng     *rand.Rand

	used  ast.UsedSet
	depth int
}

// New creates an evaluator with an empty global environment.
func New(conf Config) *Evaluator {
	if conf.MaxDepth <= 0 {
		conf.MaxDepth = DefaultMaxDepth
	}
	ev := &Evaluator{
		conf:    conf,
		prims:   NewPrimitives(conf.HigherOrder),
		modules: builtinModules(),
		rng:     rand.New(rand.NewSource(0)),
	}
	ev.Reset()
	return ev
}

// Reset forgets every global definition and reseeds the random number
// generator.
func (ev *Evaluator) Reset() {
	ev.global = NewEnvironment(ev.prims)
	seed := ev.conf.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	ev.rng.Seed(seed)
}

// Primitives returns the primitive table.
func (ev *Evaluator) Primitives() *Primitives { return ev.prims }

// Modules returns the modules require can load, by name.
func (ev *Evaluator) Modules() map[string]*Module { return ev.modules }

// Global returns the global environment.
func (ev *Evaluator) Global() *Environment { return ev.global }

// Eval evaluates prog. Top-level definitions and expressions run in
// source order; tests run afterwards, so that they see every definition.
// Evaluated nodes are recorded in used, which may be nil.
func (ev *Evaluator) Eval(prog *ast.Program, used ast.UsedSet) *Result {
	ev.used = used
	ev.depth = 0
	defer func() { ev.used = nil }()

	for _, d := range prog.Defns {
		declareDefn(ev.global, d)
	}

	res := &Result{}
	for _, n := range prog.Nodes {
		if _, ok := n.(ast.Check); ok {
			continue
		}
		v, err := ev.eval(n, ev.global)
		if err != nil {
			res.Err = toError(err)
			return res
		}
		if !value.IsVoid(v) {
			res.Values = append(res.Values, v)
		}
	}
	for _, c := range prog.Checks() {
		t, err := ev.check(c)
		if err != nil {
			res.Err = toError(err)
			return res
		}
		res.Tests = append(res.Tests, t)
	}
	return res
}

func toError(err error) *syntax.Error {
	var e *syntax.Error
	if errors.As(err, &e) {
		return e
	}
	return syntax.NewError(syntax.NoSpan, err.Error())
}

// declareDefn declares the names d binds in env.
func declareDefn(env *Environment, d ast.Defn) {
	switch d := d.(type) {
	case *ast.DefnVarNode:
		env.Declare(d.Name)
	case *ast.DefnStructNode:
		env.Declare(d.Name)
		for _, name := range types.StructNames(d.Name, d.Fields) {
			env.Declare(name)
		}
	}
}

func (ev *Evaluator) sprint(v value.Value) string {
	return ev.conf.Printer.Sprint(v)
}

// eval evaluates n in env.
func (ev *Evaluator) eval(n ast.Node, env *Environment) (value.Value, error) {
	ev.used.Use(n)

	switch n := n.(type) {
	case *ast.AtomNode:
		return n.Value, nil

	case *ast.VarNode:
		return env.Get(n.Name, n.Span())

	case *ast.AndNode:
		for _, arg := range n.Args {
			ok, err := ev.question("and", arg, env)
			if err != nil || !ok {
				return value.False, err
			}
		}
		return value.True, nil

	case *ast.OrNode:
		for _, arg := range n.Args {
			ok, err := ev.question("or", arg, env)
			if err != nil || ok {
				return value.True, err
			}
		}
		return value.False, nil

	case *ast.IfNode:
		ok, err := ev.question("if", n.Cond, env)
		if err != nil {
			return nil, err
		}
		if ok {
			return ev.eval(n.Then, env)
		}
		return ev.eval(n.Else, env)

	case *ast.CondNode:
		for _, c := range n.Clauses {
			ok, err := ev.question("cond", c.Question, env)
			if err != nil {
				return nil, err
			}
			if ok {
				return ev.eval(c.Answer, env)
			}
		}
		return nil, syntax.NewError(n.Span(), diag.AllQuestionResultsFalse)

	case *ast.LambdaNode:
		for _, p := range n.Params {
			ev.used.Use(p)
		}
		return &Lambda{Name: n.Name, Params: n.ParamNames(), Body: n.Body, Env: env.Copy()}, nil

	case *ast.LetNode:
		return ev.let(n, env)

	case *ast.LocalNode:
		local := env.Extend()
		for _, d := range n.Defns {
			declareDefn(local, d)
		}
		for _, d := range n.Defns {
			if _, err := ev.eval(d, local); err != nil {
				return nil, err
			}
		}
		return ev.eval(n.Body, local)

	case *ast.FunAppNode:
		return ev.funApp(n, env)

	case *ast.EllipsisNode, *ast.EllipsisFunAppNode:
		return nil, syntax.NewError(n.Span(), diag.ExpectedFinishedExpr("..."))

	case *ast.RequireNode:
		return ev.require(n, env)

	case *ast.DefnVarNode:
		v, err := ev.eval(n.Value, env)
		if err != nil {
			return nil, err
		}
		env.Set(n.Name, v)
		return value.Void{}, nil

	case *ast.DefnStructNode:
		t := &value.StructType{Name: n.Name, Fields: n.Fields}
		env.Set(t.Name, t)
		for _, p := range structProcs(t) {
			env.Set(p.ProcName(), p)
		}
		return value.Void{}, nil
	}
	panic("unreachable")
}

// question evaluates the question of form and insists on a boolean.
func (ev *Evaluator) question(form string, n ast.Node, env *Environment) (bool, error) {
	v, err := ev.eval(n, env)
	if err != nil {
		return false, err
	}
	b, ok := v.(value.Bool)
	if !ok {
		return false, syntax.NewError(n.Span(), diag.QuestionNotBool(form, ev.sprint(v)))
	}
	return bool(b), nil
}

func (ev *Evaluator) let(n *ast.LetNode, env *Environment) (value.Value, error) {
	switch n.Form {
	case "let":
		inner := env.Extend()
		for _, b := range n.Bindings {
			ev.used.Use(b.Name)
			v, err := ev.eval(b.Value, env)
			if err != nil {
				return nil, err
			}
			inner.Set(b.Name.Name, v)
		}
		return ev.eval(n.Body, inner)

	case "let*":
		for _, b := range n.Bindings {
			ev.used.Use(b.Name)
			v, err := ev.eval(b.Value, env)
			if err != nil {
				return nil, err
			}
			env = env.Extend()
			env.Set(b.Name.Name, v)
		}
		return ev.eval(n.Body, env)

	default: // letrec
		inner := env.Extend()
		for _, b := range n.Bindings {
			inner.Declare(b.Name.Name)
		}
		for _, b := range n.Bindings {
			ev.used.Use(b.Name)
			v, err := ev.eval(b.Value, inner)
			if err != nil {
				return nil, err
			}
			inner.Set(b.Name.Name, v)
		}
		return ev.eval(n.Body, inner)
	}
}

func (ev *Evaluator) require(n *ast.RequireNode, env *Environment) (value.Value, error) {
	mod, ok := ev.modules[n.Module]
	if !ok {
		return nil, syntax.NewError(n.NameSpan, diag.ModuleNotFound(n.Module))
	}
	for _, name := range mod.Names() {
		if !env.Has(name) {
			env.Set(name, mod.Lookup(name))
		}
	}
	return value.Void{}, nil
}
