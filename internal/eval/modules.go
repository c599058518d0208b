package eval

import (
	"math"
	"sort"

	"github.com/you-not-fish/bsl/internal/syntax"
	"github.com/you-not-fish/bsl/internal/value"
)

// A Module is a named set of bindings that require adds to the global
// environment.
type Module struct {
	Name   string
	values map[string]value.Value
}

// Names returns the names the module provides, in sorted order.
func (m *Module) Names() []string {
	names := make([]string, 0, len(m.values))
	for name := range m.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the value the module binds to name, or nil.
func (m *Module) Lookup(name string) value.Value {
	return m.values[name]
}

// Functions returns the procedure names of m in sorted order.
func (m *Module) Functions() []string {
	var names []string
	for _, name := range m.Names() {
		if _, ok := m.values[name].(value.Procedure); ok {
			names = append(names, name)
		}
	}
	return names
}

// Data returns the non-procedure names of m in sorted order.
func (m *Module) Data() []string {
	var names []string
	for _, name := range m.Names() {
		if _, ok := m.values[name].(value.Procedure); !ok {
			names = append(names, name)
		}
	}
	return names
}

func newModule(name string, data map[string]value.Value, prims ...*Primitive) *Module {
	m := &Module{Name: name, values: make(map[string]value.Value)}
	for k, v := range data {
		m.values[k] = v
	}
	for _, p := range prims {
		m.values[p.Name] = p
	}
	return m
}

func primNaN(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	return value.Bool(num(args[0]).IsNaN()), nil
}

func primInfinite(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	n := num(args[0])
	return value.Bool(!n.IsExact() && math.IsInf(n.Float64(), 0)), nil
}

// exactly converts the result of a rounding function to an exact
// integer, as exact-round and friends do.
func exactly(name string, round func(value.Number) value.Number) primFn {
	return func(_ *Evaluator, args []value.Value, span syntax.Span) (value.Value, error) {
		n, err := round(num(args[0])).ToExact()
		if err != nil {
			return nil, errorf(span, "%s: no exact representation for %s", name, args[0])
		}
		return n, nil
	}
}

func builtinModules() map[string]*Module {
	mathModule := newModule("racket/math",
		map[string]value.Value{
			"pi":    value.NewInexact(math.Pi),
			"euler": value.NewInexact(math.E),
		},
		prim("nan?", fixed(1).only(tReal), primNaN),
		prim("infinite?", fixed(1).only(tReal), primInfinite),
		prim("exact-round", fixed(1).only(tRational), exactly("exact-round", value.Round)),
		prim("exact-floor", fixed(1).only(tRational), exactly("exact-floor", value.Floor)),
		prim("exact-ceiling", fixed(1).only(tRational), exactly("exact-ceiling", value.Ceiling)),
		prim("sgn", fixed(1).only(tReal), primSgn),
		prim("conjugate", fixed(1).only(tNum), primIdentity),
	)
	return map[string]*Module{mathModule.Name: mathModule}
}
