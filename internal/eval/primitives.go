package eval

import (
	"math"
	"sort"

	"github.com/you-not-fish/bsl/internal/syntax"
	"github.com/you-not-fish/bsl/internal/types"
	"github.com/you-not-fish/bsl/internal/value"
)

// Contract types.
var (
	tAny        = types.Typ[types.Any]
	tBool       = types.Typ[types.Boolean]
	tChar       = types.Typ[types.Character]
	tString     = types.Typ[types.String]
	tSymbol     = types.Typ[types.Symbol]
	tProc       = types.Typ[types.Procedure]
	tPosInt     = types.Typ[types.PositiveInteger]
	tNat        = types.Typ[types.Natural]
	tInt        = types.Typ[types.Integer]
	tRational   = types.Typ[types.Rational]
	tNonNegReal = types.Typ[types.NonNegativeReal]
	tReal       = types.Typ[types.Real]
	tNum        = types.Typ[types.Number]
	tList       = types.AnyList
	tCons       = types.NonEmptyList
)

func prim(name string, c Contract, fn primFn) *Primitive {
	return &Primitive{Name: name, Contract: c, fn: fn}
}

// hof declares a primitive that takes procedures as arguments.
func hof(name string, c Contract, fn primFn) *Primitive {
	return &Primitive{Name: name, Contract: c, HigherOrder: true, fn: fn}
}

// builtinData holds the predefined non-procedure names.
func builtinData() map[string]value.Value {
	return map[string]value.Value{
		"pi":    value.NewInexact(math.Pi),
		"e":     value.NewInexact(math.E),
		"empty": value.Empty,
		"null":  value.Empty,
		"eof":   value.Eof{},
	}
}

// builtinStructs holds the predefined structure types.
func builtinStructs() []*value.StructType {
	return []*value.StructType{
		{Name: "posn", Fields: []string{"x", "y"}},
	}
}

// Primitives is the table of predefined names, consulted at the root of
// every environment.
type Primitives struct {
	values  map[string]value.Value
	hidden  map[string]bool
	structs map[string][]string
}

// NewPrimitives creates the primitive table. Without higherOrder the
// primitives that take procedures are hidden.
func NewPrimitives(higherOrder bool) *Primitives {
	p := &Primitives{
		values:  make(map[string]value.Value),
		hidden:  make(map[string]bool),
		structs: make(map[string][]string),
	}
	for _, table := range [][]*Primitive{numberPrims, stringPrims, charPrims, listPrims, miscPrims, higherOrderPrims} {
		for _, prim := range table {
			p.values[prim.Name] = prim
			if prim.HigherOrder && !higherOrder {
				p.hidden[prim.Name] = true
			}
		}
	}
	for name, v := range builtinData() {
		p.values[name] = v
	}
	for _, t := range builtinStructs() {
		p.structs[t.Name] = t.Fields
		p.values[t.Name] = t
		for _, proc := range structProcs(t) {
			p.values[proc.ProcName()] = proc
		}
	}
	return p
}

// Lookup returns the value of a visible primitive name.
func (p *Primitives) Lookup(name string) (value.Value, bool) {
	if p.hidden[name] {
		return nil, false
	}
	v, ok := p.values[name]
	return v, ok
}

// Functions returns the visible procedure names in sorted order.
func (p *Primitives) Functions() []string {
	return p.names(func(v value.Value) bool {
		_, ok := v.(value.Procedure)
		return ok
	})
}

// Data returns the visible names bound to data, other than structure
// types, in sorted order.
func (p *Primitives) Data() []string {
	return p.names(func(v value.Value) bool {
		switch v.(type) {
		case value.Procedure, *value.StructType:
			return false
		}
		return true
	})
}

// Structs returns the predefined structure types and their fields.
func (p *Primitives) Structs() map[string][]string {
	return p.structs
}

// Universe returns the static scope holding every visible primitive.
func (p *Primitives) Universe() *types.Scope {
	return types.NewUniverse(p.Functions(), p.Data(), p.structs)
}

func (p *Primitives) names(keep func(value.Value) bool) []string {
	var names []string
	for name, v := range p.values {
		if !p.hidden[name] && keep(v) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// errorf creates a runtime error at span.
func errorf(span syntax.Span, format string, args ...any) error {
	return syntax.Errorf(span, format, args...)
}
