package eval

import (
	"github.com/you-not-fish/bsl/internal/diag"
	"github.com/you-not-fish/bsl/internal/syntax"
	"github.com/you-not-fish/bsl/internal/value"
)

// An Environment is one frame of lexical bindings. Lookups walk the
// parent chain and, at the root, fall back to the primitive table.
//
// Frames only grow: a name is bound once and never rebound, so sharing
// a frame between a closure and its defining scope is safe.
type Environment struct {
	parent *Environment
	frame  *frame
	prims  *Primitives
}

type frame struct {
	vars     map[string]value.Value
	declared map[string]bool
}

func newFrame() *frame {
	return &frame{vars: make(map[string]value.Value)}
}

// NewEnvironment creates a root environment backed by prims.
// prims may be nil.
func NewEnvironment(prims *Primitives) *Environment {
	return &Environment{frame: newFrame(), prims: prims}
}

// Extend creates a child environment of e.
func (e *Environment) Extend() *Environment {
	return &Environment{parent: e, frame: newFrame(), prims: e.prims}
}

// Set binds name in e.
func (e *Environment) Set(name string, v value.Value) {
	e.frame.vars[name] = v
}

// Declare records that name will be bound in e later, so that looking it
// up early reports a use before definition.
func (e *Environment) Declare(name string) {
	if e.frame.declared == nil {
		e.frame.declared = make(map[string]bool)
	}
	e.frame.declared[name] = true
}

// Has reports whether name is bound in e, an ancestor or the visible
// primitives.
func (e *Environment) Has(name string) bool {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.frame.vars[name]; ok {
			return true
		}
	}
	if e.prims != nil {
		_, ok := e.prims.Lookup(name)
		return ok
	}
	return false
}

// Get looks up name in the nearest frame that binds or declares it. A
// name declared there but not bound yet is used before its definition,
// even if an outer frame binds the same name.
func (e *Environment) Get(name string, span syntax.Span) (value.Value, error) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.frame.vars[name]; ok {
			return v, nil
		}
		if env.frame.declared[name] {
			return nil, syntax.NewError(span, diag.UsedBeforeDefinition(name))
		}
	}
	if e.prims != nil {
		if v, ok := e.prims.Lookup(name); ok {
			return v, nil
		}
	}
	return nil, syntax.NewError(span, diag.UndefinedVariable(name))
}

// Copy returns an environment with the same bindings as e, as captured
// by a closure. Frames are shared: bindings added to e later are visible
// through the copy, which is what lets top-level functions refer to each
// other.
func (e *Environment) Copy() *Environment {
	c := *e
	return &c
}

// Names returns the names bound directly in e.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.frame.vars))
	for name := range e.frame.vars {
		names = append(names, name)
	}
	return names
}
