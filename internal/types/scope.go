package types

import (
	"fmt"
	"strings"

	"github.com/you-not-fish/bsl/internal/syntax"
)

// ScopeKind tells which construct opened a scope.
type ScopeKind uint8

const (
	UniverseScope ScopeKind = iota // primitives and built-in structures
	GlobalScope                    // top-level definitions of a session
	LambdaScope                    // parameters of a function or lambda
	LocalScope                     // definitions of a local expression
	LetScope                       // let, let* and letrec bindings
)

var scopeKindNames = [...]string{
	UniverseScope: "universe",
	GlobalScope:   "global",
	LambdaScope:   "lambda",
	LocalScope:    "local",
	LetScope:      "let",
}

func (k ScopeKind) String() string {
	if int(k) < len(scopeKindNames) {
		return scopeKindNames[k]
	}
	return fmt.Sprintf("scope(%d)", k)
}

// Scope maps names to objects. Scopes chain to the universe through
// their parents; a name in an inner scope shadows the outer one.
type Scope struct {
	parent *Scope
	kind   ScopeKind
	span   syntax.Span
	elems  map[string]Object
	order  []string // names in definition order
}

// NewScope creates an empty scope inside parent.
func NewScope(parent *Scope, kind ScopeKind, span syntax.Span) *Scope {
	return &Scope{
		parent: parent,
		kind:   kind,
		span:   span,
		elems:  make(map[string]Object),
	}
}

func (s *Scope) Parent() *Scope    { return s.parent }
func (s *Scope) Kind() ScopeKind   { return s.kind }
func (s *Scope) Span() syntax.Span { return s.span }
func (s *Scope) Len() int          { return len(s.order) }

// Lookup returns the object named name in s itself, or nil.
func (s *Scope) Lookup(name string) Object {
	return s.elems[name]
}

// Resolve finds name in s or the nearest enclosing scope that defines
// it. It returns (nil, nil) for an unbound name.
func (s *Scope) Resolve(name string) (Object, *Scope) {
	for scope := s; scope != nil; scope = scope.parent {
		if obj := scope.elems[name]; obj != nil {
			return obj, scope
		}
	}
	return nil, nil
}

// Insert adds obj unless its name is taken in s, in which case the
// existing object is returned.
func (s *Scope) Insert(obj Object) Object {
	name := obj.Name()
	if existing := s.elems[name]; existing != nil {
		return existing
	}
	s.elems[name] = obj
	s.order = append(s.order, name)
	obj.setParent(s)
	return nil
}

// Mark returns a position that Rollback can return to.
func (s *Scope) Mark() int {
	return len(s.order)
}

// Rollback removes every name inserted since mark was taken.
func (s *Scope) Rollback(mark int) {
	if mark < 0 || mark > len(s.order) {
		return
	}
	for _, name := range s.order[mark:] {
		s.elems[name].setParent(nil)
		delete(s.elems, name)
	}
	s.order = s.order[:mark]
}

// Clear removes every name.
func (s *Scope) Clear() {
	s.Rollback(0)
}

// Names returns the names of s in definition order.
func (s *Scope) Names() []string {
	return append([]string(nil), s.order...)
}

// String lists the scope and its enclosing scopes, innermost first,
// for debugging.
func (s *Scope) String() string {
	var b strings.Builder
	for scope := s; scope != nil; scope = scope.parent {
		fmt.Fprintf(&b, "%s scope:", scope.kind)
		if scope.kind == UniverseScope {
			fmt.Fprintf(&b, " %d names\n", len(scope.order))
			continue
		}
		for _, name := range scope.order {
			fmt.Fprintf(&b, " %s (%s)", name, scope.elems[name].Kind())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
