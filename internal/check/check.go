package check

import (
	"github.com/you-not-fish/bsl/internal/ast"
	"github.com/you-not-fish/bsl/internal/diag"
	"github.com/you-not-fish/bsl/internal/syntax"
	"github.com/you-not-fish/bsl/internal/types"
)

// Checker is the well-formedness checker.
type Checker struct {
	conf *Config

	// Current checking context
	global *types.Scope
	scope  *types.Scope // current scope
	form   ast.Node     // top-level form being checked

	// Error tracking
	errors []*syntax.Error
	failed map[ast.Node]bool // top-level forms that already have an error
}

// checkProgram checks all top-level forms of prog.
func (c *Checker) checkProgram(prog *ast.Program) {
	// Phase 1: Collect all top-level definitions, so that functions may
	// refer to names defined further down.
	for _, n := range prog.Nodes {
		c.form = n
		switch n := n.(type) {
		case ast.Defn:
			c.collectDefn(n)
		case *ast.RequireNode:
			c.require(n)
		}
	}

	// Phase 2: Resolve every name.
	for _, n := range prog.Nodes {
		c.form = n
		if c.failed[n] {
			continue
		}
		c.node(n)
	}
}

// openScope creates a new scope as a child of the current scope.
func (c *Checker) openScope(n ast.Node, kind types.ScopeKind) *types.Scope {
	s := types.NewScope(c.scope, kind, n.Span())
	c.scope = s
	return s
}

// closeScope returns to the parent scope.
func (c *Checker) closeScope() {
	c.scope = c.scope.Parent()
}

// lookup looks up a name in the current scope chain.
func (c *Checker) lookup(name string) types.Object {
	obj, _ := c.scope.Resolve(name)
	return obj
}

// declare declares obj in the current scope. It reports an error if the
// name is already visible at the top level or already declared in the
// current scope.
func (c *Checker) declare(span syntax.Span, obj types.Object) bool {
	name := obj.Name()
	if c.scope == c.global && c.lookup(name) != nil {
		c.errorf(span, diag.PreviouslyDefined(name))
		return false
	}
	if existing := c.scope.Insert(obj); existing != nil {
		c.errorf(span, diag.PreviouslyDefined(name))
		return false
	}
	return true
}
