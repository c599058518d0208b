package check

import (
	"github.com/you-not-fish/bsl/internal/ast"
	"github.com/you-not-fish/bsl/internal/diag"
	"github.com/you-not-fish/bsl/internal/types"
)

// collectDefn declares the names a definition introduces in the current
// scope.
func (c *Checker) collectDefn(d ast.Defn) {
	switch d := d.(type) {
	case *ast.DefnVarNode:
		c.collectDefnVar(d)
	case *ast.DefnStructNode:
		c.collectDefnStruct(d)
	}
}

func (c *Checker) collectDefnVar(d *ast.DefnVarNode) {
	var obj types.Object
	if lam, ok := d.Value.(*ast.LambdaNode); ok {
		obj = types.NewFunc(d.NameSpan(), d.Name, len(lam.Params))
	} else {
		obj = types.NewVar(d.NameSpan(), d.Name)
	}
	c.declare(d.NameSpan(), obj)
}

// collectDefnStruct declares the structure type together with its
// constructor, predicate and accessors. Nothing is declared if any of
// the names is taken.
func (c *Checker) collectDefnStruct(d *ast.DefnStructNode) {
	names := types.StructNames(d.Name, d.Fields)
	if c.taken(d.Name) {
		c.errorf(d.NameSpan(), diag.PreviouslyDefined(d.Name))
		return
	}
	for _, name := range names {
		if c.taken(name) {
			c.errorf(d.Span(), diag.PreviouslyDefined(name))
			return
		}
	}
	c.declare(d.NameSpan(), types.NewTypeName(d.NameSpan(), d.Name, d.Fields))
	c.declare(d.Span(), types.NewFunc(d.Span(), names[0], len(d.Fields)))
	for _, name := range names[1:] {
		c.declare(d.Span(), types.NewFunc(d.Span(), name, 1))
	}
}

// taken reports whether declaring name in the current scope would clash.
func (c *Checker) taken(name string) bool {
	if c.scope == c.global {
		return c.lookup(name) != nil
	}
	return c.scope.Lookup(name) != nil
}

// require makes the names exported by a module visible. Names that are
// already bound keep their binding.
func (c *Checker) require(n *ast.RequireNode) {
	mod, ok := c.conf.Modules[n.Module]
	if !ok {
		c.errorf(n.NameSpan, diag.ModuleNotFound(n.Module))
		return
	}
	for _, name := range mod.Functions {
		if c.lookup(name) == nil {
			c.global.Insert(types.NewBuiltin(name))
		}
	}
	for _, name := range mod.Data {
		if c.lookup(name) == nil {
			c.global.Insert(types.NewVar(n.NameSpan, name))
		}
	}
}
