package check

import (
	"github.com/you-not-fish/bsl/internal/ast"
	"github.com/you-not-fish/bsl/internal/diag"
	"github.com/you-not-fish/bsl/internal/types"
)

// node checks n and its children in the current scope.
func (c *Checker) node(n ast.Node) {
	switch n := n.(type) {
	case *ast.AtomNode, *ast.EllipsisNode, *ast.EllipsisFunAppNode,
		*ast.RequireNode, *ast.DefnStructNode:
		// nothing to resolve

	case *ast.VarNode:
		c.varRef(n)

	case *ast.AndNode:
		c.nodes(n.Args)

	case *ast.OrNode:
		c.nodes(n.Args)

	case *ast.IfNode:
		c.node(n.Cond)
		c.node(n.Then)
		c.node(n.Else)

	case *ast.CondNode:
		for _, cl := range n.Clauses {
			c.node(cl.Question)
			c.node(cl.Answer)
		}

	case *ast.FunAppNode:
		c.funApp(n)

	case *ast.LambdaNode:
		c.openScope(n, types.LambdaScope)
		for _, p := range n.Params {
			c.declare(p.Span(), types.NewVar(p.Span(), p.Name))
		}
		c.node(n.Body)
		c.closeScope()

	case *ast.LetNode:
		c.let(n)

	case *ast.LocalNode:
		c.openScope(n, types.LocalScope)
		for _, d := range n.Defns {
			c.collectDefn(d)
		}
		for _, d := range n.Defns {
			c.node(d)
		}
		c.node(n.Body)
		c.closeScope()

	case *ast.DefnVarNode:
		c.node(n.Value)

	case *ast.CheckNode:
		c.node(n.Actual)
		c.node(n.Expected)

	case *ast.CheckErrorNode:
		c.node(n.Expr)
		if n.Msg != nil {
			c.node(n.Msg)
		}

	case *ast.CheckWithinNode:
		c.node(n.Actual)
		c.node(n.Expected)
		c.node(n.Within)

	case *ast.CheckMemberOfNode:
		c.node(n.Actual)
		c.nodes(n.Against)

	case *ast.CheckRangeNode:
		c.node(n.Actual)
		c.node(n.Lower)
		c.node(n.Upper)

	case *ast.CheckSatisfiedNode:
		c.node(n.Actual)
		c.callee(n.Pred)

	default:
		panic("unreachable")
	}
}

func (c *Checker) nodes(list []ast.Node) {
	for _, n := range list {
		c.node(n)
	}
}

// varRef checks a name used as a value.
func (c *Checker) varRef(n *ast.VarNode) {
	obj := c.lookup(n.Name)
	switch {
	case obj == nil:
		c.errorf(n.Span(), diag.UndefinedVariable(n.Name))
	case obj.Kind() == types.StructureType:
		c.errorf(n.Span(), diag.StructureType(n.Name))
	case obj.Kind().IsFunction() && !c.conf.HigherOrder:
		c.errorf(n.Span(), diag.ExpectedFunctionCall(n.Name))
	}
}

// callee checks an expression in function position.
func (c *Checker) callee(fn ast.Node) {
	v, ok := fn.(*ast.VarNode)
	if !ok {
		c.node(fn)
		return
	}
	obj := c.lookup(v.Name)
	switch {
	case obj == nil:
		c.errorf(v.Span(), diag.UndefinedFunction(v.Name))
	case obj.Kind() == types.StructureType:
		c.errorf(v.Span(), diag.StructureType(v.Name))
	case obj.Kind() == types.Data && !c.conf.HigherOrder:
		c.errorf(v.Span(), diag.FunctionCallExpected("variable"))
	}
}

func (c *Checker) funApp(n *ast.FunAppNode) {
	c.callee(n.Fn)
	c.nodes(n.Args)
}

func (c *Checker) let(n *ast.LetNode) {
	switch n.Form {
	case "let":
		for _, b := range n.Bindings {
			c.node(b.Value)
		}
		c.openScope(n, types.LetScope)
		for _, b := range n.Bindings {
			c.declare(b.Name.Span(), types.NewVar(b.Name.Span(), b.Name.Name))
		}
		c.node(n.Body)
		c.closeScope()

	case "let*":
		outer := c.scope
		for _, b := range n.Bindings {
			c.node(b.Value)
			c.openScope(n, types.LetScope)
			c.declare(b.Name.Span(), types.NewVar(b.Name.Span(), b.Name.Name))
		}
		c.node(n.Body)
		c.scope = outer

	case "letrec":
		c.openScope(n, types.LetScope)
		for _, b := range n.Bindings {
			var obj types.Object = types.NewVar(b.Name.Span(), b.Name.Name)
			if lam, ok := b.Value.(*ast.LambdaNode); ok {
				obj = types.NewFunc(b.Name.Span(), b.Name.Name, len(lam.Params))
			}
			c.declare(b.Name.Span(), obj)
		}
		for _, b := range n.Bindings {
			c.node(b.Value)
		}
		c.node(n.Body)
		c.closeScope()
	}
}
