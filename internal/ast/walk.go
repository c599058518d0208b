package ast

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order.
// If visitor returns false, children are not visited.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *AndNode:
		walkList(n.Args, v)

	case *OrNode:
		walkList(n.Args, v)

	case *IfNode:
		Walk(n.Cond, v)
		Walk(n.Then, v)
		Walk(n.Else, v)

	case *CondNode:
		for _, c := range n.Clauses {
			Walk(c.Question, v)
			Walk(c.Answer, v)
		}

	case *LambdaNode:
		for _, p := range n.Params {
			Walk(p, v)
		}
		Walk(n.Body, v)

	case *LetNode:
		for _, b := range n.Bindings {
			Walk(b.Name, v)
			Walk(b.Value, v)
		}
		Walk(n.Body, v)

	case *LocalNode:
		for _, d := range n.Defns {
			Walk(d, v)
		}
		Walk(n.Body, v)

	case *FunAppNode:
		Walk(n.Fn, v)
		walkList(n.Args, v)

	case *DefnVarNode:
		Walk(n.Value, v)

	case *CheckNode:
		Walk(n.Actual, v)
		Walk(n.Expected, v)

	case *CheckErrorNode:
		Walk(n.Expr, v)
		if n.Msg != nil {
			Walk(n.Msg, v)
		}

	case *CheckWithinNode:
		Walk(n.Actual, v)
		Walk(n.Expected, v)
		Walk(n.Within, v)

	case *CheckMemberOfNode:
		Walk(n.Actual, v)
		walkList(n.Against, v)

	case *CheckRangeNode:
		Walk(n.Actual, v)
		Walk(n.Lower, v)
		Walk(n.Upper, v)

	case *CheckSatisfiedNode:
		Walk(n.Actual, v)
		Walk(n.Pred, v)

	// Leaf nodes: AtomNode, VarNode, EllipsisNode, EllipsisFunAppNode,
	// RequireNode, DefnStructNode
	}
}

func walkList(list []Node, v Visitor) {
	for _, n := range list {
		Walk(n, v)
	}
}

// Inspect traverses an AST and calls f for each node.
// Convenience wrapper around Walk.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}
