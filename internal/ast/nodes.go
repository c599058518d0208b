// Package ast defines the abstract syntax tree of BSL programs and the
// builder that produces it from S-expressions.
package ast

import (
	"github.com/you-not-fish/bsl/internal/syntax"
	"github.com/you-not-fish/bsl/internal/value"
)

// ----------------------------------------------------------------------------
// Interfaces
//
// There are 3 classes of nodes: expressions, definitions and tests.
// All nodes implement the Node interface. Definitions and tests further
// implement Defn and Check; they may only appear at the top level (or,
// for definitions, inside local).

// Node is the interface implemented by all AST nodes.
type Node interface {
	Span() syntax.Span // source extent of the node

	// IsTemplate reports whether the node or one of its children is an
	// unfilled ... placeholder.
	IsTemplate() bool

	aNode() // marker method to restrict implementations to this package
}

// Defn is the interface for definition nodes.
type Defn interface {
	Node
	DefName() string // the name being defined
	NameSpan() syntax.Span
	aDefn()
}

// Check is the interface for test nodes.
type Check interface {
	Node
	Form() string // check-expect, check-within, ...
	aCheck()
}

// ----------------------------------------------------------------------------
// Base node types

type node struct {
	span syntax.Span
}

func (n *node) Span() syntax.Span { return n.span }
func (n *node) IsTemplate() bool  { return false }
func (n *node) aNode()            {}

type defn struct {
	node
	Name     string
	nameSpan syntax.Span
}

func (d *defn) DefName() string       { return d.Name }
func (d *defn) NameSpan() syntax.Span { return d.nameSpan }
func (*defn) aDefn()                  {}

type check struct {
	node
	form string
}

func (c *check) Form() string { return c.form }
func (*check) aCheck()        {}

func anyTemplate(nodes ...Node) bool {
	for _, n := range nodes {
		if n != nil && n.IsTemplate() {
			return true
		}
	}
	return false
}

// ----------------------------------------------------------------------------
// Expressions

// AtomNode is a literal: a number, string, character, boolean, quoted
// symbol or '().
type AtomNode struct {
	node
	Value value.Value
}

// VarNode is a reference to a name.
type VarNode struct {
	node
	Name string
}

// AndNode is (and e1 e2 ...).
type AndNode struct {
	node
	Args []Node
}

func (n *AndNode) IsTemplate() bool { return anyTemplate(n.Args...) }

// OrNode is (or e1 e2 ...).
type OrNode struct {
	node
	Args []Node
}

func (n *OrNode) IsTemplate() bool { return anyTemplate(n.Args...) }

// IfNode is (if question then else).
type IfNode struct {
	node
	Cond Node
	Then Node
	Else Node
}

func (n *IfNode) IsTemplate() bool { return anyTemplate(n.Cond, n.Then, n.Else) }

// CondClause is one [question answer] pair. An else clause has an
// AtomNode #true question.
type CondClause struct {
	Question Node
	Answer   Node
}

// CondNode is (cond [q a] ...).
type CondNode struct {
	node
	Clauses []*CondClause
}

func (n *CondNode) IsTemplate() bool {
	for _, c := range n.Clauses {
		if anyTemplate(c.Question, c.Answer) {
			return true
		}
	}
	return false
}

// LambdaNode is (lambda (x ...) body). Function definitions desugar to a
// named LambdaNode.
type LambdaNode struct {
	node
	Name   string     // "" for anonymous lambdas
	Params []*VarNode // parameter names with their spans
	Body   Node
}

func (n *LambdaNode) IsTemplate() bool { return n.Body.IsTemplate() }

// ParamNames returns the parameter names.
func (n *LambdaNode) ParamNames() []string {
	names := make([]string, len(n.Params))
	for i, p := range n.Params {
		names[i] = p.Name
	}
	return names
}

// Binding is one [name expr] pair of a let form.
type Binding struct {
	Name  *VarNode
	Value Node
}

// LetNode is (let ([x e] ...) body), and likewise for let* and letrec.
type LetNode struct {
	node
	Form     string // let, let* or letrec
	Bindings []*Binding
	Body     Node
}

func (n *LetNode) IsTemplate() bool {
	for _, b := range n.Bindings {
		if b.Value.IsTemplate() {
			return true
		}
	}
	return n.Body.IsTemplate()
}

// LocalNode is (local [defn ...] body).
type LocalNode struct {
	node
	Defns []Defn
	Body  Node
}

func (n *LocalNode) IsTemplate() bool {
	for _, d := range n.Defns {
		if d.IsTemplate() {
			return true
		}
	}
	return n.Body.IsTemplate()
}

// FunAppNode is a function application (f arg ...). Fn is a *VarNode
// unless higher-order functions are enabled.
type FunAppNode struct {
	node
	Fn   Node
	Args []Node
}

func (n *FunAppNode) IsTemplate() bool { return anyTemplate(n.Args...) }

// EllipsisNode is a ... placeholder in expression position.
type EllipsisNode struct {
	node
}

func (*EllipsisNode) IsTemplate() bool { return true }

// EllipsisFunAppNode is a (... arg ...) placeholder application.
type EllipsisFunAppNode struct {
	node
}

func (*EllipsisFunAppNode) IsTemplate() bool { return true }

// RequireNode is (require module).
type RequireNode struct {
	node
	Module   string
	NameSpan syntax.Span
}

// ----------------------------------------------------------------------------
// Definitions

// DefnVarNode is (define name expr) or the function form
// (define (name x ...) body), whose Value is a LambdaNode.
type DefnVarNode struct {
	defn
	Value Node
}

func (n *DefnVarNode) IsTemplate() bool { return n.Value.IsTemplate() }

// IsFunction reports whether the definition binds a lambda.
func (n *DefnVarNode) IsFunction() bool {
	_, ok := n.Value.(*LambdaNode)
	return ok
}

// DefnStructNode is (define-struct name (field ...)).
type DefnStructNode struct {
	defn
	Fields []string
}

// ----------------------------------------------------------------------------
// Tests

// CheckNode is (check-expect actual expected) or
// (check-random actual expected).
type CheckNode struct {
	check
	Actual   Node
	Expected Node
}

// CheckErrorNode is (check-error expr [msg]). Msg is nil when no message
// is given.
type CheckErrorNode struct {
	check
	Expr Node
	Msg  Node
}

// CheckWithinNode is (check-within actual expected delta).
type CheckWithinNode struct {
	check
	Actual   Node
	Expected Node
	Within   Node
}

// CheckMemberOfNode is (check-member-of actual option ...).
type CheckMemberOfNode struct {
	check
	Actual  Node
	Against []Node
}

// CheckRangeNode is (check-range actual lower upper).
type CheckRangeNode struct {
	check
	Actual Node
	Lower  Node
	Upper  Node
}

// CheckSatisfiedNode is (check-satisfied actual pred). The predicate is
// applied to the actual value; PredName is its source text.
type CheckSatisfiedNode struct {
	check
	Actual   Node
	Pred     Node
	PredName string
}

// ----------------------------------------------------------------------------
// Program

// Program is the unit passed between the later stages: all top-level
// nodes in source order, with the definitions among them also listed
// in Defns.
type Program struct {
	Defns []Defn
	Nodes []Node
}

// Checks returns the test nodes of p in source order.
func (p *Program) Checks() []Check {
	var checks []Check
	for _, n := range p.Nodes {
		if c, ok := n.(Check); ok {
			checks = append(checks, c)
		}
	}
	return checks
}

// UsedSet records which nodes were evaluated. It replaces a mutable
// flag on the nodes so that trees stay immutable after building.
type UsedSet map[Node]bool

// Use marks n as evaluated.
func (s UsedSet) Use(n Node) {
	if s != nil {
		s[n] = true
	}
}

// Used reports whether n was evaluated.
func (s UsedSet) Used(n Node) bool {
	return s[n]
}
