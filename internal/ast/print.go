package ast

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a textual representation of the AST to w.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

// FprintProgram writes every top-level node of prog to w.
func FprintProgram(w io.Writer, prog *Program) {
	for _, n := range prog.Nodes {
		Fprint(w, n)
	}
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// field prints a labelled child node one level deeper.
func (p *printer) field(label string, n Node) {
	p.printf("%s:\n", label)
	p.indent++
	p.print(n)
	p.indent--
}

func (p *printer) list(label string, nodes []Node) {
	if len(nodes) == 0 {
		return
	}
	p.printf("%s:\n", label)
	p.indent++
	for _, n := range nodes {
		p.print(n)
	}
	p.indent--
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *AtomNode:
		p.printf("Atom %s %s\n", n.span, n.Value)

	case *VarNode:
		p.printf("Var %s %s\n", n.span, n.Name)

	case *EllipsisNode:
		p.printf("Ellipsis %s\n", n.span)

	case *EllipsisFunAppNode:
		p.printf("EllipsisFunApp %s\n", n.span)

	case *AndNode:
		p.printf("And %s\n", n.span)
		p.indent++
		for _, a := range n.Args {
			p.print(a)
		}
		p.indent--

	case *OrNode:
		p.printf("Or %s\n", n.span)
		p.indent++
		for _, a := range n.Args {
			p.print(a)
		}
		p.indent--

	case *IfNode:
		p.printf("If %s\n", n.span)
		p.indent++
		p.field("Cond", n.Cond)
		p.field("Then", n.Then)
		p.field("Else", n.Else)
		p.indent--

	case *CondNode:
		p.printf("Cond %s\n", n.span)
		p.indent++
		for _, c := range n.Clauses {
			p.printf("Clause:\n")
			p.indent++
			p.print(c.Question)
			p.print(c.Answer)
			p.indent--
		}
		p.indent--

	case *LambdaNode:
		if n.Name != "" {
			p.printf("Lambda %s %s\n", n.span, n.Name)
		} else {
			p.printf("Lambda %s\n", n.span)
		}
		p.indent++
		p.printf("Params: %s\n", strings.Join(n.ParamNames(), " "))
		p.field("Body", n.Body)
		p.indent--

	case *LetNode:
		p.printf("Let %s %s\n", n.span, n.Form)
		p.indent++
		for _, b := range n.Bindings {
			p.field("Bind "+b.Name.Name, b.Value)
		}
		p.field("Body", n.Body)
		p.indent--

	case *LocalNode:
		p.printf("Local %s\n", n.span)
		p.indent++
		p.printf("Defns:\n")
		p.indent++
		for _, d := range n.Defns {
			p.print(d)
		}
		p.indent--
		p.field("Body", n.Body)
		p.indent--

	case *FunAppNode:
		p.printf("FunApp %s\n", n.span)
		p.indent++
		p.field("Fn", n.Fn)
		p.list("Args", n.Args)
		p.indent--

	case *RequireNode:
		p.printf("Require %s %s\n", n.span, n.Module)

	case *DefnVarNode:
		p.printf("DefnVar %s %s\n", n.span, n.Name)
		p.indent++
		p.print(n.Value)
		p.indent--

	case *DefnStructNode:
		p.printf("DefnStruct %s %s\n", n.span, n.Name)
		p.indent++
		p.printf("Fields: %s\n", strings.Join(n.Fields, " "))
		p.indent--

	case *CheckNode:
		p.printf("Check %s %s\n", n.span, n.form)
		p.indent++
		p.field("Actual", n.Actual)
		p.field("Expected", n.Expected)
		p.indent--

	case *CheckErrorNode:
		p.printf("CheckError %s\n", n.span)
		p.indent++
		p.field("Expr", n.Expr)
		if n.Msg != nil {
			p.field("Msg", n.Msg)
		}
		p.indent--

	case *CheckWithinNode:
		p.printf("CheckWithin %s\n", n.span)
		p.indent++
		p.field("Actual", n.Actual)
		p.field("Expected", n.Expected)
		p.field("Within", n.Within)
		p.indent--

	case *CheckMemberOfNode:
		p.printf("CheckMemberOf %s\n", n.span)
		p.indent++
		p.field("Actual", n.Actual)
		p.list("Against", n.Against)
		p.indent--

	case *CheckRangeNode:
		p.printf("CheckRange %s\n", n.span)
		p.indent++
		p.field("Actual", n.Actual)
		p.field("Lower", n.Lower)
		p.field("Upper", n.Upper)
		p.indent--

	case *CheckSatisfiedNode:
		p.printf("CheckSatisfied %s %s\n", n.span, n.PredName)
		p.indent++
		p.field("Actual", n.Actual)
		p.field("Pred", n.Pred)
		p.indent--

	default:
		p.printf("<%T>\n", node)
	}
}
