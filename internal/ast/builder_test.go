package ast

import (
	"testing"

	"github.com/you-not-fish/bsl/internal/syntax"
	"github.com/you-not-fish/bsl/internal/value"
)

// build lexes, reads and builds src, failing the test on reader errors.
func build(t *testing.T, src string, conf Config) (*Program, []*syntax.Error) {
	t.Helper()
	toks, errs := syntax.Lex("", src)
	if len(errs) > 0 {
		t.Fatalf("Lex(%q): %v", src, errs[0])
	}
	forms, errs := syntax.Read(toks)
	if len(errs) > 0 {
		t.Fatalf("Read(%q): %v", src, errs[0])
	}
	return Build(forms, conf)
}

func mustBuild(t *testing.T, src string) *Program {
	t.Helper()
	prog, errs := build(t, src, Config{HigherOrder: true})
	if len(errs) > 0 {
		t.Fatalf("Build(%q): %v", src, errs[0])
	}
	return prog
}

func TestBuildNodeKinds(t *testing.T) {
	tests := []struct {
		src  string
		want string // %T of the single top-level node
	}{
		{"1", "*ast.AtomNode"},
		{"#true", "*ast.AtomNode"},
		{`"s"`, "*ast.AtomNode"},
		{`#\a`, "*ast.AtomNode"},
		{"'sym", "*ast.AtomNode"},
		{"'()", "*ast.AtomNode"},
		{"x", "*ast.VarNode"},
		{"...", "*ast.EllipsisNode"},
		{"(... x)", "*ast.EllipsisFunAppNode"},
		{"(f 1 2)", "*ast.FunAppNode"},
		{"(and #t #f)", "*ast.AndNode"},
		{"(or #t #f)", "*ast.OrNode"},
		{"(if #t 1 2)", "*ast.IfNode"},
		{"(cond [#t 1] [else 2])", "*ast.CondNode"},
		{"(lambda (x) x)", "*ast.LambdaNode"},
		{"(λ (x) x)", "*ast.LambdaNode"},
		{"(let ([x 1]) x)", "*ast.LetNode"},
		{"(let* ([x 1] [x 2]) x)", "*ast.LetNode"},
		{"(letrec ([f (lambda (x) x)]) (f 1))", "*ast.LetNode"},
		{"(local [(define y 1)] y)", "*ast.LocalNode"},
		{"(require racket/math)", "*ast.RequireNode"},
		{"(define x 1)", "*ast.DefnVarNode"},
		{"(define (f x) x)", "*ast.DefnVarNode"},
		{"(define-struct posn (x y))", "*ast.DefnStructNode"},
		{"(check-expect 1 1)", "*ast.CheckNode"},
		{"(check-random (random 3) (random 3))", "*ast.CheckNode"},
		{"(check-error (/ 1 0))", "*ast.CheckErrorNode"},
		{`(check-error (/ 1 0) "/: division by zero")`, "*ast.CheckErrorNode"},
		{"(check-within 1.0 1 0.1)", "*ast.CheckWithinNode"},
		{"(check-member-of 1 1 2 3)", "*ast.CheckMemberOfNode"},
		{"(check-range 2 1 3)", "*ast.CheckRangeNode"},
		{"(check-satisfied 2 even?)", "*ast.CheckSatisfiedNode"},
		{"((lambda (x) x) 1)", "*ast.FunAppNode"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			prog := mustBuild(t, tt.src)
			if len(prog.Nodes) != 1 {
				t.Fatalf("got %d nodes, want 1", len(prog.Nodes))
			}
			if got := typeName(prog.Nodes[0]); got != tt.want {
				t.Errorf("node type = %s, want %s", got, tt.want)
			}
		})
	}
}

func typeName(n Node) string {
	switch n.(type) {
	case *AtomNode:
		return "*ast.AtomNode"
	case *VarNode:
		return "*ast.VarNode"
	case *EllipsisNode:
		return "*ast.EllipsisNode"
	case *EllipsisFunAppNode:
		return "*ast.EllipsisFunAppNode"
	case *FunAppNode:
		return "*ast.FunAppNode"
	case *AndNode:
		return "*ast.AndNode"
	case *OrNode:
		return "*ast.OrNode"
	case *IfNode:
		return "*ast.IfNode"
	case *CondNode:
		return "*ast.CondNode"
	case *LambdaNode:
		return "*ast.LambdaNode"
	case *LetNode:
		return "*ast.LetNode"
	case *LocalNode:
		return "*ast.LocalNode"
	case *RequireNode:
		return "*ast.RequireNode"
	case *DefnVarNode:
		return "*ast.DefnVarNode"
	case *DefnStructNode:
		return "*ast.DefnStructNode"
	case *CheckNode:
		return "*ast.CheckNode"
	case *CheckErrorNode:
		return "*ast.CheckErrorNode"
	case *CheckWithinNode:
		return "*ast.CheckWithinNode"
	case *CheckMemberOfNode:
		return "*ast.CheckMemberOfNode"
	case *CheckRangeNode:
		return "*ast.CheckRangeNode"
	case *CheckSatisfiedNode:
		return "*ast.CheckSatisfiedNode"
	}
	return "?"
}

func TestBuildAtoms(t *testing.T) {
	tests := []struct {
		src  string
		want value.Value
	}{
		{"42", value.NewInt(42)},
		{"-3/6", value.NewExact(-1, 2)},
		{"0.25", value.NewExact(1, 4)},
		{"#i0.5", value.NewInexact(0.5)},
		{`"hi\n"`, value.String("hi\n")},
		{`#\space`, value.Char(' ')},
		{"#false", value.False},
		{"'abc", value.Symbol("abc")},
		{"'else", value.Symbol("else")},
		{"(quote ())", value.Empty},
	}
	for _, tt := range tests {
		prog := mustBuild(t, tt.src)
		atom, ok := prog.Nodes[0].(*AtomNode)
		if !ok {
			t.Errorf("%s: got %T, want *AtomNode", tt.src, prog.Nodes[0])
			continue
		}
		if !value.Equal(atom.Value, tt.want) {
			t.Errorf("%s: value = %v, want %v", tt.src, atom.Value, tt.want)
		}
	}
}

func TestBuildDefineFunction(t *testing.T) {
	prog := mustBuild(t, "(define (add x y) (+ x y))")
	if len(prog.Defns) != 1 {
		t.Fatalf("got %d defns, want 1", len(prog.Defns))
	}
	d := prog.Defns[0].(*DefnVarNode)
	if d.DefName() != "add" || !d.IsFunction() {
		t.Fatalf("DefName = %q, IsFunction = %v", d.DefName(), d.IsFunction())
	}
	if got := d.NameSpan().String(); got != "1:10-1:13" {
		t.Errorf("NameSpan = %s, want 1:10-1:13", got)
	}
	lam := d.Value.(*LambdaNode)
	if lam.Name != "add" {
		t.Errorf("lambda name = %q, want add", lam.Name)
	}
	if names := lam.ParamNames(); len(names) != 2 || names[0] != "x" || names[1] != "y" {
		t.Errorf("params = %v", names)
	}
	if _, ok := lam.Body.(*FunAppNode); !ok {
		t.Errorf("body = %T, want *FunAppNode", lam.Body)
	}
}

func TestBuildNamesLambdaDefinitions(t *testing.T) {
	prog := mustBuild(t, "(define sq (lambda (x) (* x x)))")
	lam := prog.Defns[0].(*DefnVarNode).Value.(*LambdaNode)
	if lam.Name != "sq" {
		t.Errorf("lambda name = %q, want sq", lam.Name)
	}
}

func TestBuildCondElse(t *testing.T) {
	prog := mustBuild(t, "(cond [(= x 1) 'a] [else 'b])")
	cond := prog.Nodes[0].(*CondNode)
	if len(cond.Clauses) != 2 {
		t.Fatalf("got %d clauses", len(cond.Clauses))
	}
	q, ok := cond.Clauses[1].Question.(*AtomNode)
	if !ok || q.Value != value.True {
		t.Errorf("else question = %v, want #true atom", cond.Clauses[1].Question)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		src  string
		msg  string
		span string
	}{
		{"()", "function call: expected a function after the open parenthesis, but nothing's there", "1:1-1:3"},
		{"(1 2)", "function call: expected a function after the open parenthesis, but found a number", "1:2-1:3"},
		{"if", "if: expected an open parenthesis before if, but found none", "1:1-1:3"},
		{"else", "else: not allowed here, because this is not a question in a clause", "1:1-1:5"},
		{"(and #t)", "and: expects at least 2 arguments, but found only 1", "1:2-1:5"},
		{"(or)", "or: expects at least 2 arguments, but found none", "1:2-1:4"},
		{"(if #t 1)", "if: expected a question and two answers, but found only 2 parts", "1:1-1:10"},
		{"(cond)", "cond: expected a clause after cond, but nothing's there", "1:1-1:7"},
		{"(cond 1)", "cond: expected a clause with a question and an answer, but found a number", "1:7-1:8"},
		{"(cond [#t])", "cond: expected a clause with a question and an answer, but found a clause with only one part", "1:7-1:11"},
		{"(cond [else 1] [#t 2])", "cond: found an else clause that isn't the last clause in its cond expression", "1:7-1:15"},
		{"(define)", "define: expected a variable name, or a function name and its variables (in parentheses), but nothing's there", "1:1-1:9"},
		{"(define 1 2)", "define: expected a variable name, or a function name and its variables (in parentheses), but found a number", "1:9-1:10"},
		{"(define x)", "define: expected an expression after the variable name x, but nothing's there", "1:1-1:11"},
		{"(define x 1 2 3)", "define: expected only one expression after the variable name x, but found 2 extra parts", "1:13-1:14"},
		{"(define (f) 1)", "define: expected at least one variable after the function name, but found none", "1:9-1:12"},
		{"(define (f x x) 1)", "define: found a variable that is used more than once: x", "1:14-1:15"},
		{"(define (f 1) 1)", "define: expected a variable, but found a number", "1:12-1:13"},
		{"(define (f x))", "define: expected an expression for the function body, but nothing's there", "1:1-1:15"},
		{"(define (f x) 1 2)", "define: expected only one expression for the function body, but found 1 extra part", "1:17-1:18"},
		{"(+ 1 (define x 1))", "define: found a definition that is not at the top level", "1:6-1:18"},
		{"(define-struct)", "define-struct: expected the structure name after define-struct, but nothing's there", "1:1-1:16"},
		{"(define-struct p)", "define-struct: expected at least one field name (in parentheses) after the structure name, but nothing's there", "1:1-1:18"},
		{"(define-struct p (x x))", "define-struct: found a field name that is used more than once: x", "1:21-1:22"},
		{"(define-struct p (x 1))", "define-struct: expected a field name, but found a number", "1:21-1:22"},
		{"(define-struct p (x) 1)", "define-struct: expected nothing after the field names, but found 1 extra part", "1:22-1:23"},
		{"(lambda x x)", "lambda: expected at least one variable (in parentheses) after lambda, but found a variable", "1:9-1:10"},
		{"(lambda (x))", "lambda: expected an expression for the function body, but nothing's there", "1:1-1:13"},
		{"(let ([x]) x)", "let: expected a binding with a variable and an expression, but found a part", "1:7-1:10"},
		{"(let ([x 1] [x 2]) x)", "let: found a variable that is used more than once: x", "1:14-1:15"},
		{"(let ([x 1]))", "let: expected an expression after the bindings, but nothing's there", "1:1-1:14"},
		{"(local [1] 2)", "local: expected a definition, but found a number", "1:9-1:10"},
		{"(local [(define x 1)])", "local: expected an expression after the local definitions, but nothing's there", "1:1-1:23"},
		{"'1", "quote: expected the name of a symbol or () after the quote, but found a number", "1:1-1:3"},
		{"(quote)", "quote: expected an expression after quote, but nothing's there", "1:1-1:8"},
		{"(require)", "require: expected a module name after `require', but nothing's there", "1:1-1:10"},
		{"(check-expect 1)", "check-expect: expects 2 arguments, but found only 1", "1:1-1:17"},
		{"(check-within 1 2 3 4)", "check-within: expects only 3 arguments, but found 4", "1:1-1:23"},
		{"(check-error)", "check-error: expects at least 1 argument, but found none", "1:1-1:14"},
		{"(check-member-of 1)", "check-member-of: expects at least 2 arguments, but found only 1", "1:1-1:20"},
		{"(+ 1 (check-expect 1 1))", "check-expect: found a test that is not at the top level", "1:6-1:24"},
		{"(define (f x) (check-expect x 1))", "check-expect: found a test that is not at the top level", "1:15-1:33"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, errs := build(t, tt.src, Config{})
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1", len(errs))
			}
			if errs[0].Msg != tt.msg {
				t.Errorf("msg = %q\nwant  %q", errs[0].Msg, tt.msg)
			}
			if got := errs[0].Span.String(); got != tt.span {
				t.Errorf("span = %s, want %s", got, tt.span)
			}
		})
	}
}

func TestBuildHigherOrderHead(t *testing.T) {
	const src = "((lambda (x) x) 1)"
	if _, errs := build(t, src, Config{HigherOrder: false}); len(errs) != 1 {
		t.Errorf("first-order build: got %d errors, want 1", len(errs))
	}
	prog, errs := build(t, src, Config{HigherOrder: true})
	if len(errs) != 0 {
		t.Fatalf("higher-order build: %v", errs[0])
	}
	app := prog.Nodes[0].(*FunAppNode)
	if _, ok := app.Fn.(*LambdaNode); !ok {
		t.Errorf("Fn = %T, want *LambdaNode", app.Fn)
	}
}

func TestBuildLocalDefinitions(t *testing.T) {
	prog := mustBuild(t, "(local [(define (sq x) (* x x)) (define-struct p (a))] (sq 2))")
	local := prog.Nodes[0].(*LocalNode)
	if len(local.Defns) != 2 {
		t.Fatalf("got %d local defns, want 2", len(local.Defns))
	}
	if len(prog.Defns) != 0 {
		t.Errorf("local definitions leaked into Program.Defns")
	}
}

func TestBuildContinuesAfterError(t *testing.T) {
	prog, errs := build(t, "(if 1) (define x 1) (cond) x", Config{})
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2", len(errs))
	}
	if len(prog.Nodes) != 2 || len(prog.Defns) != 1 {
		t.Errorf("got %d nodes and %d defns, want 2 and 1", len(prog.Nodes), len(prog.Defns))
	}
}

func TestIsTemplate(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"(define (f x) ...)", true},
		{"(define (f x) (+ x 1))", false},
		{"(cond [(... x) 1] [else 2])", true},
		{"(if ... 1 2)", true},
		{"(f 1 ...)", true},
		{"(local [(define y ...)] y)", true},
		{"(let ([y 1]) ...)", true},
		{"(and #t #f)", false},
	}
	for _, tt := range tests {
		prog := mustBuild(t, tt.src)
		if got := prog.Nodes[0].IsTemplate(); got != tt.want {
			t.Errorf("IsTemplate(%s) = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestChecks(t *testing.T) {
	prog := mustBuild(t, "(define x 1) (check-expect x 1) 5 (check-range x 0 2)")
	checks := prog.Checks()
	if len(checks) != 2 {
		t.Fatalf("got %d checks, want 2", len(checks))
	}
	if checks[0].Form() != "check-expect" || checks[1].Form() != "check-range" {
		t.Errorf("forms = %s, %s", checks[0].Form(), checks[1].Form())
	}
}

func TestCheckSatisfiedPredName(t *testing.T) {
	prog := mustBuild(t, "(check-satisfied 4 even?)")
	n := prog.Nodes[0].(*CheckSatisfiedNode)
	if n.PredName != "even?" {
		t.Errorf("PredName = %q, want even?", n.PredName)
	}
	if _, errs := build(t, "(check-satisfied 4 5)", Config{}); len(errs) != 1 {
		t.Errorf("non-name predicate should be rejected without higher-order functions")
	}
}

func TestUsedSet(t *testing.T) {
	prog := mustBuild(t, "(+ 1 2)")
	used := make(UsedSet)
	n := prog.Nodes[0]
	if used.Used(n) {
		t.Error("fresh set reports node as used")
	}
	used.Use(n)
	if !used.Used(n) {
		t.Error("Use did not record node")
	}
	var nilSet UsedSet
	nilSet.Use(n) // must not panic
}
