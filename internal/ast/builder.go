package ast

import (
	"github.com/you-not-fish/bsl/internal/diag"
	"github.com/you-not-fish/bsl/internal/syntax"
	"github.com/you-not-fish/bsl/internal/value"
)

// Config configures the builder.
type Config struct {
	// HigherOrder allows arbitrary expressions in function position,
	// e.g. ((lambda (x) x) 1).
	HigherOrder bool
}

// Builder converts S-expressions into AST nodes, validating the shape of
// every special form.
type Builder struct {
	conf  Config
	level int // nesting depth; 1 while building a top-level form
}

// NewBuilder returns a builder with the given configuration.
func NewBuilder(conf Config) *Builder {
	return &Builder{conf: conf}
}

// Build converts forms into a Program. Building stops at the first error
// in each top-level form; the remaining forms are still built so that
// independent errors are all reported.
func Build(forms []syntax.SExpr, conf Config) (*Program, []*syntax.Error) {
	return NewBuilder(conf).Build(forms)
}

// Build converts forms into a Program. See the package-level Build.
func (b *Builder) Build(forms []syntax.SExpr) (*Program, []*syntax.Error) {
	prog := &Program{}
	var errs []*syntax.Error
	for _, form := range forms {
		b.level = 0
		n, err := b.node(form)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if d, ok := n.(Defn); ok {
			prog.Defns = append(prog.Defns, d)
		}
		prog.Nodes = append(prog.Nodes, n)
	}
	return prog, errs
}

func (b *Builder) atTopLevel() bool {
	return b.level == 1
}

func errorAt(e syntax.SExpr, msg string) *syntax.Error {
	return syntax.NewError(e.Span(), msg)
}

func (b *Builder) node(e syntax.SExpr) (Node, *syntax.Error) {
	b.level++
	defer func() { b.level-- }()

	switch e := e.(type) {
	case *syntax.Atom:
		return b.atom(e)
	case *syntax.List:
		return b.list(e)
	}
	panic("unreachable")
}

func (b *Builder) nodes(es []syntax.SExpr) ([]Node, *syntax.Error) {
	out := make([]Node, 0, len(es))
	for _, e := range es {
		n, err := b.node(e)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (b *Builder) atom(a *syntax.Atom) (Node, *syntax.Error) {
	span := a.Span()
	switch a.Kind() {
	case syntax.True:
		return &AtomNode{node{span}, value.True}, nil
	case syntax.False:
		return &AtomNode{node{span}, value.False}, nil
	case syntax.Integer, syntax.Rational, syntax.Decimal:
		n, err := value.ParseNumber(a.Text())
		if err != nil {
			return nil, syntax.NewError(span, err.Error())
		}
		return &AtomNode{node{span}, n}, nil
	case syntax.String:
		return &AtomNode{node{span}, value.String(a.Text())}, nil
	case syntax.Character:
		return &AtomNode{node{span}, value.Char([]rune(a.Text())[0])}, nil
	case syntax.Name:
		return &VarNode{node{span}, a.Text()}, nil
	case syntax.Placeholder:
		return &EllipsisNode{node{span}}, nil
	case syntax.Keyword:
		if a.Text() == "else" {
			return nil, errorAt(a, diag.ElseNotInCond)
		}
		return nil, errorAt(a, diag.ExpectedOpenParen(a.Text()))
	}
	return nil, errorAt(a, diag.BadSyntax(a.Text()))
}

func (b *Builder) list(l *syntax.List) (Node, *syntax.Error) {
	if len(l.Elems) == 0 {
		return nil, errorAt(l, diag.FunctionCallExpected(""))
	}
	head, ok := l.Elems[0].(*syntax.Atom)
	if !ok {
		if !b.conf.HigherOrder {
			return nil, errorAt(l.Elems[0], diag.FunctionCallExpected("part"))
		}
		return b.funApp(l)
	}
	switch head.Kind() {
	case syntax.Name:
		return b.funApp(l)
	case syntax.Placeholder:
		return &EllipsisFunAppNode{node{l.Span()}}, nil
	case syntax.Keyword:
		return b.form(head.Text(), l)
	}
	return nil, errorAt(head, diag.FunctionCallExpected(syntax.Describe(head)))
}

func (b *Builder) funApp(l *syntax.List) (Node, *syntax.Error) {
	fn, err := b.node(l.Elems[0])
	if err != nil {
		return nil, err
	}
	args, err := b.nodes(l.Elems[1:])
	if err != nil {
		return nil, err
	}
	return &FunAppNode{node{l.Span()}, fn, args}, nil
}

// form builds the special form introduced by keyword kw.
func (b *Builder) form(kw string, l *syntax.List) (Node, *syntax.Error) {
	nargs := len(l.Elems) - 1
	switch kw {
	case "and", "or":
		if nargs < 2 {
			return nil, errorAt(l.Elems[0], diag.MinArity(kw, 2, nargs))
		}
		args, err := b.nodes(l.Elems[1:])
		if err != nil {
			return nil, err
		}
		if kw == "and" {
			return &AndNode{node{l.Span()}, args}, nil
		}
		return &OrNode{node{l.Span()}, args}, nil

	case "if":
		if nargs != 3 {
			return nil, errorAt(l, diag.IfExpectedThreeParts(nargs))
		}
		parts, err := b.nodes(l.Elems[1:])
		if err != nil {
			return nil, err
		}
		return &IfNode{node{l.Span()}, parts[0], parts[1], parts[2]}, nil

	case "cond":
		return b.cond(l)

	case "define", "define-struct":
		if !b.atTopLevel() {
			return nil, errorAt(l, diag.NotTopLevelDefinition(kw))
		}
		return b.defn(l)

	case "else":
		return nil, errorAt(l.Elems[0], diag.ElseNotInCond)

	case "lambda", "λ":
		return b.lambda(l)

	case "let", "let*", "letrec":
		return b.let(kw, l)

	case "local":
		return b.local(l)

	case "quote":
		return b.quote(l)

	case "require":
		if !b.atTopLevel() {
			return nil, errorAt(l, diag.NotTopLevelDefinition(kw))
		}
		return b.require(l)

	case "check-expect", "check-random", "check-within", "check-range",
		"check-error", "check-member-of", "check-satisfied":
		if !b.atTopLevel() {
			return nil, errorAt(l, diag.TestNotTopLevel(kw))
		}
		return b.check(kw, l)
	}
	return nil, errorAt(l.Elems[0], diag.ExpectedOpenParen(kw))
}

func (b *Builder) cond(l *syntax.List) (Node, *syntax.Error) {
	clauses := l.Elems[1:]
	if len(clauses) == 0 {
		return nil, errorAt(l, diag.CondExpectedClause)
	}
	n := &CondNode{node: node{l.Span()}}
	for i, c := range clauses {
		cl, ok := c.(*syntax.List)
		if !ok {
			return nil, errorAt(c, diag.CondExpectedTwoPartClause(-1, syntax.Describe(c)))
		}
		if len(cl.Elems) != 2 {
			return nil, errorAt(c, diag.CondExpectedTwoPartClause(len(cl.Elems), ""))
		}
		var q Node
		if syntax.IsKeywordAtom(cl.Elems[0], "else") {
			if i != len(clauses)-1 {
				return nil, errorAt(c, diag.ElseNotLastClause)
			}
			q = &AtomNode{node{cl.Elems[0].Span()}, value.True}
		} else {
			var err *syntax.Error
			if q, err = b.node(cl.Elems[0]); err != nil {
				return nil, err
			}
		}
		a, err := b.node(cl.Elems[1])
		if err != nil {
			return nil, err
		}
		n.Clauses = append(n.Clauses, &CondClause{q, a})
	}
	return n, nil
}

// defn builds a define or define-struct form. Callers check placement.
func (b *Builder) defn(l *syntax.List) (Defn, *syntax.Error) {
	if syntax.IsKeywordAtom(l.Elems[0], "define-struct") {
		return b.defnStruct(l)
	}
	if len(l.Elems) == 1 {
		return nil, errorAt(l, diag.DefineExpectedVarOrFunName(""))
	}
	switch target := l.Elems[1].(type) {
	case *syntax.Atom:
		if target.Kind() != syntax.Name {
			return nil, errorAt(target, diag.DefineExpectedVarOrFunName(syntax.Describe(target)))
		}
		name := target.Text()
		switch {
		case len(l.Elems) == 2:
			return nil, errorAt(l, diag.DefineExpectedExpr(name))
		case len(l.Elems) > 3:
			return nil, errorAt(l.Elems[3], diag.DefineTooManyExprs(name, len(l.Elems)-3))
		}
		val, err := b.node(l.Elems[2])
		if err != nil {
			return nil, err
		}
		if lam, ok := val.(*LambdaNode); ok && lam.Name == "" {
			lam.Name = name
		}
		return &DefnVarNode{defn{node{l.Span()}, name, target.Span()}, val}, nil

	case *syntax.List:
		if len(target.Elems) == 0 {
			return nil, errorAt(l, diag.DefineExpectedFunctionName(""))
		}
		if !syntax.IsName(target.Elems[0]) {
			return nil, errorAt(l, diag.DefineExpectedFunctionName(syntax.Describe(target.Elems[0])))
		}
		nameAtom := target.Elems[0].(*syntax.Atom)
		if len(target.Elems) == 1 {
			return nil, errorAt(target, diag.DefineExpectedAtLeastOneParam)
		}
		params, err := b.params("define", target.Elems[1:])
		if err != nil {
			return nil, err
		}
		switch {
		case len(l.Elems) == 2:
			return nil, errorAt(l, diag.DefineExpectedFunctionBody)
		case len(l.Elems) > 3:
			return nil, errorAt(l.Elems[3], diag.DefineTooManyBodies(len(l.Elems)-3))
		}
		body, err := b.node(l.Elems[2])
		if err != nil {
			return nil, err
		}
		lam := &LambdaNode{node{l.Span()}, nameAtom.Text(), params, body}
		return &DefnVarNode{defn{node{l.Span()}, nameAtom.Text(), nameAtom.Span()}, lam}, nil
	}
	panic("unreachable")
}

// params validates a parameter list: names only, each used once.
func (b *Builder) params(form string, es []syntax.SExpr) ([]*VarNode, *syntax.Error) {
	seen := make(map[string]bool)
	params := make([]*VarNode, 0, len(es))
	for _, e := range es {
		if !syntax.IsName(e) {
			return nil, errorAt(e, diag.ExpectedVariable(form, syntax.Describe(e)))
		}
		name := e.(*syntax.Atom).Text()
		if seen[name] {
			return nil, errorAt(e, diag.DuplicateVariable(form, name))
		}
		seen[name] = true
		params = append(params, &VarNode{node{e.Span()}, name})
	}
	return params, nil
}

func (b *Builder) defnStruct(l *syntax.List) (Defn, *syntax.Error) {
	if len(l.Elems) == 1 {
		return nil, errorAt(l, diag.StructExpectedName(""))
	}
	if !syntax.IsName(l.Elems[1]) {
		return nil, errorAt(l.Elems[1], diag.StructExpectedName(syntax.Describe(l.Elems[1])))
	}
	nameAtom := l.Elems[1].(*syntax.Atom)
	if len(l.Elems) == 2 {
		return nil, errorAt(l, diag.StructExpectedFieldNames(""))
	}
	fieldList, ok := l.Elems[2].(*syntax.List)
	if !ok {
		return nil, errorAt(l.Elems[2], diag.StructExpectedFieldNames(syntax.Describe(l.Elems[2])))
	}
	seen := make(map[string]bool)
	var fields []string
	for _, f := range fieldList.Elems {
		a, ok := f.(*syntax.Atom)
		if !ok || (a.Kind() != syntax.Name && a.Kind() != syntax.Keyword) {
			return nil, errorAt(f, diag.StructExpectedFieldName(syntax.Describe(f)))
		}
		if seen[a.Text()] {
			return nil, errorAt(f, diag.StructDuplicateField(a.Text()))
		}
		seen[a.Text()] = true
		fields = append(fields, a.Text())
	}
	if len(l.Elems) > 3 {
		return nil, errorAt(l.Elems[3], diag.StructExtraParts(len(l.Elems)-3))
	}
	return &DefnStructNode{defn{node{l.Span()}, nameAtom.Text(), nameAtom.Span()}, fields}, nil
}

func (b *Builder) lambda(l *syntax.List) (Node, *syntax.Error) {
	if len(l.Elems) == 1 {
		return nil, errorAt(l, diag.LambdaExpectedParams(""))
	}
	plist, ok := l.Elems[1].(*syntax.List)
	if !ok {
		return nil, errorAt(l.Elems[1], diag.LambdaExpectedParams(syntax.Describe(l.Elems[1])))
	}
	if len(plist.Elems) == 0 {
		return nil, errorAt(plist, diag.LambdaExpectedParams(""))
	}
	params, err := b.params("lambda", plist.Elems)
	if err != nil {
		return nil, err
	}
	switch {
	case len(l.Elems) == 2:
		return nil, errorAt(l, diag.LambdaExpectedBody)
	case len(l.Elems) > 3:
		return nil, errorAt(l.Elems[3], diag.LambdaTooManyBodies(len(l.Elems)-3))
	}
	body, err := b.node(l.Elems[2])
	if err != nil {
		return nil, err
	}
	return &LambdaNode{node{l.Span()}, "", params, body}, nil
}

func (b *Builder) let(form string, l *syntax.List) (Node, *syntax.Error) {
	if len(l.Elems) == 1 {
		return nil, errorAt(l, diag.LetExpectedBindings(form, ""))
	}
	blist, ok := l.Elems[1].(*syntax.List)
	if !ok {
		return nil, errorAt(l.Elems[1], diag.LetExpectedBindings(form, syntax.Describe(l.Elems[1])))
	}
	n := &LetNode{node: node{l.Span()}, Form: form}
	seen := make(map[string]bool)
	for _, e := range blist.Elems {
		bl, ok := e.(*syntax.List)
		if !ok || len(bl.Elems) != 2 || !syntax.IsName(bl.Elems[0]) {
			return nil, errorAt(e, diag.LetExpectedBinding(form, syntax.Describe(e)))
		}
		nameAtom := bl.Elems[0].(*syntax.Atom)
		if seen[nameAtom.Text()] && form != "let*" {
			return nil, errorAt(nameAtom, diag.DuplicateVariable(form, nameAtom.Text()))
		}
		seen[nameAtom.Text()] = true
		val, err := b.node(bl.Elems[1])
		if err != nil {
			return nil, err
		}
		n.Bindings = append(n.Bindings, &Binding{&VarNode{node{nameAtom.Span()}, nameAtom.Text()}, val})
	}
	switch {
	case len(l.Elems) == 2:
		return nil, errorAt(l, diag.LetExpectedBody(form))
	case len(l.Elems) > 3:
		return nil, errorAt(l.Elems[3], diag.LetTooManyBodies(form, len(l.Elems)-3))
	}
	body, err := b.node(l.Elems[2])
	if err != nil {
		return nil, err
	}
	n.Body = body
	return n, nil
}

func (b *Builder) local(l *syntax.List) (Node, *syntax.Error) {
	if len(l.Elems) == 1 {
		return nil, errorAt(l, diag.LocalExpectedDefinitions(""))
	}
	dlist, ok := l.Elems[1].(*syntax.List)
	if !ok {
		return nil, errorAt(l.Elems[1], diag.LocalExpectedDefinitions(syntax.Describe(l.Elems[1])))
	}
	n := &LocalNode{node: node{l.Span()}}
	for _, e := range dlist.Elems {
		dl, ok := e.(*syntax.List)
		if !ok || len(dl.Elems) == 0 ||
			!(syntax.IsKeywordAtom(dl.Elems[0], "define") || syntax.IsKeywordAtom(dl.Elems[0], "define-struct")) {
			return nil, errorAt(e, diag.LocalExpectedDefinition(syntax.Describe(e)))
		}
		d, err := b.defn(dl)
		if err != nil {
			return nil, err
		}
		n.Defns = append(n.Defns, d)
	}
	if len(l.Elems) != 3 {
		if len(l.Elems) == 2 {
			return nil, errorAt(l, diag.LocalExpectedBody(0))
		}
		return nil, errorAt(l.Elems[3], diag.LocalExpectedBody(len(l.Elems)-3))
	}
	body, err := b.node(l.Elems[2])
	if err != nil {
		return nil, err
	}
	n.Body = body
	return n, nil
}

func (b *Builder) quote(l *syntax.List) (Node, *syntax.Error) {
	if len(l.Elems) == 1 {
		return nil, errorAt(l, diag.QuoteExpectedExpression)
	}
	switch q := l.Elems[1].(type) {
	case *syntax.Atom:
		if q.Kind() == syntax.Name || q.Kind() == syntax.Keyword {
			return &AtomNode{node{l.Span()}, value.Symbol(q.Text())}, nil
		}
	case *syntax.List:
		if len(q.Elems) == 0 {
			return &AtomNode{node{l.Span()}, value.Empty}, nil
		}
	}
	return nil, errorAt(l, diag.QuoteExpectedPostQuote(syntax.Describe(l.Elems[1])))
}

func (b *Builder) require(l *syntax.List) (Node, *syntax.Error) {
	switch {
	case len(l.Elems) == 1:
		return nil, errorAt(l, diag.RequireExpectedModuleName)
	case len(l.Elems) > 2:
		return nil, errorAt(l, diag.Arity("require", 1, len(l.Elems)-1))
	}
	mod, ok := l.Elems[1].(*syntax.Atom)
	if !ok || (mod.Kind() != syntax.Name && mod.Kind() != syntax.String) {
		return nil, errorAt(l.Elems[1], diag.RequireExpectedModule(syntax.Describe(l.Elems[1])))
	}
	return &RequireNode{node{l.Span()}, mod.Text(), mod.Span()}, nil
}

// checkArity holds the number of arguments each test form takes.
// max < 0 means no upper bound.
var checkArity = map[string]struct{ min, max int }{
	"check-expect":    {2, 2},
	"check-random":    {2, 2},
	"check-within":    {3, 3},
	"check-range":     {3, 3},
	"check-satisfied": {2, 2},
	"check-error":     {1, 2},
	"check-member-of": {2, -1},
}

func (b *Builder) check(form string, l *syntax.List) (Node, *syntax.Error) {
	nargs := len(l.Elems) - 1
	ar := checkArity[form]
	switch {
	case ar.min == ar.max && nargs != ar.min:
		return nil, errorAt(l, diag.Arity(form, ar.min, nargs))
	case nargs < ar.min:
		return nil, errorAt(l, diag.MinArity(form, ar.min, nargs))
	case ar.max >= 0 && nargs > ar.max:
		return nil, errorAt(l, diag.Arity(form, ar.max, nargs))
	}
	if form == "check-satisfied" && !syntax.IsName(l.Elems[2]) && !b.conf.HigherOrder {
		return nil, errorAt(l.Elems[2], diag.CheckSatisfiedExpectedName(syntax.Describe(l.Elems[2])))
	}

	args, err := b.nodes(l.Elems[1:])
	if err != nil {
		return nil, err
	}
	c := check{node{l.Span()}, form}
	switch form {
	case "check-expect", "check-random":
		return &CheckNode{c, args[0], args[1]}, nil
	case "check-within":
		return &CheckWithinNode{c, args[0], args[1], args[2]}, nil
	case "check-range":
		return &CheckRangeNode{c, args[0], args[1], args[2]}, nil
	case "check-satisfied":
		return &CheckSatisfiedNode{c, args[0], args[1], syntax.Stringify(l.Elems[2])}, nil
	case "check-error":
		n := &CheckErrorNode{check: c, Expr: args[0]}
		if len(args) == 2 {
			n.Msg = args[1]
		}
		return n, nil
	}
	return &CheckMemberOfNode{c, args[0], args[1:]}, nil
}
