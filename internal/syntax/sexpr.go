package syntax

import (
	"strconv"
	"strings"
)

// SExpr is a node of the S-expression tree produced by the reader.
// It is either an *Atom or a *List.
type SExpr interface {
	Span() Span
	sexpr()
}

// Atom is a single token.
type Atom struct {
	Tok Token
}

// List is a bracketed sequence of S-expressions. Open records which
// bracket family was used.
type List struct {
	Open  TokenKind
	Elems []SExpr
	span  Span
}

// NewList creates a list covering span.
func NewList(open TokenKind, elems []SExpr, span Span) *List {
	return &List{Open: open, Elems: elems, span: span}
}

func (a *Atom) Span() Span { return a.Tok.Span }
func (l *List) Span() Span { return l.span }

func (*Atom) sexpr() {}
func (*List) sexpr() {}

// Kind returns the kind of the atom's token.
func (a *Atom) Kind() TokenKind { return a.Tok.Kind }

// Text returns the text of the atom's token.
func (a *Atom) Text() string { return a.Tok.Text }

// IsName reports whether e is a NAME atom.
func IsName(e SExpr) bool {
	a, ok := e.(*Atom)
	return ok && a.Tok.Kind == Name
}

// IsKeywordAtom reports whether e is the keyword kw.
func IsKeywordAtom(e SExpr, kw string) bool {
	a, ok := e.(*Atom)
	return ok && a.Tok.Kind == Keyword && a.Tok.Text == kw
}

// Describe names the syntactic category of e the way diagnostics
// refer to it: "number", "string", "part", ...
func Describe(e SExpr) string {
	a, ok := e.(*Atom)
	if !ok {
		return "part"
	}
	switch a.Tok.Kind {
	case True, False:
		return "boolean"
	case Integer, Rational, Decimal:
		return "number"
	case String:
		return "string"
	case Character:
		return "character"
	case Keyword:
		return "keyword"
	case Placeholder:
		return "template"
	}
	return "variable"
}

// Stringify renders e as source text.
func Stringify(e SExpr) string {
	var b strings.Builder
	writeSExpr(&b, e)
	return b.String()
}

func writeSExpr(b *strings.Builder, e SExpr) {
	switch e := e.(type) {
	case *Atom:
		switch e.Tok.Kind {
		case String:
			b.WriteString(strconv.Quote(e.Tok.Text))
		case Character:
			b.WriteString(CharLiteral([]rune(e.Tok.Text)[0]))
		default:
			b.WriteString(e.Tok.Text)
		}
	case *List:
		b.WriteString(e.Open.String())
		for i, elem := range e.Elems {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeSExpr(b, elem)
		}
		b.WriteString(e.Open.Closer().String())
	}
}

var charLiteralNames = map[rune]string{
	' ':  "space",
	'\n': "newline",
	'\t': "tab",
	0:    "nul",
	'\b': "backspace",
	'\v': "vtab",
	'\f': "page",
	'\r': "return",
	0x7f: "rubout",
}

// CharLiteral returns the #\ notation for r.
func CharLiteral(r rune) string {
	if name, ok := charLiteralNames[r]; ok {
		return `#\` + name
	}
	return `#\` + string(r)
}
