// Package syntax implements lexical analysis and S-expression reading for
// the Beginning Student Language.
package syntax

import "fmt"

// TokenKind represents the type of a lexical token.
type TokenKind uint

const (
	EOF TokenKind = iota

	// Literals
	True
	False
	Integer
	Rational
	Decimal
	String
	Character

	Name
	Keyword
	Placeholder // ...

	// Brackets
	Lparen // (
	Rparen // )
	Lbrack // [
	Rbrack // ]
	Lbrace // {
	Rbrace // }

	// Reader prefixes
	Quote        // '
	Quasiquote   // `
	Unquote      // , or ,@
	DatumComment // #;

	tokenCount
)

var tokenNames = [...]string{
	EOF:          "EOF",
	True:         "TRUE",
	False:        "FALSE",
	Integer:      "INTEGER",
	Rational:     "RATIONAL",
	Decimal:      "DECIMAL",
	String:       "STRING",
	Character:    "CHARACTER",
	Name:         "NAME",
	Keyword:      "KEYWORD",
	Placeholder:  "PLACEHOLDER",
	Lparen:       "(",
	Rparen:       ")",
	Lbrack:       "[",
	Rbrack:       "]",
	Lbrace:       "{",
	Rbrace:       "}",
	Quote:        "'",
	Quasiquote:   "`",
	Unquote:      ",",
	DatumComment: "#;",
}

// String returns the string representation of the token kind.
func (k TokenKind) String() string {
	if k < tokenCount {
		return tokenNames[k]
	}
	return fmt.Sprintf("token(%d)", k)
}

// IsOpen reports whether k opens a list.
func (k TokenKind) IsOpen() bool {
	return k == Lparen || k == Lbrack || k == Lbrace
}

// IsClose reports whether k closes a list.
func (k TokenKind) IsClose() bool {
	return k == Rparen || k == Rbrack || k == Rbrace
}

// Closer returns the closing bracket matching an opening bracket.
func (k TokenKind) Closer() TokenKind {
	switch k {
	case Lparen:
		return Rparen
	case Lbrack:
		return Rbrack
	case Lbrace:
		return Rbrace
	}
	return EOF
}

// IsNumber reports whether k is a numeric literal.
func (k TokenKind) IsNumber() bool {
	return k == Integer || k == Rational || k == Decimal
}

// IsLiteral reports whether k is a self-evaluating literal.
func (k TokenKind) IsLiteral() bool {
	return k >= True && k <= Character
}

// Token is a lexical token. Text holds the source text for names and
// numbers, and the decoded contents for strings and characters.
type Token struct {
	Kind TokenKind
	Text string
	Span Span
}

func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "EOF"
	case String:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	}
	return fmt.Sprintf("%s %s", t.Kind, t.Text)
}

// keywords is the set of names reserved for special forms.
var keywords = map[string]bool{
	"and":             true,
	"check-error":     true,
	"check-expect":    true,
	"check-member-of": true,
	"check-random":    true,
	"check-range":     true,
	"check-satisfied": true,
	"check-within":    true,
	"cond":            true,
	"define":          true,
	"define-struct":   true,
	"else":            true,
	"if":              true,
	"lambda":          true,
	"λ":               true,
	"let":             true,
	"let*":            true,
	"letrec":          true,
	"local":           true,
	"or":              true,
	"quote":           true,
	"require":         true,
}

// IsKeyword reports whether name is reserved for a special form.
func IsKeyword(name string) bool {
	return keywords[name]
}
