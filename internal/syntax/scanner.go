package syntax

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/you-not-fish/bsl/internal/diag"
)

// Scanner performs lexical analysis on BSL source text.
type Scanner struct {
	source // embedded character reader

	tok Token

	errh   ErrorHandler
	errcnt int
}

// NewScanner creates a new Scanner for the given source.
// The errh function is called for each lexical error; if nil, errors are
// silently ignored. Scanning continues after an error.
func NewScanner(filename, src string, errh ErrorHandler) *Scanner {
	s := &Scanner{errh: errh}
	s.source = *newSource(filename, src, func(p Pos, msg string) {
		s.report(MakeSpan(p, NewPos(filename, p.Line(), p.Col()+1)), msg)
	})
	return s
}

// Next advances to the next token.
func (s *Scanner) Next() {
redo:
	s.skipWhitespace()

	start := s.pos()
	switch {
	case s.ch < 0:
		s.tok = Token{Kind: EOF, Span: MakeSpan(start, start)}
		return

	case s.ch == ';':
		s.skipLineComment()
		goto redo

	case s.ch == '(' || s.ch == ')' || s.ch == '[' || s.ch == ']' || s.ch == '{' || s.ch == '}':
		s.single(bracketKinds[s.ch])

	case s.ch == '\'':
		s.single(Quote)

	case s.ch == '`':
		s.single(Quasiquote)

	case s.ch == ',':
		s.nextch()
		text := ","
		if s.ch == '@' {
			s.nextch()
			text = ",@"
		}
		s.tok = Token{Kind: Unquote, Text: text, Span: s.spanFrom(start)}

	case s.ch == '"':
		if !s.scanString() {
			goto redo
		}

	case s.ch == '#':
		if !s.scanHash() {
			goto redo
		}

	default:
		if !s.scanAtom(start, s.readAtom()) {
			goto redo
		}
	}
}

// Token returns the current token.
func (s *Scanner) Token() Token {
	return s.tok
}

// ErrorCount returns the number of errors reported so far.
func (s *Scanner) ErrorCount() int {
	return s.errcnt
}

var bracketKinds = map[rune]TokenKind{
	'(': Lparen, ')': Rparen,
	'[': Lbrack, ']': Rbrack,
	'{': Lbrace, '}': Rbrace,
}

func (s *Scanner) report(span Span, msg string) {
	s.errcnt++
	if s.errh != nil {
		s.errh(NewError(span, msg))
	}
}

// spanFrom returns the span from start to the current position.
func (s *Scanner) spanFrom(start Pos) Span {
	return MakeSpan(start, s.pos())
}

func (s *Scanner) single(kind TokenKind) {
	start := s.pos()
	text := string(s.ch)
	s.nextch()
	s.tok = Token{Kind: kind, Text: text, Span: s.spanFrom(start)}
}

func (s *Scanner) skipWhitespace() {
	for s.ch >= 0 && isWhitespace(s.ch) {
		s.nextch()
	}
}

func (s *Scanner) skipLineComment() {
	for s.ch >= 0 && s.ch != '\n' {
		s.nextch()
	}
}

// skipBlockComment skips a possibly nested #| ... |# comment.
// The opening #| has already been consumed.
func (s *Scanner) skipBlockComment(start Pos) {
	depth := 1
	for depth > 0 {
		switch {
		case s.ch < 0:
			s.report(s.spanFrom(start), diag.UnclosedBlockComment)
			return
		case s.ch == '|' && s.peek() == '#':
			s.nextch()
			s.nextch()
			depth--
		case s.ch == '#' && s.peek() == '|':
			s.nextch()
			s.nextch()
			depth++
		default:
			s.nextch()
		}
	}
}

// readAtom consumes characters up to the next delimiter.
func (s *Scanner) readAtom() string {
	from := s.at
	for !isDelimiter(s.ch) {
		s.nextch()
	}
	return s.segment(from)
}

var (
	integerRE  = regexp.MustCompile(`^[+-]?[0-9]+\.?$`)
	rationalRE = regexp.MustCompile(`^[+-]?[0-9]+/[0-9]+$`)
	decimalRE  = regexp.MustCompile(`^[+-]?([0-9]+\.[0-9]*|\.[0-9]+|[0-9]+)([eE][+-]?[0-9]+)?$`)
)

// numberKind classifies text as a numeric literal.
func numberKind(text string) (TokenKind, bool) {
	switch {
	case integerRE.MatchString(text) && !strings.HasSuffix(text, "."):
		return Integer, true
	case rationalRE.MatchString(text):
		return Rational, true
	case decimalRE.MatchString(text):
		return Decimal, true
	}
	return EOF, false
}

// scanAtom classifies an atom read from start. It reports false if no
// token was produced.
func (s *Scanner) scanAtom(start Pos, text string) bool {
	span := s.spanFrom(start)

	switch {
	case text == ".":
		s.report(span, diag.IllegalUseOfDot)
		return false
	case text == "...":
		s.tok = Token{Kind: Placeholder, Text: text, Span: span}
		return true
	}
	if kind, ok := numberKind(text); ok {
		if kind == Rational && isZeroDenominator(text) {
			s.report(span, diag.ReadDivByZero(text))
			return false
		}
		s.tok = Token{Kind: kind, Text: text, Span: span}
		return true
	}
	if keywords[text] {
		s.tok = Token{Kind: Keyword, Text: text, Span: span}
		return true
	}
	s.tok = Token{Kind: Name, Text: text, Span: span}
	return true
}

func isZeroDenominator(text string) bool {
	d := text[strings.IndexByte(text, '/')+1:]
	return strings.Trim(d, "0") == ""
}

// scanHash scans a token starting with '#'.
func (s *Scanner) scanHash() bool {
	start := s.pos()
	switch s.peek() {
	case '|':
		s.nextch()
		s.nextch()
		s.skipBlockComment(start)
		return false
	case ';':
		s.nextch()
		s.nextch()
		s.tok = Token{Kind: DatumComment, Text: "#;", Span: s.spanFrom(start)}
		return true
	case '\\':
		s.nextch()
		s.nextch()
		return s.scanChar(start)
	}

	text := s.readAtom()
	span := s.spanFrom(start)
	switch text {
	case "#t", "#true":
		s.tok = Token{Kind: True, Text: text, Span: span}
		return true
	case "#f", "#false":
		s.tok = Token{Kind: False, Text: text, Span: span}
		return true
	}
	if len(text) > 2 && (text[1] == 'i' || text[1] == 'e') {
		if kind, ok := numberKind(text[2:]); ok {
			if kind == Rational && isZeroDenominator(text) {
				s.report(span, diag.ReadDivByZero(text))
				return false
			}
			s.tok = Token{Kind: kind, Text: text, Span: span}
			return true
		}
	}
	s.report(span, diag.BadSyntax(text))
	return false
}

var charNames = map[string]rune{
	"space":     ' ',
	"newline":   '\n',
	"linefeed":  '\n',
	"tab":       '\t',
	"nul":       0,
	"null":      0,
	"backspace": '\b',
	"vtab":      '\v',
	"page":      '\f',
	"return":    '\r',
	"rubout":    0x7f,
	"delete":    0x7f,
}

// scanChar scans a character literal; "#\" has been consumed.
func (s *Scanner) scanChar(start Pos) bool {
	if s.ch < 0 {
		s.report(s.spanFrom(start), diag.BadSyntax(`#\`))
		return false
	}
	first := s.ch
	s.nextch()
	if !isLetter(first) || isDelimiter(s.ch) {
		s.tok = Token{Kind: Character, Text: string(first), Span: s.spanFrom(start)}
		return true
	}
	name := string(first) + s.readAtom()
	span := s.spanFrom(start)
	if r, ok := charNames[strings.ToLower(name)]; ok {
		s.tok = Token{Kind: Character, Text: string(r), Span: span}
		return true
	}
	s.report(span, diag.BadSyntax(`#\`+name))
	return false
}

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

// scanString scans a string literal, decoding escape sequences.
func (s *Scanner) scanString() bool {
	start := s.pos()
	s.nextch() // opening "
	var b strings.Builder
	for {
		switch s.ch {
		case -1:
			s.report(s.spanFrom(start), diag.UnclosedString)
			return false
		case '"':
			s.nextch()
			s.tok = Token{Kind: String, Text: b.String(), Span: s.spanFrom(start)}
			return true
		case '\\':
			escPos := s.pos()
			s.nextch()
			if r, ok := escapes[s.ch]; ok {
				b.WriteRune(r)
				s.nextch()
				continue
			}
			if s.ch == '\n' {
				s.nextch()
				continue
			}
			if s.ch < 0 {
				continue
			}
			esc := fmt.Sprintf(`\%c`, s.ch)
			s.nextch()
			s.report(MakeSpan(escPos, s.pos()), diag.UnknownEscape(esc))
		default:
			b.WriteRune(s.ch)
			s.nextch()
		}
	}
}

var escapes = map[rune]rune{
	'a':  '\a',
	'b':  '\b',
	't':  '\t',
	'n':  '\n',
	'v':  '\v',
	'f':  '\f',
	'r':  '\r',
	'e':  0x1b,
	'"':  '"',
	'\'': '\'',
	'\\': '\\',
}

// Lex scans the entire input and returns its tokens (without the final
// EOF) together with every lexical error found.
func Lex(filename, src string) ([]Token, []*Error) {
	var errs []*Error
	s := NewScanner(filename, src, func(err *Error) {
		errs = append(errs, err)
	})
	var toks []Token
	for {
		s.Next()
		if s.tok.Kind == EOF {
			break
		}
		toks = append(toks, s.tok)
	}
	return toks, errs
}
