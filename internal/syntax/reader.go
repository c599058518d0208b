package syntax

import "github.com/you-not-fish/bsl/internal/diag"

// reader groups tokens into S-expressions.
type reader struct {
	toks []Token
	pos  int
	eof  Token
	errs []*Error
}

// Read groups tokens into top-level S-expressions. Bracket families must
// match, 'x is expanded to (quote x) and #; drops the following datum.
// At most one error is reported per top-level form; reading resumes with
// the next form.
func Read(toks []Token) ([]SExpr, []*Error) {
	r := &reader{toks: toks}
	if n := len(toks); n > 0 {
		end := toks[n-1].Span.End
		r.eof = Token{Kind: EOF, Span: MakeSpan(end, end)}
	}

	var out []SExpr
	for r.peek().Kind != EOF {
		start := r.pos
		e, err := r.datum()
		if err != nil {
			r.errs = append(r.errs, err)
			r.skipForm(start)
			continue
		}
		if e != nil {
			out = append(out, e)
		}
	}
	return out, r.errs
}

func (r *reader) peek() Token {
	if r.pos < len(r.toks) {
		return r.toks[r.pos]
	}
	return r.eof
}

func (r *reader) next() Token {
	tok := r.peek()
	if r.pos < len(r.toks) {
		r.pos++
	}
	return tok
}

// datum reads one datum. It returns nil without an error when a
// top-level #; comment swallowed the datum.
func (r *reader) datum() (SExpr, *Error) {
	tok := r.next()
	switch {
	case tok.Kind.IsOpen():
		return r.list(tok)

	case tok.Kind.IsClose():
		return nil, NewError(tok.Span, diag.UnexpectedToken(tok.Text))

	case tok.Kind == Quote:
		return r.quoted(tok)

	case tok.Kind == Quasiquote || tok.Kind == Unquote:
		return nil, NewError(tok.Span, diag.QuasiQuoteUnsupported)

	case tok.Kind == DatumComment:
		if err := r.comment(tok); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return &Atom{Tok: tok}, nil
}

// comment skips the datum following a #; token.
func (r *reader) comment(tok Token) *Error {
	next := r.peek()
	switch {
	case next.Kind == EOF:
		return NewError(tok.Span, diag.ExpectedCommentedOutElement("end-of-file"))
	case next.Kind.IsClose():
		return NewError(tok.Span, diag.ExpectedCommentedOutElement("`"+next.Text+"`"))
	}
	_, err := r.element()
	return err
}

// element reads a datum that must be present, such as a list element.
// Comments in front of it are skipped.
func (r *reader) element() (SExpr, *Error) {
	for {
		e, err := r.datum()
		if err != nil || e != nil {
			return e, err
		}
		if next := r.peek(); next.Kind == EOF || next.Kind.IsClose() {
			return nil, nil
		}
	}
}

func (r *reader) list(open Token) (SExpr, *Error) {
	var elems []SExpr
	for {
		tok := r.peek()
		switch {
		case tok.Kind == EOF:
			return nil, NewError(open.Span, diag.ExpectedClosingParen(open.Text))

		case tok.Kind.IsClose():
			r.next()
			if tok.Kind != open.Kind.Closer() {
				return nil, NewError(open.Span.Cover(tok.Span), diag.ExpectedCorrectClosingParen(open.Text, tok.Text))
			}
			return NewList(open.Kind, elems, open.Span.Cover(tok.Span)), nil
		}

		e, err := r.element()
		if err != nil {
			return nil, err
		}
		if e != nil {
			elems = append(elems, e)
		}
	}
}

func (r *reader) quoted(quote Token) (SExpr, *Error) {
	tok := r.peek()
	switch {
	case tok.Kind == EOF:
		return nil, NewError(quote.Span, diag.ExpectedElementForQuoting("end-of-file"))
	case tok.Kind.IsClose():
		return nil, NewError(quote.Span, diag.ExpectedElementForQuoting("`"+tok.Text+"`"))
	case tok.Kind == Quote:
		return nil, NewError(quote.Span.Cover(tok.Span), diag.NestedQuotesUnsupported)
	case tok.Kind == DatumComment:
		return nil, NewError(quote.Span, diag.ExpectedElementForQuotingNow)
	}

	e, err := r.datum()
	if err != nil {
		return nil, err
	}
	kw := &Atom{Tok: Token{Kind: Keyword, Text: "quote", Span: quote.Span}}
	return NewList(Lparen, []SExpr{kw, e}, quote.Span.Cover(e.Span())), nil
}

// skipForm moves past the top-level form starting at token index start,
// guaranteeing progress.
func (r *reader) skipForm(start int) {
	r.pos = start
	depth := 0
	for {
		tok := r.next()
		switch {
		case tok.Kind == EOF:
			return
		case tok.Kind.IsOpen():
			depth++
		case tok.Kind.IsClose():
			depth--
		case depth == 0 && (tok.Kind == Quote || tok.Kind == DatumComment ||
			tok.Kind == Quasiquote || tok.Kind == Unquote):
			continue
		}
		if depth <= 0 {
			return
		}
	}
}
