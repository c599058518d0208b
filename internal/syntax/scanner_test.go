package syntax

import "testing"

func scanAll(t *testing.T, src string) ([]Token, []*Error) {
	t.Helper()
	return Lex("test", src)
}

func TestScanTokens(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		kinds []TokenKind
		texts []string
	}{
		// Names
		{"name", "foo", []TokenKind{Name}, []string{"foo"}},
		{"name_punct", "string->list", []TokenKind{Name}, []string{"string->list"}},
		{"name_question", "empty?", []TokenKind{Name}, []string{"empty?"}},
		{"name_plus", "+", []TokenKind{Name}, []string{"+"}},
		{"name_minus", "-", []TokenKind{Name}, []string{"-"}},
		{"name_digit_start", "1+", []TokenKind{Name}, []string{"1+"}},
		{"name_unicode", "größe", []TokenKind{Name}, []string{"größe"}},

		// Keywords
		{"kw_define", "define", []TokenKind{Keyword}, []string{"define"}},
		{"kw_check", "check-expect", []TokenKind{Keyword}, []string{"check-expect"}},
		{"kw_lambda_greek", "λ", []TokenKind{Keyword}, []string{"λ"}},
		{"kw_let_star", "let*", []TokenKind{Keyword}, []string{"let*"}},

		// Booleans
		{"bool_t", "#t", []TokenKind{True}, []string{"#t"}},
		{"bool_true", "#true", []TokenKind{True}, []string{"#true"}},
		{"bool_f", "#f", []TokenKind{False}, []string{"#f"}},
		{"bool_false", "#false", []TokenKind{False}, []string{"#false"}},

		// Numbers
		{"int", "42", []TokenKind{Integer}, []string{"42"}},
		{"int_neg", "-7", []TokenKind{Integer}, []string{"-7"}},
		{"int_pos", "+7", []TokenKind{Integer}, []string{"+7"}},
		{"rational", "1/3", []TokenKind{Rational}, []string{"1/3"}},
		{"rational_neg", "-6/8", []TokenKind{Rational}, []string{"-6/8"}},
		{"decimal", "1.5", []TokenKind{Decimal}, []string{"1.5"}},
		{"decimal_lead_dot", ".5", []TokenKind{Decimal}, []string{".5"}},
		{"decimal_trail_dot", "2.", []TokenKind{Decimal}, []string{"2."}},
		{"decimal_exp", "1e3", []TokenKind{Decimal}, []string{"1e3"}},
		{"inexact", "#i1.5", []TokenKind{Decimal}, []string{"#i1.5"}},
		{"inexact_int", "#i3", []TokenKind{Integer}, []string{"#i3"}},

		// Strings and characters (decoded contents)
		{"string", `"hello"`, []TokenKind{String}, []string{"hello"}},
		{"string_empty", `""`, []TokenKind{String}, []string{""}},
		{"string_escapes", `"a\n\t\"b\\"`, []TokenKind{String}, []string{"a\n\t\"b\\"}},
		{"string_multiline", "\"a\nb\"", []TokenKind{String}, []string{"a\nb"}},
		{"char", `#\a`, []TokenKind{Character}, []string{"a"}},
		{"char_space", `#\space`, []TokenKind{Character}, []string{" "}},
		{"char_newline", `#\newline`, []TokenKind{Character}, []string{"\n"}},
		{"char_paren", `#\(`, []TokenKind{Character}, []string{"("}},

		// Brackets, quotes and placeholders
		{"parens", "()", []TokenKind{Lparen, Rparen}, []string{"(", ")"}},
		{"brackets", "[]", []TokenKind{Lbrack, Rbrack}, []string{"[", "]"}},
		{"braces", "{}", []TokenKind{Lbrace, Rbrace}, []string{"{", "}"}},
		{"quote", "'x", []TokenKind{Quote, Name}, []string{"'", "x"}},
		{"quasiquote", "`x", []TokenKind{Quasiquote, Name}, []string{"`", "x"}},
		{"unquote_splicing", ",@x", []TokenKind{Unquote, Name}, []string{",@", "x"}},
		{"placeholder", "...", []TokenKind{Placeholder}, []string{"..."}},
		{"datum_comment", "#;1 2", []TokenKind{DatumComment, Integer, Integer}, []string{"#;", "1", "2"}},

		// Delimiters end atoms
		{"atoms_in_list", "(f x)", []TokenKind{Lparen, Name, Name, Rparen}, []string{"(", "f", "x", ")"}},
		{"string_after_name", `x"s"`, []TokenKind{Name, String}, []string{"x", "s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, errs := scanAll(t, tt.src)
			if len(errs) > 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if len(toks) != len(tt.kinds) {
				t.Fatalf("got %d tokens %v, want %d", len(toks), toks, len(tt.kinds))
			}
			for i, tok := range toks {
				if tok.Kind != tt.kinds[i] {
					t.Errorf("token %d: kind = %v, want %v", i, tok.Kind, tt.kinds[i])
				}
				if tok.Text != tt.texts[i] {
					t.Errorf("token %d: text = %q, want %q", i, tok.Text, tt.texts[i])
				}
			}
		})
	}
}

func TestScanComments(t *testing.T) {
	src := `; line comment
(define x 1) ; trailing
#| block
   #| nested |#
   still comment |#
x`
	toks, errs := scanAll(t, src)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := []TokenKind{Lparen, Keyword, Name, Integer, Rparen, Name}
	if len(toks) != len(want) {
		t.Fatalf("got %v, want kinds %v", toks, want)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestPosition(t *testing.T) {
	src := `(define (f x)
  (+ x "ab"))`

	expected := []struct {
		kind              TokenKind
		line, col, endCol uint32
	}{
		{Lparen, 1, 1, 2},
		{Keyword, 1, 2, 8},
		{Lparen, 1, 9, 10},
		{Name, 1, 10, 11},
		{Name, 1, 12, 13},
		{Rparen, 1, 13, 14},
		{Lparen, 2, 3, 4},
		{Name, 2, 4, 5},
		{Name, 2, 6, 7},
		{String, 2, 8, 12},
		{Rparen, 2, 12, 13},
		{Rparen, 2, 13, 14},
	}

	s := NewScanner("test.rkt", src, nil)
	for i, exp := range expected {
		s.Next()
		tok := s.Token()
		if tok.Kind != exp.kind {
			t.Errorf("token %d: got %v, want %v", i, tok.Kind, exp.kind)
		}
		start, end := tok.Span.Start, tok.Span.End
		if start.Line() != exp.line || start.Col() != exp.col || end.Col() != exp.endCol {
			t.Errorf("token %d (%v): span = %v, want %d:%d-%d:%d",
				i, tok.Kind, tok.Span, exp.line, exp.col, exp.line, exp.endCol)
		}
	}
	s.Next()
	if s.Token().Kind != EOF {
		t.Errorf("expected EOF, got %v", s.Token())
	}
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"unterminated_string", `"hello`, "read-syntax: expected a closing `\"`"},
		{"bad_escape", `"\q"`, "read-syntax: unknown escape sequence `\\q` in string"},
		{"div_by_zero", "1/0", "read-syntax: division by zero in `1/0`"},
		{"div_by_zeros", "(+ 3/00)", "read-syntax: division by zero in `3/00`"},
		{"bad_hash", "#hello", "read-syntax: bad syntax `#hello`"},
		{"bad_char_name", `#\spacey`, "read-syntax: bad syntax `#\\spacey`"},
		{"dot", "(a . b)", "read-syntax: illegal use of `.`"},
		{"unterminated_block", "#| never closed", "read-syntax: end of file in `#|` comment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := scanAll(t, tt.src)
			if len(errs) == 0 {
				t.Fatalf("expected error %q, got no error", tt.wantErr)
			}
			if errs[0].Msg != tt.wantErr {
				t.Errorf("error = %q, want %q", errs[0].Msg, tt.wantErr)
			}
		})
	}
}

func TestScanCollectsMultipleErrors(t *testing.T) {
	toks, errs := scanAll(t, "(f 1/0) #bad (g x)")
	if len(errs) != 2 {
		t.Fatalf("got %d errors %v, want 2", len(errs), errs)
	}
	if errs[0].Span.Start.Col() != 4 || errs[1].Span.Start.Col() != 9 {
		t.Errorf("error spans = %v, %v", errs[0].Span, errs[1].Span)
	}
	// scanning resumes after each bad atom
	if len(toks) != 7 {
		t.Errorf("got %d tokens %v, want 7", len(toks), toks)
	}
}

func FuzzScanner(f *testing.F) {
	seeds := []string{
		"(define (f x) (+ x 1))",
		`(check-expect (f 2) 3)`,
		`"unterminated`,
		"#| nested #| |# ",
		"'(1 2 3)",
		`#\a #\space`,
		"#i1.5 1/3 -.5",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, src string) {
		s := NewScanner("fuzz", src, func(*Error) {})
		for i := 0; i < 10000; i++ {
			s.Next()
			if s.Token().Kind == EOF {
				return
			}
		}
		t.Fatal("scanner did not reach EOF")
	})
}
