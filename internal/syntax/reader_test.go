package syntax

import "testing"

func readString(t *testing.T, src string) ([]SExpr, []*Error) {
	t.Helper()
	toks, errs := Lex("test", src)
	if len(errs) > 0 {
		t.Fatalf("lex errors: %v", errs)
	}
	return Read(toks)
}

func TestRead(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"atom", "42", []string{"42"}},
		{"empty", "", nil},
		{"list", "(+ 1 2)", []string{"(+ 1 2)"}},
		{"nested", "(define (f x) [cond [(= x 0) 1] [else 2]])",
			[]string{"(define (f x) [cond [(= x 0) 1] [else 2]])"}},
		{"several", "(define x 1) x {list}", []string{"(define x 1)", "x", "{list}"}},
		{"quote_name", "'a", []string{"(quote a)"}},
		{"quote_list", "'(1 2)", []string{"(quote (1 2))"}},
		{"quote_inside", "(list 'a 'b)", []string{"(list (quote a) (quote b))"}},
		{"string", `(string-append "a\"" "b")`, []string{`(string-append "a\"" "b")`}},
		{"char", `(char? #\space)`, []string{`(char? #\space)`}},
		{"datum_comment", "(f #;(g 1) 2) #;3 4", []string{"(f 2)", "4"}},
		{"datum_comment_last", "(f 1 #;2)", []string{"(f 1)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errs := readString(t, tt.src)
			if len(errs) > 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d forms, want %d", len(got), len(tt.want))
			}
			for i, e := range got {
				if s := Stringify(e); s != tt.want[i] {
					t.Errorf("form %d = %s, want %s", i, s, tt.want[i])
				}
			}
		})
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
		line    uint32
		col     uint32
	}{
		{"unclosed", "(+ 1 2", "read-syntax: expected a `)` to close preceding `(`", 1, 1},
		{"unclosed_bracket", "(f [x", "read-syntax: expected a `]` to close preceding `[`", 1, 4},
		{"mismatch", "(f x]", "read-syntax: expected `)` to close preceding `(`, found instead `]`", 1, 1},
		{"stray_close", ")", "read-syntax: unexpected `)`", 1, 1},
		{"quote_eof", "'", "read-syntax: expected an element for quoting \"'\", but found end-of-file", 1, 1},
		{"quote_close", "(f ')", "read-syntax: expected an element for quoting \"'\", but found `)`", 1, 4},
		{"nested_quote", "''a", "read-syntax: nested quotes are not supported", 1, 1},
		{"quasiquote", "`(a ,b)", "read-syntax: quasiquotes are not supported", 1, 1},
		{"comment_eof", "#;", "read-syntax: expected a commented-out element for `#;`, but found end-of-file", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := readString(t, tt.src)
			if len(errs) == 0 {
				t.Fatalf("expected error %q, got none", tt.wantErr)
			}
			err := errs[0]
			if err.Msg != tt.wantErr {
				t.Errorf("error = %q, want %q", err.Msg, tt.wantErr)
			}
			if err.Span.Start.Line() != tt.line || err.Span.Start.Col() != tt.col {
				t.Errorf("error at %v, want %d:%d", err.Span.Start, tt.line, tt.col)
			}
		})
	}
}

func TestReadRecoversPerForm(t *testing.T) {
	forms, errs := readString(t, "(f x] (g y) ) (h z)")
	if len(errs) != 2 {
		t.Fatalf("got %d errors %v, want 2", len(errs), errs)
	}
	if len(forms) != 2 {
		t.Fatalf("got %d forms, want 2", len(forms))
	}
	if Stringify(forms[0]) != "(g y)" || Stringify(forms[1]) != "(h z)" {
		t.Errorf("forms = %s, %s", Stringify(forms[0]), Stringify(forms[1]))
	}
}

func TestListSpanCoversElements(t *testing.T) {
	forms, _ := readString(t, "(a\n  (b c))")
	l := forms[0].(*List)
	for _, e := range l.Elems {
		if !l.Span().Contains(e.Span()) {
			t.Errorf("list span %v does not cover %v", l.Span(), e.Span())
		}
	}
	if l.Span().End.Line() != 2 || l.Span().End.Col() != 9 {
		t.Errorf("list end = %v, want 2:9", l.Span().End)
	}
}

func TestDescribe(t *testing.T) {
	forms, _ := readString(t, `1 "s" #t x define ... (a) #\c`)
	want := []string{"number", "string", "boolean", "variable", "keyword", "template", "part", "character"}
	for i, e := range forms {
		if got := Describe(e); got != want[i] {
			t.Errorf("Describe(%s) = %q, want %q", Stringify(e), got, want[i])
		}
	}
}
