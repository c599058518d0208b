package value

import "testing"

type testProc struct {
	name  string
	arity int
}

func (p testProc) String() string   { return defaultPrinter.Sprint(p) }
func (p testProc) ProcName() string { return p.name }
func (p testProc) Arity() int       { return p.arity }

func TestPrint(t *testing.T) {
	posn := &StructType{Name: "posn", Fields: []string{"x", "y"}}

	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"true", True, "#true"},
		{"false", False, "#false"},
		{"integer", NewInt(-42), "-42"},
		{"rational", NewExact(1, 4), "0.25"},
		{"repeating", NewExact(1, 3), "0.3333333333333333"},
		{"mixed", NewExact(7, 2), "3.5"},
		{"negative fraction", NewExact(-1, 2), "-0.5"},
		{"negative mixed", NewExact(-7, 2), "-3.5"},
		{"inexact", NewInexact(1.5), "#i1.5"},
		{"inexact integral", NewInexact(3), "#i3.0"},
		{"inf", NewInexact(1 / zeroFloat()), "#i+inf.0"},
		{"string", String("a\"b\n"), `"a\"b\n"`},
		{"symbol", Symbol("abc"), "'abc"},
		{"char", Char('a'), `#\a`},
		{"char space", Char(' '), `#\space`},
		{"empty", Empty, "'()"},
		{"list", NewList(NewInt(1), NewInt(2)), "(cons 1 (cons 2 '()))"},
		{"nested list", NewList(NewList(Symbol("a"))), "(cons (cons 'a '()) '())"},
		{"struct", NewStruct(posn, []Value{NewInt(1), NewInt(2)}), "(make-posn 1 2)"},
		{"void", Void{}, "(void)"},
		{"eof", Eof{}, "#<eof>"},
		{"named proc", testProc{"add1", 1}, "add1"},
		{"lambda", testProc{"", 2}, "(lambda (a1 a2) ...)"},
		{"variadic", testProc{"", -1}, "(lambda args ...)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintAbbreviated(t *testing.T) {
	p := Printer{AbbreviatedList: true}
	l := NewList(NewInt(1), NewList(String("x")), Empty)
	if got := p.Sprint(l); got != `(list 1 (list "x") '())` {
		t.Errorf("Sprint = %q", got)
	}
	got := p.SprintAll([]Value{NewInt(3), Symbol("s")})
	if len(got) != 2 || got[0] != "3" || got[1] != "'s" {
		t.Errorf("SprintAll = %q", got)
	}
}

func TestListOps(t *testing.T) {
	l := Cons(NewInt(0), NewList(NewInt(1), NewInt(2)))
	if l.Len() != 3 {
		t.Fatalf("Len = %d, want 3", l.Len())
	}
	if !Equal(l.First(), Zero) || !Equal(l.Index(2), NewInt(2)) {
		t.Errorf("First/Index wrong: %v", l)
	}
	if l.Rest().Len() != 2 || len(l.Slice()) != 3 {
		t.Errorf("Rest/Slice wrong: %v", l)
	}
	if !Empty.IsEmpty() || l.IsEmpty() {
		t.Error("IsEmpty wrong")
	}
}
