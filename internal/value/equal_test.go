package value

import "testing"

func TestEqualReflexive(t *testing.T) {
	posn := &StructType{Name: "posn", Fields: []string{"x", "y"}}
	values := []Value{
		True, False, Char('x'), String("s"), Symbol("s"), Void{}, Eof{},
		NewInt(3), NewExact(-2, 3), NewInexact(0.1),
		Empty, NewList(NewInt(1), String("a")),
		NewStruct(posn, []Value{NewInt(1), NewList(Symbol("q"))}),
	}
	for _, v := range values {
		if !EqualWithin(v, v, Zero) {
			t.Errorf("EqualWithin(%v, %v, 0) = false", v, v)
		}
	}
}

func TestEqualStructural(t *testing.T) {
	posn := &StructType{Name: "posn", Fields: []string{"x", "y"}}
	a := NewStruct(posn, []Value{NewInt(1), NewInt(2)})
	b := NewStruct(posn, []Value{NewInt(1), NewInt(2)})
	c := NewStruct(posn, []Value{NewInt(2), NewInt(1)})

	if !Equal(a, b) {
		t.Error("structs with equal fields should be equal?")
	}
	if Equal(a, c) {
		t.Error("structs with different fields should not be equal?")
	}
	if Eq(a, b) || !Eq(a, a) {
		t.Error("eq? on structs should compare identity")
	}

	l1 := NewList(NewInt(1), NewInt(2))
	l2 := NewList(NewInt(1), NewInt(2))
	if !Equal(l1, l2) || Eqv(l1, l2) {
		t.Error("lists: equal? structural, eqv? identity")
	}
	if !Eq(Empty, NewList()) {
		t.Error("empty lists should be eq?")
	}
	if Equal(NewList(NewInt(1)), l1) {
		t.Error("lists of different length should differ")
	}
}

func TestEqualNumbers(t *testing.T) {
	if Equal(NewInt(1), NewInexact(1)) {
		t.Error("equal? should distinguish exactness")
	}
	if !Equal(NewExact(2, 4), NewExact(1, 2)) {
		t.Error("2/4 and 1/2 should be equal")
	}
	if !EqualWithin(NewInexact(1.0), NewInexact(1.05), NewExact(1, 10)) {
		t.Error("1.0 and 1.05 should be within 0.1")
	}
	if EqualWithin(NewInexact(1.0), NewInexact(1.2), NewExact(1, 10)) {
		t.Error("1.0 and 1.2 should not be within 0.1")
	}
	l1 := NewList(NewInexact(1.0), NewInt(2))
	l2 := NewList(NewInt(1), NewInexact(2.01))
	if !EqualWithin(l1, l2, NewExact(1, 10)) {
		t.Error("equal~? should compare lists elementwise")
	}
}

func TestEqualDifferentKinds(t *testing.T) {
	pairs := [][2]Value{
		{String("a"), Symbol("a")},
		{Char('a'), String("a")},
		{NewInt(0), False},
		{Empty, False},
		{Void{}, Eof{}},
	}
	for _, p := range pairs {
		if Equal(p[0], p[1]) {
			t.Errorf("Equal(%v, %v) = true", p[0], p[1])
		}
	}
}

func TestContainsInexact(t *testing.T) {
	posn := &StructType{Name: "posn", Fields: []string{"x", "y"}}
	tests := []struct {
		v    Value
		want bool
	}{
		{NewInt(1), false},
		{NewInexact(1), true},
		{NewList(NewInt(1), NewList(NewInexact(2))), true},
		{NewStruct(posn, []Value{NewInt(1), NewInexact(0.5)}), true},
		{NewList(String("x")), false},
	}
	for _, tt := range tests {
		if got := ContainsInexact(tt.v); got != tt.want {
			t.Errorf("ContainsInexact(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}
