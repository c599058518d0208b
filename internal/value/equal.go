package value

// EqualWithin reports whether a and b are structurally equal, treating
// numbers as equal when they differ by at most eps. With eps zero, numbers
// must also agree in exactness. Procedures are never equal.
func EqualWithin(a, b Value, eps Number) bool {
	switch a := a.(type) {
	case Number:
		b, ok := b.(Number)
		if !ok {
			return false
		}
		if eps.IsZero() {
			return a.exact == b.exact && Cmp(a, b) == 0
		}
		return Cmp(Abs(Sub(a, b)), eps) <= 0
	case *List:
		b, ok := b.(*List)
		if !ok || a.Len() != b.Len() {
			return false
		}
		for ; !a.IsEmpty(); a, b = a.rest, b.rest {
			if !EqualWithin(a.first, b.first, eps) {
				return false
			}
		}
		return true
	case *Struct:
		b, ok := b.(*Struct)
		if !ok || a.Type.Name != b.Type.Name || len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if !EqualWithin(a.Fields[i], b.Fields[i], eps) {
				return false
			}
		}
		return true
	case *StructType:
		b, ok := b.(*StructType)
		return ok && a.Name == b.Name
	case Bool, Char, String, Symbol, Void, Eof:
		return a == b
	}
	return false
}

// Equal implements equal?.
func Equal(a, b Value) bool {
	return EqualWithin(a, b, Zero)
}

// Eqv implements eqv?: atoms compare by value, compound data by identity.
func Eqv(a, b Value) bool {
	switch a := a.(type) {
	case *List:
		b, ok := b.(*List)
		return ok && (a == b || a.IsEmpty() && b.IsEmpty())
	case *Struct:
		b, ok := b.(*Struct)
		return ok && a == b
	case Number, Bool, Char, String, Symbol, Void, Eof, *StructType:
		return Equal(a, b)
	}
	return a == b
}

// Eq implements eq?. Values are compared the same way as by eqv?.
func Eq(a, b Value) bool {
	return Eqv(a, b)
}

// ContainsInexact reports whether v is or contains an inexact number.
func ContainsInexact(v Value) bool {
	switch v := v.(type) {
	case Number:
		return !v.exact
	case *List:
		for l := v; !l.IsEmpty(); l = l.rest {
			if ContainsInexact(l.first) {
				return true
			}
		}
	case *Struct:
		for _, f := range v.Fields {
			if ContainsInexact(f) {
				return true
			}
		}
	}
	return false
}
