package value

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
)

var (
	// ErrDivByZero is returned when dividing by an exact zero.
	ErrDivByZero = errors.New("division by zero")
	// ErrComplex is returned when a result would be a complex number.
	ErrComplex = errors.New("complex numbers are not supported")
	// ErrNotFinite is returned when converting +inf.0 or +nan.0 to an exact number.
	ErrNotFinite = errors.New("no exact representation")
)

// Number is a real number. Exact numbers are rationals reduced to lowest
// terms with a positive denominator. Inexact numbers carry an IEEE double
// so that inexact arithmetic, infinities and NaN behave as in Racket.
//
// Numbers are immutable; every operation returns a fresh Number.
type Number struct {
	rat   *big.Rat // exact value, nil when inexact
	flo   float64  // inexact value
	exact bool
}

// NewExact returns the exact rational num/den. den must not be zero.
func NewExact(num, den int64) Number {
	return Number{rat: big.NewRat(num, den), exact: true}
}

// NewInt returns the exact integer n.
func NewInt(n int64) Number {
	return Number{rat: new(big.Rat).SetInt64(n), exact: true}
}

// NewBigInt returns the exact integer n.
func NewBigInt(n *big.Int) Number {
	return Number{rat: new(big.Rat).SetInt(n), exact: true}
}

// NewRat returns the exact rational r. r is copied.
func NewRat(r *big.Rat) Number {
	return Number{rat: new(big.Rat).Set(r), exact: true}
}

// NewFrac returns the exact rational num/den. den must not be zero.
func NewFrac(num, den *big.Int) Number {
	return Number{rat: new(big.Rat).SetFrac(num, den), exact: true}
}

// NewInexact returns the inexact number f.
func NewInexact(f float64) Number {
	return Number{flo: f}
}

var (
	Zero = NewInt(0)
	One  = NewInt(1)
)

// ParseNumber parses a numeric literal: integers, n/d rationals and
// decimals, optionally prefixed with #i (inexact) or #e (exact).
// Decimal literals without a prefix are exact.
func ParseNumber(text string) (Number, error) {
	inexact := false
	switch {
	case strings.HasPrefix(text, "#i"):
		inexact = true
		text = text[2:]
	case strings.HasPrefix(text, "#e"):
		text = text[2:]
	}
	r, ok := new(big.Rat).SetString(normalizeDecimal(text))
	if !ok {
		return Number{}, fmt.Errorf("bad number: %q", text)
	}
	n := Number{rat: r, exact: true}
	if inexact {
		return n.ToInexact(), nil
	}
	return n, nil
}

// normalizeDecimal turns ".5" into "0.5" and "2." into "2.0".
func normalizeDecimal(s string) string {
	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		sign, s = s[:1], s[1:]
	}
	if sign == "+" {
		sign = ""
	}
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	if i := strings.IndexByte(s, '.'); i >= 0 && (i == len(s)-1 || s[i+1] == 'e' || s[i+1] == 'E') {
		s = s[:i+1] + "0" + s[i+1:]
	}
	return sign + s
}

// IsExact reports whether n is exact.
func (n Number) IsExact() bool { return n.exact }

// Rat returns the rational value of n. For inexact numbers this is the
// exact image of the double; it is nil for infinities and NaN.
func (n Number) Rat() *big.Rat {
	if n.exact {
		return new(big.Rat).Set(n.rat)
	}
	if math.IsInf(n.flo, 0) || math.IsNaN(n.flo) {
		return nil
	}
	return new(big.Rat).SetFloat64(n.flo)
}

// Num returns the numerator of n in lowest terms.
func (n Number) Num() *big.Int {
	if r := n.Rat(); r != nil {
		return new(big.Int).Set(r.Num())
	}
	return new(big.Int)
}

// Denom returns the positive denominator of n in lowest terms.
func (n Number) Denom() *big.Int {
	if r := n.Rat(); r != nil {
		return new(big.Int).Set(r.Denom())
	}
	return big.NewInt(1)
}

// Float64 returns the nearest double to n.
func (n Number) Float64() float64 {
	if !n.exact {
		return n.flo
	}
	f, _ := n.rat.Float64()
	return f
}

// Int64 returns n as an int64 and whether it is an integer that fits.
func (n Number) Int64() (int64, bool) {
	if !n.IsInteger() {
		return 0, false
	}
	if !n.exact {
		if math.Abs(n.flo) >= 1<<63 {
			return 0, false
		}
		return int64(n.flo), true
	}
	num := n.rat.Num()
	if !num.IsInt64() {
		return 0, false
	}
	return num.Int64(), true
}

// IsInteger reports whether n is an integer (exact or inexact).
func (n Number) IsInteger() bool {
	if n.exact {
		return n.rat.IsInt()
	}
	return !math.IsInf(n.flo, 0) && n.flo == math.Trunc(n.flo)
}

// IsFinite reports whether n is neither infinite nor NaN.
func (n Number) IsFinite() bool {
	return n.exact || !math.IsInf(n.flo, 0) && !math.IsNaN(n.flo)
}

// IsNaN reports whether n is +nan.0.
func (n Number) IsNaN() bool {
	return !n.exact && math.IsNaN(n.flo)
}

// Sign returns -1, 0 or +1.
func (n Number) Sign() int {
	if n.exact {
		return n.rat.Sign()
	}
	switch {
	case n.flo < 0:
		return -1
	case n.flo > 0:
		return 1
	}
	return 0
}

// IsZero reports whether n is zero.
func (n Number) IsZero() bool { return n.Sign() == 0 && !n.IsNaN() }

// ToInexact converts n to an inexact number.
func (n Number) ToInexact() Number {
	if !n.exact {
		return n
	}
	return NewInexact(n.Float64())
}

// ToExact converts n to an exact number.
func (n Number) ToExact() (Number, error) {
	if n.exact {
		return n, nil
	}
	r := n.Rat()
	if r == nil {
		return Number{}, ErrNotFinite
	}
	return Number{rat: r, exact: true}, nil
}

// arith applies an exact operation when both operands are exact and the
// corresponding floating-point operation otherwise.
func arith(a, b Number, exact func(z, x, y *big.Rat) *big.Rat, inexact func(x, y float64) float64) Number {
	if a.exact && b.exact {
		return Number{rat: exact(new(big.Rat), a.rat, b.rat), exact: true}
	}
	return NewInexact(inexact(a.Float64(), b.Float64()))
}

// Add returns a+b.
func Add(a, b Number) Number {
	return arith(a, b, (*big.Rat).Add, func(x, y float64) float64 { return x + y })
}

// Sub returns a-b.
func Sub(a, b Number) Number {
	return arith(a, b, (*big.Rat).Sub, func(x, y float64) float64 { return x - y })
}

// Mul returns a*b.
func Mul(a, b Number) Number {
	return arith(a, b, (*big.Rat).Mul, func(x, y float64) float64 { return x * y })
}

// Div returns a/b. Dividing by an exact zero is an error; dividing by an
// inexact zero follows IEEE rules.
func Div(a, b Number) (Number, error) {
	if b.exact && b.rat.Sign() == 0 {
		return Number{}, ErrDivByZero
	}
	return arith(a, b, (*big.Rat).Quo, func(x, y float64) float64 { return x / y }), nil
}

// Neg returns -a.
func Neg(a Number) Number {
	if a.exact {
		return Number{rat: new(big.Rat).Neg(a.rat), exact: true}
	}
	return NewInexact(-a.flo)
}

// Abs returns |a|.
func Abs(a Number) Number {
	if a.Sign() < 0 {
		return Neg(a)
	}
	return a
}

// Cmp compares a and b numerically, returning -1, 0 or +1. NaN compares
// unequal to everything; Cmp reports +1 for it.
func Cmp(a, b Number) int {
	if a.exact && b.exact {
		return a.rat.Cmp(b.rat)
	}
	if ra, rb := a.Rat(), b.Rat(); ra != nil && rb != nil {
		return ra.Cmp(rb)
	}
	x, y := a.Float64(), b.Float64()
	switch {
	case x < y:
		return -1
	case x == y:
		return 0
	}
	return 1
}

// Floor returns the largest integer not greater than a.
func Floor(a Number) Number {
	if !a.exact {
		return NewInexact(math.Floor(a.flo))
	}
	return NewBigInt(floorInt(a.rat))
}

// Ceiling returns the smallest integer not less than a.
func Ceiling(a Number) Number {
	if !a.exact {
		return NewInexact(math.Ceil(a.flo))
	}
	return Neg(Floor(Neg(a)))
}

// Truncate rounds a toward zero.
func Truncate(a Number) Number {
	if !a.exact {
		return NewInexact(math.Trunc(a.flo))
	}
	return NewBigInt(new(big.Int).Quo(a.rat.Num(), a.rat.Denom()))
}

// Round rounds a to the nearest integer, ties to even.
func Round(a Number) Number {
	if !a.exact {
		return NewInexact(math.RoundToEven(a.flo))
	}
	fl := floorInt(a.rat)
	diff := new(big.Rat).Sub(a.rat, new(big.Rat).SetInt(fl))
	switch diff.Cmp(big.NewRat(1, 2)) {
	case 1:
		fl.Add(fl, big.NewInt(1))
	case 0:
		if fl.Bit(0) == 1 {
			fl.Add(fl, big.NewInt(1))
		}
	}
	return NewBigInt(fl)
}

// floorInt floors r. Euclidean division floors for a positive divisor.
func floorInt(r *big.Rat) *big.Int {
	return new(big.Int).Div(r.Num(), r.Denom())
}

// intOp applies an integer division operation. Both operands must be
// integers; the result is inexact if either is.
func intOp(a, b Number, op func(z, x, y *big.Int) *big.Int, fop func(x, y float64) float64) (Number, error) {
	if b.IsZero() {
		return Number{}, ErrDivByZero
	}
	if a.exact && b.exact {
		return NewBigInt(op(new(big.Int), a.rat.Num(), b.rat.Num())), nil
	}
	return NewInexact(fop(a.Float64(), b.Float64())), nil
}

// Quotient returns the integer quotient truncated toward zero.
func Quotient(a, b Number) (Number, error) {
	return intOp(a, b, (*big.Int).Quo, func(x, y float64) float64 { return math.Trunc(x / y) })
}

// Remainder returns the remainder with the sign of a.
func Remainder(a, b Number) (Number, error) {
	return intOp(a, b, (*big.Int).Rem, math.Mod)
}

// Modulo returns the remainder with the sign of b.
func Modulo(a, b Number) (Number, error) {
	return intOp(a, b, func(z, x, y *big.Int) *big.Int {
		z.Rem(x, y)
		if z.Sign() != 0 && z.Sign() != y.Sign() {
			z.Add(z, y)
		}
		return z
	}, func(x, y float64) float64 {
		m := math.Mod(x, y)
		if m != 0 && (m < 0) != (y < 0) {
			m += y
		}
		return m
	})
}

// Gcd returns the greatest common divisor of two integers.
func Gcd(a, b Number) Number {
	if a.exact && b.exact {
		x, y := new(big.Int).Abs(a.rat.Num()), new(big.Int).Abs(b.rat.Num())
		return NewBigInt(new(big.Int).GCD(nil, nil, x, y))
	}
	x, y := math.Abs(a.Float64()), math.Abs(b.Float64())
	for y != 0 {
		x, y = y, math.Mod(x, y)
	}
	return NewInexact(x)
}

// Lcm returns the least common multiple of two integers.
func Lcm(a, b Number) Number {
	if a.IsZero() || b.IsZero() {
		if a.exact && b.exact {
			return Zero
		}
		return NewInexact(0)
	}
	g := Gcd(a, b)
	q, _ := Div(Abs(Mul(a, b)), g)
	return q
}

// Expt returns a raised to the power b.
func Expt(a, b Number) (Number, error) {
	if a.exact && b.exact {
		if b.rat.IsInt() {
			return exptInt(a, b.rat.Num())
		}
		if a.rat.Sign() < 0 {
			return Number{}, ErrComplex
		}
		if r, ok := exactRoot(a, b); ok {
			return r, nil
		}
	}
	x, y := a.Float64(), b.Float64()
	if x < 0 && y != math.Trunc(y) {
		return Number{}, ErrComplex
	}
	if x == 0 && y < 0 && a.exact {
		return Number{}, ErrDivByZero
	}
	return NewInexact(math.Pow(x, y)), nil
}

func exptInt(a Number, k *big.Int) (Number, error) {
	neg := k.Sign() < 0
	k = new(big.Int).Abs(k)
	if neg && a.rat.Sign() == 0 {
		return Number{}, ErrDivByZero
	}
	num := new(big.Int).Exp(a.rat.Num(), k, nil)
	den := new(big.Int).Exp(a.rat.Denom(), k, nil)
	if neg {
		num, den = den, num
	}
	return NewFrac(num, den), nil
}

// exactRoot computes a^(p/q) exactly when the result is rational.
func exactRoot(a, b Number) (Number, bool) {
	guess := math.Pow(a.Float64(), b.Float64())
	if math.IsInf(guess, 0) || math.IsNaN(guess) {
		return Number{}, false
	}
	r := new(big.Rat).SetFloat64(guess)
	cand := Number{rat: r, exact: true}
	if !r.IsInt() {
		cand = Round(cand)
	}
	// cand^q == a^p ?
	p, q := b.rat.Num(), b.rat.Denom()
	lhs, err := exptInt(cand, q)
	if err != nil {
		return Number{}, false
	}
	rhs, err := exptInt(a, p)
	if err != nil || Cmp(lhs, rhs) != 0 {
		return Number{}, false
	}
	return cand, true
}

// Sqrt returns the principal square root of a. Exact perfect squares
// give exact results.
func Sqrt(a Number) (Number, error) {
	if a.Sign() < 0 {
		return Number{}, ErrComplex
	}
	if a.exact {
		num, den := a.rat.Num(), a.rat.Denom()
		sn, sd := new(big.Int).Sqrt(num), new(big.Int).Sqrt(den)
		if new(big.Int).Mul(sn, sn).Cmp(num) == 0 && new(big.Int).Mul(sd, sd).Cmp(den) == 0 {
			return NewFrac(sn, sd), nil
		}
	}
	return NewInexact(math.Sqrt(a.Float64())), nil
}

// Exp returns e^a.
func Exp(a Number) Number {
	if a.exact && a.rat.Sign() == 0 {
		return One
	}
	return NewInexact(math.Exp(a.Float64()))
}

// Log returns the natural logarithm of a.
func Log(a Number) (Number, error) {
	switch {
	case a.Sign() < 0:
		return Number{}, ErrComplex
	case a.exact && a.rat.Sign() == 0:
		return Number{}, ErrDivByZero
	case a.exact && a.rat.Cmp(One.rat) == 0:
		return Zero, nil
	}
	return NewInexact(math.Log(a.Float64())), nil
}

// unaryFloat applies f, keeping exact zero exact when f(0) == 0.
func unaryFloat(a Number, f func(float64) float64) Number {
	if a.exact && a.rat.Sign() == 0 && f(0) == 0 {
		return Zero
	}
	return NewInexact(f(a.Float64()))
}

func Sin(a Number) Number  { return unaryFloat(a, math.Sin) }
func Tan(a Number) Number  { return unaryFloat(a, math.Tan) }
func Atan(a Number) Number { return unaryFloat(a, math.Atan) }

func Cos(a Number) Number {
	if a.exact && a.rat.Sign() == 0 {
		return One
	}
	return NewInexact(math.Cos(a.Float64()))
}

// Atan2 returns the angle of the point (x, y).
func Atan2(y, x Number) Number {
	if y.exact && x.exact && y.rat.Sign() == 0 && x.rat.Sign() > 0 {
		return Zero
	}
	return NewInexact(math.Atan2(y.Float64(), x.Float64()))
}
