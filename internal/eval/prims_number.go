package eval

import (
	"errors"
	"math/big"
	"strings"
	"time"

	"github.com/you-not-fish/bsl/internal/diag"
	"github.com/you-not-fish/bsl/internal/syntax"
	"github.com/you-not-fish/bsl/internal/value"
)

func num(v value.Value) value.Number { return v.(value.Number) }

// numError converts an arithmetic error of primitive name into a
// diagnostic.
func numError(name string, err error, span syntax.Span) error {
	switch {
	case errors.Is(err, value.ErrDivByZero):
		return syntax.NewError(span, diag.DivByZero)
	case errors.Is(err, value.ErrComplex):
		return syntax.NewError(span, diag.ComplexUnsupported(name))
	}
	return errorf(span, "%s: %v", name, err)
}

func num1(f func(value.Number) value.Number) primFn {
	return func(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
		return f(num(args[0])), nil
	}
}

func num1err(name string, f func(value.Number) (value.Number, error)) primFn {
	return func(_ *Evaluator, args []value.Value, span syntax.Span) (value.Value, error) {
		r, err := f(num(args[0]))
		if err != nil {
			return nil, numError(name, err, span)
		}
		return r, nil
	}
}

func num2err(name string, f func(a, b value.Number) (value.Number, error)) primFn {
	return func(_ *Evaluator, args []value.Value, span syntax.Span) (value.Value, error) {
		r, err := f(num(args[0]), num(args[1]))
		if err != nil {
			return nil, numError(name, err, span)
		}
		return r, nil
	}
}

func numPred(f func(value.Number) bool) primFn {
	return func(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
		return value.Bool(f(num(args[0]))), nil
	}
}

// fold combines the arguments left to right starting from init.
func fold(init value.Number, f func(a, b value.Number) value.Number) primFn {
	return func(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
		acc := init
		for _, arg := range args {
			acc = f(acc, num(arg))
		}
		return acc, nil
	}
}

// compare implements a chained numeric comparison such as (< a b c).
func compare(ok func(c int) bool) primFn {
	return func(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
		for i := 1; i < len(args); i++ {
			if !ok(value.Cmp(num(args[i-1]), num(args[i]))) {
				return value.False, nil
			}
		}
		return value.True, nil
	}
}

func extremum(want int) primFn {
	return func(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
		best := num(args[0])
		inexact := !best.IsExact()
		for _, arg := range args[1:] {
			n := num(arg)
			inexact = inexact || !n.IsExact()
			if value.Cmp(n, best) == want {
				best = n
			}
		}
		if inexact {
			best = best.ToInexact()
		}
		return best, nil
	}
}

func primMinus(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	if len(args) == 1 {
		return value.Neg(num(args[0])), nil
	}
	acc := num(args[0])
	for _, arg := range args[1:] {
		acc = value.Sub(acc, num(arg))
	}
	return acc, nil
}

func primDivide(_ *Evaluator, args []value.Value, span syntax.Span) (value.Value, error) {
	acc := num(args[0])
	rest := args[1:]
	if len(args) == 1 {
		acc, rest = value.One, args
	}
	for _, arg := range rest {
		var err error
		if acc, err = value.Div(acc, num(arg)); err != nil {
			return nil, numError("/", err, span)
		}
	}
	return acc, nil
}

func primAtan(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	if len(args) == 2 {
		return value.Atan2(num(args[0]), num(args[1])), nil
	}
	return value.Atan(num(args[0])), nil
}

func primExactToInexact(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	return num(args[0]).ToInexact(), nil
}

func primInexactToExact(_ *Evaluator, args []value.Value, span syntax.Span) (value.Value, error) {
	n, err := num(args[0]).ToExact()
	if err != nil {
		return nil, errorf(span, "inexact->exact: no exact representation for %s", args[0])
	}
	return n, nil
}

func primNumerator(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	n := num(args[0])
	r := value.NewBigInt(n.Num())
	if !n.IsExact() {
		r = r.ToInexact()
	}
	return r, nil
}

func primDenominator(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	n := num(args[0])
	r := value.NewBigInt(n.Denom())
	if !n.IsExact() {
		r = r.ToInexact()
	}
	return r, nil
}

func primSgn(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	n := num(args[0])
	s := value.NewInt(int64(n.Sign()))
	if !n.IsExact() {
		s = s.ToInexact()
	}
	return s, nil
}

func primNumberToString(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	return value.String(strings.TrimPrefix(args[0].String(), "#i")), nil
}

func primRandom(ev *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	limit := num(args[0])
	if n, ok := limit.Int64(); ok {
		return value.NewInt(ev.rng.Int63n(n)), nil
	}
	return value.NewBigInt(new(big.Int).Rand(ev.rng, limit.Num())), nil
}

func primCurrentSeconds(*Evaluator, []value.Value, syntax.Span) (value.Value, error) {
	return value.NewInt(time.Now().Unix()), nil
}

func primGcd(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	acc := num(args[0])
	for _, arg := range args[1:] {
		acc = value.Gcd(acc, num(arg))
	}
	return value.Abs(acc), nil
}

func primLcm(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	acc := num(args[0])
	for _, arg := range args[1:] {
		acc = value.Lcm(acc, num(arg))
	}
	return value.Abs(acc), nil
}

func isNumberOf(pred func(value.Value) bool) primFn {
	return func(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
		return value.Bool(pred(args[0])), nil
	}
}

var numberPrims = []*Primitive{
	prim("+", atLeast(2).relaxed(0).all(tNum), fold(value.Zero, value.Add)),
	prim("*", atLeast(2).relaxed(0).all(tNum), fold(value.One, value.Mul)),
	prim("-", atLeast(1).all(tNum), primMinus),
	prim("/", atLeast(2).relaxed(1).all(tNum), primDivide),

	prim("<", atLeast(1).all(tReal), compare(func(c int) bool { return c < 0 })),
	prim("<=", atLeast(1).all(tReal), compare(func(c int) bool { return c <= 0 })),
	prim("=", atLeast(1).all(tNum), compare(func(c int) bool { return c == 0 })),
	prim(">", atLeast(1).all(tReal), compare(func(c int) bool { return c > 0 })),
	prim(">=", atLeast(1).all(tReal), compare(func(c int) bool { return c >= 0 })),
	prim("max", atLeast(1).all(tReal), extremum(1)),
	prim("min", atLeast(1).all(tReal), extremum(-1)),

	prim("abs", fixed(1).only(tReal), num1(value.Abs)),
	prim("add1", fixed(1).only(tNum), num1(func(n value.Number) value.Number { return value.Add(n, value.One) })),
	prim("sub1", fixed(1).only(tNum), num1(func(n value.Number) value.Number { return value.Sub(n, value.One) })),
	prim("sqr", fixed(1).only(tNum), num1(func(n value.Number) value.Number { return value.Mul(n, n) })),
	prim("ceiling", fixed(1).only(tReal), num1(value.Ceiling)),
	prim("floor", fixed(1).only(tReal), num1(value.Floor)),
	prim("round", fixed(1).only(tReal), num1(value.Round)),
	prim("truncate", fixed(1).only(tReal), num1(value.Truncate)),
	prim("numerator", fixed(1).only(tRational), primNumerator),
	prim("denominator", fixed(1).only(tRational), primDenominator),
	prim("sgn", fixed(1).only(tReal), primSgn),

	prim("exact->inexact", fixed(1).only(tNum), primExactToInexact),
	prim("inexact->exact", fixed(1).only(tNum), primInexactToExact),
	prim("exact?", fixed(1).only(tNum), numPred(value.Number.IsExact)),
	prim("inexact?", fixed(1).only(tNum), numPred(func(n value.Number) bool { return !n.IsExact() })),

	prim("exp", fixed(1).only(tNum), num1(value.Exp)),
	prim("expt", fixed(2).all(tNum), num2err("expt", value.Expt)),
	prim("log", fixed(1).only(tNum), num1err("log", value.Log)),
	prim("sqrt", fixed(1).only(tNum), num1err("sqrt", value.Sqrt)),
	prim("sin", fixed(1).only(tNum), num1(value.Sin)),
	prim("cos", fixed(1).only(tNum), num1(value.Cos)),
	prim("tan", fixed(1).only(tNum), num1(value.Tan)),
	prim("atan", between(1, 2).all(tReal), primAtan),

	prim("modulo", fixed(2).all(tInt), num2err("modulo", value.Modulo)),
	prim("quotient", fixed(2).all(tInt), num2err("quotient", value.Quotient)),
	prim("remainder", fixed(2).all(tInt), num2err("remainder", value.Remainder)),
	prim("gcd", atLeast(1).all(tInt), primGcd),
	prim("lcm", atLeast(1).all(tInt), primLcm),

	prim("even?", fixed(1).only(tInt), numPred(func(n value.Number) bool { return n.Num().Bit(0) == 0 })),
	prim("odd?", fixed(1).only(tInt), numPred(func(n value.Number) bool { return n.Num().Bit(0) == 1 })),
	prim("negative?", fixed(1).only(tReal), numPred(func(n value.Number) bool { return n.Sign() < 0 })),
	prim("positive?", fixed(1).only(tReal), numPred(func(n value.Number) bool { return n.Sign() > 0 })),
	prim("zero?", fixed(1).only(tNum), numPred(value.Number.IsZero)),

	prim("number?", fixed(1), isNumberOf(tNum.Accepts)),
	prim("real?", fixed(1), isNumberOf(tReal.Accepts)),
	prim("rational?", fixed(1), isNumberOf(tRational.Accepts)),
	prim("integer?", fixed(1), isNumberOf(tInt.Accepts)),
	prim("natural?", fixed(1), isNumberOf(tNat.Accepts)),

	prim("number->string", fixed(1).only(tNum), primNumberToString),
	prim("random", fixed(1).only(tPosInt), primRandom),
	prim("current-seconds", fixed(0), primCurrentSeconds),
}
