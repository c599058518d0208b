package types

import "github.com/you-not-fish/bsl/internal/value"

func IsBoolean(v value.Value) bool {
	_, ok := v.(value.Bool)
	return ok
}

func IsCharacter(v value.Value) bool {
	_, ok := v.(value.Char)
	return ok
}

func IsEof(v value.Value) bool {
	_, ok := v.(value.Eof)
	return ok
}

func IsString(v value.Value) bool {
	_, ok := v.(value.String)
	return ok
}

func IsSymbol(v value.Value) bool {
	_, ok := v.(value.Symbol)
	return ok
}

func IsProcedure(v value.Value) bool {
	_, ok := v.(value.Procedure)
	return ok
}

func IsNumber(v value.Value) bool {
	_, ok := v.(value.Number)
	return ok
}

// IsReal reports whether v is a real number. BSL has no complex numbers,
// so every number is real.
func IsReal(v value.Value) bool {
	return IsNumber(v)
}

// IsRational reports whether v is a finite number.
func IsRational(v value.Value) bool {
	n, ok := v.(value.Number)
	return ok && n.IsFinite()
}

func IsNonNegativeReal(v value.Value) bool {
	n, ok := v.(value.Number)
	return ok && n.Sign() >= 0 && !n.IsNaN()
}

// IsInteger reports whether v is an integer, exact or inexact.
func IsInteger(v value.Value) bool {
	n, ok := v.(value.Number)
	return ok && n.IsInteger()
}

// IsNatural reports whether v is an exact non-negative integer.
func IsNatural(v value.Value) bool {
	n, ok := v.(value.Number)
	return ok && n.IsExact() && n.IsInteger() && n.Sign() >= 0
}

// IsPositiveInteger reports whether v is an exact positive integer.
func IsPositiveInteger(v value.Value) bool {
	n, ok := v.(value.Number)
	return ok && n.IsExact() && n.IsInteger() && n.Sign() > 0
}
