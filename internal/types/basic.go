package types

import "github.com/you-not-fish/bsl/internal/value"

// BasicKind describes the kind of basic contract type.
type BasicKind int

const (
	Invalid BasicKind = iota

	Any
	Boolean
	Character
	EofObject
	String
	Symbol
	Procedure
	Void

	// Numeric contracts, from most to least specific
	PositiveInteger
	Natural
	Integer
	Rational
	NonNegativeReal
	Real
	Number
)

// Basic is a contract on a single kind of atomic value.
type Basic struct {
	typ
	kind BasicKind
	name string
	pred func(value.Value) bool
}

// Kind returns the kind of the basic type.
func (b *Basic) Kind() BasicKind {
	return b.kind
}

// String implements Type.
func (b *Basic) String() string {
	return b.name
}

// Accepts implements Type.
func (b *Basic) Accepts(v value.Value) bool {
	return b.pred(v)
}

// IsNumeric reports whether b constrains numbers.
func (b *Basic) IsNumeric() bool {
	return b.kind >= PositiveInteger && b.kind <= Number
}

// Typ holds the basic contract types, indexed by BasicKind.
// Typ[Invalid] is nil.
var Typ = []*Basic{
	Invalid:         nil,
	Any:             {kind: Any, name: "any value", pred: func(value.Value) bool { return true }},
	Boolean:         {kind: Boolean, name: "boolean", pred: IsBoolean},
	Character:       {kind: Character, name: "character", pred: IsCharacter},
	EofObject:       {kind: EofObject, name: "eof-object", pred: IsEof},
	String:          {kind: String, name: "string", pred: IsString},
	Symbol:          {kind: Symbol, name: "symbol", pred: IsSymbol},
	Procedure:       {kind: Procedure, name: "function", pred: IsProcedure},
	Void:            {kind: Void, name: "void", pred: value.IsVoid},
	PositiveInteger: {kind: PositiveInteger, name: "positive integer", pred: IsPositiveInteger},
	Natural:         {kind: Natural, name: "natural number", pred: IsNatural},
	Integer:         {kind: Integer, name: "integer", pred: IsInteger},
	Rational:        {kind: Rational, name: "rational number", pred: IsRational},
	NonNegativeReal: {kind: NonNegativeReal, name: "non-negative real number", pred: IsNonNegativeReal},
	Real:            {kind: Real, name: "real number", pred: IsReal},
	Number:          {kind: Number, name: "number", pred: IsNumber},
}
