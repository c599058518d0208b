package types

import "github.com/you-not-fish/bsl/internal/value"

// List is a list contract, optionally requiring at least one element.
type List struct {
	typ
	nonEmpty bool
}

// Lists.
var (
	AnyList      = &List{}
	NonEmptyList = &List{nonEmpty: true}
)

// NonEmpty reports whether the contract rejects '().
func (l *List) NonEmpty() bool {
	return l.nonEmpty
}

// String implements Type.
func (l *List) String() string {
	if l.nonEmpty {
		return "non-empty list"
	}
	return "list"
}

// Accepts implements Type.
func (l *List) Accepts(v value.Value) bool {
	lst, ok := v.(*value.List)
	return ok && (!l.nonEmpty || !lst.IsEmpty())
}

// Struct is the contract satisfied by instances of one structure type.
type Struct struct {
	typ
	name string
}

// NewStruct returns the contract for instances of the named structure.
func NewStruct(name string) *Struct {
	return &Struct{name: name}
}

// Name returns the structure name.
func (s *Struct) Name() string {
	return s.name
}

// String implements Type.
func (s *Struct) String() string {
	return s.name
}

// Accepts implements Type.
func (s *Struct) Accepts(v value.Value) bool {
	st, ok := v.(*value.Struct)
	return ok && st.Type.Name == s.name
}

// AnyStruct is satisfied by every structure instance.
var AnyStruct = &anyStruct{}

type anyStruct struct{ typ }

func (*anyStruct) String() string { return "struct" }

func (*anyStruct) Accepts(v value.Value) bool {
	_, ok := v.(*value.Struct)
	return ok
}
