package types

import (
	"sort"

	"github.com/you-not-fish/bsl/internal/syntax"
)

// NewUniverse creates the root scope holding the given primitive
// functions, predefined data names and built-in structure types
// (name -> fields). The caller decides which primitives are visible,
// e.g. leaving out higher-order functions in the strict teaching language.
func NewUniverse(functions, data []string, structs map[string][]string) *Scope {
	u := NewScope(nil, UniverseScope, syntax.NoSpan)
	for _, name := range functions {
		u.Insert(NewBuiltin(name))
	}
	for _, name := range data {
		u.Insert(NewVar(syntax.NoSpan, name))
	}
	names := make([]string, 0, len(structs))
	for name := range structs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		u.Insert(NewTypeName(syntax.NoSpan, name, structs[name]))
	}
	return u
}
