// Package types describes the static side of BSL programs: the contract
// types that primitive procedures declare for their arguments, and the
// scopes the well-formedness checker resolves names in.
package types

import "github.com/you-not-fish/bsl/internal/value"

// Type is an argument contract. It names the expected kind of value in
// diagnostics and decides which runtime values satisfy it.
type Type interface {
	// String returns the name used in "expects a(n) <type>" messages.
	String() string

	// Accepts reports whether v satisfies the contract.
	Accepts(v value.Value) bool

	aType()
}

type typ struct{}

func (typ) aType() {}
