// Package check implements the well-formedness checker for BSL programs.
// It resolves every name against the static scope, rejects redefinitions
// and, in the first-order language, misuse of function names.
package check

import (
	"github.com/you-not-fish/bsl/internal/ast"
	"github.com/you-not-fish/bsl/internal/syntax"
	"github.com/you-not-fish/bsl/internal/types"
)

// Config specifies the configuration for checking.
type Config struct {
	// Error is called for each error.
	// If nil, errors are only returned.
	Error syntax.ErrorHandler

	// HigherOrder allows function names to be used as values and data
	// variables to be called.
	HigherOrder bool

	// Universe holds the primitive names. If nil, an empty universe is used.
	Universe *types.Scope

	// Modules lists the modules require can load, by name.
	Modules map[string]Module
}

// Module lists the names a required module provides.
type Module struct {
	Functions []string
	Data      []string
}

// Session checks a sequence of programs against one global scope, so that
// definitions from earlier submissions stay visible to later ones.
type Session struct {
	conf   *Config
	global *types.Scope
}

// NewSession creates a session with an empty global scope.
func NewSession(conf *Config) *Session {
	if conf == nil {
		conf = &Config{}
	}
	if conf.Universe == nil {
		conf.Universe = types.NewUniverse(nil, nil, nil)
	}
	return &Session{
		conf:   conf,
		global: types.NewScope(conf.Universe, types.GlobalScope, syntax.NoSpan),
	}
}

// Global returns the session's global scope.
func (s *Session) Global() *types.Scope {
	return s.global
}

// Check checks prog. On success its top-level definitions are added to
// the global scope; on failure the scope is left as it was.
func (s *Session) Check(prog *ast.Program) []*syntax.Error {
	c := &Checker{
		conf:   s.conf,
		global: s.global,
		scope:  s.global,
		failed: make(map[ast.Node]bool),
	}
	mark := s.global.Mark()
	c.checkProgram(prog)
	if len(c.errors) > 0 {
		s.global.Rollback(mark)
	}
	return c.errors
}

// Reset forgets every global definition.
func (s *Session) Reset() {
	s.global.Clear()
}

// Check checks a single program in a fresh session.
func Check(prog *ast.Program, conf *Config) []*syntax.Error {
	return NewSession(conf).Check(prog)
}
