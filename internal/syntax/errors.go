package syntax

import "fmt"

// Error is a diagnostic produced by any stage of the interpreter.
// It carries the user-facing message and the source span it refers to.
type Error struct {
	Span Span
	Msg  string
}

// Errorf creates an Error at span with a formatted message.
func Errorf(span Span, format string, args ...any) *Error {
	return &Error{Span: span, Msg: fmt.Sprintf(format, args...)}
}

// NewError creates an Error at span.
func NewError(span Span, msg string) *Error {
	return &Error{Span: span, Msg: msg}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Span.IsValid() {
		return fmt.Sprintf("%s: %s", e.Span.Start, e.Msg)
	}
	return e.Msg
}

// ErrorHandler is called for each error encountered while lexing or reading.
type ErrorHandler func(err *Error)
