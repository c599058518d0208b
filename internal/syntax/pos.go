package syntax

import "fmt"

// Pos represents a position in a source file.
// The zero value is an invalid position.
type Pos struct {
	filename string // source file name
	line     uint32 // 1-based line number
	col      uint32 // 1-based column number (byte offset in line)
}

// NewPos creates a new Pos with the given filename, line, and column.
// Line and column numbers are 1-based.
func NewPos(filename string, line, col uint32) Pos {
	return Pos{filename: filename, line: line, col: col}
}

// String returns a string representation of the position in the format
// "filename:line:col" or "line:col" if filename is empty.
func (p Pos) String() string {
	if p.filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.filename, p.line, p.col)
	}
	return fmt.Sprintf("%d:%d", p.line, p.col)
}

// IsValid reports whether the position is valid.
// A position is valid if line > 0.
func (p Pos) IsValid() bool {
	return p.line > 0
}

// Line returns the 1-based line number.
func (p Pos) Line() uint32 {
	return p.line
}

// Col returns the 1-based column number (byte offset in line).
func (p Pos) Col() uint32 {
	return p.col
}

// Filename returns the source file name.
func (p Pos) Filename() string {
	return p.filename
}

// Before reports whether p comes strictly before q.
func (p Pos) Before(q Pos) bool {
	return p.line < q.line || p.line == q.line && p.col < q.col
}

// Span is a half-open source range: Start is the first character,
// End is the position immediately after the last one.
type Span struct {
	Start Pos
	End   Pos
}

// NoSpan marks synthetic nodes and errors without a source location.
var NoSpan Span

// MakeSpan creates a span from start to end.
func MakeSpan(start, end Pos) Span {
	return Span{Start: start, End: end}
}

// IsValid reports whether the span refers to real source text.
func (s Span) IsValid() bool {
	return s.Start.IsValid()
}

// Cover returns the smallest span containing both s and t.
// An invalid operand is ignored.
func (s Span) Cover(t Span) Span {
	if !s.IsValid() {
		return t
	}
	if !t.IsValid() {
		return s
	}
	out := s
	if t.Start.Before(out.Start) {
		out.Start = t.Start
	}
	if out.End.Before(t.End) {
		out.End = t.End
	}
	return out
}

// Contains reports whether t lies within s.
func (s Span) Contains(t Span) bool {
	return !t.Start.Before(s.Start) && !s.End.Before(t.End)
}

// String renders the span as "line:col-line:col".
func (s Span) String() string {
	if !s.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%s-%d:%d", s.Start, s.End.line, s.End.col)
}
