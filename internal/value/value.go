// Package value defines the runtime values of BSL programs: the numeric
// tower, booleans, characters, strings, symbols, lists and structures,
// together with equality and printing.
package value

// Value is any BSL runtime value. String renders the value the way the
// REPL shows it, using unabbreviated list notation.
type Value interface {
	String() string
}

// Data is a value that can be compared structurally.
type Data interface {
	Value
	data()
}

// Procedure is a callable value. Calling procedures is the evaluator's
// business; here they are only named and printed.
type Procedure interface {
	Value
	// ProcName returns the procedure's name, or "" for an anonymous lambda.
	ProcName() string
	// Arity returns the number of parameters, or -1 if variadic.
	Arity() int
}

// Bool is a boolean.
type Bool bool

const (
	True  Bool = true
	False Bool = false
)

// Char is a character.
type Char rune

// String is an immutable string.
type String string

// Symbol is an interned symbol.
type Symbol string

// Void is the result of definitions and (void); it is never displayed.
type Void struct{}

// Eof is the end-of-file object.
type Eof struct{}

// StructType describes a structure defined with define-struct.
type StructType struct {
	Name   string
	Fields []string
}

// Struct is an instance of a StructType.
type Struct struct {
	Type   *StructType
	Fields []Value
}

// NewStruct creates an instance of t. The number of fields must match.
func NewStruct(t *StructType, fields []Value) *Struct {
	return &Struct{Type: t, Fields: fields}
}

func (Bool) data()        {}
func (Char) data()        {}
func (String) data()      {}
func (Symbol) data()      {}
func (Void) data()        {}
func (Eof) data()         {}
func (*StructType) data() {}
func (*Struct) data()     {}
func (Number) data()      {}
func (*List) data()       {}

func (b Bool) String() string        { return defaultPrinter.Sprint(b) }
func (c Char) String() string        { return defaultPrinter.Sprint(c) }
func (s String) String() string      { return defaultPrinter.Sprint(s) }
func (s Symbol) String() string      { return defaultPrinter.Sprint(s) }
func (Void) String() string          { return "(void)" }
func (Eof) String() string           { return "#<eof>" }
func (t *StructType) String() string { return t.Name }
func (s *Struct) String() string     { return defaultPrinter.Sprint(s) }
func (n Number) String() string      { return defaultPrinter.Sprint(n) }
func (l *List) String() string       { return defaultPrinter.Sprint(l) }

// IsTrue reports whether v is #true.
func IsTrue(v Value) bool {
	b, ok := v.(Bool)
	return ok && bool(b)
}

// IsFalse reports whether v is #false.
func IsFalse(v Value) bool {
	b, ok := v.(Bool)
	return ok && !bool(b)
}

// IsVoid reports whether v is the void value.
func IsVoid(v Value) bool {
	_, ok := v.(Void)
	return ok
}
