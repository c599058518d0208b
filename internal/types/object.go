package types

import "github.com/you-not-fish/bsl/internal/syntax"

// VarKind classifies what a name is bound to, as far as the checker
// can tell without evaluating anything.
type VarKind int

const (
	Data VarKind = iota
	UserDefinedFunction
	PrimitiveFunction
	StructureType
)

var varKindNames = [...]string{
	Data:                "data",
	UserDefinedFunction: "user-defined function",
	PrimitiveFunction:   "primitive function",
	StructureType:       "structure type",
}

func (k VarKind) String() string {
	return varKindNames[k]
}

// IsFunction reports whether names of this kind may appear in call position.
func (k VarKind) IsFunction() bool {
	return k == UserDefinedFunction || k == PrimitiveFunction
}

// Object represents a named entity: a variable, a function, a primitive
// or a structure type.
type Object interface {
	Name() string      // object name
	Kind() VarKind     // what the name is bound to
	Span() syntax.Span // declaration span; NoSpan for primitives
	Parent() *Scope    // enclosing scope

	setParent(*Scope)
	aObject()
}

type object struct {
	name   string
	span   syntax.Span
	parent *Scope
}

func (o *object) Name() string       { return o.name }
func (o *object) Span() syntax.Span  { return o.span }
func (o *object) Parent() *Scope     { return o.parent }
func (o *object) setParent(s *Scope) { o.parent = s }
func (*object) aObject()             {}

// Var is a name bound to data: a defined constant, a parameter or a
// local binding.
type Var struct {
	object
}

// NewVar creates a new variable object.
func NewVar(span syntax.Span, name string) *Var {
	return &Var{object{name: name, span: span}}
}

func (*Var) Kind() VarKind { return Data }

// Func is a user-defined function.
type Func struct {
	object
	arity int
}

// NewFunc creates a function object with the given number of parameters.
func NewFunc(span syntax.Span, name string, arity int) *Func {
	return &Func{object: object{name: name, span: span}, arity: arity}
}

func (*Func) Kind() VarKind { return UserDefinedFunction }

// Arity returns the number of parameters.
func (f *Func) Arity() int { return f.arity }

// Builtin is a primitive procedure.
type Builtin struct {
	object
}

// NewBuiltin creates a primitive function object.
func NewBuiltin(name string) *Builtin {
	return &Builtin{object{name: name}}
}

func (*Builtin) Kind() VarKind { return PrimitiveFunction }

// TypeName is the name of a structure type introduced by define-struct.
type TypeName struct {
	object
	fields []string
}

// NewTypeName creates a structure type object.
func NewTypeName(span syntax.Span, name string, fields []string) *TypeName {
	return &TypeName{object: object{name: name, span: span}, fields: fields}
}

func (*TypeName) Kind() VarKind { return StructureType }

// Fields returns the structure's field names.
func (t *TypeName) Fields() []string { return t.fields }

// StructNames returns the names define-struct introduces for a
// structure: the constructor, the predicate and one accessor per field.
func StructNames(name string, fields []string) []string {
	names := []string{"make-" + name, name + "?"}
	for _, f := range fields {
		names = append(names, name+"-"+f)
	}
	return names
}
