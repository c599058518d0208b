package value

// List is an immutable singly linked list. The empty list is Empty;
// cons cells share their tails.
type List struct {
	first  Value
	rest   *List
	length int
}

// Empty is the empty list '().
var Empty = &List{}

// Cons returns a new list with v in front of l.
func Cons(v Value, l *List) *List {
	return &List{first: v, rest: l, length: l.length + 1}
}

// NewList builds a list from vals.
func NewList(vals ...Value) *List {
	l := Empty
	for i := len(vals) - 1; i >= 0; i-- {
		l = Cons(vals[i], l)
	}
	return l
}

// IsEmpty reports whether l is '().
func (l *List) IsEmpty() bool { return l.length == 0 }

// Len returns the number of elements.
func (l *List) Len() int { return l.length }

// First returns the first element. l must not be empty.
func (l *List) First() Value { return l.first }

// Rest returns all but the first element. l must not be empty.
func (l *List) Rest() *List { return l.rest }

// Index returns the i-th element (0-based). i must be in range.
func (l *List) Index(i int) Value {
	for ; i > 0; i-- {
		l = l.rest
	}
	return l.first
}

// Slice returns the elements as a slice.
func (l *List) Slice() []Value {
	out := make([]Value, 0, l.length)
	for ; !l.IsEmpty(); l = l.rest {
		out = append(out, l.first)
	}
	return out
}
