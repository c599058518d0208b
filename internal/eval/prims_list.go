package eval

import (
	"strconv"

	"github.com/you-not-fish/bsl/internal/diag"
	"github.com/you-not-fish/bsl/internal/syntax"
	"github.com/you-not-fish/bsl/internal/value"
)

func list(v value.Value) *value.List { return v.(*value.List) }

func primCons(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	return value.Cons(args[0], list(args[1])), nil
}

func primFirst(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	return list(args[0]).First(), nil
}

func primRest(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	return list(args[0]).Rest(), nil
}

// nth returns a selector for the i-th (0-based) element, as in second.
func nth(name string, i int) primFn {
	return func(ev *Evaluator, args []value.Value, span syntax.Span) (value.Value, error) {
		l, ok := args[0].(*value.List)
		if !ok || l.Len() <= i {
			return nil, syntax.NewError(span, diag.WrongType(name, "list with "+strconv.Itoa(i+1)+" or more elements", ev.sprint(args[0])))
		}
		return l.Index(i), nil
	}
}

func primList(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	return value.NewList(args...), nil
}

func primListStar(ev *Evaluator, args []value.Value, span syntax.Span) (value.Value, error) {
	last := args[len(args)-1]
	l, ok := last.(*value.List)
	if !ok {
		return nil, syntax.NewError(span, diag.NthWrongType("list*", "list", len(args), ev.sprint(last)))
	}
	for i := len(args) - 2; i >= 0; i-- {
		l = value.Cons(args[i], l)
	}
	return l, nil
}

func primLength(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	return value.NewInt(int64(list(args[0]).Len())), nil
}

func primAppend(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	var vals []value.Value
	for _, arg := range args {
		vals = append(vals, list(arg).Slice()...)
	}
	return value.NewList(vals...), nil
}

func primReverse(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	r := value.Empty
	for l := list(args[0]); !l.IsEmpty(); l = l.Rest() {
		r = value.Cons(l.First(), r)
	}
	return r, nil
}

func primMember(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	for l := list(args[1]); !l.IsEmpty(); l = l.Rest() {
		if value.Equal(args[0], l.First()) {
			return value.True, nil
		}
	}
	return value.False, nil
}

func primRemove(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	vals := list(args[1]).Slice()
	for i, v := range vals {
		if value.Equal(args[0], v) {
			return value.NewList(append(vals[:i:i], vals[i+1:]...)...), nil
		}
	}
	return args[1], nil
}

func primListRef(ev *Evaluator, args []value.Value, span syntax.Span) (value.Value, error) {
	l := list(args[0])
	i, ok := num(args[1]).Int64()
	if !ok || int(i) >= l.Len() {
		return nil, errorf(span, "list-ref: index too large for list; index: %s, in: %s", args[1], ev.sprint(l))
	}
	return l.Index(int(i)), nil
}

func primLast(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	l := list(args[0])
	return l.Index(l.Len() - 1), nil
}

// assocBy finds the first pair in the association list whose first
// element matches key.
func assocBy(name string, eq func(a, b value.Value) bool) primFn {
	return func(ev *Evaluator, args []value.Value, span syntax.Span) (value.Value, error) {
		for l := list(args[1]); !l.IsEmpty(); l = l.Rest() {
			pair, ok := l.First().(*value.List)
			if !ok || pair.IsEmpty() {
				return nil, syntax.NewError(span, diag.NthWrongType(name, "association list", 2, ev.sprint(args[1])))
			}
			if eq(args[0], pair.First()) {
				return pair, nil
			}
		}
		return value.False, nil
	}
}

func isCons(v value.Value) bool {
	l, ok := v.(*value.List)
	return ok && !l.IsEmpty()
}

func isEmpty(v value.Value) bool {
	l, ok := v.(*value.List)
	return ok && l.IsEmpty()
}

var listPrims = []*Primitive{
	prim("cons", fixed(2).args(tAny, tList), primCons),
	prim("cons?", fixed(1), typeOf(isCons)),
	prim("empty?", fixed(1), typeOf(isEmpty)),
	prim("null?", fixed(1), typeOf(isEmpty)),
	prim("list?", fixed(1), typeOf(tList.Accepts)),
	prim("first", fixed(1).only(tCons), primFirst),
	prim("rest", fixed(1).only(tCons), primRest),
	prim("second", fixed(1), nth("second", 1)),
	prim("third", fixed(1), nth("third", 2)),
	prim("fourth", fixed(1), nth("fourth", 3)),
	prim("fifth", fixed(1), nth("fifth", 4)),
	prim("list", atLeast(0), primList),
	prim("list*", atLeast(1), primListStar),
	prim("length", fixed(1).only(tList), primLength),
	prim("append", atLeast(0).all(tList), primAppend),
	prim("reverse", fixed(1).only(tList), primReverse),
	prim("member", fixed(2).args(tAny, tList), primMember),
	prim("member?", fixed(2).args(tAny, tList), primMember),
	prim("remove", fixed(2).args(tAny, tList), primRemove),
	prim("list-ref", fixed(2).args(tList, tNat), primListRef),
	prim("last", fixed(1).only(tCons), primLast),
	prim("assoc", fixed(2).args(tAny, tList), assocBy("assoc", value.Equal)),
	prim("assq", fixed(2).args(tAny, tList), assocBy("assq", value.Eq)),
}
