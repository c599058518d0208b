package eval

import (
	"sort"
	"strings"

	"github.com/you-not-fish/bsl/internal/syntax"
	"github.com/you-not-fish/bsl/internal/value"
)

func primNot(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	return !args[0].(value.Bool), nil
}

func primBooleanEq(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	return value.Bool(args[0] == args[1]), nil
}

func equality(eq func(a, b value.Value) bool) primFn {
	return func(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
		return value.Bool(eq(args[0], args[1])), nil
	}
}

func primEqualWithin(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	return value.Bool(value.EqualWithin(args[0], args[1], num(args[2]))), nil
}

// primError raises an error built from its arguments. A leading symbol
// names the culprit; strings are included verbatim.
func primError(ev *Evaluator, args []value.Value, span syntax.Span) (value.Value, error) {
	var b strings.Builder
	for i, arg := range args {
		switch v := arg.(type) {
		case value.Symbol:
			if i == 0 && len(args) > 1 {
				b.WriteString(string(v) + ": ")
				continue
			}
			b.WriteString(string(v))
		case value.String:
			b.WriteString(string(v))
		default:
			b.WriteString(ev.sprint(v))
		}
	}
	return nil, syntax.NewError(span, b.String())
}

func primIdentity(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	return args[0], nil
}

func primVoid(*Evaluator, []value.Value, syntax.Span) (value.Value, error) {
	return value.Void{}, nil
}

func isStruct(v value.Value) bool {
	_, ok := v.(*value.Struct)
	return ok
}

var miscPrims = []*Primitive{
	prim("not", fixed(1).only(tBool), primNot),
	prim("boolean?", fixed(1), typeOf(tBool.Accepts)),
	prim("boolean=?", fixed(2).all(tBool), primBooleanEq),
	prim("false?", fixed(1), typeOf(value.IsFalse)),

	prim("eq?", fixed(2), equality(value.Eq)),
	prim("eqv?", fixed(2), equality(value.Eqv)),
	prim("equal?", fixed(2), equality(value.Equal)),
	prim("equal~?", fixed(3).args(tAny, tAny, tNonNegReal), primEqualWithin),

	prim("error", atLeast(0), primError),
	prim("identity", fixed(1), primIdentity),
	prim("void", atLeast(0), primVoid),
	prim("eof-object?", fixed(1), typeOf(isEOF)),
	prim("struct?", fixed(1), typeOf(isStruct)),
	prim("procedure?", fixed(1), typeOf(tProc.Accepts)),
}

func isEOF(v value.Value) bool {
	_, ok := v.(value.Eof)
	return ok
}

func proc(v value.Value) value.Procedure { return v.(value.Procedure) }

// boolResult insists that a procedure passed to name returned a boolean.
func boolResult(ev *Evaluator, name string, fn value.Procedure, v value.Value, span syntax.Span) (bool, error) {
	b, ok := v.(value.Bool)
	if !ok {
		return false, errorf(span, "%s: expected a boolean from %s, but received %s", name, procName(fn), ev.sprint(v))
	}
	return bool(b), nil
}

// sameLength checks that the list arguments of name, starting at
// position first (0-based), all have the same length.
func sameLength(ev *Evaluator, name string, args []value.Value, first int, span syntax.Span) ([][]value.Value, error) {
	lists := make([][]value.Value, 0, len(args)-first)
	for _, arg := range args[first:] {
		lists = append(lists, list(arg).Slice())
	}
	for i := 1; i < len(lists); i++ {
		if len(lists[i]) != len(lists[0]) {
			return nil, errorf(span, "%s: all lists must have same size; arguments were: %s",
				name, strings.Join(ev.conf.Printer.SprintAll(args), " "))
		}
	}
	return lists, nil
}

// column returns the i-th element of each list.
func column(lists [][]value.Value, i int) []value.Value {
	col := make([]value.Value, len(lists))
	for j, l := range lists {
		col[j] = l[i]
	}
	return col
}

func primMap(ev *Evaluator, args []value.Value, span syntax.Span) (value.Value, error) {
	fn := proc(args[0])
	lists, err := sameLength(ev, "map", args, 1, span)
	if err != nil {
		return nil, err
	}
	out := make([]value.Value, len(lists[0]))
	for i := range out {
		if out[i], err = ev.apply(fn, column(lists, i), span); err != nil {
			return nil, err
		}
	}
	return value.NewList(out...), nil
}

func primFilter(ev *Evaluator, args []value.Value, span syntax.Span) (value.Value, error) {
	fn := proc(args[0])
	var out []value.Value
	for _, v := range list(args[1]).Slice() {
		r, err := ev.apply(fn, []value.Value{v}, span)
		if err != nil {
			return nil, err
		}
		keep, err := boolResult(ev, "filter", fn, r, span)
		if err != nil {
			return nil, err
		}
		if keep {
			out = append(out, v)
		}
	}
	return value.NewList(out...), nil
}

// foldWith implements foldl (left) and foldr.
func foldWith(name string, left bool) primFn {
	return func(ev *Evaluator, args []value.Value, span syntax.Span) (value.Value, error) {
		fn := proc(args[0])
		lists, err := sameLength(ev, name, args, 2, span)
		if err != nil {
			return nil, err
		}
		acc := args[1]
		n := len(lists[0])
		for k := 0; k < n; k++ {
			i := k
			if !left {
				i = n - 1 - k
			}
			if acc, err = ev.apply(fn, append(column(lists, i), acc), span); err != nil {
				return nil, err
			}
		}
		return acc, nil
	}
}

// quantifier implements andmap (all) and ormap.
func quantifier(name string, all bool) primFn {
	return func(ev *Evaluator, args []value.Value, span syntax.Span) (value.Value, error) {
		fn := proc(args[0])
		lists, err := sameLength(ev, name, args, 1, span)
		if err != nil {
			return nil, err
		}
		for i := range lists[0] {
			r, err := ev.apply(fn, column(lists, i), span)
			if err != nil {
				return nil, err
			}
			b, err := boolResult(ev, name, fn, r, span)
			if err != nil {
				return nil, err
			}
			if b != all {
				return value.Bool(b), nil
			}
		}
		return value.Bool(all), nil
	}
}

func primBuildList(ev *Evaluator, args []value.Value, span syntax.Span) (value.Value, error) {
	n, _ := num(args[0]).Int64()
	fn := proc(args[1])
	out := make([]value.Value, n)
	for i := range out {
		var err error
		if out[i], err = ev.apply(fn, []value.Value{value.NewInt(int64(i))}, span); err != nil {
			return nil, err
		}
	}
	return value.NewList(out...), nil
}

func primApply(ev *Evaluator, args []value.Value, span syntax.Span) (value.Value, error) {
	last, ok := args[len(args)-1].(*value.List)
	if !ok {
		return nil, errorf(span, "apply: expects a list as last argument, given %s", ev.sprint(args[len(args)-1]))
	}
	vals := append(append([]value.Value(nil), args[1:len(args)-1]...), last.Slice()...)
	return ev.apply(proc(args[0]), vals, span)
}

func primSort(ev *Evaluator, args []value.Value, span syntax.Span) (value.Value, error) {
	vals := list(args[0]).Slice()
	less := proc(args[1])
	var err error
	sort.SliceStable(vals, func(i, j int) bool {
		if err != nil {
			return false
		}
		var r value.Value
		if r, err = ev.apply(less, []value.Value{vals[i], vals[j]}, span); err != nil {
			return false
		}
		var b bool
		b, err = boolResult(ev, "sort", less, r, span)
		return b
	})
	if err != nil {
		return nil, err
	}
	return value.NewList(vals...), nil
}

// argBest implements argmin (want -1) and argmax (want 1).
func argBest(name string, want int) primFn {
	return func(ev *Evaluator, args []value.Value, span syntax.Span) (value.Value, error) {
		fn := proc(args[0])
		var best value.Value
		var bestScore value.Number
		for _, v := range list(args[1]).Slice() {
			r, err := ev.apply(fn, []value.Value{v}, span)
			if err != nil {
				return nil, err
			}
			score, ok := r.(value.Number)
			if !ok || !tReal.Accepts(score) {
				return nil, errorf(span, "%s: expected a real number from %s, but received %s", name, procName(fn), ev.sprint(r))
			}
			if best == nil || value.Cmp(score, bestScore) == want {
				best, bestScore = v, score
			}
		}
		return best, nil
	}
}

func primCompose(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	procs := make([]value.Procedure, len(args))
	for i, arg := range args {
		procs[i] = proc(arg)
	}
	return &Composed{Procs: procs}, nil
}

func primMemf(ev *Evaluator, args []value.Value, span syntax.Span) (value.Value, error) {
	fn := proc(args[0])
	for l := list(args[1]); !l.IsEmpty(); l = l.Rest() {
		r, err := ev.apply(fn, []value.Value{l.First()}, span)
		if err != nil {
			return nil, err
		}
		if !value.IsFalse(r) {
			return l, nil
		}
	}
	return value.False, nil
}

func primAssf(ev *Evaluator, args []value.Value, span syntax.Span) (value.Value, error) {
	fn := proc(args[0])
	for l := list(args[1]); !l.IsEmpty(); l = l.Rest() {
		pair, ok := l.First().(*value.List)
		if !ok || pair.IsEmpty() {
			return nil, errorf(span, "assf: expects an association list, given %s", ev.sprint(args[1]))
		}
		r, err := ev.apply(fn, []value.Value{pair.First()}, span)
		if err != nil {
			return nil, err
		}
		if !value.IsFalse(r) {
			return pair, nil
		}
	}
	return value.False, nil
}

var higherOrderPrims = []*Primitive{
	hof("map", atLeast(2).args(tProc, tList, tList, tList, tList), primMap),
	hof("filter", fixed(2).args(tProc, tList), primFilter),
	hof("foldl", atLeast(3).args(tProc, tAny, tList, tList, tList), foldWith("foldl", true)),
	hof("foldr", atLeast(3).args(tProc, tAny, tList, tList, tList), foldWith("foldr", false)),
	hof("andmap", atLeast(2).args(tProc, tList, tList, tList), quantifier("andmap", true)),
	hof("ormap", atLeast(2).args(tProc, tList, tList, tList), quantifier("ormap", false)),
	hof("build-list", fixed(2).args(tNat, tProc), primBuildList),
	hof("apply", atLeast(2).args(tProc), primApply),
	hof("sort", fixed(2).args(tList, tProc), primSort),
	hof("argmin", fixed(2).args(tProc, tCons), argBest("argmin", -1)),
	hof("argmax", fixed(2).args(tProc, tCons), argBest("argmax", 1)),
	hof("compose", atLeast(1).all(tProc), primCompose),
	hof("memf", fixed(2).args(tProc, tList), primMemf),
	hof("assf", fixed(2).args(tProc, tList), primAssf),
}
