package eval

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/you-not-fish/bsl/internal/syntax"
	"github.com/you-not-fish/bsl/internal/value"
)

func str(v value.Value) string { return string(v.(value.String)) }

func str1(f func(string) value.Value) primFn {
	return func(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
		return f(str(args[0])), nil
	}
}

// strCompare implements chained string comparisons.
func strCompare(key func(string) string, ok func(c int) bool) primFn {
	return func(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
		for i := 1; i < len(args); i++ {
			if !ok(strings.Compare(key(str(args[i-1])), key(str(args[i])))) {
				return value.False, nil
			}
		}
		return value.True, nil
	}
}

func identityKey(s string) string { return s }

// every reports whether s is non-empty and every rune satisfies f.
func every(f func(rune) bool) func(string) value.Value {
	return func(s string) value.Value {
		if s == "" {
			return value.False
		}
		for _, r := range s {
			if !f(r) {
				return value.False
			}
		}
		return value.True
	}
}

func runeIndex(span syntax.Span, name string, s string, v value.Value, limit int) (int, error) {
	i, ok := num(v).Int64()
	if !ok || i < 0 || int(i) > limit {
		return 0, errorf(span, "%s: index is out of range; index: %s, valid range: [0, %d], string: %s",
			name, v, limit, value.String(s))
	}
	return int(i), nil
}

func primSubstring(_ *Evaluator, args []value.Value, span syntax.Span) (value.Value, error) {
	rs := []rune(str(args[0]))
	start, err := runeIndex(span, "substring", string(rs), args[1], len(rs))
	if err != nil {
		return nil, err
	}
	end := len(rs)
	if len(args) == 3 {
		if end, err = runeIndex(span, "substring", string(rs), args[2], len(rs)); err != nil {
			return nil, err
		}
	}
	if end < start {
		return nil, errorf(span, "substring: ending index is smaller than starting index; ending index: %d, starting index: %d", end, start)
	}
	return value.String(rs[start:end]), nil
}

func primStringIth(_ *Evaluator, args []value.Value, span syntax.Span) (value.Value, error) {
	rs := []rune(str(args[0]))
	i, err := runeIndex(span, "string-ith", string(rs), args[1], len(rs)-1)
	if err != nil {
		return nil, err
	}
	return value.String(rs[i]), nil
}

func primStringAppend(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	var b strings.Builder
	for _, arg := range args {
		b.WriteString(str(arg))
	}
	return value.String(b.String()), nil
}

func primStringToNumber(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	n, err := value.ParseNumber(str(args[0]))
	if err != nil {
		return value.False, nil
	}
	return n, nil
}

func primStringContains(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	return value.Bool(strings.Contains(str(args[1]), str(args[0]))), nil
}

func primStringToList(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	var chars []value.Value
	for _, r := range str(args[0]) {
		chars = append(chars, value.Char(r))
	}
	return value.NewList(chars...), nil
}

func primListToString(ev *Evaluator, args []value.Value, span syntax.Span) (value.Value, error) {
	var b strings.Builder
	for _, v := range args[0].(*value.List).Slice() {
		c, ok := v.(value.Char)
		if !ok {
			return nil, errorf(span, "list->string: expects a list of characters, given %s", ev.sprint(args[0]))
		}
		b.WriteRune(rune(c))
	}
	return value.String(b.String()), nil
}

func primString(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	var b strings.Builder
	for _, arg := range args {
		b.WriteRune(rune(arg.(value.Char)))
	}
	return value.String(b.String()), nil
}

func primReplicate(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	n, _ := num(args[0]).Int64()
	return value.String(strings.Repeat(str(args[1]), int(n))), nil
}

func primExplode(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	var parts []value.Value
	for _, r := range str(args[0]) {
		parts = append(parts, value.String(r))
	}
	return value.NewList(parts...), nil
}

func primImplode(ev *Evaluator, args []value.Value, span syntax.Span) (value.Value, error) {
	var b strings.Builder
	for _, v := range args[0].(*value.List).Slice() {
		s, ok := v.(value.String)
		if !ok || utf8.RuneCountInString(string(s)) != 1 {
			return nil, errorf(span, "implode: expects a list of 1-letter strings, given %s", ev.sprint(args[0]))
		}
		b.WriteString(string(s))
	}
	return value.String(b.String()), nil
}

func primStringToSymbol(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	return value.Symbol(str(args[0])), nil
}

func primSymbolToString(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	return value.String(args[0].(value.Symbol)), nil
}

func primSymbolEq(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	return value.Bool(args[0] == args[1]), nil
}

// typeOf returns a one-argument predicate primitive body.
func typeOf(pred func(value.Value) bool) primFn {
	return func(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
		return value.Bool(pred(args[0])), nil
	}
}

var stringPrims = []*Primitive{
	prim("string?", fixed(1), typeOf(tString.Accepts)),
	prim("string-length", fixed(1).only(tString), str1(func(s string) value.Value {
		return value.NewInt(int64(utf8.RuneCountInString(s)))
	})),
	prim("string-append", atLeast(0).all(tString), primStringAppend),
	prim("substring", between(2, 3).args(tString, tNat, tNat), primSubstring),
	prim("string-ith", fixed(2).args(tString, tNat), primStringIth),
	prim("string=?", atLeast(2).all(tString), strCompare(identityKey, func(c int) bool { return c == 0 })),
	prim("string<?", atLeast(2).all(tString), strCompare(identityKey, func(c int) bool { return c < 0 })),
	prim("string>?", atLeast(2).all(tString), strCompare(identityKey, func(c int) bool { return c > 0 })),
	prim("string<=?", atLeast(2).all(tString), strCompare(identityKey, func(c int) bool { return c <= 0 })),
	prim("string>=?", atLeast(2).all(tString), strCompare(identityKey, func(c int) bool { return c >= 0 })),
	prim("string-ci=?", atLeast(2).all(tString), strCompare(strings.ToLower, func(c int) bool { return c == 0 })),
	prim("string-upcase", fixed(1).only(tString), str1(func(s string) value.Value { return value.String(strings.ToUpper(s)) })),
	prim("string-downcase", fixed(1).only(tString), str1(func(s string) value.Value { return value.String(strings.ToLower(s)) })),
	prim("string->number", fixed(1).only(tString), primStringToNumber),
	prim("string-contains?", fixed(2).all(tString), primStringContains),
	prim("string->list", fixed(1).only(tString), primStringToList),
	prim("list->string", fixed(1).only(tList), primListToString),
	prim("string", atLeast(0).all(tChar), primString),
	prim("replicate", fixed(2).args(tNat, tString), primReplicate),
	prim("explode", fixed(1).only(tString), primExplode),
	prim("implode", fixed(1).only(tList), primImplode),
	prim("string-whitespace?", fixed(1).only(tString), str1(every(unicode.IsSpace))),
	prim("string-alphabetic?", fixed(1).only(tString), str1(every(unicode.IsLetter))),
	prim("string-numeric?", fixed(1).only(tString), str1(every(unicode.IsDigit))),
	prim("string-upper-case?", fixed(1).only(tString), str1(every(unicode.IsUpper))),
	prim("string-lower-case?", fixed(1).only(tString), str1(every(unicode.IsLower))),

	prim("symbol?", fixed(1), typeOf(tSymbol.Accepts)),
	prim("symbol=?", fixed(2).all(tSymbol), primSymbolEq),
	prim("symbol->string", fixed(1).only(tSymbol), primSymbolToString),
	prim("string->symbol", fixed(1).only(tString), primStringToSymbol),
}

func char(v value.Value) rune { return rune(v.(value.Char)) }

func charPred(f func(rune) bool) primFn {
	return func(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
		return value.Bool(f(char(args[0]))), nil
	}
}

func charMap(f func(rune) rune) primFn {
	return func(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
		return value.Char(f(char(args[0]))), nil
	}
}

func charCompare(ok func(a, b rune) bool) primFn {
	return func(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
		for i := 1; i < len(args); i++ {
			if !ok(char(args[i-1]), char(args[i])) {
				return value.False, nil
			}
		}
		return value.True, nil
	}
}

func primCharToInteger(_ *Evaluator, args []value.Value, _ syntax.Span) (value.Value, error) {
	return value.NewInt(int64(char(args[0]))), nil
}

func primIntegerToChar(_ *Evaluator, args []value.Value, span syntax.Span) (value.Value, error) {
	n, ok := num(args[0]).Int64()
	if !ok || n > unicode.MaxRune || (n >= 0xD800 && n <= 0xDFFF) {
		return nil, errorf(span, "integer->char: expects a valid Unicode scalar value, given %s", args[0])
	}
	return value.Char(rune(n)), nil
}

var charPrims = []*Primitive{
	prim("char?", fixed(1), typeOf(tChar.Accepts)),
	prim("char->integer", fixed(1).only(tChar), primCharToInteger),
	prim("integer->char", fixed(1).only(tNat), primIntegerToChar),
	prim("char-upcase", fixed(1).only(tChar), charMap(unicode.ToUpper)),
	prim("char-downcase", fixed(1).only(tChar), charMap(unicode.ToLower)),
	prim("char-alphabetic?", fixed(1).only(tChar), charPred(unicode.IsLetter)),
	prim("char-numeric?", fixed(1).only(tChar), charPred(unicode.IsDigit)),
	prim("char-whitespace?", fixed(1).only(tChar), charPred(unicode.IsSpace)),
	prim("char-upper-case?", fixed(1).only(tChar), charPred(unicode.IsUpper)),
	prim("char-lower-case?", fixed(1).only(tChar), charPred(unicode.IsLower)),
	prim("char=?", atLeast(2).all(tChar), charCompare(func(a, b rune) bool { return a == b })),
	prim("char<?", atLeast(2).all(tChar), charCompare(func(a, b rune) bool { return a < b })),
	prim("char>?", atLeast(2).all(tChar), charCompare(func(a, b rune) bool { return a > b })),
}
