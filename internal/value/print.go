package value

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Printer renders values as the REPL shows them.
type Printer struct {
	// AbbreviatedList prints lists as (list 1 2) instead of
	// (cons 1 (cons 2 '())).
	AbbreviatedList bool
}

var defaultPrinter Printer

// Sprint renders v.
func (p Printer) Sprint(v Value) string {
	var b strings.Builder
	p.write(&b, v)
	return b.String()
}

// SprintAll renders each value in vs.
func (p Printer) SprintAll(vs []Value) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = p.Sprint(v)
	}
	return out
}

func (p Printer) write(b *strings.Builder, v Value) {
	switch v := v.(type) {
	case Bool:
		if v {
			b.WriteString("#true")
		} else {
			b.WriteString("#false")
		}
	case Char:
		b.WriteString(charString(rune(v)))
	case String:
		writeString(b, string(v))
	case Symbol:
		if strings.ContainsAny(string(v), " \n()[]{}\"'`,;") || v == "" {
			b.WriteString("'|" + string(v) + "|")
		} else {
			b.WriteString("'" + string(v))
		}
	case Number:
		b.WriteString(formatNumber(v))
	case *List:
		p.writeList(b, v)
	case *Struct:
		b.WriteString("(make-" + v.Type.Name)
		for _, f := range v.Fields {
			b.WriteByte(' ')
			p.write(b, f)
		}
		b.WriteByte(')')
	case Procedure:
		b.WriteString(procString(v))
	default:
		b.WriteString(v.String())
	}
}

func (p Printer) writeList(b *strings.Builder, l *List) {
	if l.IsEmpty() {
		b.WriteString("'()")
		return
	}
	if p.AbbreviatedList {
		b.WriteString("(list")
		for ; !l.IsEmpty(); l = l.rest {
			b.WriteByte(' ')
			p.write(b, l.first)
		}
		b.WriteByte(')')
		return
	}
	n := l.Len()
	for ; !l.IsEmpty(); l = l.rest {
		b.WriteString("(cons ")
		p.write(b, l.first)
		b.WriteByte(' ')
	}
	b.WriteString("'()")
	b.WriteString(strings.Repeat(")", n))
}

// procString names a procedure; anonymous lambdas show their shape.
func procString(p Procedure) string {
	if name := p.ProcName(); name != "" {
		return name
	}
	n := p.Arity()
	if n < 0 {
		return "(lambda args ...)"
	}
	params := make([]string, n)
	for i := range params {
		params[i] = "a" + strconv.Itoa(i+1)
	}
	return "(lambda (" + strings.Join(params, " ") + ") ...)"
}

var charNames = map[rune]string{
	0:    "nul",
	'\b': "backspace",
	'\t': "tab",
	'\n': "newline",
	'\v': "vtab",
	'\f': "page",
	'\r': "return",
	' ':  "space",
	0x7f: "rubout",
}

func charString(r rune) string {
	if name, ok := charNames[r]; ok {
		return `#\` + name
	}
	return `#\` + string(r)
}

var stringEscapes = map[rune]string{
	'\a': `\a`,
	'\b': `\b`,
	'\t': `\t`,
	'\n': `\n`,
	'\v': `\v`,
	'\f': `\f`,
	'\r': `\r`,
	0x1b: `\e`,
	'"':  `\"`,
	'\\': `\\`,
}

func writeString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		if esc, ok := stringEscapes[r]; ok {
			b.WriteString(esc)
		} else {
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
}

// formatNumber prints integers as such and other rationals in decimal
// notation; inexact numbers get a #i prefix.
func formatNumber(n Number) string {
	if !n.exact {
		return "#i" + formatFloat(n.flo)
	}
	if n.rat.IsInt() {
		return n.rat.Num().String()
	}
	return formatRat(n.rat)
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "+nan.0"
	case math.IsInf(f, 1):
		return "+inf.0"
	case math.IsInf(f, -1):
		return "-inf.0"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// formatRat prints the exact integer part followed by the fraction
// rounded to double precision.
func formatRat(r *big.Rat) string {
	abs := new(big.Rat).Abs(r)
	ip := new(big.Int).Quo(abs.Num(), abs.Denom())
	frac := new(big.Rat).Sub(abs, new(big.Rat).SetInt(ip))
	ff, _ := frac.Float64()
	fs := strconv.FormatFloat(ff, 'f', -1, 64)
	if fs == "1" {
		fs = strconv.FormatFloat(math.Nextafter(1, 0), 'f', -1, 64)
	}
	sign := ""
	if r.Sign() < 0 {
		sign = "-"
	}
	return sign + ip.String() + strings.TrimPrefix(fs, "0")
}
