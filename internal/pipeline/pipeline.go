// Package pipeline connects the interpreter stages: lexing, reading,
// building the AST, checking and evaluation. A Pipeline keeps the
// definitions of earlier submissions, as a REPL session does.
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/you-not-fish/bsl/internal/ast"
	"github.com/you-not-fish/bsl/internal/check"
	"github.com/you-not-fish/bsl/internal/eval"
	"github.com/you-not-fish/bsl/internal/syntax"
	"github.com/you-not-fish/bsl/internal/value"
)

// Options configures a Pipeline.
type Options struct {
	// HigherOrder enables lambda, function values and the higher-order
	// primitives.
	HigherOrder bool

	// AbbreviatedList prints lists as (list 1 2).
	AbbreviatedList bool

	// RelaxedArity allows (+), (* 2) and the like.
	RelaxedArity bool

	MaxDepth int   // call depth limit; 0 means eval.DefaultMaxDepth
	Seed     int64 // random seed; 0 seeds from the clock

	// Trace, if set, receives the duration of every stage.
	Trace io.Writer

	// DumpAfter names a stage ("lex", "read", "build", or "*" for all)
	// whose product is written to Trace.
	DumpAfter string
}

// DefaultOptions returns the options of the full teaching language.
func DefaultOptions() Options {
	return Options{HigherOrder: true}
}

// Callbacks receive the outcome of Evaluate. Any of them may be nil.
type Callbacks struct {
	OnErrors  func(errs []*syntax.Error)
	OnSuccess func(vals []value.Value)
	OnTests   func(tests []eval.TestResult)

	// OnUnused is called for each piece of code that was never
	// evaluated, after evaluation succeeded or failed at run time.
	OnUnused func(span syntax.Span)
}

// Output is the outcome of one Evaluate call.
type Output struct {
	Values []value.Value
	Errors []*syntax.Error
	Tests  []eval.TestResult
}

// Pipeline evaluates source code submissions against a persistent
// session.
type Pipeline struct {
	opts    Options
	cb      Callbacks
	ev      *eval.Evaluator
	session *check.Session
}

// New creates a pipeline with an empty session.
func New(opts Options, cb Callbacks) *Pipeline {
	ev := eval.New(eval.Config{
		MaxDepth:     opts.MaxDepth,
		HigherOrder:  opts.HigherOrder,
		RelaxedArity: opts.RelaxedArity,
		Printer:      value.Printer{AbbreviatedList: opts.AbbreviatedList},
		Seed:         opts.Seed,
	})
	modules := make(map[string]check.Module)
	for name, m := range ev.Modules() {
		modules[name] = check.Module{Functions: m.Functions(), Data: m.Data()}
	}
	session := check.NewSession(&check.Config{
		HigherOrder: opts.HigherOrder,
		Universe:    ev.Primitives().Universe(),
		Modules:     modules,
	})
	return &Pipeline{opts: opts, cb: cb, ev: ev, session: session}
}

// Printer returns the printer matching the pipeline's options.
func (p *Pipeline) Printer() value.Printer {
	return value.Printer{AbbreviatedList: p.opts.AbbreviatedList}
}

// Reset forgets every definition and reseeds the random number
// generator.
func (p *Pipeline) Reset() {
	p.session.Reset()
	p.ev.Reset()
}

// state carries the products of the stages.
type state struct {
	filename string
	code     string
	toks     []syntax.Token
	forms    []syntax.SExpr
	prog     *ast.Program
	used     ast.UsedSet
	res      *eval.Result
}

// A stage transforms the state and reports its errors.
type stage struct {
	name string
	run  func(p *Pipeline, st *state) []*syntax.Error
	dump func(w io.Writer, st *state)
}

var stages = []stage{
	{name: "lex", run: (*Pipeline).lex, dump: dumpTokens},
	{name: "read", run: (*Pipeline).read, dump: dumpForms},
	{name: "build", run: (*Pipeline).build, dump: dumpProgram},
	{name: "check", run: (*Pipeline).check},
	{name: "eval", run: (*Pipeline).eval},
}

// Evaluate runs code through every stage. The first stage reporting
// errors ends the run; OnErrors receives all errors of that stage.
func (p *Pipeline) Evaluate(code string) Output {
	return p.EvaluateFile("", code)
}

// EvaluateFile is like Evaluate; filename appears in error positions.
func (p *Pipeline) EvaluateFile(filename, code string) Output {
	st := &state{filename: filename, code: code}
	for _, s := range stages {
		start := time.Now()
		errs := s.run(p, st)
		if p.opts.Trace != nil {
			fmt.Fprintf(p.opts.Trace, "%-6s %v\n", s.name, time.Since(start))
			if s.dump != nil && (p.opts.DumpAfter == "*" || p.opts.DumpAfter == s.name) && len(errs) == 0 {
				fmt.Fprintf(p.opts.Trace, "--- after %s ---\n", s.name)
				s.dump(p.opts.Trace, st)
			}
		}
		if len(errs) > 0 {
			return p.fail(st, errs)
		}
	}
	return p.succeed(st)
}

func (p *Pipeline) fail(st *state, errs []*syntax.Error) Output {
	out := Output{Errors: errs}
	if st.res != nil {
		out.Values = st.res.Values
		out.Tests = st.res.Tests
	}
	if p.cb.OnErrors != nil {
		p.cb.OnErrors(errs)
	}
	if p.cb.OnTests != nil {
		p.cb.OnTests(out.Tests)
	}
	if st.res != nil {
		p.reportUnused(st)
	}
	return out
}

func (p *Pipeline) succeed(st *state) Output {
	out := Output{Values: st.res.Values, Tests: st.res.Tests}
	if p.cb.OnSuccess != nil {
		p.cb.OnSuccess(out.Values)
	}
	if p.cb.OnTests != nil {
		p.cb.OnTests(out.Tests)
	}
	p.reportUnused(st)
	return out
}

func (p *Pipeline) reportUnused(st *state) {
	if p.cb.OnUnused != nil {
		eval.Unused(st.prog, st.used, p.cb.OnUnused)
	}
}

func (p *Pipeline) lex(st *state) []*syntax.Error {
	var errs []*syntax.Error
	st.toks, errs = syntax.Lex(st.filename, st.code)
	return errs
}

func (p *Pipeline) read(st *state) []*syntax.Error {
	var errs []*syntax.Error
	st.forms, errs = syntax.Read(st.toks)
	return errs
}

func (p *Pipeline) build(st *state) []*syntax.Error {
	var errs []*syntax.Error
	st.prog, errs = ast.Build(st.forms, ast.Config{HigherOrder: p.opts.HigherOrder})
	return errs
}

func (p *Pipeline) check(st *state) []*syntax.Error {
	return p.session.Check(st.prog)
}

func (p *Pipeline) eval(st *state) []*syntax.Error {
	st.used = make(ast.UsedSet)
	st.res = p.ev.Eval(st.prog, st.used)
	if st.res.Err != nil {
		return []*syntax.Error{st.res.Err}
	}
	return nil
}

func dumpTokens(w io.Writer, st *state) {
	for _, tok := range st.toks {
		fmt.Fprintf(w, "%-12s %s\n", tok.Span, tok)
	}
}

func dumpForms(w io.Writer, st *state) {
	for _, e := range st.forms {
		fmt.Fprintln(w, syntax.Stringify(e))
	}
}

func dumpProgram(w io.Writer, st *state) {
	ast.FprintProgram(w, st.prog)
}
