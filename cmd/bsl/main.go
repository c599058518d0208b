// Package main implements the bsl interpreter entry point.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/you-not-fish/bsl/internal/ast"
	"github.com/you-not-fish/bsl/internal/eval"
	"github.com/you-not-fish/bsl/internal/pipeline"
	"github.com/you-not-fish/bsl/internal/syntax"
	"github.com/you-not-fish/bsl/internal/value"
)

// Interpreter flags
var (
	emitTokens   = flag.Bool("emit-tokens", false, "Output token stream")
	emitSExpr    = flag.Bool("emit-sexpr", false, "Output S-expressions")
	emitAST      = flag.Bool("emit-ast", false, "Output AST")
	astFormat    = flag.String("ast-format", "text", "AST output format (text or json)")
	interactive  = flag.Bool("i", false, "Start a REPL after loading the input file, if any")
	firstOrder   = flag.Bool("first-order", false, "Disable lambda and higher-order functions")
	abbrevList   = flag.Bool("abbrev-list", false, "Print lists as (list ...)")
	relaxedArity = flag.Bool("relaxed-arity", false, "Allow (+), (* 2) and similar calls")
	maxDepth     = flag.Int("max-depth", eval.DefaultMaxDepth, "Maximum call depth")
	seed         = flag.Int64("seed", 0, "Random seed (0 seeds from the clock)")
	unused       = flag.Bool("unused", false, "Report code that was never evaluated")
	trace        = flag.Bool("trace", false, "Output timing trace")
	dumpAfter    = flag.String("dump-after", "", "Dump the product of a stage to the trace (name or \"*\")")
	version      = flag.Bool("version", false, "Print version")
)

// Version information
const Version = "0.1.0-dev"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "BSL Interpreter %s\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: bsl [options] [file.rkt]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Printf("bsl version %s\n", Version)
		fmt.Printf("go version %s\n", runtime.Version())
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		if *interactive {
			os.Exit(runREPL(newPipeline()))
		}
		fmt.Fprintln(os.Stderr, "error: no input file")
		fmt.Fprintln(os.Stderr, "usage: bsl [options] <file.rkt>")
		os.Exit(1)
	}

	filename := args[0]

	switch {
	case *emitTokens:
		os.Exit(runEmitTokens(filename))
	case *emitSExpr:
		os.Exit(runEmitSExpr(filename))
	case *emitAST:
		os.Exit(runEmitAST(filename))
	}

	p := newPipeline()
	code := runFile(p, filename)
	if *interactive {
		code = runREPL(p)
	}
	os.Exit(code)
}

func options() pipeline.Options {
	opts := pipeline.Options{
		HigherOrder:     !*firstOrder,
		AbbreviatedList: *abbrevList,
		RelaxedArity:    *relaxedArity,
		MaxDepth:        *maxDepth,
		Seed:            *seed,
		DumpAfter:       *dumpAfter,
	}
	if *trace {
		opts.Trace = os.Stderr
	}
	return opts
}

// newPipeline creates a pipeline configured from the flags whose
// results are printed to stdout and stderr.
func newPipeline() *pipeline.Pipeline {
	opts := options()
	return pipeline.New(opts, printer(os.Stdout, os.Stderr, opts, *unused))
}

// printer returns callbacks that print values to out and diagnostics
// to errOut.
func printer(out, errOut io.Writer, opts pipeline.Options, reportUnused bool) pipeline.Callbacks {
	pr := value.Printer{AbbreviatedList: opts.AbbreviatedList}
	cb := pipeline.Callbacks{
		OnErrors: func(errs []*syntax.Error) {
			for _, e := range errs {
				fmt.Fprintln(errOut, e)
			}
		},
		OnSuccess: func(vals []value.Value) {
			for _, v := range vals {
				fmt.Fprintln(out, pr.Sprint(v))
			}
		},
		OnTests: func(tests []eval.TestResult) {
			fmt.Fprint(out, testSummary(tests))
		},
	}
	if reportUnused {
		cb.OnUnused = func(span syntax.Span) {
			fmt.Fprintf(errOut, "%s: unused code\n", span)
		}
	}
	return cb
}

// testSummary formats test results the way DrRacket reports them.
func testSummary(tests []eval.TestResult) string {
	if len(tests) == 0 {
		return ""
	}
	var failed []eval.TestResult
	for _, t := range tests {
		if !t.Passed {
			failed = append(failed, t)
		}
	}
	var b strings.Builder
	switch {
	case len(failed) == 0 && len(tests) == 1:
		b.WriteString("The test passed!\n")
	case len(failed) == 0:
		fmt.Fprintf(&b, "All %d tests passed!\n", len(tests))
	case len(tests) == 1:
		b.WriteString("Ran 1 test.\n0 tests passed.\n")
	case len(failed) == len(tests):
		fmt.Fprintf(&b, "Ran %d tests.\n0 tests passed.\n", len(tests))
	default:
		fmt.Fprintf(&b, "Ran %d tests.\n%d of the %d tests failed.\n", len(tests), len(failed), len(tests))
	}
	if len(failed) > 0 {
		b.WriteString("\nCheck failures:\n")
		for _, t := range failed {
			fmt.Fprintf(&b, "  %s\n  at %s\n", strings.ReplaceAll(t.Msg, "\n", "\n  "), t.Span)
		}
	}
	return b.String()
}

// runFile evaluates the file and returns the exit code: 1 on errors or
// failed tests.
func runFile(p *pipeline.Pipeline, filename string) int {
	src, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	out := p.EvaluateFile(filename, string(src))
	if len(out.Errors) > 0 {
		return 1
	}
	for _, t := range out.Tests {
		if !t.Passed {
			return 1
		}
	}
	return 0
}

// runEmitTokens lexes the input file and prints all tokens with positions.
func runEmitTokens(filename string) int {
	src, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	toks, errs := syntax.Lex(filename, string(src))

	fmt.Printf("%-20s %-12s %s\n", "POSITION", "TOKEN", "TEXT")
	fmt.Printf("%-20s %-12s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 12), strings.Repeat("-", 20))
	for _, tok := range toks {
		fmt.Printf("%-20s %-12s %s\n", tok.Span.Start, tok.Kind, formatLiteral(tok.Text))
	}

	if len(errs) > 0 {
		fmt.Println()
		fmt.Println("Errors:")
		for _, e := range errs {
			fmt.Printf("  %s\n", e)
		}
		return 1
	}
	return 0
}

// formatLiteral formats token text for display, escaping special characters.
func formatLiteral(lit string) string {
	if lit == "" {
		return "\"\""
	}

	var b strings.Builder
	b.WriteRune('"')
	for _, r := range lit {
		switch r {
		case '\n':
			b.WriteString("\\n")
		case '\t':
			b.WriteString("\\t")
		case '\r':
			b.WriteString("\\r")
		case '\\':
			b.WriteString("\\\\")
		case '"':
			b.WriteString("\\\"")
		case 0:
			b.WriteString("\\0")
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune('"')
	return b.String()
}

// readForms lexes and reads the input file, printing errors.
func readForms(filename string) ([]syntax.SExpr, bool) {
	src, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return nil, false
	}
	toks, errs := syntax.Lex(filename, string(src))
	if len(errs) == 0 {
		var forms []syntax.SExpr
		forms, errs = syntax.Read(toks)
		if len(errs) == 0 {
			return forms, true
		}
	}
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e)
	}
	return nil, false
}

// runEmitSExpr reads the input file and prints one S-expression per line.
func runEmitSExpr(filename string) int {
	forms, ok := readForms(filename)
	if !ok {
		return 1
	}
	for _, e := range forms {
		fmt.Printf("%-20s %s\n", e.Span(), syntax.Stringify(e))
	}
	return 0
}

// runEmitAST builds the input file and outputs the AST.
func runEmitAST(filename string) int {
	forms, ok := readForms(filename)
	if !ok {
		return 1
	}
	prog, errs := ast.Build(forms, ast.Config{HigherOrder: !*firstOrder})

	// Print errors first
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e)
	}

	switch *astFormat {
	case "json":
		if err := ast.FprintProgramJSON(os.Stdout, prog); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
	default:
		ast.FprintProgram(os.Stdout, prog)
	}

	if len(errs) > 0 {
		return 1
	}
	return 0
}
