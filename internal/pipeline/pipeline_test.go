package pipeline

import (
	"bytes"
	"strings"
	"testing"

	"github.com/you-not-fish/bsl/internal/eval"
	"github.com/you-not-fish/bsl/internal/syntax"
	"github.com/you-not-fish/bsl/internal/value"
)

// recorder collects everything a pipeline reports.
type recorder struct {
	errors []string
	values []string
	tests  []eval.TestResult
	unused []string

	successCalls int
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnErrors: func(errs []*syntax.Error) {
			for _, e := range errs {
				r.errors = append(r.errors, e.Span.String()+": "+e.Msg)
			}
		},
		OnSuccess: func(vals []value.Value) {
			r.successCalls++
			r.values = append(r.values, value.Printer{}.SprintAll(vals)...)
		},
		OnTests:  func(tests []eval.TestResult) { r.tests = append(r.tests, tests...) },
		OnUnused: func(span syntax.Span) { r.unused = append(r.unused, span.String()) },
	}
}

func newTestPipeline(opts Options) (*Pipeline, *recorder) {
	r := &recorder{}
	if opts.Seed == 0 {
		opts.Seed = 1
	}
	return New(opts, r.callbacks()), r
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		values string
		errors string
		passed int
		failed int
	}{
		{"addition", "(+ 1 2)", "3", "", 0, 0},
		{"passing test", "(define (f x) (+ x 1)) (check-expect (f 2) 3)", "", "", 1, 0},
		{"undefined function", "(check-expect (f 2) 3)", "", "1:16-1:17: f: this function is undefined", 0, 0},
		{"division by zero", "(/ 1 0)", "", "1:1-1:8: /: division by zero", 0, 0},
		{"division by zero after one", "(/ 5 1/1 0)", "", "1:1-1:12: /: division by zero", 0, 0},
		{"cond falls through", "(cond [(= 1 2) 'a])", "", "1:1-1:20: cond: all question results were false", 0, 0},
		{"struct accessor", "(define-struct pt (x y)) (pt-x (make-pt 1 2))", "1", "", 0, 0},
		{"failing test", "(check-expect 1 2)", "", "", 0, 1},
		{"read error", "(+ 1 2", "", "1:1-1:2: read-syntax: expected a `)` to close preceding `(`", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, r := newTestPipeline(DefaultOptions())
			out := p.Evaluate(tt.src)
			if got := strings.Join(r.values, " "); got != tt.values {
				t.Errorf("values = %q, want %q", got, tt.values)
			}
			if got := strings.Join(r.errors, "\n"); got != tt.errors {
				t.Errorf("errors = %q, want %q", got, tt.errors)
			}
			if len(out.Errors) != len(r.errors) {
				t.Errorf("Output has %d errors, callback got %d", len(out.Errors), len(r.errors))
			}
			passed, failed := 0, 0
			for _, res := range r.tests {
				if res.Passed {
					passed++
				} else {
					failed++
				}
			}
			if passed != tt.passed || failed != tt.failed {
				t.Errorf("tests passed/failed = %d/%d, want %d/%d", passed, failed, tt.passed, tt.failed)
			}
		})
	}
}

func TestSessionKeepsDefinitions(t *testing.T) {
	p, r := newTestPipeline(DefaultOptions())
	p.Evaluate("(define (sq x) (* x x))")
	p.Evaluate("(sq 4)")
	if got := strings.Join(r.values, " "); got != "16" {
		t.Fatalf("values = %q, want 16", got)
	}

	p.Evaluate("(define (sq x) x)")
	want := "1:10-1:12: sq: this name was defined previously and cannot be re-defined"
	if len(r.errors) != 1 || r.errors[0] != want {
		t.Fatalf("errors = %q, want %q", r.errors, want)
	}

	p.Reset()
	r.errors = nil
	p.Evaluate("(define (sq x) x)")
	if len(r.errors) != 0 {
		t.Errorf("after Reset: errors = %q", r.errors)
	}
}

func TestFailedCheckRollsBack(t *testing.T) {
	p, r := newTestPipeline(DefaultOptions())
	p.Evaluate("(define a 1) (undefined-thing)")
	if len(r.errors) != 1 {
		t.Fatalf("errors = %q, want one", r.errors)
	}
	r.errors = nil
	p.Evaluate("(define a 2) a")
	if len(r.errors) != 0 || strings.Join(r.values, " ") != "2" {
		t.Errorf("errors = %q, values = %q", r.errors, r.values)
	}
}

func TestFirstOrder(t *testing.T) {
	p, r := newTestPipeline(Options{})
	p.Evaluate("(define (f x) x) (map f (list 1))")
	if len(r.errors) == 0 {
		t.Fatalf("map accepted in first-order mode")
	}
	if r.successCalls != 0 {
		t.Errorf("OnSuccess called after errors")
	}
}

func TestRelaxedArityOption(t *testing.T) {
	p, r := newTestPipeline(Options{HigherOrder: true, RelaxedArity: true})
	p.Evaluate("(+)")
	if strings.Join(r.values, " ") != "0" || len(r.errors) != 0 {
		t.Errorf("values = %q, errors = %q", r.values, r.errors)
	}
}

func TestUnusedCallback(t *testing.T) {
	p, r := newTestPipeline(DefaultOptions())
	p.Evaluate("(define (f x) (if (= x 1) 1 2)) (f 1)")
	if got := strings.Join(r.unused, " "); got != "1:29-1:30" {
		t.Errorf("unused = %q, want 1:29-1:30", got)
	}

	r.unused = nil
	p.Evaluate("(/ 1 0) 7")
	if got := strings.Join(r.unused, " "); got != "1:9-1:10" {
		t.Errorf("unused after runtime error = %q, want 1:9-1:10", got)
	}

	r.unused = nil
	p.Evaluate("(+ 1")
	if len(r.unused) != 0 {
		t.Errorf("unused reported for unreadable code: %q", r.unused)
	}
}

func TestTrace(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Trace = &buf
	opts.DumpAfter = "read"
	p, _ := newTestPipeline(opts)
	p.Evaluate("(+ 1 2)")
	out := buf.String()
	for _, want := range []string{"lex ", "read ", "build ", "check ", "eval ", "--- after read ---", "(+ 1 2)"} {
		if !strings.Contains(out, want) {
			t.Errorf("trace missing %q:\n%s", want, out)
		}
	}
}
