package e2e

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/you-not-fish/bsl/internal/eval"
	"github.com/you-not-fish/bsl/internal/pipeline"
	"github.com/you-not-fish/bsl/internal/syntax"
	"github.com/you-not-fish/bsl/internal/value"
)

var update = flag.Bool("update", false, "rewrite .golden files with the current output")

// TestE2E runs end-to-end tests for all .rkt files in testdata/.
// Each test:
//  1. Runs the full pipeline: lex → read → build → check → eval
//  2. Renders values, errors and test outcomes in callback order
//  3. Compares the rendering against the .golden file
//
// Files named unused_*.rkt also report code that was never evaluated.
func TestE2E(t *testing.T) {
	testFiles, err := filepath.Glob("testdata/*.rkt")
	if err != nil {
		t.Fatal(err)
	}
	if len(testFiles) == 0 {
		t.Fatal("no .rkt test files found in testdata/")
	}

	for _, testFile := range testFiles {
		name := strings.TrimSuffix(filepath.Base(testFile), ".rkt")
		t.Run(name, func(t *testing.T) {
			runE2ETest(t, testFile, strings.HasPrefix(name, "unused_"))
		})
	}
}

// runE2ETest runs a single end-to-end test.
func runE2ETest(t *testing.T, rktFile string, reportUnused bool) {
	t.Helper()

	src, err := os.ReadFile(rktFile)
	if err != nil {
		t.Fatalf("reading source: %v", err)
	}

	got := render(string(src), reportUnused)

	goldenFile := strings.TrimSuffix(rktFile, ".rkt") + ".golden"
	if *update {
		if err := os.WriteFile(goldenFile, []byte(got), 0o644); err != nil {
			t.Fatalf("writing golden file: %v", err)
		}
		return
	}
	expected, err := os.ReadFile(goldenFile)
	if err != nil {
		t.Fatalf("reading golden file: %v", err)
	}

	if got != string(expected) {
		t.Errorf("output mismatch for %s\n--- expected ---\n%s\n--- got ---\n%s",
			filepath.Base(rktFile), expected, got)
	}
}

// render evaluates src in a fresh pipeline with a fixed seed and
// returns everything the callbacks received.
func render(src string, reportUnused bool) string {
	var b strings.Builder
	opts := pipeline.DefaultOptions()
	opts.Seed = 1
	pr := value.Printer{}
	cb := pipeline.Callbacks{
		OnErrors: func(errs []*syntax.Error) {
			for _, e := range errs {
				fmt.Fprintf(&b, "error: %s: %s\n", e.Span, e.Msg)
			}
		},
		OnSuccess: func(vals []value.Value) {
			for _, v := range vals {
				fmt.Fprintln(&b, pr.Sprint(v))
			}
		},
		OnTests: func(tests []eval.TestResult) {
			for _, tr := range tests {
				if tr.Passed {
					fmt.Fprintf(&b, "ok %s\n", tr.Span)
					continue
				}
				fmt.Fprintf(&b, "FAIL %s\n  %s\n", tr.Span, strings.ReplaceAll(tr.Msg, "\n", "\n  "))
			}
		},
	}
	if reportUnused {
		cb.OnUnused = func(span syntax.Span) {
			fmt.Fprintf(&b, "unused %s\n", span)
		}
	}
	pipeline.New(opts, cb).Evaluate(src)
	return b.String()
}
