package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/you-not-fish/bsl/internal/diag"
	"github.com/you-not-fish/bsl/internal/pipeline"
	"github.com/you-not-fish/bsl/internal/syntax"
)

const (
	historyFile = ".bsl_history"
	promptMain  = "> "
	promptCont  = "  "
)

var banner = fmt.Sprintf("BSL %s\nCtrl+C cancels input, Ctrl+D exits. Type :reset to forget definitions, :quit to exit.", Version)

// runREPL reads submissions until end of input and evaluates each one
// against p, so definitions carry over between submissions.
func runREPL(p *pipeline.Pipeline) int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		code, ok := readSubmission(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			break
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return 0
			case ":reset":
				p.Reset()
				fmt.Println("definitions cleared")
			default:
				fmt.Println("unknown command. Type :reset or :quit.")
			}
			continue
		}

		p.Evaluate(code)
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}

	return 0
}

// readSubmission prompts for lines until they form a complete
// submission. It returns false at end of input.
func readSubmission(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if incomplete(src) {
			continue
		}
		return src, true
	}
}

// incomplete reports whether src ends inside an open list, string or
// block comment, so that more input could complete it.
func incomplete(src string) bool {
	toks, errs := syntax.Lex("", src)
	for _, e := range errs {
		if e.Msg == diag.UnclosedString || e.Msg == diag.UnclosedBlockComment {
			return true
		}
	}
	if len(errs) > 0 {
		return false
	}
	_, errs = syntax.Read(toks)
	for _, e := range errs {
		for _, open := range []string{"(", "[", "{"} {
			if e.Msg == diag.ExpectedClosingParen(open) {
				return true
			}
		}
	}
	return false
}
