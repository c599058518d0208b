package ast

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestWalkVisitsAllNodes(t *testing.T) {
	prog := mustBuild(t, "(define (f x) (if (> x 0) (+ x 1) (- x)))")
	count := 0
	var vars []string
	Inspect(prog.Nodes[0], func(n Node) bool {
		count++
		if v, ok := n.(*VarNode); ok {
			vars = append(vars, v.Name)
		}
		return true
	})
	// DefnVar, Lambda, param x, If, 3 FunApps with 3 callee vars,
	// 4 argument vars/atoms of the calls: > x 0, + x 1, - x
	if count != 15 {
		t.Errorf("visited %d nodes, want 15", count)
	}
	want := "x > x + x - x"
	if got := strings.Join(vars, " "); got != want {
		t.Errorf("vars = %q, want %q", got, want)
	}
}

func TestWalkPrunes(t *testing.T) {
	prog := mustBuild(t, "(and (f 1) (g 2))")
	count := 0
	Walk(prog.Nodes[0], func(n Node) bool {
		count++
		_, isApp := n.(*FunAppNode)
		return !isApp
	})
	if count != 3 {
		t.Errorf("visited %d nodes, want 3", count)
	}
}

func TestFprint(t *testing.T) {
	prog := mustBuild(t, "(define (sq x) (* x x))\n(check-expect (sq 2) 4)")
	var buf bytes.Buffer
	FprintProgram(&buf, prog)
	out := buf.String()
	for _, want := range []string{
		"DefnVar 1:1-1:24 sq\n",
		"  Lambda 1:1-1:24 sq\n",
		"    Params: x\n",
		"          Var 1:17-1:18 *\n",
		"Check 2:1-2:24 check-expect\n",
		"    Atom 2:22-2:23 4\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFprintJSON(t *testing.T) {
	prog := mustBuild(t, "(define-struct posn (x y)) (cond [(posn? p) 'yes] [else #false])")
	var buf bytes.Buffer
	if err := FprintProgramJSON(&buf, prog); err != nil {
		t.Fatal(err)
	}
	var nodes []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &nodes); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(nodes))
	}
	if nodes[0]["type"] != "DefnStruct" || nodes[0]["name"] != "posn" {
		t.Errorf("first node = %v", nodes[0])
	}
	clauses, ok := nodes[1]["clauses"].([]interface{})
	if nodes[1]["type"] != "Cond" || !ok || len(clauses) != 2 {
		t.Errorf("second node = %v", nodes[1])
	}
}
