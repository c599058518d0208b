package eval

import (
	"github.com/you-not-fish/bsl/internal/ast"
	"github.com/you-not-fish/bsl/internal/diag"
	"github.com/you-not-fish/bsl/internal/syntax"
	"github.com/you-not-fish/bsl/internal/value"
)

// checkSeed is the seed the random number generator is reset to before
// each side of a check-random.
const checkSeed = 0

// try evaluates n in the global environment. A runtime error is returned
// as data so that tests can branch on it.
func (ev *Evaluator) try(n ast.Node) (value.Value, *syntax.Error) {
	ev.depth = 0
	v, err := ev.eval(n, ev.global)
	if err != nil {
		return nil, toError(err)
	}
	return v, nil
}

func pass(c ast.Check) TestResult {
	return TestResult{Passed: true, Span: c.Span()}
}

func fail(c ast.Check, msg string) TestResult {
	return TestResult{Msg: msg, Span: c.Span()}
}

// raised reports that evaluating a part of c raised err. expected
// describes the value c was waiting for, if known.
func raised(c ast.Check, expected string, err *syntax.Error) TestResult {
	if expected == "" {
		return fail(c, err.Msg)
	}
	return fail(c, diag.ErrorInsteadOfValue(c.Form(), expected, err.Msg))
}

// check runs the test c. Failures, including runtime errors raised by
// the tested expressions, are reported in the result; the returned
// error is reserved for malformed tests.
func (ev *Evaluator) check(c ast.Check) (TestResult, error) {
	ev.used.Use(c)

	switch c := c.(type) {
	case *ast.CheckNode:
		return ev.checkExpect(c), nil
	case *ast.CheckWithinNode:
		return ev.checkWithin(c), nil
	case *ast.CheckMemberOfNode:
		return ev.checkMemberOf(c), nil
	case *ast.CheckRangeNode:
		return ev.checkRange(c), nil
	case *ast.CheckSatisfiedNode:
		return ev.checkSatisfied(c), nil
	case *ast.CheckErrorNode:
		return ev.checkError(c)
	}
	panic("unreachable")
}

func (ev *Evaluator) checkExpect(c *ast.CheckNode) TestResult {
	random := c.Form() == "check-random"
	side := func(n ast.Node) (value.Value, *syntax.Error) {
		if random {
			ev.rng.Seed(checkSeed)
		}
		return ev.try(n)
	}
	actual, aerr := side(c.Actual)
	expected, eerr := side(c.Expected)
	switch {
	case eerr != nil:
		return raised(c, "", eerr)
	case aerr != nil:
		return raised(c, ev.sprint(expected), aerr)
	}
	if value.ContainsInexact(actual) || value.ContainsInexact(expected) {
		return fail(c, diag.CantCompareInexact(c.Form(), ev.sprint(actual), ev.sprint(expected)))
	}
	if !value.Equal(actual, expected) {
		return fail(c, diag.ActualNotExpected(ev.sprint(actual), ev.sprint(expected)))
	}
	return pass(c)
}

func (ev *Evaluator) checkWithin(c *ast.CheckWithinNode) TestResult {
	expected, err := ev.try(c.Expected)
	if err != nil {
		return raised(c, "", err)
	}
	within, err := ev.try(c.Within)
	if err != nil {
		return raised(c, "", err)
	}
	actual, err := ev.try(c.Actual)
	if err != nil {
		return raised(c, ev.sprint(expected), err)
	}
	eps, ok := within.(value.Number)
	if !ok || !tNonNegReal.Accepts(eps) {
		return fail(c, diag.NthWrongType(c.Form(), tNonNegReal.String(), 3, ev.sprint(within)))
	}
	if !value.EqualWithin(actual, expected, eps) {
		return fail(c, diag.NotWithin(ev.sprint(actual), ev.sprint(expected), ev.sprint(within)))
	}
	return pass(c)
}

func (ev *Evaluator) checkMemberOf(c *ast.CheckMemberOfNode) TestResult {
	against := make([]value.Value, len(c.Against))
	for i, n := range c.Against {
		v, err := ev.try(n)
		if err != nil {
			return raised(c, "", err)
		}
		against[i] = v
	}
	actual, err := ev.try(c.Actual)
	if err != nil {
		return raised(c, ev.sprint(against[0]), err)
	}
	for _, v := range against {
		if value.Equal(actual, v) {
			return pass(c)
		}
	}
	return fail(c, diag.NotMemberOf(ev.sprint(actual), ev.conf.Printer.SprintAll(against)))
}

func (ev *Evaluator) checkRange(c *ast.CheckRangeNode) TestResult {
	var bounds [2]value.Number
	for i, n := range []ast.Node{c.Lower, c.Upper} {
		v, err := ev.try(n)
		if err != nil {
			return raised(c, "", err)
		}
		b, ok := v.(value.Number)
		if !ok || !tReal.Accepts(b) {
			return fail(c, diag.NthWrongType(c.Form(), tReal.String(), i+2, ev.sprint(v)))
		}
		bounds[i] = b
	}
	lower, upper := bounds[0], bounds[1]
	v, err := ev.try(c.Actual)
	if err != nil {
		return raised(c, ev.sprint(lower), err)
	}
	actual, ok := v.(value.Number)
	if !ok || !tReal.Accepts(actual) {
		return fail(c, diag.NthWrongType(c.Form(), tReal.String(), 1, ev.sprint(v)))
	}
	if value.Cmp(lower, actual) > 0 || value.Cmp(actual, upper) > 0 {
		return fail(c, diag.NotInRange(ev.sprint(actual), ev.sprint(lower), ev.sprint(upper)))
	}
	return pass(c)
}

func (ev *Evaluator) checkSatisfied(c *ast.CheckSatisfiedNode) TestResult {
	actual, err := ev.try(c.Actual)
	if err != nil {
		return raised(c, "", err)
	}
	pv, err := ev.try(c.Pred)
	if err != nil {
		return raised(c, "", err)
	}
	pred, ok := pv.(value.Procedure)
	if !ok {
		return fail(c, diag.FunctionCallExpected("variable"))
	}
	ev.depth = 0
	r, rerr := ev.apply(pred, []value.Value{actual}, c.Span())
	if rerr != nil {
		return raised(c, c.PredName, toError(rerr))
	}
	b, ok := r.(value.Bool)
	switch {
	case !ok:
		return fail(c, diag.SatisfiedNotBoolean(c.PredName, ev.sprint(r)))
	case !bool(b):
		return fail(c, diag.NotSatisfied(c.PredName, ev.sprint(actual)))
	}
	return pass(c)
}

func (ev *Evaluator) checkError(c *ast.CheckErrorNode) (TestResult, error) {
	var want *value.String
	if c.Msg != nil {
		v, err := ev.try(c.Msg)
		if err != nil {
			return TestResult{}, err
		}
		s, ok := v.(value.String)
		if !ok {
			return TestResult{}, syntax.NewError(c.Msg.Span(), diag.ExpectedErrorMessage(ev.sprint(v)))
		}
		want = &s
	}
	v, err := ev.try(c.Expr)
	switch {
	case err == nil:
		return fail(c, diag.ExpectedAnError(ev.sprint(v))), nil
	case want != nil && string(*want) != err.Msg:
		return fail(c, diag.WrongError(string(*want), err.Msg)), nil
	}
	return pass(c), nil
}
