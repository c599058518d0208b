// Package diag holds the user-facing diagnostic messages produced by
// every stage of the interpreter. Messages follow the wording of the
// DrRacket teaching languages so that students see familiar text.
//
// Functions taking a "found" argument expect a short description of the
// offending syntax ("number", "part", "template", ...), as produced by
// syntax.Describe.
package diag

import (
	"fmt"
	"strings"
)

// plural returns "s" when n != 1.
func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}

// article returns "a" or "an" for the given noun.
func article(noun string) string {
	if noun != "" && strings.ContainsRune("aeiou", rune(noun[0])) {
		return "an"
	}
	return "a"
}

// Ordinal returns the English ordinal of n: 1st, 2nd, 3rd, 4th, 11th, ...
func Ordinal(n int) string {
	switch {
	case n%100 >= 11 && n%100 <= 13:
		return fmt.Sprintf("%dth", n)
	case n%10 == 1:
		return fmt.Sprintf("%dst", n)
	case n%10 == 2:
		return fmt.Sprintf("%dnd", n)
	case n%10 == 3:
		return fmt.Sprintf("%drd", n)
	}
	return fmt.Sprintf("%dth", n)
}

func nothingOr(found string) string {
	if found == "" {
		return "nothing's there"
	}
	return "found a " + found
}

// closer returns the closing bracket matching opening.
func closer(opening string) string {
	switch opening {
	case "(":
		return ")"
	case "[":
		return "]"
	}
	return "}"
}

// Reader errors.

func BadSyntax(text string) string {
	return fmt.Sprintf("read-syntax: bad syntax `%s`", text)
}

func ReadDivByZero(number string) string {
	return fmt.Sprintf("read-syntax: division by zero in `%s`", number)
}

func ExpectedClosingParen(opening string) string {
	return fmt.Sprintf("read-syntax: expected a `%s` to close preceding `%s`", closer(opening), opening)
}

func ExpectedCorrectClosingParen(opening, found string) string {
	return fmt.Sprintf("read-syntax: expected `%s` to close preceding `%s`, found instead `%s`", closer(opening), opening, found)
}

// ExpectedCommentedOutElement reports a #; with nothing to comment out.
// found is "end-of-file" or the closing bracket.
func ExpectedCommentedOutElement(found string) string {
	return fmt.Sprintf("read-syntax: expected a commented-out element for `#;`, but found %s", found)
}

func ExpectedElementForQuoting(found string) string {
	return fmt.Sprintf("read-syntax: expected an element for quoting \"'\", but found %s", found)
}

const (
	ExpectedElementForQuotingNow = "read-syntax: expected an element for quoting immediately after quote"
	IllegalUseOfDot              = "read-syntax: illegal use of `.`"
	InvalidUTF8                  = "read-syntax: invalid UTF-8 encoding"
	NestedQuotesUnsupported      = "read-syntax: nested quotes are not supported"
	QuasiQuoteUnsupported        = "read-syntax: quasiquotes are not supported"
	UnclosedString               = "read-syntax: expected a closing `\"`"
	UnclosedBlockComment         = "read-syntax: end of file in `#|` comment"
)

func UnexpectedToken(found string) string {
	return fmt.Sprintf("read-syntax: unexpected `%s`", found)
}

func UnknownEscape(esc string) string {
	return fmt.Sprintf("read-syntax: unknown escape sequence `%s` in string", esc)
}

const (
	MaxCallStackSize              = "runtime: maximum call stack size exceeded"
	DivByZero                     = "/: division by zero"
	AllQuestionResultsFalse       = "cond: all question results were false"
	ElseNotLastClause             = "cond: found an else clause that isn't the last clause in its cond expression"
	ElseNotInCond                 = "else: not allowed here, because this is not a question in a clause"
	DefineExpectedAtLeastOneParam = "define: expected at least one variable after the function name, but found none"
	DefineExpectedFunctionBody    = "define: expected an expression for the function body, but nothing's there"
	QuoteExpectedExpression       = "quote: expected an expression after quote, but nothing's there"
	LambdaExpectedBody            = "lambda: expected an expression for the function body, but nothing's there"
	RequireExpectedModuleName     = "require: expected a module name after `require', but nothing's there"
)

// Syntax (AST building) errors.

func ExpectedOpenParen(name string) string {
	return fmt.Sprintf("%s: expected an open parenthesis before %s, but found none", name, name)
}

func NotTopLevelDefinition(name string) string {
	return fmt.Sprintf("%s: found a definition that is not at the top level", name)
}

func TestNotTopLevel(name string) string {
	return fmt.Sprintf("%s: found a test that is not at the top level", name)
}

func ExpectedFinishedExpr(name string) string {
	return fmt.Sprintf("%s: expected a finished expression, but found a template", name)
}

// MinArity reports a special form or function that needs at least
// expected parts but got actual.
func MinArity(name string, expected, actual int) string {
	var found string
	switch {
	case actual >= 2:
		found = fmt.Sprint(actual)
	case actual == 1:
		found = "only 1"
	default:
		found = "none"
	}
	return fmt.Sprintf("%s: expects at least %d argument%s, but found %s", name, expected, plural(expected), found)
}

// Arity reports a call with the wrong number of arguments.
func Arity(name string, expected, actual int) string {
	if expected < actual {
		if expected == 0 {
			return fmt.Sprintf("%s: expects no argument, but found %d", name, actual)
		}
		return fmt.Sprintf("%s: expects only %d argument%s, but found %d", name, expected, plural(expected), actual)
	}
	found := "none"
	if actual > 0 {
		found = fmt.Sprintf("only %d", actual)
	}
	return fmt.Sprintf("%s: expects %d argument%s, but found %s", name, expected, plural(expected), found)
}

func IfExpectedThreeParts(parts int) string {
	switch parts {
	case 0:
		return "if: expected a question and two answers, but nothing's there"
	case 1:
		return "if: expected a question and two answers, but found only 1 part"
	case 2:
		return "if: expected a question and two answers, but found only 2 parts"
	}
	return fmt.Sprintf("if: expected a question and two answers, but found %d parts", parts)
}

// CondExpectedClause reports a cond without clauses.
const CondExpectedClause = "cond: expected a clause after cond, but nothing's there"

// CondExpectedTwoPartClause reports a malformed clause. parts is the
// clause length when the clause is a list, or -1 with found describing
// a non-list clause.
func CondExpectedTwoPartClause(parts int, found string) string {
	const prefix = "cond: expected a clause with a question and an answer, but found "
	switch parts {
	case -1:
		return prefix + article(found) + " " + found
	case 0:
		return prefix + "an empty part"
	case 1:
		return prefix + "a clause with only one part"
	}
	return fmt.Sprintf("%sa clause with %d parts", prefix, parts)
}

func DuplicateVariable(form, name string) string {
	return fmt.Sprintf("%s: found a variable that is used more than once: %s", form, name)
}

func DefineExpectedExpr(name string) string {
	return fmt.Sprintf("define: expected an expression after the variable name %s, but nothing's there", name)
}

func DefineExpectedFunctionName(found string) string {
	return "define: expected the name of the function, but " + nothingOr(found)
}

func DefineExpectedVarOrFunName(found string) string {
	return "define: expected a variable name, or a function name and its variables (in parentheses), but " + nothingOr(found)
}

func ExpectedVariable(form, found string) string {
	return fmt.Sprintf("%s: expected a variable, but found a %s", form, found)
}

func DefineTooManyExprs(name string, parts int) string {
	return fmt.Sprintf("define: expected only one expression after the variable name %s, but found %d extra part%s", name, parts, plural(parts))
}

func DefineTooManyBodies(parts int) string {
	return fmt.Sprintf("define: expected only one expression for the function body, but found %d extra part%s", parts, plural(parts))
}

func PreviouslyDefined(name string) string {
	return fmt.Sprintf("%s: this name was defined previously and cannot be re-defined", name)
}

func StructDuplicateField(name string) string {
	return fmt.Sprintf("define-struct: found a field name that is used more than once: %s", name)
}

func StructExpectedFieldName(found string) string {
	return fmt.Sprintf("define-struct: expected a field name, but found a %s", found)
}

func StructExpectedFieldNames(found string) string {
	return "define-struct: expected at least one field name (in parentheses) after the structure name, but " + nothingOr(found)
}

func StructExpectedName(found string) string {
	return "define-struct: expected the structure name after define-struct, but " + nothingOr(found)
}

func StructExtraParts(parts int) string {
	return fmt.Sprintf("define-struct: expected nothing after the field names, but found %d extra part%s", parts, plural(parts))
}

func LambdaExpectedParams(found string) string {
	return "lambda: expected at least one variable (in parentheses) after lambda, but " + nothingOr(found)
}

func LambdaTooManyBodies(parts int) string {
	return fmt.Sprintf("lambda: expected only one expression for the function body, but found %d extra part%s", parts, plural(parts))
}

func LetExpectedBindings(form, found string) string {
	return fmt.Sprintf("%s: expected at least one binding (in parentheses) after %s, but %s", form, form, nothingOr(found))
}

func LetExpectedBinding(form, found string) string {
	return fmt.Sprintf("%s: expected a binding with a variable and an expression, but found a %s", form, found)
}

func LetExpectedBody(form string) string {
	return fmt.Sprintf("%s: expected an expression after the bindings, but nothing's there", form)
}

func LetTooManyBodies(form string, parts int) string {
	return fmt.Sprintf("%s: expected only one expression after the bindings, but found %d extra part%s", form, parts, plural(parts))
}

func LocalExpectedDefinitions(found string) string {
	return "local: expected at least one definition (in square brackets) after local, but " + nothingOr(found)
}

func LocalExpectedDefinition(found string) string {
	return fmt.Sprintf("local: expected a definition, but found a %s", found)
}

func LocalExpectedBody(parts int) string {
	if parts == 0 {
		return "local: expected an expression after the local definitions, but nothing's there"
	}
	return fmt.Sprintf("local: expected only one expression after the local definitions, but found %d extra part%s", parts, plural(parts))
}

func QuoteExpectedPostQuote(found string) string {
	return fmt.Sprintf("quote: expected the name of a symbol or () after the quote, but found a %s", found)
}

func RequireExpectedModule(found string) string {
	return fmt.Sprintf("require: expected a module name after `require', but found a %s", found)
}

func ModuleNotFound(name string) string {
	return fmt.Sprintf("require: unknown module: %s", name)
}

func CheckSatisfiedExpectedName(found string) string {
	return fmt.Sprintf("check-satisfied: expected a function name for the second argument, but found a %s", found)
}

func FunctionCallExpected(found string) string {
	return "function call: expected a function after the open parenthesis, but " + nothingOr(found)
}

// Scope errors.

func UndefinedFunction(name string) string {
	return fmt.Sprintf("%s: this function is undefined", name)
}

func UndefinedVariable(name string) string {
	return fmt.Sprintf("%s: this variable is not defined", name)
}

func UsedBeforeDefinition(name string) string {
	return fmt.Sprintf("%s is used here before its definition", name)
}

func ExpectedFunctionCall(name string) string {
	return fmt.Sprintf("%s: expected a function call, but there is no open parenthesis before this function", name)
}

func StructureType(name string) string {
	return fmt.Sprintf("%s: structure type; do you mean make-%s", name, name)
}

// Runtime errors.

func ComplexUnsupported(name string) string {
	return fmt.Sprintf("%s: complex numbers are not supported", name)
}

func WrongType(name, expected, actual string) string {
	return fmt.Sprintf("%s: expects %s %s, given %s", name, article(expected), expected, actual)
}

// NthWrongType reports a contract violation of the n-th (1-based) argument.
func NthWrongType(name, expected string, n int, actual string) string {
	return fmt.Sprintf("%s: expects %s %s as %s argument, given %s", name, article(expected), expected, Ordinal(n), actual)
}

func QuestionNotBool(form, found string) string {
	return fmt.Sprintf("%s: question result is not true or false: %s", form, found)
}

// Test outcomes.

func ActualNotExpected(actual, expected string) string {
	return fmt.Sprintf("Actual value %s differs from %s, the expected value.", actual, expected)
}

func CantCompareInexact(name, actual, expected string) string {
	return fmt.Sprintf("%s cannot compare inexact numbers. Try (check-within %s %s range).", name, actual, expected)
}

func ExpectedAnError(value string) string {
	return fmt.Sprintf("check-error expected an error, but instead received the value %s", value)
}

func ExpectedErrorMessage(value string) string {
	return fmt.Sprintf("check-error: expects a string (the expected error message) for the second argument. Given %s", value)
}

func NotInRange(actual, lower, upper string) string {
	return fmt.Sprintf("Actual value %s is not between %s and %s, inclusive.", actual, lower, upper)
}

func NotMemberOf(actual string, against []string) string {
	return fmt.Sprintf("Actual value %s differs from all given members in %s", actual, strings.Join(against, " "))
}

func NotSatisfied(name, actual string) string {
	return fmt.Sprintf("Actual value %s does not satisfy %s.", actual, name)
}

func NotWithin(actual, expected, within string) string {
	return fmt.Sprintf("Actual value %s is not within %s of expected value %s", actual, within, expected)
}

func SatisfiedNotBoolean(name, value string) string {
	return fmt.Sprintf("check-satisfied encountered an error instead of the expected kind of value, %q.\n  :: %s [as predicate in check-satisfied]: is expected to return a boolean, but it returned %s", name, name, value)
}

func WrongError(expected, actual string) string {
	return fmt.Sprintf("check-error encountered the following error instead of the expected %s\n  :: %s", expected, actual)
}

// ErrorInsteadOfValue reports a check form whose expression raised
// instead of producing a value comparable to expected.
func ErrorInsteadOfValue(form, expected, msg string) string {
	return fmt.Sprintf("%s encountered the following error instead of the expected value, %s.\n  :: %s", form, expected, msg)
}
