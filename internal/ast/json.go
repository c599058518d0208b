package ast

import (
	"encoding/json"
	"io"
)

// FprintJSON writes a JSON representation of the AST to w.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(node))
}

// FprintProgramJSON writes the top-level nodes of prog as a JSON array.
func FprintProgramJSON(w io.Writer, prog *Program) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(mapSlice(prog.Nodes, toJSON))
}

func toJSON(node Node) interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *AtomNode:
		return map[string]interface{}{
			"type":  "Atom",
			"span":  n.span.String(),
			"value": n.Value.String(),
		}

	case *VarNode:
		return map[string]interface{}{
			"type": "Var",
			"span": n.span.String(),
			"name": n.Name,
		}

	case *EllipsisNode:
		return map[string]interface{}{
			"type": "Ellipsis",
			"span": n.span.String(),
		}

	case *EllipsisFunAppNode:
		return map[string]interface{}{
			"type": "EllipsisFunApp",
			"span": n.span.String(),
		}

	case *AndNode:
		return map[string]interface{}{
			"type": "And",
			"span": n.span.String(),
			"args": mapSlice(n.Args, toJSON),
		}

	case *OrNode:
		return map[string]interface{}{
			"type": "Or",
			"span": n.span.String(),
			"args": mapSlice(n.Args, toJSON),
		}

	case *IfNode:
		return map[string]interface{}{
			"type": "If",
			"span": n.span.String(),
			"cond": toJSON(n.Cond),
			"then": toJSON(n.Then),
			"else": toJSON(n.Else),
		}

	case *CondNode:
		return map[string]interface{}{
			"type": "Cond",
			"span": n.span.String(),
			"clauses": mapSlice(n.Clauses, func(c *CondClause) interface{} {
				return map[string]interface{}{
					"question": toJSON(c.Question),
					"answer":   toJSON(c.Answer),
				}
			}),
		}

	case *LambdaNode:
		m := map[string]interface{}{
			"type":   "Lambda",
			"span":   n.span.String(),
			"params": n.ParamNames(),
			"body":   toJSON(n.Body),
		}
		if n.Name != "" {
			m["name"] = n.Name
		}
		return m

	case *LetNode:
		return map[string]interface{}{
			"type": "Let",
			"span": n.span.String(),
			"form": n.Form,
			"bindings": mapSlice(n.Bindings, func(b *Binding) interface{} {
				return map[string]interface{}{
					"name":  b.Name.Name,
					"value": toJSON(b.Value),
				}
			}),
			"body": toJSON(n.Body),
		}

	case *LocalNode:
		return map[string]interface{}{
			"type":  "Local",
			"span":  n.span.String(),
			"defns": mapSlice(n.Defns, func(d Defn) interface{} { return toJSON(d) }),
			"body":  toJSON(n.Body),
		}

	case *FunAppNode:
		return map[string]interface{}{
			"type": "FunApp",
			"span": n.span.String(),
			"fn":   toJSON(n.Fn),
			"args": mapSlice(n.Args, toJSON),
		}

	case *RequireNode:
		return map[string]interface{}{
			"type":   "Require",
			"span":   n.span.String(),
			"module": n.Module,
		}

	case *DefnVarNode:
		return map[string]interface{}{
			"type":  "DefnVar",
			"span":  n.span.String(),
			"name":  n.Name,
			"value": toJSON(n.Value),
		}

	case *DefnStructNode:
		return map[string]interface{}{
			"type":   "DefnStruct",
			"span":   n.span.String(),
			"name":   n.Name,
			"fields": n.Fields,
		}

	case *CheckNode:
		return map[string]interface{}{
			"type":     "Check",
			"span":     n.span.String(),
			"form":     n.form,
			"actual":   toJSON(n.Actual),
			"expected": toJSON(n.Expected),
		}

	case *CheckErrorNode:
		m := map[string]interface{}{
			"type": "CheckError",
			"span": n.span.String(),
			"expr": toJSON(n.Expr),
		}
		if n.Msg != nil {
			m["msg"] = toJSON(n.Msg)
		}
		return m

	case *CheckWithinNode:
		return map[string]interface{}{
			"type":     "CheckWithin",
			"span":     n.span.String(),
			"actual":   toJSON(n.Actual),
			"expected": toJSON(n.Expected),
			"within":   toJSON(n.Within),
		}

	case *CheckMemberOfNode:
		return map[string]interface{}{
			"type":    "CheckMemberOf",
			"span":    n.span.String(),
			"actual":  toJSON(n.Actual),
			"against": mapSlice(n.Against, toJSON),
		}

	case *CheckRangeNode:
		return map[string]interface{}{
			"type":   "CheckRange",
			"span":   n.span.String(),
			"actual": toJSON(n.Actual),
			"lower":  toJSON(n.Lower),
			"upper":  toJSON(n.Upper),
		}

	case *CheckSatisfiedNode:
		return map[string]interface{}{
			"type":   "CheckSatisfied",
			"span":   n.span.String(),
			"actual": toJSON(n.Actual),
			"pred":   n.PredName,
		}

	default:
		return map[string]interface{}{
			"type": "Unknown",
		}
	}
}

func mapSlice[T any](s []T, f func(T) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}
