package eval

import (
	"github.com/you-not-fish/bsl/internal/ast"
	"github.com/you-not-fish/bsl/internal/syntax"
)

// Unused reports the span of every maximal subtree of prog that was
// never evaluated according to used. Templates (code containing ...)
// and structure definitions count as used. Tests are reported only as a
// whole.
func Unused(prog *ast.Program, used ast.UsedSet, report func(syntax.Span)) {
	for _, n := range prog.Nodes {
		ast.Inspect(n, func(n ast.Node) bool {
			switch n.(type) {
			case *ast.DefnStructNode, *ast.EllipsisNode, *ast.EllipsisFunAppNode:
				return false
			}
			if !used.Used(n) {
				if !n.IsTemplate() {
					report(n.Span())
				}
				return false
			}
			_, isCheck := n.(ast.Check)
			return !isCheck
		})
	}
}
