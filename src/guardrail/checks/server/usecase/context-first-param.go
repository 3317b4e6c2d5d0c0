/*
 * @what exported use-case functions take context.Context as their first parameter
 * @why use-cases sit on the request path; without a context they cannot honor cancellation or deadlines
 * @failure an exported use-case function's first parameter is not context.Context
 *
 * Constructors (New*) are exempt: they wire dependencies, they do not
 * execute on the request path.
 */

package usecase

import (
	"go/ast"
	"regexp"
	"strings"

	"github.com/tidyplan/guardrails/src/guardrail"
)

var usecaseFiles = regexp.MustCompile(`(^|/)usecases?/`)

var contextFirstParam = guardrail.New(guardrail.Definition{
	FilePattern: usecaseFiles,
	Visit: func(n ast.Node, ctx *guardrail.Context) {
		fn, ok := n.(*ast.FuncDecl)
		if !ok || !fn.Name.IsExported() || strings.HasPrefix(fn.Name.Name, "New") {
			return
		}
		if firstParamIsContext(fn.Type) {
			return
		}
		ctx.Reportf(fn, "exported use-case %s must take context.Context as its first parameter", fn.Name.Name)
	},
})

func firstParamIsContext(ft *ast.FuncType) bool {
	if ft.Params == nil || len(ft.Params.List) == 0 {
		return false
	}
	sel, ok := ft.Params.List[0].Type.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "Context" {
		return false
	}
	pkg, ok := sel.X.(*ast.Ident)
	return ok && pkg.Name == "context"
}

func init() {
	guardrail.Register(contextFirstParam)
}
