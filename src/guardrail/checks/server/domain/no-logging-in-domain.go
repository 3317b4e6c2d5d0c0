/*
 * @what no logger or print calls in domain code
 * @why the domain reports outcomes through its return values, not a side channel
 * @failure a domain source calls log, slog, or an fmt print function
 *
 * Logging is an application concern. A domain function that logs has an
 * opinion about the runtime environment it should not have, and the call
 * sites become untestable noise. Error values and result types carry
 * everything the caller needs.
 */

package domain

import (
	"go/ast"

	"github.com/tidyplan/guardrails/src/guardrail"
)

// loggerPackages are receiver identifiers treated as loggers. Purely
// name-based: without import resolution a local variable named "log" will
// match too, which is the price of staying on the AST.
var loggerPackages = map[string]bool{
	"log":  true,
	"slog": true,
}

// fmtPrinters are the fmt functions that write output (formatting helpers
// like Sprintf stay allowed).
var fmtPrinters = map[string]bool{
	"Print":   true,
	"Printf":  true,
	"Println": true,
}

var noLoggingInDomain = guardrail.New(guardrail.Definition{
	FilePattern: domainFiles,
	Visit: func(n ast.Node, ctx *guardrail.Context) {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return
		}
		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok {
			return
		}
		recv, ok := sel.X.(*ast.Ident)
		if !ok {
			return
		}

		switch {
		case loggerPackages[recv.Name]:
			ctx.Reportf(call, "domain code must not log (%s.%s); return an error or result instead", recv.Name, sel.Sel.Name)
		case recv.Name == "fmt" && fmtPrinters[sel.Sel.Name]:
			ctx.Reportf(call, "domain code must not print (fmt.%s); return an error or result instead", sel.Sel.Name)
		}
	},
})

func init() {
	guardrail.Register(noLoggingInDomain)
}
