/*
 * @what repository types must be interfaces, not structs
 * @why the domain owns the contract; concrete stores belong to the persistence layer
 * @failure a type named *Repository is declared as a struct in the domain layer
 *
 * Repositories declared in the domain are ports. Declaring one as a struct
 * drags persistence concerns into the model and makes use-cases untestable
 * without a real store behind them.
 */

package domain

import (
	"go/ast"
	"strings"

	"github.com/tidyplan/guardrails/src/guardrail"
)

var repositoryInterface = guardrail.New(guardrail.Definition{
	FilePattern: domainFiles,
	Visit: func(n ast.Node, ctx *guardrail.Context) {
		ts, ok := n.(*ast.TypeSpec)
		if !ok || !strings.HasSuffix(ts.Name.Name, "Repository") {
			return
		}
		if _, isStruct := ts.Type.(*ast.StructType); isStruct {
			ctx.Reportf(ts, "repository %s must be an interface, not a struct", ts.Name.Name)
		}
	},
})

func init() {
	guardrail.Register(repositoryInterface)
}
