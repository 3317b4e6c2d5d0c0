/*
 * @what entities must reference other aggregates by id, not by entity type
 * @why holding another aggregate's entity couples lifecycles and breaks transactional boundaries
 * @failure an entity struct declares a field typed as another known entity
 *
 * A Todo that holds a *Project can mutate project state outside the
 * project's own transaction. Holding a ProjectID keeps the boundary: the
 * use-case loads the other aggregate through its repository when it needs
 * it. Detection is name-based over the program's entity index; static
 * detection of deeper indirection is difficult and not attempted.
 */

package domain

import (
	"go/ast"

	"github.com/tidyplan/guardrails/src/guardrail"
)

var aggregateBoundary = guardrail.New(guardrail.Definition{
	FilePattern: domainFiles,
	Visit: func(n ast.Node, ctx *guardrail.Context) {
		ts, ok := n.(*ast.TypeSpec)
		if !ok {
			return
		}
		st, ok := ts.Type.(*ast.StructType)
		if !ok || st.Fields == nil {
			return
		}
		if !ctx.Program.IsEntity(ts.Name.Name) {
			return
		}

		for _, field := range st.Fields.List {
			name := typeName(field.Type)
			if name == "" || name == ts.Name.Name {
				continue
			}
			if ctx.Program.IsEntity(name) {
				ctx.Reportf(field, "entity %s references entity %s directly; hold its identifier instead", ts.Name.Name, name)
			}
		}
	},
})

func init() {
	guardrail.Register(aggregateBoundary)
}
