/*
 * @what entities must not be literal-constructible outside their package
 * @why invariants live in constructors; a public field set lets callers bypass them
 * @failure an exported entity struct declares only exported fields
 *
 * Domain entities guard their invariants in constructor functions. A struct
 * whose fields are all exported can be built with a composite literal from
 * any package, skipping validation entirely. At least one unexported field
 * forces construction to go through the package's own constructor.
 */

package domain

import (
	"go/ast"

	"github.com/tidyplan/guardrails/src/guardrail"
)

var entityUnexportedFields = guardrail.New(guardrail.Definition{
	FilePattern: domainFiles,
	Visit: func(n ast.Node, ctx *guardrail.Context) {
		ts, ok := n.(*ast.TypeSpec)
		if !ok || !ts.Name.IsExported() {
			return
		}
		st, ok := ts.Type.(*ast.StructType)
		if !ok || st.Fields == nil || len(st.Fields.List) == 0 {
			return
		}

		for _, field := range st.Fields.List {
			for _, name := range field.Names {
				if !name.IsExported() {
					return
				}
			}
			if len(field.Names) == 0 {
				// Embedded field: exported iff its type name is.
				if name := typeName(field.Type); name != "" && !ast.IsExported(name) {
					return
				}
			}
		}

		ctx.Reportf(ts, "entity %s is constructible outside its package; give it at least one unexported field and a constructor", ts.Name.Name)
	},
})

func init() {
	guardrail.Register(entityUnexportedFields)
}
