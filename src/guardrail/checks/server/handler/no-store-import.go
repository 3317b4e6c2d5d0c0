/*
 * @what handlers must not import persistence packages
 * @why handlers translate HTTP to use-cases; reaching into storage skips validation and authorization
 * @failure a handler source imports a store, storage, or persistence package
 *
 * The request path is handler → use-case → repository. A handler that
 * imports the store directly can read or write state the use-case layer
 * never sees, which is where tenancy and permission checks live.
 */

package handler

import (
	"go/ast"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidyplan/guardrails/src/guardrail"
)

var handlerFiles = regexp.MustCompile(`(^|/)handlers?/`)

// storeSegments are import path segments that mark a persistence package.
var storeSegments = map[string]bool{
	"store":       true,
	"storage":     true,
	"persistence": true,
}

var noStoreImport = guardrail.New(guardrail.Definition{
	FilePattern: handlerFiles,
	Visit: func(n ast.Node, ctx *guardrail.Context) {
		imp, ok := n.(*ast.ImportSpec)
		if !ok {
			return
		}
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			return
		}
		for _, seg := range strings.Split(path, "/") {
			if storeSegments[seg] {
				ctx.Reportf(imp, "handler imports persistence package %q; go through a use-case instead", path)
				return
			}
		}
	},
})

func init() {
	guardrail.Register(noStoreImport)
}
