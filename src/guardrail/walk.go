package guardrail

import "go/ast"

// Walk performs a pre-order depth-first traversal of the tree rooted at n,
// invoking visit at every node including the root. Children are visited in
// source order. There is no prune mechanism: a visitor that only cares about
// one node kind checks the kind and returns early.
//
// The walker carries no state of its own; all accumulation happens in the
// visitor's closure, so concurrent walks never interfere.
func Walk(n ast.Node, visit func(ast.Node)) {
	if n == nil {
		return
	}
	ast.Inspect(n, func(node ast.Node) bool {
		if node == nil {
			return false // end-of-children marker from ast.Inspect
		}
		visit(node)
		return true
	})
}
