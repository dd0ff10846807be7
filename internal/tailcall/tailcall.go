// Package tailcall implements the pre-evaluation tail-call analyzer from
// spec.md §4.6: for every named Lambda, find calls in tail position whose
// callee is an Identifier matching the lambda's own name, and mark them
// so the evaluator's trampoline (internal/eval) can recognise them without
// re-deriving tail position at run time.
//
// Grounded in the *shape* of original_source's
// frontend/parser/tail_call.rs tail-position walk (last expression of a
// Block, last expression of both branches of an If); unlike that pass,
// which rebuilds an immutable AST, this one mutates ast.Call.IsTailCall in
// place, matching the teacher's general preference for in-place mutation.
package tailcall

import "github.com/bollmeier/boli/internal/ast"

// Mark walks prog's top-level forms and marks tail-recursive self-calls.
func Mark(prog *ast.Program) {
	for _, n := range prog.Children {
		markNode(n, "")
	}
}

// markNode recurses into n looking for Lambda definitions to analyze;
// selfName is the enclosing named lambda, if any, so nested lambdas reset
// the target name to their own (a nested lambda's tail calls refer to
// itself, not its enclosing definition).
func markNode(n ast.Node, selfName string) {
	switch t := n.(type) {
	case *ast.Definition:
		if lam, ok := t.Value.(*ast.Lambda); ok {
			markLambda(lam)
		} else {
			markNode(t.Value, selfName)
		}
	case *ast.Lambda:
		markLambda(t)
	case *ast.Block:
		for _, c := range t.Children {
			markNode(c, selfName)
		}
	case *ast.IfExpression:
		markNode(t.Cond, "")
		markNode(t.Then, selfName)
		if t.Else != nil {
			markNode(t.Else, selfName)
		}
	case *ast.Call:
		for _, a := range t.Arguments {
			markNode(a, "")
		}
	}
}

// markLambda analyzes lam's own body for self-recursive tail calls, then
// recurses into it (with its own name as the new self-reference target)
// to find nested lambdas.
func markLambda(lam *ast.Lambda) {
	if lam.Name != "" {
		markTailPosition(lam.Body, lam.Name)
	}
	markNode(lam.Body, lam.Name)
}

// markTailPosition walks only the syntactic tail positions of body: its
// last child, and (recursively) both branches of a trailing if.
func markTailPosition(n ast.Node, name string) {
	switch t := n.(type) {
	case *ast.Block:
		if len(t.Children) == 0 {
			return
		}
		markTailPosition(t.Children[len(t.Children)-1], name)
	case *ast.IfExpression:
		markTailPosition(t.Then, name)
		if t.Else != nil {
			markTailPosition(t.Else, name)
		}
	case *ast.Call:
		if id, ok := t.Callee.(*ast.Identifier); ok && id.Name == name {
			t.IsTailCall = true
		}
	}
}
