package analyzer

import "github.com/vyPal/wattle/lib/ast"

// CollectNames returns every assigned variable name in order of first
// assignment. Only top-level definitions introduce locals, so expressions
// are not visited.
func CollectNames(stmts []ast.Stmt) []string {
	scope := NewScope()
	for _, s := range stmts {
		if def, ok := s.(*ast.Define); ok && def != nil {
			scope.Define(def.Name)
		}
	}
	return scope.Names()
}
