package analyzer

import (
	"github.com/vyPal/wattle/lib/ast"
)

// Check verifies that every variable is defined before it is used. The
// statements are walked once in program order and each expression depth
// first, left to right, so the error returned is always the first one in
// that order. A definition's value is checked before its name is added,
// which rules out self reference.
func Check(stmts []ast.Stmt) error {
	scope := NewScope()
	for _, s := range stmts {
		if err := checkStatement(s, scope); err != nil {
			return err
		}
	}
	return nil
}

func checkStatement(s ast.Stmt, scope *Scope) error {
	if ast.IsNil(s) {
		return &ast.UnsupportedConstructError{Node: s}
	}
	switch s := s.(type) {
	case *ast.Define:
		if err := checkExpression(s.Value, scope); err != nil {
			return err
		}
		scope.Define(s.Name)
		return nil
	case *ast.ExprStmt:
		return checkExpression(s.Value, scope)
	default:
		return &ast.UnsupportedConstructError{Node: s}
	}
}

func checkExpression(e ast.Expr, scope *Scope) error {
	if ast.IsNil(e) {
		return &ast.UnsupportedConstructError{Node: e}
	}
	switch e := e.(type) {
	case *ast.Number:
		return nil
	case *ast.Var:
		if !scope.IsDefined(e.Name) {
			return &UndefinedVariableError{Name: e.Name, Pos: e.Pos}
		}
		return nil
	case *ast.BinaryOp:
		if err := checkExpression(e.Left, scope); err != nil {
			return err
		}
		return checkExpression(e.Right, scope)
	case *ast.Builtin1:
		return checkExpression(e.Arg, scope)
	case *ast.Builtin2:
		if err := checkExpression(e.Arg1, scope); err != nil {
			return err
		}
		return checkExpression(e.Arg2, scope)
	default:
		return &ast.UnsupportedConstructError{Node: e}
	}
}
