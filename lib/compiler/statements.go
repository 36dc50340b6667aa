package compiler

import (
	"github.com/vyPal/wattle/lib/ast"
)

// ScratchLocal absorbs the value of expression statements so the stack is
// empty between statements. The leading '$' cannot appear in a source
// identifier, so it never collides with a program variable.
const ScratchLocal = "$last"

// GenerateStatement lowers s into a block that starts and ends with an
// empty stack.
func GenerateStatement(s ast.Stmt) ([]Instruction, error) {
	if ast.IsNil(s) {
		return nil, &ast.UnsupportedConstructError{Node: s}
	}
	switch s := s.(type) {
	case *ast.Define:
		value, err := GenerateExpression(s.Value)
		if err != nil {
			return nil, err
		}
		return append(value, SetInstr(s.Name)), nil
	case *ast.ExprStmt:
		value, err := GenerateExpression(s.Value)
		if err != nil {
			return nil, err
		}
		return append(value, SetInstr(ScratchLocal)), nil
	default:
		return nil, &ast.UnsupportedConstructError{Node: s}
	}
}
