package compiler

import (
	"github.com/vyPal/wattle/lib/ast"
)

// GenerateExpression lowers e into instructions that leave exactly one value
// on the stack. Operands are emitted left to right so non-commutative
// operators see them in source order.
func GenerateExpression(e ast.Expr) ([]Instruction, error) {
	if ast.IsNil(e) {
		return nil, &ast.UnsupportedConstructError{Node: e}
	}
	switch e := e.(type) {
	case *ast.Number:
		return []Instruction{ConstInstr(e.Value)}, nil
	case *ast.Var:
		return []Instruction{GetInstr(e.Name)}, nil
	case *ast.BinaryOp:
		return generateBinaryOp(e)
	case *ast.Builtin1:
		if !ast.IsBuiltin1(e.Name) {
			return nil, &UnknownOperatorError{Op: e.Name, Pos: e.Pos}
		}
		return generateCall(e.Name, e.Arg)
	case *ast.Builtin2:
		if !ast.IsBuiltin2(e.Name) {
			return nil, &UnknownOperatorError{Op: e.Name, Pos: e.Pos}
		}
		return generateCall(e.Name, e.Arg1, e.Arg2)
	default:
		return nil, &ast.UnsupportedConstructError{Node: e}
	}
}

func generateBinaryOp(e *ast.BinaryOp) ([]Instruction, error) {
	if _, err := Opcode(e.Op); err != nil {
		return nil, &UnknownOperatorError{Op: e.Op.String(), Pos: e.Pos}
	}
	left, err := GenerateExpression(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := GenerateExpression(e.Right)
	if err != nil {
		return nil, err
	}
	out := make([]Instruction, 0, len(left)+len(right)+1)
	out = append(out, left...)
	out = append(out, right...)
	return append(out, ArithInstr(e.Op)), nil
}

func generateCall(name string, args ...ast.Expr) ([]Instruction, error) {
	var out []Instruction
	for _, arg := range args {
		code, err := GenerateExpression(arg)
		if err != nil {
			return nil, err
		}
		out = append(out, code...)
	}
	return append(out, CallInstr(name, len(args))), nil
}
