package parser

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/vyPal/wattle/lib/ast"
)

func posError(pos lexer.Position, message string, args ...interface{}) error {
	return &ParseError{Pos: pos, Msg: fmt.Sprintf(message, args...)}
}

// Lower converts the grammar tree into the syntax tree. Operator chains are
// folded to the left, a sign is folded into its literal, and calls are
// resolved to the builtin of matching arity.
func Lower(p *Program) ([]ast.Stmt, error) {
	stmts := make([]ast.Stmt, 0, len(p.Statements))
	for i, s := range p.Statements {
		if i > 0 && len(p.Statements[i-1].End) == 0 {
			return nil, posError(s.Pos, "expected newline or ';' before statement")
		}
		stmt, err := lowerStatement(s)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func lowerStatement(s *Statement) (ast.Stmt, error) {
	if a := s.Body.Assignment; a != nil {
		value, err := lowerExpression(a.Value)
		if err != nil {
			return nil, err
		}
		return &ast.Define{Pos: a.Pos, Name: a.Name, Value: value}, nil
	}
	value, err := lowerExpression(s.Body.Expression)
	if err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Pos: s.Pos, Value: value}, nil
}

func lowerExpression(e *Expression) (ast.Expr, error) {
	left, err := lowerTerm(e.Left)
	if err != nil {
		return nil, err
	}
	for _, right := range e.Right {
		op, ok := ast.BinOpFromString(right.Op)
		if !ok {
			return nil, posError(right.Pos, "unknown binary operator %q", right.Op)
		}
		rightVal, err := lowerTerm(right.Term)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Pos: right.Pos, Op: op, Left: left, Right: rightVal}
	}
	return left, nil
}

func lowerTerm(t *Term) (ast.Expr, error) {
	left, err := lowerFactor(t.Left)
	if err != nil {
		return nil, err
	}
	for _, right := range t.Right {
		op, ok := ast.BinOpFromString(right.Op)
		if !ok {
			return nil, posError(right.Pos, "unknown binary operator %q", right.Op)
		}
		rightVal, err := lowerFactor(right.Factor)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Pos: right.Pos, Op: op, Left: left, Right: rightVal}
	}
	return left, nil
}

func lowerFactor(f *Factor) (ast.Expr, error) {
	if f.Number != nil {
		return lowerNumber(f.Number)
	} else if f.Call != nil {
		return lowerCall(f.Call)
	} else if f.Variable != nil {
		return &ast.Var{Pos: f.Pos, Name: *f.Variable}, nil
	} else if f.SubExpression != nil {
		return lowerExpression(f.SubExpression)
	}
	return nil, posError(f.Pos, "could not parse expression")
}

func lowerNumber(n *Number) (ast.Expr, error) {
	d := n.Digits
	if len(d) > 1 && d[0] == '0' && (d[1] >= '0' && d[1] <= '9' || d[1] == '_') {
		return nil, posError(n.Pos, "leading zeros in decimal integer literal %s are not permitted", d)
	}
	v, err := strconv.ParseInt(n.Sign+d, 0, 32)
	if err != nil {
		return nil, posError(n.Pos, "integer literal %s%s does not fit in i32", n.Sign, n.Digits)
	}
	return &ast.Number{Pos: n.Pos, Value: v}, nil
}

func lowerCall(c *Call) (ast.Expr, error) {
	args := make([]ast.Expr, 0, len(c.Args))
	for _, a := range c.Args {
		arg, err := lowerExpression(a)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	switch {
	case len(args) == 1 && ast.IsBuiltin1(c.Name):
		return &ast.Builtin1{Pos: c.Pos, Name: c.Name, Arg: args[0]}, nil
	case len(args) == 2 && ast.IsBuiltin2(c.Name):
		return &ast.Builtin2{Pos: c.Pos, Name: c.Name, Arg1: args[0], Arg2: args[1]}, nil
	case ast.IsBuiltin1(c.Name):
		return nil, posError(c.Pos, "%s takes 1 argument, got %d", c.Name, len(args))
	case ast.IsBuiltin2(c.Name):
		return nil, posError(c.Pos, "%s takes 2 arguments, got %d", c.Name, len(args))
	default:
		return nil, posError(c.Pos, "unknown builtin %s", c.Name)
	}
}
