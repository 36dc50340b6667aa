package ast

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// Node is any statement or expression of a program.
type Node interface {
	Position() lexer.Position
}

// Stmt is a top-level statement. The marker method keeps the set of
// statement kinds closed to this package.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression. Like Stmt, the set of kinds is closed.
type Expr interface {
	Node
	exprNode()
}

// Define binds (or rebinds) Name to the value of Value.
type Define struct {
	Pos   lexer.Position
	Name  string
	Value Expr
}

// ExprStmt evaluates Value and discards the result.
type ExprStmt struct {
	Pos   lexer.Position
	Value Expr
}

type Number struct {
	Pos   lexer.Position
	Value int64
}

type Var struct {
	Pos  lexer.Position
	Name string
}

type BinaryOp struct {
	Pos   lexer.Position
	Op    BinOp
	Left  Expr
	Right Expr
}

// Builtin1 calls one of the single argument builtins (abs, print).
type Builtin1 struct {
	Pos  lexer.Position
	Name string
	Arg  Expr
}

// Builtin2 calls one of the two argument builtins (max, min, pow).
type Builtin2 struct {
	Pos  lexer.Position
	Name string
	Arg1 Expr
	Arg2 Expr
}

func (s *Define) Position() lexer.Position   { return s.Pos }
func (s *ExprStmt) Position() lexer.Position { return s.Pos }
func (e *Number) Position() lexer.Position   { return e.Pos }
func (e *Var) Position() lexer.Position      { return e.Pos }
func (e *BinaryOp) Position() lexer.Position { return e.Pos }
func (e *Builtin1) Position() lexer.Position { return e.Pos }
func (e *Builtin2) Position() lexer.Position { return e.Pos }

func (*Define) stmtNode()   {}
func (*ExprStmt) stmtNode() {}

func (*Number) exprNode()   {}
func (*Var) exprNode()      {}
func (*BinaryOp) exprNode() {}
func (*Builtin1) exprNode() {}
func (*Builtin2) exprNode() {}

// BinOp is a binary arithmetic operator. The zero value is not a valid
// operator.
type BinOp int

const (
	Plus BinOp = iota + 1
	Minus
	Multiply
)

func (op BinOp) String() string {
	switch op {
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Multiply:
		return "*"
	default:
		return fmt.Sprintf("BinOp(%d)", int(op))
	}
}

// BinOpFromString maps source operator text to a BinOp.
func BinOpFromString(s string) (BinOp, bool) {
	switch s {
	case "+":
		return Plus, true
	case "-":
		return Minus, true
	case "*":
		return Multiply, true
	}
	return 0, false
}

var (
	Builtins1 = []string{"abs", "print"}
	Builtins2 = []string{"max", "min", "pow"}
)

func IsBuiltin1(name string) bool {
	return contains(Builtins1, name)
}

func IsBuiltin2(name string) bool {
	return contains(Builtins2, name)
}

func contains(list []string, name string) bool {
	for _, n := range list {
		if n == name {
			return true
		}
	}
	return false
}
