package ast

import (
	"io"
	"strconv"
	"strings"
)

// Dump writes the program back out as source, one statement per line.
// Binary operations are fully parenthesized so the tree shape stays visible.
func Dump(w io.Writer, stmts []Stmt) {
	for _, s := range stmts {
		io.WriteString(w, FormatStmt(s))
		io.WriteString(w, "\n")
	}
}

func DumpString(stmts []Stmt) string {
	var sb strings.Builder
	Dump(&sb, stmts)
	return sb.String()
}

func FormatStmt(s Stmt) string {
	if IsNil(s) {
		return "<nil>"
	}
	switch s := s.(type) {
	case *Define:
		return s.Name + " = " + FormatExpr(s.Value)
	case *ExprStmt:
		return FormatExpr(s.Value)
	}
	return "<?>"
}

func FormatExpr(e Expr) string {
	if IsNil(e) {
		return "<nil>"
	}
	switch e := e.(type) {
	case *Number:
		return strconv.FormatInt(e.Value, 10)
	case *Var:
		return e.Name
	case *BinaryOp:
		return "(" + FormatExpr(e.Left) + " " + e.Op.String() + " " + FormatExpr(e.Right) + ")"
	case *Builtin1:
		return e.Name + "(" + FormatExpr(e.Arg) + ")"
	case *Builtin2:
		return e.Name + "(" + FormatExpr(e.Arg1) + ", " + FormatExpr(e.Arg2) + ")"
	}
	return "<?>"
}
