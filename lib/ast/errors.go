package ast

import "fmt"

// UnsupportedConstructError reports a node that is not part of the language,
// including a nil statement or expression.
type UnsupportedConstructError struct {
	Node any
}

func (e *UnsupportedConstructError) Error() string {
	if e.Node == nil {
		return "unsupported construct: <nil>"
	}
	return fmt.Sprintf("unsupported construct: %T", e.Node)
}

// IsNil reports whether n is nil or a nil pointer to one of the node types.
func IsNil(n Node) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *Define:
		return n == nil
	case *ExprStmt:
		return n == nil
	case *Number:
		return n == nil
	case *Var:
		return n == nil
	case *BinaryOp:
		return n == nil
	case *Builtin1:
		return n == nil
	case *Builtin2:
		return n == nil
	}
	return false
}
