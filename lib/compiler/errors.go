package compiler

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// UnknownOperatorError reports a binary operator or builtin the generator
// has no instruction for.
type UnknownOperatorError struct {
	Op  string
	Pos lexer.Position
}

func (e *UnknownOperatorError) Error() string {
	return fmt.Sprintf("unknown operator: %s", e.Op)
}
