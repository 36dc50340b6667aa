package analyzer

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// UndefinedVariableError reports a reference to Name with no earlier
// definition.
type UndefinedVariableError struct {
	Name string
	Pos  lexer.Position
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("undefined variable: %s", e.Name)
}
