package parser

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/vyPal/wattle/lib/ast"
	wlex "github.com/vyPal/wattle/lib/lexer"
)

// ParseError reports source text that does not match the grammar.
type ParseError struct {
	Pos lexer.Position
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %s", e.Msg, e.Pos)
}

var programParser = participle.MustBuild[Program](
	participle.Lexer(wlex.TextScannerLexer),
)

// Parser returns the participle parser, mostly useful for printing the
// grammar as EBNF.
func Parser() *participle.Parser[Program] {
	return programParser
}

// ParseTree parses code into the raw grammar tree.
func ParseTree(filename, code string) (*Program, error) {
	tree, err := programParser.ParseString(filename, code)
	if err != nil {
		var perr participle.Error
		if errors.As(err, &perr) {
			return nil, &ParseError{Pos: perr.Position(), Msg: perr.Message()}
		}
		return nil, &ParseError{Msg: err.Error()}
	}
	return tree, nil
}

func ParseFile(filename string) ([]ast.Stmt, error) {
	file, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Parse(filename, string(file))
}

func ParseString(code string) ([]ast.Stmt, error) {
	return Parse("", code)
}

// Parse parses code and lowers it into a syntax tree. filename is only used
// in positions.
func Parse(filename, code string) ([]ast.Stmt, error) {
	tree, err := ParseTree(filename, code)
	if err != nil {
		return nil, err
	}
	return Lower(tree)
}
