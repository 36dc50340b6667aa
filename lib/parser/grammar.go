package parser

import "github.com/alecthomas/participle/v2/lexer"

type Number struct {
	Pos    lexer.Position
	Sign   string `parser:"@( '+' | '-' )?"`
	Digits string `parser:"@Int"`
}

type Call struct {
	Pos  lexer.Position
	Name string        `parser:"@Ident"`
	Args []*Expression `parser:"'(' ( @@ ( ',' @@ )* )? ')'"`
}

type Factor struct {
	Pos           lexer.Position
	Number        *Number     `parser:"  @@"`
	Call          *Call       `parser:"| (?= Ident '(') @@"`
	Variable      *string     `parser:"| @Ident"`
	SubExpression *Expression `parser:"| '(' @@ ')'"`
}

type Term struct {
	Pos   lexer.Position
	Left  *Factor     `parser:"@@"`
	Right []*OpFactor `parser:"@@*"`
}

type OpFactor struct {
	Pos    lexer.Position
	Op     string  `parser:"@'*'"`
	Factor *Factor `parser:"@@"`
}

type Expression struct {
	Pos   lexer.Position
	Left  *Term     `parser:"@@"`
	Right []*OpTerm `parser:"@@*"`
}

type OpTerm struct {
	Pos  lexer.Position
	Op   string `parser:"@( '+' | '-' )"`
	Term *Term  `parser:"@@"`
}

type Assignment struct {
	Pos   lexer.Position
	Name  string      `parser:"@Ident '='"`
	Value *Expression `parser:"@@"`
}

type StatementBody struct {
	Assignment *Assignment `parser:"  (?= Ident '=') @@"`
	Expression *Expression `parser:"| @@"`
}

type Statement struct {
	Pos  lexer.Position
	Body *StatementBody `parser:"@@"`
	End  []string       `parser:"@Newline*"`
}

type Program struct {
	Pos        lexer.Position
	Statements []*Statement `parser:"Newline* @@*"`
}
