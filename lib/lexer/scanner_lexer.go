package wlex

import (
	"bytes"
	"io"
	"strings"
	"text/scanner"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Newline is the token type for statement separators: a line break or ';'.
// text/scanner token types are all negative, so pick one below them.
const Newline lexer.TokenType = -100

// TextScannerLexer is a lexer that uses the text/scanner module. Unlike the
// Go defaults, line breaks are significant and '#' starts a comment.
var (
	TextScannerLexer lexer.Definition = &textScannerLexerDefinition{}

	// DefaultDefinition defines properties for the default lexer.
	DefaultDefinition = TextScannerLexer
)

type textScannerLexerDefinition struct{}

func (d *textScannerLexerDefinition) Lex(filename string, r io.Reader) (lexer.Lexer, error) {
	return Lex(filename, r), nil
}

func (d *textScannerLexerDefinition) Symbols() map[string]lexer.TokenType {
	return map[string]lexer.TokenType{
		"EOF":       lexer.EOF,
		"Char":      scanner.Char,
		"Ident":     scanner.Ident,
		"Int":       scanner.Int,
		"Float":     scanner.Float,
		"String":    scanner.String,
		"RawString": scanner.RawString,
		"Newline":   Newline,
	}
}

// textScannerLexer is a Lexer based on text/scanner.Scanner
type textScannerLexer struct {
	scanner  *scanner.Scanner
	filename string
	err      error
}

// Lex an io.Reader with text/scanner.Scanner.
func Lex(filename string, r io.Reader) lexer.Lexer {
	s := &scanner.Scanner{}
	s.Init(r)
	s.Whitespace = 1<<'\t' | 1<<'\r' | 1<<' '
	// Only '#' starts a comment; '/' must reach the grammar.
	s.Mode &^= scanner.ScanComments | scanner.SkipComments
	s.Filename = filename
	l := &textScannerLexer{
		filename: filename,
		scanner:  s,
	}
	s.Error = func(s *scanner.Scanner, msg string) {
		if l.err == nil {
			l.err = participle.Errorf(lexer.Position(s.Pos()), "%s", msg)
		}
	}
	return l
}

// LexBytes returns a new default lexer over bytes.
func LexBytes(filename string, b []byte) lexer.Lexer {
	return Lex(filename, bytes.NewReader(b))
}

// LexString returns a new default lexer over a string.
func LexString(filename, s string) lexer.Lexer {
	return Lex(filename, strings.NewReader(s))
}

func (t *textScannerLexer) Next() (lexer.Token, error) {
	typ := t.scanner.Scan()
	for typ == '#' {
		for ch := t.scanner.Peek(); ch != '\n' && ch != scanner.EOF; ch = t.scanner.Peek() {
			t.scanner.Next()
		}
		typ = t.scanner.Scan()
	}
	text := t.scanner.TokenText()
	pos := lexer.Position(t.scanner.Position)
	pos.Filename = t.filename
	if t.err != nil {
		return lexer.Token{}, t.err
	}
	tokType := lexer.TokenType(typ)
	if typ == '\n' || typ == ';' {
		tokType = Newline
	}
	return lexer.Token{
		Type:  tokType,
		Value: text,
		Pos:   pos,
	}, nil
}
