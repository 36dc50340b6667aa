package parser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vyPal/wattle/lib/ast"
)

func TestParseShapes(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"", ""},
		{"   \n\n  \t", ""},
		{"x=10\nprint(x)", "x = 10\nprint(x)\n"},
		{"y = 1 + 2 * 3", "y = (1 + (2 * 3))\n"},
		{"y = (1 + 2) * 3", "y = ((1 + 2) * 3)\n"},
		{"x = 10 - 3 - 2", "x = ((10 - 3) - 2)\n"},
		{"x = 2 * 3 * 4", "x = ((2 * 3) * 4)\n"},
		{"z = max(1,2)", "z = max(1, 2)\n"},
		{"print(abs(-5))", "print(abs(-5))\n"},
		{"a = +3 - -4", "a = (3 - -4)\n"},
		{"a = 1; b = a\n\n\nc = pow(a, b) # trailing comment\n", "a = 1\nb = a\nc = pow(a, b)\n"},
		{"# only a comment", ""},
		{"\n\nx = min(1, max(2, 3))\n", "x = min(1, max(2, 3))\n"},
		{"x = 0x10", "x = 16\n"},
		{"x = 0", "x = 0\n"},
		{"x = 100", "x = 100\n"},
		{"x = -2147483648", "x = -2147483648\n"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			stmts, err := ParseString(tt.src)
			if err != nil {
				t.Fatalf("ParseString() error: %v", err)
			}
			if got := ast.DumpString(stmts); got != tt.want {
				t.Errorf("ParseString() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestParseNodeKinds(t *testing.T) {
	stmts, err := ParseString("x = max(1, 2)\nprint(x - 1)")
	if err != nil {
		t.Fatal(err)
	}
	if len(stmts) != 2 {
		t.Fatalf("got %d statements", len(stmts))
	}
	def, ok := stmts[0].(*ast.Define)
	if !ok || def.Name != "x" {
		t.Fatalf("first statement = %#v", stmts[0])
	}
	if _, ok := def.Value.(*ast.Builtin2); !ok {
		t.Errorf("max should be a Builtin2, got %T", def.Value)
	}
	es, ok := stmts[1].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("second statement = %T", stmts[1])
	}
	call, ok := es.Value.(*ast.Builtin1)
	if !ok || call.Name != "print" {
		t.Fatalf("print should be a Builtin1, got %#v", es.Value)
	}
	bin, ok := call.Arg.(*ast.BinaryOp)
	if !ok || bin.Op != ast.Minus {
		t.Errorf("argument = %#v", call.Arg)
	}
	if es.Pos.Line != 2 {
		t.Errorf("expression statement on line %d, want 2", es.Pos.Line)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src  string
		msg  string
		line int
	}{
		{"print(1, 2)", "print takes 1 argument, got 2", 1},
		{"x = max(1)", "max takes 2 arguments, got 1", 1},
		{"x = 1\ny = foo(x)", "unknown builtin foo", 2},
		{"x = sum(1, 2, 3)", "unknown builtin sum", 1},
		{"x = 1 y = 2", "expected newline or ';' before statement", 1},
		{"x = 99999999999", "does not fit in i32", 1},
		{"x = 010", "leading zeros", 1},
		{"x = -007", "leading zeros", 1},
		{"x = 7 // 2", "", 1},
		{"x = 1 /* c */ + 2", "", 1},
		{"x = 1 / 2", "", 1},
		{"x = 1.5", "", 1},
		{"x = -y", "", 1},
		{"x = (1 + 2", "", 1},
		{"= 3", "", 1},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := ParseString(tt.src)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected ParseError, got %v", err)
			}
			if !strings.Contains(perr.Msg, tt.msg) {
				t.Errorf("message %q does not contain %q", perr.Msg, tt.msg)
			}
			if perr.Pos.Line != tt.line {
				t.Errorf("error on line %d, want %d", perr.Pos.Line, tt.line)
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.py")
	if err := os.WriteFile(path, []byte("a = 1\nprint(a)\n"), 0644); err != nil {
		t.Fatal(err)
	}
	stmts, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(stmts) != 2 {
		t.Fatalf("got %d statements", len(stmts))
	}
	if stmts[1].Position().Filename != path {
		t.Errorf("position filename = %q", stmts[1].Position().Filename)
	}

	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.py")); !os.IsNotExist(err) {
		t.Errorf("expected a not-exist error, got %v", err)
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := Parse("demo.py", "\nprint(1, 2)")
	if err == nil {
		t.Fatal("expected an error")
	}
	if want := "print takes 1 argument, got 2 at demo.py:2:1"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestGrammarString(t *testing.T) {
	ebnf := Parser().String()
	for _, rule := range []string{"Program", "Statement", "Expression", "Call"} {
		if !strings.Contains(ebnf, rule) {
			t.Errorf("grammar is missing %s:\n%s", rule, ebnf)
		}
	}
}
