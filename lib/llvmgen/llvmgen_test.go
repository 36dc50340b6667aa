package llvmgen

import (
	"errors"
	"strings"
	"testing"

	"github.com/vyPal/wattle/lib/ast"
	"github.com/vyPal/wattle/lib/compiler"
	"github.com/vyPal/wattle/lib/parser"
)

func compile(t *testing.T, src string) *compiler.Output {
	t.Helper()
	stmts, err := parser.ParseString(src)
	if err != nil {
		t.Fatal(err)
	}
	out, err := compiler.NewCompiler(compiler.Options{}).Compile(stmts)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestEmit(t *testing.T) {
	ll, err := Emit(compile(t, "x = max(2, 3) * 4 - 1\ny = x + 1\nprint(y)"))
	if err != nil {
		t.Fatalf("Emit() error: %v", err)
	}
	for _, want := range []string{
		"declare i32 @wattle_max(",
		"declare i32 @wattle_print(",
		"define i32 @main()",
		"alloca i32",
		"call i32 @wattle_max(i32 2, i32 3)",
		"mul i32",
		"sub i32",
		"add i32",
		"call i32 @wattle_print(",
		"ret i32",
	} {
		if !strings.Contains(ll, want) {
			t.Errorf("output is missing %q:\n%s", want, ll)
		}
	}
}

func TestLowerEmptyProgram(t *testing.T) {
	m, err := Lower(compile(t, ""))
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Funcs) != 1 || m.Funcs[0].Name() != "main" {
		t.Fatalf("expected only main, got %d functions", len(m.Funcs))
	}
	if !strings.Contains(m.String(), "ret i32") {
		t.Errorf("main does not return:\n%s", m)
	}
}

func TestLowerRejectsBrokenStreams(t *testing.T) {
	tests := []struct {
		name string
		out  *compiler.Output
		want error
	}{
		{"underflow", &compiler.Output{
			Locals: []string{compiler.ScratchLocal},
			Blocks: [][]compiler.Instruction{{compiler.ConstInstr(1), compiler.ArithInstr(ast.Plus)}},
		}, ErrStackUnderflow},
		{"leftover", &compiler.Output{
			Locals: []string{compiler.ScratchLocal},
			Blocks: [][]compiler.Instruction{{compiler.ConstInstr(1)}},
		}, ErrUnbalanced},
		{"unknown local", &compiler.Output{
			Locals: []string{compiler.ScratchLocal},
			Blocks: [][]compiler.Instruction{{compiler.GetInstr("ghost"), compiler.SetInstr(compiler.ScratchLocal)}},
		}, ErrUnknownLocal},
		{"undeclared builtin", &compiler.Output{
			Locals: []string{compiler.ScratchLocal},
			Blocks: [][]compiler.Instruction{{compiler.ConstInstr(1), compiler.CallInstr("abs", 1), compiler.SetInstr(compiler.ScratchLocal)}},
		}, ErrUnknownBuiltin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Lower(tt.out); !errors.Is(err, tt.want) {
				t.Errorf("Lower() = %v, want %v", err, tt.want)
			}
		})
	}
}
