package ast

import (
	"errors"
	"testing"
)

func TestBinOpString(t *testing.T) {
	cases := map[BinOp]string{
		Plus:     "+",
		Minus:    "-",
		Multiply: "*",
		BinOp(0): "BinOp(0)",
		BinOp(9): "BinOp(9)",
	}
	for op, want := range cases {
		if got := op.String(); got != want {
			t.Errorf("BinOp(%d).String() = %q, want %q", int(op), got, want)
		}
	}
}

func TestBinOpFromString(t *testing.T) {
	for _, op := range []BinOp{Plus, Minus, Multiply} {
		got, ok := BinOpFromString(op.String())
		if !ok || got != op {
			t.Errorf("BinOpFromString(%q) = %v, %v", op.String(), got, ok)
		}
	}
	if _, ok := BinOpFromString("/"); ok {
		t.Error("division should not be an operator")
	}
}

func TestBuiltinSets(t *testing.T) {
	for _, name := range []string{"abs", "print"} {
		if !IsBuiltin1(name) || IsBuiltin2(name) {
			t.Errorf("%s should be a one argument builtin only", name)
		}
	}
	for _, name := range []string{"max", "min", "pow"} {
		if !IsBuiltin2(name) || IsBuiltin1(name) {
			t.Errorf("%s should be a two argument builtin only", name)
		}
	}
	if IsBuiltin1("len") || IsBuiltin2("len") {
		t.Error("len is not a builtin")
	}
}

func TestIsNil(t *testing.T) {
	var num *Number
	var stmt Stmt
	if !IsNil(num) || !IsNil(stmt) {
		t.Error("nil nodes should report nil")
	}
	if IsNil(&Var{Name: "x"}) {
		t.Error("non-nil node reported nil")
	}
}

func TestUnsupportedConstructError(t *testing.T) {
	var err error = &UnsupportedConstructError{Node: &Number{}}
	if err.Error() != "unsupported construct: *ast.Number" {
		t.Errorf("unexpected message %q", err.Error())
	}
	var target *UnsupportedConstructError
	if !errors.As(err, &target) {
		t.Error("errors.As failed")
	}
	if (&UnsupportedConstructError{}).Error() != "unsupported construct: <nil>" {
		t.Error("nil node message")
	}
}

func TestDumpString(t *testing.T) {
	prog := []Stmt{
		&Define{Name: "y", Value: &BinaryOp{
			Op:   Plus,
			Left: &Number{Value: 1},
			Right: &BinaryOp{
				Op:    Multiply,
				Left:  &Number{Value: 2},
				Right: &Number{Value: -3},
			},
		}},
		&ExprStmt{Value: &Builtin1{Name: "print", Arg: &Builtin2{
			Name: "max",
			Arg1: &Var{Name: "y"},
			Arg2: &Number{Value: 4},
		}}},
	}
	want := "y = (1 + (2 * -3))\nprint(max(y, 4))\n"
	if got := DumpString(prog); got != want {
		t.Errorf("DumpString() = %q, want %q", got, want)
	}
}
