package analyzer

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vyPal/wattle/lib/ast"
)

func num(v int64) ast.Expr { return &ast.Number{Value: v} }
func ref(name string) ast.Expr { return &ast.Var{Name: name} }
func def(name string, v ast.Expr) ast.Stmt {
	return &ast.Define{Name: name, Value: v}
}
func expr(v ast.Expr) ast.Stmt { return &ast.ExprStmt{Value: v} }
func bin(op ast.BinOp, l, r ast.Expr) ast.Expr {
	return &ast.BinaryOp{Op: op, Left: l, Right: r}
}

func requireUndefined(t *testing.T, err error, name string) {
	t.Helper()
	var undef *UndefinedVariableError
	if !errors.As(err, &undef) {
		t.Fatalf("expected UndefinedVariableError, got %v", err)
	}
	if undef.Name != name {
		t.Fatalf("expected undefined variable %q, got %q", name, undef.Name)
	}
}

func TestCheckAcceptsDefinedReferences(t *testing.T) {
	tests := []struct {
		name string
		prog []ast.Stmt
	}{
		{"empty", nil},
		{"literal only", []ast.Stmt{expr(num(1))}},
		{"define then print", []ast.Stmt{
			def("x", num(10)),
			expr(&ast.Builtin1{Name: "print", Arg: ref("x")}),
		}},
		{"chain", []ast.Stmt{
			def("a", num(1)),
			def("b", ref("a")),
			def("c", bin(ast.Plus, ref("a"), ref("b"))),
		}},
		{"rebind using old value", []ast.Stmt{
			def("x", num(1)),
			def("x", bin(ast.Multiply, ref("x"), num(2))),
		}},
		{"builtin2 arguments", []ast.Stmt{
			def("a", num(1)),
			expr(&ast.Builtin2{Name: "pow", Arg1: ref("a"), Arg2: ref("a")}),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Check(tt.prog); err != nil {
				t.Fatalf("Check() = %v", err)
			}
		})
	}
}

func TestCheckReportsFirstUndefined(t *testing.T) {
	tests := []struct {
		name string
		prog []ast.Stmt
		want string
	}{
		{"bare use", []ast.Stmt{expr(&ast.Builtin1{Name: "print", Arg: ref("x")})}, "x"},
		{"self reference", []ast.Stmt{def("x", ref("x"))}, "x"},
		{"forward reference", []ast.Stmt{
			def("a", ref("b")),
			def("b", num(1)),
		}, "b"},
		{"left before right", []ast.Stmt{
			expr(bin(ast.Minus, ref("l"), ref("r"))),
		}, "l"},
		{"depth first", []ast.Stmt{
			expr(bin(ast.Plus, bin(ast.Multiply, num(1), ref("inner")), ref("outer"))),
		}, "inner"},
		{"argument order", []ast.Stmt{
			expr(&ast.Builtin2{Name: "max", Arg1: ref("first"), Arg2: ref("second")}),
		}, "first"},
		{"statement order", []ast.Stmt{
			def("a", num(1)),
			expr(ref("p")),
			expr(ref("q")),
		}, "p"},
		{"defined only later", []ast.Stmt{
			expr(ref("z")),
			def("z", num(3)),
		}, "z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireUndefined(t, Check(tt.prog), tt.want)
		})
	}
}

func TestCheckRejectsNilNodes(t *testing.T) {
	progs := [][]ast.Stmt{
		{nil},
		{def("x", nil)},
		{expr(bin(ast.Plus, num(1), nil))},
		{&ast.ExprStmt{Value: (*ast.Number)(nil)}},
	}
	for i, prog := range progs {
		var unsupported *ast.UnsupportedConstructError
		if err := Check(prog); !errors.As(err, &unsupported) {
			t.Errorf("program %d: expected UnsupportedConstructError, got %v", i, err)
		}
	}
}

func TestUndefinedVariableErrorMessage(t *testing.T) {
	err := &UndefinedVariableError{Name: "x"}
	if err.Error() != "undefined variable: x" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestCollectNames(t *testing.T) {
	prog := []ast.Stmt{
		def("b", num(1)),
		expr(&ast.Builtin1{Name: "print", Arg: ref("b")}),
		def("a", ref("b")),
		def("b", num(2)),
		def("c", bin(ast.Plus, ref("a"), ref("b"))),
	}
	want := []string{"b", "a", "c"}
	if got := CollectNames(prog); !reflect.DeepEqual(got, want) {
		t.Errorf("CollectNames() = %v, want %v", got, want)
	}
	if got := CollectNames(nil); len(got) != 0 {
		t.Errorf("CollectNames(nil) = %v, want empty", got)
	}
}

func TestCollectNamesIsStable(t *testing.T) {
	var prog []ast.Stmt
	for _, n := range []string{"q", "w", "e", "r", "t", "y", "u", "i", "o", "p"} {
		prog = append(prog, def(n, num(0)))
	}
	first := CollectNames(prog)
	for i := 0; i < 50; i++ {
		if got := CollectNames(prog); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: %v != %v", i, got, first)
		}
	}
}

func TestScope(t *testing.T) {
	s := NewScope()
	if !s.Define("x") || s.Define("x") {
		t.Error("Define should report only the first insertion")
	}
	s.Define("a")
	if !s.IsDefined("a") || s.IsDefined("b") {
		t.Error("IsDefined mismatch")
	}
	names := s.Names()
	names[0] = "mutated"
	if s.Names()[0] != "x" || s.Len() != 2 {
		t.Error("Names should return a copy in insertion order")
	}
}
