package compiler

import (
	"fmt"
	"strconv"

	"github.com/vyPal/wattle/lib/ast"
)

// Kind identifies the form of an Instruction.
type Kind int

const (
	Const Kind = iota + 1
	LocalGet
	LocalSet
	Call
	Arith
)

func (k Kind) String() string {
	switch k {
	case Const:
		return "const"
	case LocalGet:
		return "local.get"
	case LocalSet:
		return "local.set"
	case Call:
		return "call"
	case Arith:
		return "arith"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Instruction is one stack machine instruction. Only the fields relevant to
// Kind are set: Value for Const, Name for locals and calls, Arity for calls
// and Op for Arith.
type Instruction struct {
	Kind  Kind
	Value int64
	Name  string
	Arity int
	Op    ast.BinOp
}

func ConstInstr(v int64) Instruction { return Instruction{Kind: Const, Value: v} }
func GetInstr(name string) Instruction { return Instruction{Kind: LocalGet, Name: name} }
func SetInstr(name string) Instruction { return Instruction{Kind: LocalSet, Name: name} }
func ArithInstr(op ast.BinOp) Instruction { return Instruction{Kind: Arith, Op: op} }
func CallInstr(name string, arity int) Instruction {
	return Instruction{Kind: Call, Name: name, Arity: arity}
}

// Pops is the number of operands the instruction takes off the stack.
func (i Instruction) Pops() int {
	switch i.Kind {
	case LocalSet:
		return 1
	case Call:
		return i.Arity
	case Arith:
		return 2
	}
	return 0
}

// Pushes is the number of values the instruction leaves on the stack.
// Every builtin returns exactly one value.
func (i Instruction) Pushes() int {
	switch i.Kind {
	case Const, LocalGet, Call, Arith:
		return 1
	}
	return 0
}

func (i Instruction) String() string {
	switch i.Kind {
	case Const:
		return "(i32.const " + strconv.FormatInt(i.Value, 10) + ")"
	case LocalGet:
		return "(local.get $" + i.Name + ")"
	case LocalSet:
		return "(local.set $" + i.Name + ")"
	case Call:
		return "(call $" + i.Name + ")"
	case Arith:
		opcode, err := Opcode(i.Op)
		if err != nil {
			return "(" + err.Error() + ")"
		}
		return "(" + opcode + ")"
	}
	return fmt.Sprintf("(unknown %s)", i.Kind)
}

// Opcode maps a binary operator to its i32 instruction.
func Opcode(op ast.BinOp) (string, error) {
	switch op {
	case ast.Plus:
		return "i32.add", nil
	case ast.Minus:
		return "i32.sub", nil
	case ast.Multiply:
		return "i32.mul", nil
	default:
		return "", &UnknownOperatorError{Op: op.String()}
	}
}

// Depth runs a stack depth counter over instrs, starting at zero. It returns
// the final depth and false if the depth ever went negative.
func Depth(instrs []Instruction) (int, bool) {
	depth := 0
	for _, in := range instrs {
		depth -= in.Pops()
		if depth < 0 {
			return depth, false
		}
		depth += in.Pushes()
	}
	return depth, true
}

func localDecl(name string) string {
	return "(local $" + name + " i32)"
}
