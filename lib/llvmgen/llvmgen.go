package llvmgen

import (
	"errors"
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"github.com/vyPal/wattle/lib/ast"
	"github.com/vyPal/wattle/lib/compiler"
)

// BuiltinPrefix is prepended to builtin names so they do not clash with
// the C library's abs and pow when linked.
const BuiltinPrefix = "wattle_"

var (
	ErrStackUnderflow = errors.New("stack underflow")
	ErrUnbalanced     = errors.New("values left on the stack")
	ErrUnknownLocal   = errors.New("unknown local")
	ErrUnknownBuiltin = errors.New("undeclared builtin")
)

// Lower translates a compiled program into an LLVM module with a single
// i32 main function. Locals become zero initialized stack slots and main
// returns the scratch local.
func Lower(out *compiler.Output) (*ir.Module, error) {
	m := ir.NewModule()
	for _, b := range out.Builtins {
		params := make([]*ir.Param, b.Arity)
		for i := range params {
			params[i] = ir.NewParam(fmt.Sprintf("a%d", i), types.I32)
		}
		m.NewFunc(BuiltinPrefix+b.Name, types.I32, params...)
	}

	fn := m.NewFunc("main", types.I32)
	ctx := NewContext(fn.NewBlock(""), m)
	for _, f := range m.Funcs {
		ctx.funcs[f.Name()] = f
	}
	for _, name := range out.Locals {
		alloc := ctx.NewAlloca(types.I32)
		alloc.SetName(name)
		ctx.NewStore(constant.NewInt(types.I32, 0), alloc)
		ctx.vars[name] = alloc
	}

	for i, in := range out.Instructions() {
		if err := ctx.lowerInstruction(in); err != nil {
			return nil, fmt.Errorf("instruction %d %s: %w", i, in, err)
		}
	}
	if len(ctx.stack) != 0 {
		return nil, fmt.Errorf("%d %w", len(ctx.stack), ErrUnbalanced)
	}

	scratch, ok := ctx.lookupVariable(compiler.ScratchLocal)
	if !ok {
		ctx.NewRet(constant.NewInt(types.I32, 0))
		return m, nil
	}
	ctx.NewRet(ctx.NewLoad(types.I32, scratch))
	return m, nil
}

// Emit lowers out and renders the module as LLVM assembly.
func Emit(out *compiler.Output) (string, error) {
	m, err := Lower(out)
	if err != nil {
		return "", err
	}
	return m.String(), nil
}

func (c *Context) lowerInstruction(in compiler.Instruction) error {
	switch in.Kind {
	case compiler.Const:
		c.push(constant.NewInt(types.I32, in.Value))
	case compiler.LocalGet:
		v, ok := c.lookupVariable(in.Name)
		if !ok {
			return fmt.Errorf("%w %s", ErrUnknownLocal, in.Name)
		}
		c.push(c.NewLoad(types.I32, v))
	case compiler.LocalSet:
		v, ok := c.lookupVariable(in.Name)
		if !ok {
			return fmt.Errorf("%w %s", ErrUnknownLocal, in.Name)
		}
		val, ok := c.pop()
		if !ok {
			return ErrStackUnderflow
		}
		c.NewStore(val, v)
	case compiler.Call:
		f, ok := c.lookupFunction(BuiltinPrefix + in.Name)
		if !ok {
			return fmt.Errorf("%w %s", ErrUnknownBuiltin, in.Name)
		}
		args := make([]value.Value, in.Arity)
		for i := in.Arity - 1; i >= 0; i-- {
			arg, ok := c.pop()
			if !ok {
				return ErrStackUnderflow
			}
			args[i] = arg
		}
		c.push(c.NewCall(f, args...))
	case compiler.Arith:
		right, ok := c.pop()
		if !ok {
			return ErrStackUnderflow
		}
		left, ok := c.pop()
		if !ok {
			return ErrStackUnderflow
		}
		switch in.Op {
		case ast.Plus:
			c.push(c.NewAdd(left, right))
		case ast.Minus:
			c.push(c.NewSub(left, right))
		case ast.Multiply:
			c.push(c.NewMul(left, right))
		default:
			return &compiler.UnknownOperatorError{Op: in.Op.String()}
		}
	default:
		return fmt.Errorf("unknown instruction kind %s", in.Kind)
	}
	return nil
}
