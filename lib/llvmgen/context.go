package llvmgen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"
)

// Context holds the state of lowering one program into the body of main:
// the block being filled, one stack slot per local and the operand stack
// of the source instructions.
type Context struct {
	*ir.Block
	Module *ir.Module
	vars   map[string]*ir.InstAlloca
	funcs  map[string]*ir.Func
	stack  []value.Value
}

func NewContext(b *ir.Block, m *ir.Module) *Context {
	return &Context{
		Block:  b,
		Module: m,
		vars:   make(map[string]*ir.InstAlloca),
		funcs:  make(map[string]*ir.Func),
	}
}

func (c *Context) lookupVariable(name string) (*ir.InstAlloca, bool) {
	v, ok := c.vars[name]
	return v, ok
}

func (c *Context) lookupFunction(name string) (*ir.Func, bool) {
	f, ok := c.funcs[name]
	return f, ok
}

func (c *Context) push(v value.Value) {
	c.stack = append(c.stack, v)
}

func (c *Context) pop() (value.Value, bool) {
	if len(c.stack) == 0 {
		return nil, false
	}
	v := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	return v, true
}
