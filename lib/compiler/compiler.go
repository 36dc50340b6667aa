package compiler

import (
	"fmt"
	"strings"

	"github.com/vyPal/wattle/lib/analyzer"
	"github.com/vyPal/wattle/lib/ast"
)

// Placement decides where the scratch local is declared relative to the
// program's own locals.
type Placement string

const (
	ScratchFirst Placement = "first"
	ScratchLast  Placement = "last"
)

func ParsePlacement(s string) (Placement, error) {
	switch Placement(s) {
	case "", ScratchFirst:
		return ScratchFirst, nil
	case ScratchLast:
		return ScratchLast, nil
	}
	return "", fmt.Errorf("invalid scratch placement %q (want %q or %q)", s, ScratchFirst, ScratchLast)
}

type Options struct {
	ScratchPlacement Placement
}

// Builtin is a runtime function called by a program.
type Builtin struct {
	Name  string
	Arity int
}

// Output is a compiled program: hoisted local declarations followed by one
// instruction block per source statement.
type Output struct {
	Locals   []string
	Blocks   [][]Instruction
	Builtins []Builtin
}

// Instructions returns all statement blocks concatenated in source order.
func (o *Output) Instructions() []Instruction {
	var out []Instruction
	for _, b := range o.Blocks {
		out = append(out, b...)
	}
	return out
}

func (o *Output) Lines() []string {
	lines := make([]string, 0, len(o.Locals))
	for _, name := range o.Locals {
		lines = append(lines, localDecl(name))
	}
	for _, b := range o.Blocks {
		for _, in := range b {
			lines = append(lines, in.String())
		}
	}
	return lines
}

// String renders the program as newline separated instructions, without a
// trailing newline.
func (o *Output) String() string {
	return strings.Join(o.Lines(), "\n")
}

type Compiler struct {
	Options Options
}

func NewCompiler(opts Options) *Compiler {
	if opts.ScratchPlacement == "" {
		opts.ScratchPlacement = ScratchFirst
	}
	return &Compiler{Options: opts}
}

// Compile checks stmts and generates code for them. The first error stops
// compilation and no partial output is returned.
func (c *Compiler) Compile(stmts []ast.Stmt) (*Output, error) {
	if err := analyzer.Check(stmts); err != nil {
		return nil, err
	}

	out := &Output{Locals: c.locals(analyzer.CollectNames(stmts))}

	seen := make(map[string]bool)
	for _, s := range stmts {
		block, err := GenerateStatement(s)
		if err != nil {
			return nil, err
		}
		for _, in := range block {
			if in.Kind == Call && !seen[in.Name] {
				seen[in.Name] = true
				out.Builtins = append(out.Builtins, Builtin{Name: in.Name, Arity: in.Arity})
			}
		}
		out.Blocks = append(out.Blocks, block)
	}
	return out, nil
}

func (c *Compiler) locals(names []string) []string {
	locals := make([]string, 0, len(names)+1)
	if c.Options.ScratchPlacement == ScratchLast {
		locals = append(locals, names...)
		return append(locals, ScratchLocal)
	}
	locals = append(locals, ScratchLocal)
	return append(locals, names...)
}

// Compile compiles stmts with the default options and returns the
// instruction text.
func Compile(stmts []ast.Stmt) (string, error) {
	out, err := NewCompiler(Options{}).Compile(stmts)
	if err != nil {
		return "", err
	}
	return out.String(), nil
}
