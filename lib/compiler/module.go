package compiler

import (
	"strings"
)

// ImportModule is the import namespace builtins are expected under.
const ImportModule = "imports"

// ExportName is the name the program body is exported as.
const ExportName = "exported_func"

// WrapModule renders out as a complete module: one import per builtin the
// program calls, then an exported function holding the locals and body
// that returns the scratch local.
func WrapModule(out *Output) string {
	var sb strings.Builder
	sb.WriteString("(module\n")
	for _, b := range out.Builtins {
		sb.WriteString("  (func $" + b.Name + " (import \"" + ImportModule + "\" \"" + b.Name + "\")")
		for i := 0; i < b.Arity; i++ {
			sb.WriteString(" (param i32)")
		}
		sb.WriteString(" (result i32))\n")
	}
	sb.WriteString("  (func (export \"" + ExportName + "\") (result i32)\n")
	for _, line := range out.Lines() {
		sb.WriteString("    " + line + "\n")
	}
	sb.WriteString("    " + GetInstr(ScratchLocal).String() + ")\n")
	sb.WriteString(")\n")
	return sb.String()
}
