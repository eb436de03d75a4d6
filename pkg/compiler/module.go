package compiler

import "github.com/zhanghaoxvan/gobol/pkg/runtime"

// Module is the compiler's output: everything the VM needs to run a
// program, with no remaining references back into the AST.
type Module struct {
	Instructions []Instruction
	Constants    []runtime.Value
	// Functions maps a user-defined function's name to the pc of its
	// first instruction. A CALL instruction needs this to know where to
	// jump; the compiler also emits a parameter-binding prologue right
	// after each entry point (see Compile in compiler.go), since Functions itself
	// only records where to jump, never what to name the arguments.
	Functions map[string]int
}
