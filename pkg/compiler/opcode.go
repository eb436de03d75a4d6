// Package compiler lowers a semantically-checked *ast.Program into a linear
// bytecode.Module the stack VM executes: constant pool,
// jump-patched instruction stream, and a function table recording each
// top-level function's entry address.
package compiler

import "fmt"

// OpCode is the bytecode instruction set. It tracks
// _examples/original_source/Bytecode/OpCode.hpp closely, with three
// deliberate departures documented in DESIGN.md: MOD fills a gap the
// original C++ left to the tree-walking interpreter alone, ARRAY_LEN is
// dropped because __builtins__.len covers it through BUILTIN, and named
// LOAD_NAME/STORE_NAME/LOAD_GLOBAL/STORE_GLOBAL replace the original's
// VAL/VAR opcode split because mutability is already enforced during
// semantic analysis, before any bytecode exists.
type OpCode int

const (
	OpConst OpCode = iota
	OpLoadName
	OpStoreName
	OpLoadGlobal
	OpStoreGlobal
	OpAllocArray
	OpArrayGet
	OpArraySet
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe
	OpAnd
	OpOr
	OpNot
	OpNeg
	OpJmp
	OpJmpTrue
	OpJmpFalse
	OpPop
	OpDup
	OpFormat
	OpCall
	OpRet
	OpBuiltin
	OpMakeRange
	OpHalt
)

func (op OpCode) String() string {
	names := [...]string{
		"CONST", "LOAD_NAME", "STORE_NAME", "LOAD_GLOBAL", "STORE_GLOBAL",
		"ALLOC_ARRAY", "ARRAY_GET", "ARRAY_SET",
		"ADD", "SUB", "MUL", "DIV", "MOD",
		"LT", "LE", "GT", "GE", "EQ", "NE",
		"AND", "OR", "NOT", "NEG",
		"JMP", "JMP_TRUE", "JMP_FALSE",
		"POP", "DUP", "FORMAT", "CALL", "RET", "BUILTIN", "MAKE_RANGE", "HALT",
	}
	if int(op) < 0 || int(op) >= len(names) {
		return fmt.Sprintf("OP(%d)", int(op))
	}
	return names[op]
}

// Instruction is one bytecode op plus whatever operands it needs. Not every
// field is meaningful for every op: A is a constant-pool index, a jump
// target, an argument count, or an array type code depending on Op; B is
// FORMAT's placeholder count; S is a variable, function, or "module.name"
// builtin key.
type Instruction struct {
	Op OpCode
	A  int
	B  int
	S  string
}
