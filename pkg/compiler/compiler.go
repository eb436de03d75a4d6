package compiler

import (
	"fmt"

	"github.com/zhanghaoxvan/gobol/pkg/ast"
	"github.com/zhanghaoxvan/gobol/pkg/builtins"
	"github.com/zhanghaoxvan/gobol/pkg/runtime"
)

// Compiler holds the state accumulated while lowering one Program: the
// instruction stream built so far, the deduplicated constant pool, the
// function table, and a small stack of loop contexts for break/continue
// jump patching. This mirrors the bytecodeLoweringContext / loopContext
// split pattern used for lowering a richer node set down to a bytecode
// stream, narrowed here to Gobol's.
type Compiler struct {
	instrs    []Instruction
	consts    []runtime.Value
	constIdx  map[string]int
	functions map[string]int

	// declaredFuncs names every top-level user function, gathered in a
	// pre-pass before any statement is emitted, so emitCall can tell a call
	// to a user function apart from a bare __builtins__ call (print, len,
	// int, float, str) regardless of which one appears earlier in the file.
	declaredFuncs map[string]bool
	registry      *builtins.Registry

	inFunction bool
	loops      []loopContext
	tempSeq    int
}

// loopContext tracks one enclosing while/for loop's jump-patching state:
// where "continue" should jump back to, and every "break" jump still
// waiting to be patched to the loop's exit address once it is known.
type loopContext struct {
	continueJumps []int
	breakJumps    []int
}

func newCompiler() *Compiler {
	return &Compiler{
		constIdx:      map[string]int{},
		functions:     map[string]int{},
		declaredFuncs: map[string]bool{},
		registry:      builtins.LoadDefault(),
	}
}

// Compile lowers prog into a bytecode Module. prog is assumed to have
// already passed semantic analysis; the compiler does not re-validate
// break/continue placement or type rules.
func Compile(prog *ast.Program) *Module {
	c := newCompiler()

	var functions []*ast.Function
	for _, stmt := range prog.Body {
		if fn, ok := stmt.(*ast.Function); ok {
			functions = append(functions, fn)
			c.declaredFuncs[fn.Name] = true
		}
	}

	for _, stmt := range prog.Body {
		if _, ok := stmt.(*ast.Function); ok {
			continue
		}
		c.emitStatement(stmt)
	}
	c.emit(Instruction{Op: OpHalt})

	for _, fn := range functions {
		c.functions[fn.Name] = len(c.instrs)
		c.inFunction = true
		for i, p := range fn.Params {
			c.emit(Instruction{Op: OpLoadName, S: fmt.Sprintf("p%d", i)})
			c.emit(Instruction{Op: OpStoreName, S: p.Name})
		}
		for _, stmt := range fn.Body.Stmts {
			c.emitStatement(stmt)
		}
		// Implicit `return` for a function whose control falls off the
		// end of its body without an explicit return statement.
		c.emit(Instruction{Op: OpConst, A: c.constIndex(runtime.NoneValue{})})
		c.emit(Instruction{Op: OpRet})
		c.inFunction = false
	}

	return &Module{Instructions: c.instrs, Constants: c.consts, Functions: c.functions}
}

func (c *Compiler) emit(instr Instruction) int {
	c.instrs = append(c.instrs, instr)
	return len(c.instrs) - 1
}

// here returns the pc the next emitted instruction will occupy.
func (c *Compiler) here() int { return len(c.instrs) }

// patchJumpTo backfills a previously emitted jump instruction's target.
func (c *Compiler) patchJumpTo(instrIdx, target int) {
	c.instrs[instrIdx].A = target
}

// constIndex interns v into the constant pool, deduplicating scalar
// constants so the same literal appearing twice in source shares one pool
// slot (constant-pool contract).
func (c *Compiler) constIndex(v runtime.Value) int {
	key := dedupeKey(v)
	if idx, ok := c.constIdx[key]; ok {
		return idx
	}
	idx := len(c.consts)
	c.consts = append(c.consts, v)
	c.constIdx[key] = idx
	return idx
}

func dedupeKey(v runtime.Value) string {
	switch x := v.(type) {
	case runtime.IntValue:
		return fmt.Sprintf("i:%d", x.Val)
	case runtime.FloatValue:
		return fmt.Sprintf("f:%v", x.Val)
	case runtime.StrValue:
		return "s:" + x.Val
	case runtime.BoolValue:
		return fmt.Sprintf("b:%v", x.Val)
	default:
		// NoneValue is the only other literal the compiler ever emits,
		// and every instance is equal, so keying on its Kind is enough.
		return fmt.Sprintf("k:%d", v.Kind())
	}
}

// nextTemp returns a compiler-private name no source identifier can ever
// collide with, used for a for-loop's hidden end/step bookkeeping slots.
func (c *Compiler) nextTemp(prefix string) string {
	c.tempSeq++
	return fmt.Sprintf("$%s_%d", prefix, c.tempSeq)
}

func (c *Compiler) loadName(name string) Instruction {
	if c.inFunction {
		return Instruction{Op: OpLoadName, S: name}
	}
	return Instruction{Op: OpLoadGlobal, S: name}
}

func (c *Compiler) storeName(name string) Instruction {
	if c.inFunction {
		return Instruction{Op: OpStoreName, S: name}
	}
	return Instruction{Op: OpStoreGlobal, S: name}
}
