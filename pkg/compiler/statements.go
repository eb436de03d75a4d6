package compiler

import (
	"github.com/zhanghaoxvan/gobol/pkg/ast"
	"github.com/zhanghaoxvan/gobol/pkg/runtime"
)

func (c *Compiler) emitStatement(stmt ast.Statement) {
	switch n := stmt.(type) {
	case *ast.Import, *ast.ModuleDecl:
		// No runtime effect: the analyzer already used these to validate
		// module-qualified names.
	case *ast.Function:
		// Top-level functions are lowered by Compile itself, never
		// reached through a nested emitStatement call since the grammar
		// has no nested function declarations.
	case *ast.Declaration:
		c.emitDeclaration(n)
	case *ast.Block:
		for _, s := range n.Stmts {
			c.emitStatement(s)
		}
	case *ast.If:
		c.emitIf(n)
	case *ast.While:
		c.emitWhile(n)
	case *ast.For:
		c.emitFor(n)
	case *ast.Return:
		if n.Value != nil {
			c.emitExpression(n.Value)
		} else {
			c.emit(Instruction{Op: OpConst, A: c.constIndex(runtime.NoneValue{})})
		}
		c.emit(Instruction{Op: OpRet})
	case *ast.Break:
		idx := c.emit(Instruction{Op: OpJmp})
		top := &c.loops[len(c.loops)-1]
		top.breakJumps = append(top.breakJumps, idx)
	case *ast.Continue:
		idx := c.emit(Instruction{Op: OpJmp})
		top := &c.loops[len(c.loops)-1]
		top.continueJumps = append(top.continueJumps, idx)
	case *ast.ExpressionStmt:
		c.emitExpression(n.Expr)
		c.emit(Instruction{Op: OpPop})
	}
}

// elementTypeCode maps a declared array element type name to the type code
// ALLOC_ARRAY's default-value table uses, per
// _examples/original_source/Bytecode/VirtualMachine.cpp's ALLOC_ARRAY case
// (0=int, 1=float, 2=bool, 3=str).
func elementTypeCode(name string) int {
	switch name {
	case "float":
		return 1
	case "bool":
		return 2
	case "str":
		return 3
	default:
		return 0
	}
}

func (c *Compiler) emitDeclaration(n *ast.Declaration) {
	if arrType, ok := n.Type.(*ast.ArrayType); ok {
		c.emitExpression(arrType.SizeExpr)
		c.emit(Instruction{Op: OpAllocArray, A: elementTypeCode(arrType.ElementName)})
		c.emit(c.storeName(n.Name))
		return
	}

	if n.Init != nil {
		c.emitExpression(n.Init)
	} else {
		elemName := "int"
		if nt, ok := n.Type.(*ast.NamedType); ok {
			elemName = nt.Name
		}
		c.emit(Instruction{Op: OpConst, A: c.constIndex(runtime.ZeroValueFor(elemName))})
	}
	c.emit(c.storeName(n.Name))
}

func (c *Compiler) emitIf(n *ast.If) {
	c.emitExpression(n.Cond)
	jfalse := c.emit(Instruction{Op: OpJmpFalse})
	c.emitStatement(n.Then)

	if n.Else == nil {
		c.patchJumpTo(jfalse, c.here())
		return
	}
	jend := c.emit(Instruction{Op: OpJmp})
	c.patchJumpTo(jfalse, c.here())
	c.emitStatement(n.Else)
	c.patchJumpTo(jend, c.here())
}

func (c *Compiler) emitWhile(n *ast.While) {
	loopStart := c.here()
	c.emitExpression(n.Cond)
	jfalse := c.emit(Instruction{Op: OpJmpFalse})

	c.loops = append(c.loops, loopContext{})
	c.emitStatement(n.Body)
	c.emit(Instruction{Op: OpJmp, A: loopStart})

	exit := c.here()
	c.patchJumpTo(jfalse, exit)
	c.endLoop(loopStart, exit)
}

// emitFor lowers `for name in range(start, end[, step])` into a counted
// while-style loop over hidden compiler-private slots: no first-class Range
// value is ever constructed on the bytecode path (pkg/interp instead uses
// runtime.RangeValue directly,).
func (c *Compiler) emitFor(n *ast.For) {
	rng, ok := n.Iterable.(*ast.Range)
	if !ok {
		// Semantic analysis already rejected this program; compiling a
		// harmless no-op loop keeps Compile total over any AST shape.
		return
	}

	endVar := c.nextTemp("for_end")
	stepVar := c.nextTemp("for_step")

	c.emitExpression(rng.Args[0])
	c.emit(c.storeName(n.VarName))
	c.emitExpression(rng.Args[1])
	c.emit(c.storeName(endVar))
	if len(rng.Args) == 3 {
		c.emitExpression(rng.Args[2])
	} else {
		c.emit(Instruction{Op: OpConst, A: c.constIndex(runtime.IntValue{Val: 1})})
	}
	c.emit(c.storeName(stepVar))

	loopStart := c.here()
	c.emit(c.loadName(n.VarName))
	c.emit(c.loadName(endVar))
	c.emit(Instruction{Op: OpLt})
	jfalse := c.emit(Instruction{Op: OpJmpFalse})

	c.loops = append(c.loops, loopContext{})
	for _, stmt := range n.Body.Stmts {
		c.emitStatement(stmt)
	}

	incr := c.here()
	c.emit(c.loadName(n.VarName))
	c.emit(c.loadName(stepVar))
	c.emit(Instruction{Op: OpAdd})
	c.emit(c.storeName(n.VarName))
	c.emit(Instruction{Op: OpJmp, A: loopStart})

	exit := c.here()
	c.patchJumpTo(jfalse, exit)
	c.endLoop(incr, exit)
}

// endLoop patches a loop's pending break/continue jumps: continue goes to
// continueTarget (a while-loop's condition check, or a for-loop's
// increment), break to breakTarget, just past the loop.
func (c *Compiler) endLoop(continueTarget, breakTarget int) {
	ctx := c.loops[len(c.loops)-1]
	c.loops = c.loops[:len(c.loops)-1]
	for _, idx := range ctx.continueJumps {
		c.patchJumpTo(idx, continueTarget)
	}
	for _, idx := range ctx.breakJumps {
		c.patchJumpTo(idx, breakTarget)
	}
}
