package compiler

import (
	"github.com/zhanghaoxvan/gobol/pkg/ast"
	"github.com/zhanghaoxvan/gobol/pkg/runtime"
)

// emitExpression lowers e so that exactly one value is left on the eval
// stack when it returns (per-node emission contract).
func (c *Compiler) emitExpression(e ast.Expression) {
	switch n := e.(type) {
	case *ast.NumberLit:
		if n.IsInt {
			c.emit(Instruction{Op: OpConst, A: c.constIndex(runtime.IntValue{Val: int64(n.Value)})})
		} else {
			c.emit(Instruction{Op: OpConst, A: c.constIndex(runtime.FloatValue{Val: n.Value})})
		}
	case *ast.StringLit:
		c.emit(Instruction{Op: OpConst, A: c.constIndex(runtime.StrValue{Val: n.Value})})
	case *ast.BooleanLit:
		c.emit(Instruction{Op: OpConst, A: c.constIndex(runtime.BoolValue{Val: n.Value})})
	case *ast.Identifier:
		c.emit(c.loadName(n.Name))
	case *ast.Grouped:
		c.emitExpression(n.Inner)
	case *ast.FormatString:
		for _, ph := range n.Placeholders {
			c.emitExpression(ph.Expr)
		}
		c.emit(Instruction{Op: OpFormat, A: c.constIndex(runtime.StrValue{Val: n.Raw}), B: len(n.Placeholders)})
	case *ast.Range:
		for _, arg := range n.Args {
			c.emitExpression(arg)
		}
		if len(n.Args) == 2 {
			c.emit(Instruction{Op: OpConst, A: c.constIndex(runtime.IntValue{Val: 1})})
		}
		c.emit(Instruction{Op: OpMakeRange})
	case *ast.Unary:
		c.emitUnary(n)
	case *ast.Binary:
		c.emitBinary(n)
	case *ast.Index:
		c.emitExpression(n.Array)
		c.emitExpression(n.Idx)
		c.emit(Instruction{Op: OpArrayGet})
	case *ast.Call:
		c.emitCall(n)
	case *ast.MemberAccess:
		// A bare module member with no call around it names a function
		// value, which Gobol never treats as first-class; nothing
		// upstream of the analyzer should produce this shape, but
		// compiling it to None keeps Compile total.
		c.emit(Instruction{Op: OpConst, A: c.constIndex(runtime.NoneValue{})})
	}
}

func (c *Compiler) emitUnary(n *ast.Unary) {
	switch n.Op {
	case "!":
		c.emitExpression(n.Operand)
		c.emit(Instruction{Op: OpNot})
	case "-":
		c.emitExpression(n.Operand)
		c.emit(Instruction{Op: OpNeg})
	case "+":
		c.emitExpression(n.Operand)
	}
}

var binaryOps = map[string]OpCode{
	"+": OpAdd, "-": OpSub, "*": OpMul, "/": OpDiv, "%": OpMod,
	"<": OpLt, "<=": OpLe, ">": OpGt, ">=": OpGe,
	"==": OpEq, "!=": OpNe, "&&": OpAnd, "||": OpOr,
}

func (c *Compiler) emitBinary(n *ast.Binary) {
	if n.Op == "=" {
		c.emitAssignment(n)
		return
	}
	c.emitExpression(n.Left)
	c.emitExpression(n.Right)
	c.emit(Instruction{Op: binaryOps[n.Op]})
}

// emitAssignment lowers Binary{"=", Left, Right}. The assignment
// expression itself evaluates to the stored value (so `x = y = 1` works),
// which is why every branch below leaves one extra copy of the value on
// the stack via DUP before consuming the other copy with a store.
func (c *Compiler) emitAssignment(n *ast.Binary) {
	switch left := n.Left.(type) {
	case *ast.Identifier:
		c.emitExpression(n.Right)
		c.emit(Instruction{Op: OpDup})
		c.emit(c.storeName(left.Name))
	case *ast.Index:
		arrName := identifierName(left.Array)
		c.emitExpression(n.Right)
		c.emit(Instruction{Op: OpDup})
		c.emitExpression(left.Idx)
		c.emit(Instruction{Op: OpArraySet, S: arrName})
	}
}

func identifierName(e ast.Expression) string {
	if id, ok := e.(*ast.Identifier); ok {
		return id.Name
	}
	return ""
}

func (c *Compiler) emitCall(n *ast.Call) {
	switch callee := n.Callee.(type) {
	case *ast.Identifier:
		for _, arg := range n.Args {
			c.emitExpression(arg)
		}
		if !c.declaredFuncs[callee.Name] {
			if _, ok := c.registry.Lookup("__builtins__", callee.Name); ok {
				c.emit(Instruction{Op: OpBuiltin, S: "__builtins__." + callee.Name, A: len(n.Args)})
				return
			}
		}
		c.emit(Instruction{Op: OpCall, S: callee.Name, A: len(n.Args)})
	case *ast.MemberAccess:
		moduleIdent, ok := callee.Object.(*ast.Identifier)
		if !ok {
			c.emit(Instruction{Op: OpConst, A: c.constIndex(runtime.NoneValue{})})
			return
		}
		for _, arg := range n.Args {
			c.emitExpression(arg)
		}
		c.emit(Instruction{Op: OpBuiltin, S: moduleIdent.Name + "." + callee.Member, A: len(n.Args)})
	}
}
