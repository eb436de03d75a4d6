package interp

import (
	"fmt"

	"github.com/zhanghaoxvan/gobol/pkg/ast"
	"github.com/zhanghaoxvan/gobol/pkg/runtime"
)

func (it *Interpreter) VisitImport(n *ast.Import) error     { return nil }
func (it *Interpreter) VisitModuleDecl(n *ast.ModuleDecl) error { return nil }

// VisitFunction is a no-op at the statement level: Run already collected
// every top-level function into it.funcs before executing anything, since
// Gobol has no nested function declarations and calls may precede a
// function's textual definition.
func (it *Interpreter) VisitFunction(n *ast.Function) error { return nil }

func (it *Interpreter) VisitBlock(n *ast.Block) error {
	it.env.push()
	defer it.env.pop()
	for _, stmt := range n.Stmts {
		if err := stmt.Accept(it); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interpreter) VisitDeclaration(n *ast.Declaration) error {
	if arrType, ok := n.Type.(*ast.ArrayType); ok {
		size, err := it.evalExpr(arrType.SizeExpr)
		if err != nil {
			return err
		}
		n64, err := asInt(size)
		if err != nil {
			return err
		}
		elements := make([]runtime.Value, n64)
		zero := runtime.ZeroValueFor(arrType.ElementName)
		for i := range elements {
			elements[i] = zero
		}
		it.env.define(n.Name, runtime.ArrayValue{Elements: elements})
		return nil
	}

	if n.Init != nil {
		v, err := it.evalExpr(n.Init)
		if err != nil {
			return err
		}
		it.env.define(n.Name, v)
		return nil
	}
	elemName := "int"
	if nt, ok := n.Type.(*ast.NamedType); ok {
		elemName = nt.Name
	}
	it.env.define(n.Name, runtime.ZeroValueFor(elemName))
	return nil
}

func (it *Interpreter) VisitIf(n *ast.If) error {
	cond, err := it.evalExpr(n.Cond)
	if err != nil {
		return err
	}
	if runtime.Truthy(cond) {
		return n.Then.Accept(it)
	}
	if n.Else != nil {
		return n.Else.Accept(it)
	}
	return nil
}

func (it *Interpreter) VisitWhile(n *ast.While) error {
	for {
		cond, err := it.evalExpr(n.Cond)
		if err != nil {
			return err
		}
		if !runtime.Truthy(cond) {
			return nil
		}
		if err := n.Body.Accept(it); err != nil {
			if _, ok := err.(breakSignal); ok {
				return nil
			}
			if _, ok := err.(continueSignal); ok {
				continue
			}
			return err
		}
	}
}

// VisitFor binds a first-class runtime.RangeValue and steps it directly,
// unlike the bytecode path's hidden-counter lowering in
// pkg/compiler: the interpreter never needs a separate compile step, so it
// loses nothing by keeping the Range value around for the whole loop.
func (it *Interpreter) VisitFor(n *ast.For) error {
	iterable, err := it.evalExpr(n.Iterable)
	if err != nil {
		return err
	}
	rng, ok := iterable.(runtime.RangeValue)
	if !ok {
		return fmt.Errorf("Runtime Error: for loop requires a range, got %s", iterable.Kind())
	}
	if rng.Step == 0 {
		return fmt.Errorf("Runtime Error: range step cannot be zero")
	}

	it.env.push()
	defer it.env.pop()

	for i := rng.Start; (rng.Step > 0 && i < rng.End) || (rng.Step < 0 && i > rng.End); i += rng.Step {
		it.env.define(n.VarName, runtime.IntValue{Val: i})
		if err := n.Body.Accept(it); err != nil {
			if _, ok := err.(breakSignal); ok {
				return nil
			}
			if _, ok := err.(continueSignal); ok {
				continue
			}
			return err
		}
	}
	return nil
}

func (it *Interpreter) VisitReturn(n *ast.Return) error {
	if n.Value == nil {
		return returnSignal{value: runtime.NoneValue{}}
	}
	v, err := it.evalExpr(n.Value)
	if err != nil {
		return err
	}
	return returnSignal{value: v}
}

func (it *Interpreter) VisitBreak(n *ast.Break) error       { return breakSignal{} }
func (it *Interpreter) VisitContinue(n *ast.Continue) error { return continueSignal{} }

func (it *Interpreter) VisitExpressionStmt(n *ast.ExpressionStmt) error {
	_, err := it.evalExpr(n.Expr)
	return err
}

func (it *Interpreter) VisitNamedType(*ast.NamedType) error { return nil }
func (it *Interpreter) VisitArrayType(*ast.ArrayType) error { return nil }

// The remaining Visitor methods are expression nodes. Expression evaluation
// goes through evalExpr's type switch instead of Accept, for the same
// reason the semantic analyzer uses typeOf: Visitor's contract returns only
// error, never a value. These exist solely so *Interpreter satisfies
// ast.Visitor.
func (it *Interpreter) VisitBinary(*ast.Binary) error             { return nil }
func (it *Interpreter) VisitUnary(*ast.Unary) error               { return nil }
func (it *Interpreter) VisitCall(*ast.Call) error                 { return nil }
func (it *Interpreter) VisitMemberAccess(*ast.MemberAccess) error { return nil }
func (it *Interpreter) VisitIndex(*ast.Index) error                { return nil }
func (it *Interpreter) VisitGrouped(*ast.Grouped) error             { return nil }
func (it *Interpreter) VisitIdentifier(*ast.Identifier) error      { return nil }
func (it *Interpreter) VisitNumberLit(*ast.NumberLit) error        { return nil }
func (it *Interpreter) VisitStringLit(*ast.StringLit) error        { return nil }
func (it *Interpreter) VisitBooleanLit(*ast.BooleanLit) error      { return nil }
func (it *Interpreter) VisitFormatString(*ast.FormatString) error  { return nil }
func (it *Interpreter) VisitRange(*ast.Range) error                { return nil }

func asInt(v runtime.Value) (int64, error) {
	switch x := v.(type) {
	case runtime.IntValue:
		return x.Val, nil
	case runtime.FloatValue:
		return int64(x.Val), nil
	default:
		return 0, fmt.Errorf("Runtime Error: expected an int, got %s", v.Kind())
	}
}
