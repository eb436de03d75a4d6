package typecheck

import (
	"github.com/zhanghaoxvan/gobol/pkg/ast"
	"github.com/zhanghaoxvan/gobol/pkg/builtins"
)

// typeOf type-switches over e directly rather than going through
// ast.Visitor's double dispatch: Visitor's contract returns only an error,
// and every expression here needs to produce a type name its caller can
// check against. Statement-level checking still goes through Accept (see
// checkStatement) so that contract is still exercised where it fits.
func (a *Analyzer) typeOf(e ast.Expression) string {
	switch n := e.(type) {
	case *ast.NumberLit:
		if n.IsInt {
			return "int"
		}
		return "float"
	case *ast.StringLit:
		return "str"
	case *ast.BooleanLit:
		return "bool"
	case *ast.FormatString:
		for _, ph := range n.Placeholders {
			a.typeOf(ph.Expr)
		}
		return "str"
	case *ast.Range:
		if len(n.Args) < 2 || len(n.Args) > 3 {
			a.errf(n.Pos(), "range expects 2 or 3 arguments, got %d", len(n.Args))
		}
		for _, arg := range n.Args {
			if t := a.typeOf(arg); t != "int" {
				a.errf(arg.Pos(), "range arguments must be int, got %s", t)
			}
		}
		return "range"
	case *ast.Identifier:
		return a.typeOfIdentifier(n)
	case *ast.Grouped:
		return a.typeOf(n.Inner)
	case *ast.Unary:
		return a.typeOfUnary(n)
	case *ast.Binary:
		return a.typeOfBinary(n)
	case *ast.Index:
		return a.typeOfIndex(n)
	case *ast.MemberAccess:
		t, _ := a.resolveMember(n)
		return t
	case *ast.Call:
		return a.typeOfCall(n)
	default:
		a.errf(e.Pos(), "internal: unhandled expression node %T", e)
		return "int"
	}
}

func (a *Analyzer) typeOfIdentifier(n *ast.Identifier) string {
	sym, ok := a.table.Resolve(n.Name)
	if !ok {
		a.errf(n.Pos(), "undefined name %q", n.Name)
		return "int"
	}
	if sym.IsArray {
		return sym.DataType + "[]"
	}
	return sym.DataType
}

func (a *Analyzer) typeOfUnary(n *ast.Unary) string {
	t := a.typeOf(n.Operand)
	switch n.Op {
	case "!":
		return "bool"
	case "-", "+":
		if t != "int" && t != "float" {
			a.errf(n.Pos(), "unary %s requires a numeric operand, got %s", n.Op, t)
			return "int"
		}
		return t
	default:
		a.errf(n.Pos(), "internal: unknown unary operator %q", n.Op)
		return t
	}
}

func (a *Analyzer) typeOfBinary(n *ast.Binary) string {
	if n.Op == "=" {
		return a.typeOfAssignment(n)
	}

	lt := a.typeOf(n.Left)
	rt := a.typeOf(n.Right)

	switch n.Op {
	case "&&", "||":
		return "bool"
	case "==", "!=":
		return "bool"
	case "<", "<=", ">", ">=":
		if !isComparable(lt, rt) {
			a.errf(n.Pos(), "cannot compare %s with %s", lt, rt)
		}
		return "bool"
	case "+":
		if lt == "str" && rt == "str" {
			return "str"
		}
		return a.numericResult(n, lt, rt)
	case "-", "*", "/":
		return a.numericResult(n, lt, rt)
	case "%":
		if lt != "int" || rt != "int" {
			a.errf(n.Pos(), "%% requires two int operands, got %s and %s", lt, rt)
		}
		return "int"
	default:
		a.errf(n.Pos(), "internal: unknown binary operator %q", n.Op)
		return "int"
	}
}

func (a *Analyzer) numericResult(n *ast.Binary, lt, rt string) string {
	if !isNumeric(lt) || !isNumeric(rt) {
		a.errf(n.Pos(), "operator %q requires numeric operands, got %s and %s", n.Op, lt, rt)
		return "int"
	}
	if lt == "float" || rt == "float" {
		return "float"
	}
	return "int"
}

func (a *Analyzer) typeOfAssignment(n *ast.Binary) string {
	switch n.Left.(type) {
	case *ast.Identifier, *ast.Index:
	default:
		a.errf(n.Pos(), "left-hand side of '=' must be a variable or an array element")
	}
	lt := a.typeOf(n.Left)
	if id, ok := n.Left.(*ast.Identifier); ok {
		if sym, found := a.table.Resolve(id.Name); found && !sym.IsMutable {
			a.errf(n.Pos(), "cannot assign to %s %q", sym.Kind, id.Name)
		}
	}
	rt := a.typeOf(n.Right)
	if !assignable(lt, rt) {
		a.errf(n.Pos(), "cannot assign %s to a %s", rt, lt)
	}
	return lt
}

func (a *Analyzer) typeOfIndex(n *ast.Index) string {
	arrType := a.typeOf(n.Array)
	idxType := a.typeOf(n.Idx)
	if idxType != "int" {
		a.errf(n.Pos(), "array index must be int, got %s", idxType)
	}
	if len(arrType) < 2 || arrType[len(arrType)-2:] != "[]" {
		a.errf(n.Pos(), "cannot index a non-array value of type %s", arrType)
		return "int"
	}
	return arrType[:len(arrType)-2]
}

// resolveMember resolves "module.name" for an imported builtin module.
// Gobol has no struct/object member access beyond module qualification, so
// MemberAccess is always this one case.
func (a *Analyzer) resolveMember(n *ast.MemberAccess) (string, bool) {
	ident, ok := n.Object.(*ast.Identifier)
	if !ok {
		a.errf(n.Pos(), "member access is only supported on an imported module name")
		return "int", false
	}
	if ident.Name != "__builtins__" && !a.imports[ident.Name] {
		a.errf(n.Pos(), "module %q is not imported", ident.Name)
		return "int", false
	}
	fn, ok := a.registry.Lookup(ident.Name, n.Member)
	if !ok {
		a.errf(n.Pos(), "%s has no member %q", ident.Name, n.Member)
		return "int", false
	}
	return fn.ReturnType, true
}

func (a *Analyzer) typeOfCall(n *ast.Call) string {
	switch callee := n.Callee.(type) {
	case *ast.Identifier:
		return a.typeOfUserCall(n, callee)
	case *ast.MemberAccess:
		return a.typeOfBuiltinCall(n, callee)
	default:
		a.errf(n.Pos(), "expression is not callable")
		for _, arg := range n.Args {
			a.typeOf(arg)
		}
		return "int"
	}
}

func (a *Analyzer) typeOfUserCall(n *ast.Call, callee *ast.Identifier) string {
	sig, ok := a.funcs[callee.Name]
	if !ok {
		// A bare name with no matching user function still resolves as a
		// call into __builtins__ — print, len, int, float, and str are all
		// callable this way with no module qualifier.
		if fn, ok := a.registry.Lookup("__builtins__", callee.Name); ok {
			return a.checkBuiltinArgs(n, "__builtins__", callee.Name, fn)
		}
		a.errf(n.Pos(), "undefined function %q", callee.Name)
		for _, arg := range n.Args {
			a.typeOf(arg)
		}
		return "int"
	}
	if len(n.Args) != len(sig.ParamTypes) {
		a.errf(n.Pos(), "%s expects %d argument(s), got %d", callee.Name, len(sig.ParamTypes), len(n.Args))
	}
	for i, arg := range n.Args {
		at := a.typeOf(arg)
		if i < len(sig.ParamTypes) && !assignable(sig.ParamTypes[i], at) {
			a.errf(arg.Pos(), "argument %d to %s: cannot use %s as %s", i+1, callee.Name, at, sig.ParamTypes[i])
		}
	}
	return sig.ReturnType
}

func (a *Analyzer) typeOfBuiltinCall(n *ast.Call, callee *ast.MemberAccess) string {
	moduleIdent, ok := callee.Object.(*ast.Identifier)
	if !ok {
		a.errf(n.Pos(), "calls through a non-module member are not supported")
		return "int"
	}
	if moduleIdent.Name != "__builtins__" && !a.imports[moduleIdent.Name] {
		a.errf(n.Pos(), "module %q is not imported", moduleIdent.Name)
	}
	fn, ok := a.registry.Lookup(moduleIdent.Name, callee.Member)
	if !ok {
		a.errf(n.Pos(), "%s has no member %q", moduleIdent.Name, callee.Member)
		for _, arg := range n.Args {
			a.typeOf(arg)
		}
		return "int"
	}
	return a.checkBuiltinArgs(n, moduleIdent.Name, callee.Member, fn)
}

// checkBuiltinArgs type-checks a call's arguments against a builtin
// function's declared signature and returns its return type, shared by
// both the bare-name (__builtins__) and module-qualified call forms.
func (a *Analyzer) checkBuiltinArgs(n *ast.Call, module, name string, fn builtins.Function) string {
	if !fn.Variadic && len(n.Args) != len(fn.Params) {
		a.errf(n.Pos(), "%s.%s expects %d argument(s), got %d", module, name, len(fn.Params), len(n.Args))
	}
	for i, arg := range n.Args {
		at := a.typeOf(arg)
		if !fn.Variadic && i < len(fn.Params) && fn.Params[i] != "any" && !assignable(fn.Params[i], at) {
			a.errf(arg.Pos(), "argument %d to %s.%s: cannot use %s as %s", i+1, module, name, at, fn.Params[i])
		}
	}
	return fn.ReturnType
}

func isNumeric(t string) bool { return t == "int" || t == "float" }

func isComparable(a, b string) bool {
	if isNumeric(a) && isNumeric(b) {
		return true
	}
	return a == "str" && b == "str"
}

// assignable reports whether a value of type actual may be stored where
// declared is expected: exact match, or int widening into float.
func assignable(declared, actual string) bool {
	if declared == actual {
		return true
	}
	if declared == "float" && actual == "int" {
		return true
	}
	if declared == "any" {
		return true
	}
	return false
}
