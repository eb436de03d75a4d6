package interp

import (
	"fmt"
	"strings"

	"github.com/zhanghaoxvan/gobol/pkg/ast"
	"github.com/zhanghaoxvan/gobol/pkg/runtime"
)

func (it *Interpreter) evalExpr(e ast.Expression) (runtime.Value, error) {
	switch n := e.(type) {
	case *ast.NumberLit:
		if n.IsInt {
			return runtime.IntValue{Val: int64(n.Value)}, nil
		}
		return runtime.FloatValue{Val: n.Value}, nil
	case *ast.StringLit:
		return runtime.StrValue{Val: n.Value}, nil
	case *ast.BooleanLit:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.Identifier:
		v, ok := it.env.get(n.Name)
		if !ok {
			return nil, fmt.Errorf("Runtime Error: undefined name %q", n.Name)
		}
		return v, nil
	case *ast.Grouped:
		return it.evalExpr(n.Inner)
	case *ast.FormatString:
		return it.evalFormatString(n)
	case *ast.Range:
		return it.evalRange(n)
	case *ast.Unary:
		return it.evalUnary(n)
	case *ast.Binary:
		return it.evalBinary(n)
	case *ast.Index:
		return it.evalIndex(n)
	case *ast.Call:
		return it.evalCall(n)
	case *ast.MemberAccess:
		return runtime.NoneValue{}, nil
	default:
		return nil, fmt.Errorf("Runtime Error: cannot evaluate expression of type %T", e)
	}
}

func (it *Interpreter) evalFormatString(n *ast.FormatString) (runtime.Value, error) {
	args := make([]runtime.Value, len(n.Placeholders))
	for i, ph := range n.Placeholders {
		v, err := it.evalExpr(ph.Expr)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return runtime.StrValue{Val: formatSubstitute(n.Raw, args)}, nil
}

// formatSubstitute mirrors pkg/vm's FORMAT opcode handling exactly, since
// a format string's compiled form and its interpreted form must render
// identically.
func formatSubstitute(raw string, args []runtime.Value) string {
	var out strings.Builder
	argIdx := 0
	i := 0
	for i < len(raw) {
		c := raw[i]
		if c != '{' {
			out.WriteByte(c)
			i++
			continue
		}
		j := strings.IndexByte(raw[i+1:], '}')
		if j < 0 {
			out.WriteString(raw[i:])
			break
		}
		if argIdx < len(args) {
			out.WriteString(args[argIdx].String())
		}
		argIdx++
		i = i + 1 + j + 1
	}
	return out.String()
}

func (it *Interpreter) evalRange(n *ast.Range) (runtime.Value, error) {
	vals := make([]int64, len(n.Args))
	for i, a := range n.Args {
		v, err := it.evalExpr(a)
		if err != nil {
			return nil, err
		}
		iv, err := asInt(v)
		if err != nil {
			return nil, err
		}
		vals[i] = iv
	}
	step := int64(1)
	if len(vals) == 3 {
		step = vals[2]
	}
	return runtime.RangeValue{Start: vals[0], End: vals[1], Step: step}, nil
}

func (it *Interpreter) evalUnary(n *ast.Unary) (runtime.Value, error) {
	v, err := it.evalExpr(n.Operand)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "!":
		return runtime.BoolValue{Val: !runtime.Truthy(v)}, nil
	case "-":
		switch x := v.(type) {
		case runtime.IntValue:
			return runtime.IntValue{Val: -x.Val}, nil
		case runtime.FloatValue:
			return runtime.FloatValue{Val: -x.Val}, nil
		default:
			return nil, fmt.Errorf("Runtime Error: cannot negate a value of kind %s", v.Kind())
		}
	case "+":
		return v, nil
	default:
		return nil, fmt.Errorf("Runtime Error: unknown unary operator %q", n.Op)
	}
}

func (it *Interpreter) evalBinary(n *ast.Binary) (runtime.Value, error) {
	if n.Op == "=" {
		return it.evalAssignment(n)
	}
	if n.Op == "&&" {
		left, err := it.evalExpr(n.Left)
		if err != nil {
			return nil, err
		}
		if !runtime.Truthy(left) {
			return runtime.BoolValue{Val: false}, nil
		}
		right, err := it.evalExpr(n.Right)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: runtime.Truthy(right)}, nil
	}
	if n.Op == "||" {
		left, err := it.evalExpr(n.Left)
		if err != nil {
			return nil, err
		}
		if runtime.Truthy(left) {
			return runtime.BoolValue{Val: true}, nil
		}
		right, err := it.evalExpr(n.Right)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: runtime.Truthy(right)}, nil
	}

	left, err := it.evalExpr(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := it.evalExpr(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case "+":
		return addValues(left, right)
	case "-":
		return subValues(left, right)
	case "*":
		return mulValues(left, right)
	case "/":
		return divValues(left, right)
	case "%":
		return modValues(left, right)
	case "<", "<=", ">", ">=":
		return compareValues(n.Op, left, right)
	case "==":
		return runtime.BoolValue{Val: valuesEqual(left, right)}, nil
	case "!=":
		return runtime.BoolValue{Val: !valuesEqual(left, right)}, nil
	default:
		return nil, fmt.Errorf("Runtime Error: unknown binary operator %q", n.Op)
	}
}

func (it *Interpreter) evalAssignment(n *ast.Binary) (runtime.Value, error) {
	value, err := it.evalExpr(n.Right)
	if err != nil {
		return nil, err
	}
	switch left := n.Left.(type) {
	case *ast.Identifier:
		it.env.set(left.Name, value)
		return value, nil
	case *ast.Index:
		arrIdent, ok := left.Array.(*ast.Identifier)
		if !ok {
			return nil, fmt.Errorf("Runtime Error: array assignment target must be a named array")
		}
		arrVal, ok := it.env.get(arrIdent.Name)
		if !ok {
			return nil, fmt.Errorf("Runtime Error: undefined name %q", arrIdent.Name)
		}
		arr, ok := arrVal.(runtime.ArrayValue)
		if !ok {
			return nil, fmt.Errorf("Runtime Error: %q is not an array", arrIdent.Name)
		}
		idxVal, err := it.evalExpr(left.Idx)
		if err != nil {
			return nil, err
		}
		idx, err := asInt(idxVal)
		if err != nil {
			return nil, err
		}
		if idx < 0 || int(idx) >= len(arr.Elements) {
			return nil, fmt.Errorf("Runtime Error: array index %d out of bounds (length %d)", idx, len(arr.Elements))
		}
		clone := arr.Clone()
		clone.Elements[idx] = value
		it.env.set(arrIdent.Name, clone)
		return value, nil
	default:
		return nil, fmt.Errorf("Runtime Error: invalid assignment target")
	}
}

func (it *Interpreter) evalIndex(n *ast.Index) (runtime.Value, error) {
	arrVal, err := it.evalExpr(n.Array)
	if err != nil {
		return nil, err
	}
	arr, ok := arrVal.(runtime.ArrayValue)
	if !ok {
		return nil, fmt.Errorf("Runtime Error: cannot index a value of kind %s", arrVal.Kind())
	}
	idxVal, err := it.evalExpr(n.Idx)
	if err != nil {
		return nil, err
	}
	idx, err := asInt(idxVal)
	if err != nil {
		return nil, err
	}
	if idx < 0 || int(idx) >= len(arr.Elements) {
		return nil, fmt.Errorf("Runtime Error: array index %d out of bounds (length %d)", idx, len(arr.Elements))
	}
	return arr.Elements[idx], nil
}

func (it *Interpreter) evalCall(n *ast.Call) (runtime.Value, error) {
	switch callee := n.Callee.(type) {
	case *ast.Identifier:
		args := make([]runtime.Value, len(n.Args))
		for i, a := range n.Args {
			v, err := it.evalExpr(a)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		fn, ok := it.funcs[callee.Name]
		if !ok {
			// No user function by that name: a bare call still resolves
			// against __builtins__ (print, len, int, float, str).
			if _, ok := it.reg.Lookup("__builtins__", callee.Name); !ok {
				return nil, fmt.Errorf("Runtime Error: call to undefined function %q", callee.Name)
			}
			result, err := it.reg.Call("__builtins__", callee.Name, args)
			if err != nil {
				return nil, fmt.Errorf("Runtime Error: %s", err)
			}
			if callee.Name == "print" {
				fmt.Println()
			}
			return result, nil
		}
		return it.callFunction(fn, args)
	case *ast.MemberAccess:
		moduleIdent, ok := callee.Object.(*ast.Identifier)
		if !ok {
			return runtime.NoneValue{}, nil
		}
		args := make([]runtime.Value, len(n.Args))
		for i, a := range n.Args {
			v, err := it.evalExpr(a)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		result, err := it.reg.Call(moduleIdent.Name, callee.Member, args)
		if err != nil {
			return nil, fmt.Errorf("Runtime Error: %s", err)
		}
		if callee.Member == "print" {
			// The VM's print leaves no trailing newline; the
			// interpreter appends one here rather than in the shared
			// native itself, since that native is the same closure both
			// evaluators call through.
			fmt.Println()
		}
		return result, nil
	default:
		return nil, fmt.Errorf("Runtime Error: cannot call an expression of type %T", n.Callee)
	}
}

// callFunction pushes a fresh scope holding only fn's parameters — Gobol
// functions are not closures, so nothing from the caller's environment is
// visible inside, matching pkg/vm's per-call frame isolation.
func (it *Interpreter) callFunction(fn *ast.Function, args []runtime.Value) (runtime.Value, error) {
	saved := it.env
	it.env = &env{scopes: []map[string]runtime.Value{saved.scopes[0], {}}}
	defer func() { it.env = saved }()

	for i, p := range fn.Params {
		if i < len(args) {
			it.env.define(p.Name, args[i])
		}
	}

	for _, stmt := range fn.Body.Stmts {
		if err := stmt.Accept(it); err != nil {
			if rs, ok := err.(returnSignal); ok {
				return rs.value, nil
			}
			return nil, err
		}
	}
	return runtime.NoneValue{}, nil
}
