package interp

import (
	"fmt"

	"github.com/zhanghaoxvan/gobol/pkg/runtime"
)

// These mirror pkg/vm's arithmetic and comparison helpers exactly: the two
// evaluators must agree on every operator's result, error message, and
// widening rule ("same observable behavior" requirement), so
// there is nothing here that isn't a direct copy of pkg/vm/arith.go's and
// pkg/vm/ops.go's logic re-expressed against expression-level operands
// instead of an eval stack.

func addValues(a, b runtime.Value) (runtime.Value, error) {
	if sa, ok := a.(runtime.StrValue); ok {
		if sb, ok := b.(runtime.StrValue); ok {
			return runtime.StrValue{Val: sa.Val + sb.Val}, nil
		}
	}
	return numericOp(a, b, "+", func(x, y int64) int64 { return x + y }, func(x, y float64) float64 { return x + y })
}

func subValues(a, b runtime.Value) (runtime.Value, error) {
	return numericOp(a, b, "-", func(x, y int64) int64 { return x - y }, func(x, y float64) float64 { return x - y })
}

func mulValues(a, b runtime.Value) (runtime.Value, error) {
	return numericOp(a, b, "*", func(x, y int64) int64 { return x * y }, func(x, y float64) float64 { return x * y })
}

func divValues(a, b runtime.Value) (runtime.Value, error) {
	if isZero(b) {
		return nil, fmt.Errorf("Runtime Error: Division by zero")
	}
	return numericOp(a, b, "/", func(x, y int64) int64 { return x / y }, func(x, y float64) float64 { return x / y })
}

func modValues(a, b runtime.Value) (runtime.Value, error) {
	ai, aok := a.(runtime.IntValue)
	bi, bok := b.(runtime.IntValue)
	if !aok || !bok {
		return nil, fmt.Errorf("Runtime Error: %% requires int operands")
	}
	if bi.Val == 0 {
		return nil, fmt.Errorf("Runtime Error: Modulo by zero")
	}
	return runtime.IntValue{Val: ai.Val % bi.Val}, nil
}

func isZero(v runtime.Value) bool {
	switch x := v.(type) {
	case runtime.IntValue:
		return x.Val == 0
	case runtime.FloatValue:
		return x.Val == 0
	default:
		return false
	}
}

func numericOp(a, b runtime.Value, op string, onInt func(int64, int64) int64, onFloat func(float64, float64) float64) (runtime.Value, error) {
	if !runtime.IsNumeric(a) || !runtime.IsNumeric(b) {
		return nil, fmt.Errorf("Runtime Error: %s requires numeric operands, got %s and %s", op, a.Kind(), b.Kind())
	}
	ai, aIsInt := a.(runtime.IntValue)
	bi, bIsInt := b.(runtime.IntValue)
	if aIsInt && bIsInt {
		return runtime.IntValue{Val: onInt(ai.Val, bi.Val)}, nil
	}
	return runtime.FloatValue{Val: onFloat(runtime.AsFloat(a), runtime.AsFloat(b))}, nil
}

func compareValues(op string, a, b runtime.Value) (runtime.Value, error) {
	if sa, ok := a.(runtime.StrValue); ok {
		if sb, ok := b.(runtime.StrValue); ok {
			switch op {
			case "<":
				return runtime.BoolValue{Val: sa.Val < sb.Val}, nil
			case "<=":
				return runtime.BoolValue{Val: sa.Val <= sb.Val}, nil
			case ">":
				return runtime.BoolValue{Val: sa.Val > sb.Val}, nil
			case ">=":
				return runtime.BoolValue{Val: sa.Val >= sb.Val}, nil
			}
		}
	}
	if !runtime.IsNumeric(a) || !runtime.IsNumeric(b) {
		return nil, fmt.Errorf("Runtime Error: cannot compare %s with %s", a.Kind(), b.Kind())
	}
	fa, fb := runtime.AsFloat(a), runtime.AsFloat(b)
	switch op {
	case "<":
		return runtime.BoolValue{Val: fa < fb}, nil
	case "<=":
		return runtime.BoolValue{Val: fa <= fb}, nil
	case ">":
		return runtime.BoolValue{Val: fa > fb}, nil
	case ">=":
		return runtime.BoolValue{Val: fa >= fb}, nil
	default:
		return nil, fmt.Errorf("Runtime Error: unknown comparison operator %q", op)
	}
}

func valuesEqual(a, b runtime.Value) bool {
	if runtime.IsNumeric(a) && runtime.IsNumeric(b) {
		return runtime.AsFloat(a) == runtime.AsFloat(b)
	}
	switch x := a.(type) {
	case runtime.StrValue:
		y, ok := b.(runtime.StrValue)
		return ok && x.Val == y.Val
	case runtime.BoolValue:
		y, ok := b.(runtime.BoolValue)
		return ok && x.Val == y.Val
	case runtime.NoneValue:
		_, ok := b.(runtime.NoneValue)
		return ok
	default:
		return false
	}
}
