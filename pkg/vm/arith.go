package vm

import (
	"fmt"

	"github.com/zhanghaoxvan/gobol/pkg/runtime"
)

// addValues, subValues, mulValues, divValues, and modValues implement the
// five arithmetic opcodes' value-level semantics: int stays int unless
// either operand is float (widening rule), and + additionally
// allows str+str concatenation, matching what the analyzer already
// approved in typecheck.typeOfBinary.
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
