package builtins

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/zhanghaoxvan/gobol/pkg/runtime"
)

var stdin = bufio.NewReader(os.Stdin)

// registerNatives wires every function the embedded manifest declares to
// its Go implementation. A manifest entry with no matching case here would
// fail at call time via Registry.Call's "no native implementation" error,
// which is a build-time defect in this package, not a user-facing one.
func registerNatives(r *Registry) {
	r.Register("__builtins__", "len", nativeLen)
	r.Register("__builtins__", "int", nativeInt)
	r.Register("__builtins__", "float", nativeFloat)
	r.Register("__builtins__", "str", nativeStr)
	r.Register("__builtins__", "print", nativePrint)
	r.Register("io", "print", nativePrint)
	r.Register("io", "scan", nativeScan)
	r.Register("io", "read", nativeRead)
}

func nativeLen(args []runtime.Value) (runtime.Value, error) {
	if len(args) != 1 {
		return runtime.NoneValue{}, fmt.Errorf("len expects 1 argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case runtime.ArrayValue:
		return runtime.IntValue{Val: int64(len(v.Elements))}, nil
	case runtime.StrValue:
		return runtime.IntValue{Val: int64(len(v.Val))}, nil
	default:
		return runtime.NoneValue{}, fmt.Errorf("len expects an array or a string, got %s", v.Kind())
	}
}

func nativeInt(args []runtime.Value) (runtime.Value, error) {
	if len(args) != 1 {
		return runtime.NoneValue{}, fmt.Errorf("int expects 1 argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case runtime.IntValue:
		return v, nil
	case runtime.FloatValue:
		return runtime.IntValue{Val: int64(v.Val)}, nil
	case runtime.BoolValue:
		if v.Val {
			return runtime.IntValue{Val: 1}, nil
		}
		return runtime.IntValue{Val: 0}, nil
	case runtime.StrValue:
		n, err := strconv.ParseInt(strings.TrimSpace(v.Val), 10, 64)
		if err != nil {
			return runtime.NoneValue{}, fmt.Errorf("cannot convert %q to int", v.Val)
		}
		return runtime.IntValue{Val: n}, nil
	default:
		return runtime.NoneValue{}, fmt.Errorf("int cannot convert a value of kind %s", v.Kind())
	}
}

func nativeFloat(args []runtime.Value) (runtime.Value, error) {
	if len(args) != 1 {
		return runtime.NoneValue{}, fmt.Errorf("float expects 1 argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case runtime.FloatValue:
		return v, nil
	case runtime.IntValue:
		return runtime.FloatValue{Val: float64(v.Val)}, nil
	case runtime.StrValue:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Val), 64)
		if err != nil {
			return runtime.NoneValue{}, fmt.Errorf("cannot convert %q to float", v.Val)
		}
		return runtime.FloatValue{Val: f}, nil
	default:
		return runtime.NoneValue{}, fmt.Errorf("float cannot convert a value of kind %s", v.Kind())
	}
}

func nativeStr(args []runtime.Value) (runtime.Value, error) {
	if len(args) != 1 {
		return runtime.NoneValue{}, fmt.Errorf("str expects 1 argument, got %d", len(args))
	}
	return runtime.StrValue{Val: args[0].String()}, nil
}

// nativePrint joins every argument's String() form with single spaces and
// writes it to stdout with no trailing newline, matching the bytecode VM's
// builtin print. The tree-walking interpreter wraps this same
// native and appends its own newline, so the two terminal stages keep their
// documented, deliberately unreconciled output conventions.
func nativePrint(args []runtime.Value) (runtime.Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	fmt.Print(strings.Join(parts, " "))
	return runtime.NoneValue{}, nil
}

func nativeScan(args []runtime.Value) (runtime.Value, error) {
	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		return runtime.StrValue{Val: ""}, nil
	}
	return runtime.StrValue{Val: strings.TrimRight(line, "\r\n")}, nil
}

func nativeRead(args []runtime.Value) (runtime.Value, error) {
	return nativeScan(args)
}
