package vm

import (
	"fmt"
	"strings"

	"github.com/zhanghaoxvan/gobol/pkg/compiler"
	"github.com/zhanghaoxvan/gobol/pkg/runtime"
)

// step executes one instruction. It returns halted=true when the program
// should stop (HALT, or RET with no enclosing frame), and a non-nil error
// for a fatal runtime condition the caller turns into a diagnostic.
func (vm *VM) step(instr compiler.Instruction) (bool, error) {
	jumped := false

	switch instr.Op {
	case compiler.OpConst:
		vm.push(vm.module.Constants[instr.A])

	case compiler.OpLoadName:
		vm.push(vm.loadName(instr.S))
	case compiler.OpStoreName:
		vm.storeLocal(instr.S, vm.pop())
	case compiler.OpLoadGlobal:
		v, ok := vm.globals[instr.S]
		if !ok {
			v = runtime.NoneValue{}
		}
		vm.push(v)
	case compiler.OpStoreGlobal:
		vm.storeGlobal(instr.S, vm.pop())

	case compiler.OpAllocArray:
		size, err := popInt(vm.pop())
		if err != nil {
			return false, err
		}
		elements := make([]runtime.Value, size)
		zero := runtime.ZeroValueFor(elementTypeNameFromCode(instr.A))
		for i := range elements {
			elements[i] = zero
		}
		vm.push(runtime.ArrayValue{Elements: elements})
	case compiler.OpArrayGet:
		idx, err := popInt(vm.pop())
		if err != nil {
			return false, err
		}
		arrVal := vm.pop()
		arr, ok := arrVal.(runtime.ArrayValue)
		if !ok {
			return false, fmt.Errorf("Runtime Error: cannot index a value of kind %s", arrVal.Kind())
		}
		if idx < 0 || int(idx) >= len(arr.Elements) {
			return false, fmt.Errorf("Runtime Error: array index %d out of bounds (length %d)", idx, len(arr.Elements))
		}
		vm.push(arr.Elements[idx])
	case compiler.OpArraySet:
		idx, err := popInt(vm.pop())
		if err != nil {
			return false, err
		}
		value := vm.pop()
		arrVal := vm.loadName(instr.S)
		arr, ok := arrVal.(runtime.ArrayValue)
		if !ok {
			return false, fmt.Errorf("Runtime Error: %q is not an array", instr.S)
		}
		if idx < 0 || int(idx) >= len(arr.Elements) {
			return false, fmt.Errorf("Runtime Error: array index %d out of bounds (length %d)", idx, len(arr.Elements))
		}
		clone := arr.Clone()
		clone.Elements[idx] = value
		vm.storeLocal(instr.S, clone)

	case compiler.OpAdd:
		return vm.binaryArith(instr, addValues)
	case compiler.OpSub:
		return vm.binaryArith(instr, subValues)
	case compiler.OpMul:
		return vm.binaryArith(instr, mulValues)
	case compiler.OpDiv:
		return vm.binaryArith(instr, divValues)
	case compiler.OpMod:
		return vm.binaryArith(instr, modValues)

	case compiler.OpLt, compiler.OpLe, compiler.OpGt, compiler.OpGe:
		r, err := vm.compare(instr.Op)
		if err != nil {
			return false, err
		}
		vm.push(runtime.BoolValue{Val: r})
	case compiler.OpEq:
		b, a := vm.pop(), vm.pop()
		vm.push(runtime.BoolValue{Val: valuesEqual(a, b)})
	case compiler.OpNe:
		b, a := vm.pop(), vm.pop()
		vm.push(runtime.BoolValue{Val: !valuesEqual(a, b)})
	case compiler.OpAnd:
		b, a := vm.pop(), vm.pop()
		vm.push(runtime.BoolValue{Val: runtime.Truthy(a) && runtime.Truthy(b)})
	case compiler.OpOr:
		b, a := vm.pop(), vm.pop()
		vm.push(runtime.BoolValue{Val: runtime.Truthy(a) || runtime.Truthy(b)})
	case compiler.OpNot:
		vm.push(runtime.BoolValue{Val: !runtime.Truthy(vm.pop())})
	case compiler.OpNeg:
		v := vm.pop()
		switch x := v.(type) {
		case runtime.IntValue:
			vm.push(runtime.IntValue{Val: -x.Val})
		case runtime.FloatValue:
			vm.push(runtime.FloatValue{Val: -x.Val})
		default:
			return false, fmt.Errorf("Runtime Error: cannot negate a value of kind %s", v.Kind())
		}

	case compiler.OpJmp:
		vm.pc = instr.A
		jumped = true
	case compiler.OpJmpTrue:
		if runtime.Truthy(vm.pop()) {
			vm.pc = instr.A
			jumped = true
		}
	case compiler.OpJmpFalse:
		if !runtime.Truthy(vm.pop()) {
			vm.pc = instr.A
			jumped = true
		}

	case compiler.OpPop:
		vm.pop()
	case compiler.OpDup:
		top := vm.stack[len(vm.stack)-1]
		vm.push(top)

	case compiler.OpFormat:
		args := make([]runtime.Value, instr.B)
		for i := instr.B - 1; i >= 0; i-- {
			args[i] = vm.pop()
		}
		raw := vm.module.Constants[instr.A].(runtime.StrValue).Val
		vm.push(runtime.StrValue{Val: formatSubstitute(raw, args)})

	case compiler.OpMakeRange:
		step, err := popInt(vm.pop())
		if err != nil {
			return false, err
		}
		end, err := popInt(vm.pop())
		if err != nil {
			return false, err
		}
		start, err := popInt(vm.pop())
		if err != nil {
			return false, err
		}
		vm.push(runtime.RangeValue{Start: start, End: end, Step: step})

	case compiler.OpCall:
		entry, ok := vm.module.Functions[instr.S]
		if !ok {
			return false, fmt.Errorf("Runtime Error: call to undefined function %q", instr.S)
		}
		args := make([]runtime.Value, instr.A)
		for i := instr.A - 1; i >= 0; i-- {
			args[i] = vm.pop()
		}
		locals := make(map[string]runtime.Value, len(args))
		for i, a := range args {
			locals[fmt.Sprintf("p%d", i)] = a
		}
		vm.frames = append(vm.frames, &frame{locals: locals, returnPC: vm.pc + 1})
		vm.pc = entry
		jumped = true
	case compiler.OpRet:
		if len(vm.frames) == 0 {
			return true, nil
		}
		f := vm.frames[len(vm.frames)-1]
		vm.frames = vm.frames[:len(vm.frames)-1]
		vm.pc = f.returnPC
		jumped = true

	case compiler.OpBuiltin:
		module, name := splitBuiltinKey(instr.S)
		args := make([]runtime.Value, instr.A)
		for i := instr.A - 1; i >= 0; i-- {
			args[i] = vm.pop()
		}
		result, err := vm.reg.Call(module, name, args)
		if err != nil {
			return false, fmt.Errorf("Runtime Error: %s", err)
		}
		vm.push(result)

	case compiler.OpHalt:
		return true, nil
	}

	if !jumped {
		vm.pc++
	}
	return false, nil
}

func splitBuiltinKey(key string) (string, string) {
	i := strings.IndexByte(key, '.')
	if i < 0 {
		return "__builtins__", key
	}
	return key[:i], key[i+1:]
}

func elementTypeNameFromCode(code int) string {
	switch code {
	case 1:
		return "float"
	case 2:
		return "bool"
	case 3:
		return "str"
	default:
		return "int"
	}
}

func (vm *VM) binaryArith(instr compiler.Instruction, fn func(a, b runtime.Value) (runtime.Value, error)) (bool, error) {
	b := vm.pop()
	a := vm.pop()
	result, err := fn(a, b)
	if err != nil {
		return false, err
	}
	vm.push(result)
	vm.pc++
	return false, nil
}

func (vm *VM) compare(op compiler.OpCode) (bool, error) {
	b := vm.pop()
	a := vm.pop()
	if sa, ok := a.(runtime.StrValue); ok {
		if sb, ok := b.(runtime.StrValue); ok {
			switch op {
			case compiler.OpLt:
				return sa.Val < sb.Val, nil
			case compiler.OpLe:
				return sa.Val <= sb.Val, nil
			case compiler.OpGt:
				return sa.Val > sb.Val, nil
			case compiler.OpGe:
				return sa.Val >= sb.Val, nil
			}
		}
	}
	if !runtime.IsNumeric(a) || !runtime.IsNumeric(b) {
		return false, fmt.Errorf("Runtime Error: cannot compare %s with %s", a.Kind(), b.Kind())
	}
	fa, fb := runtime.AsFloat(a), runtime.AsFloat(b)
	switch op {
	case compiler.OpLt:
		return fa < fb, nil
	case compiler.OpLe:
		return fa <= fb, nil
	case compiler.OpGt:
		return fa > fb, nil
	case compiler.OpGe:
		return fa >= fb, nil
	default:
		return false, fmt.Errorf("Runtime Error: unknown comparison operator")
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

// formatSubstitute performs FORMAT's positional placeholder substitution
// against raw, the compiled constant holding both literal text and intact
// `{...}` spans (, grounded on
// _examples/original_source/Bytecode/VirtualMachine.cpp's FORMAT case): the
// Nth brace pair is replaced by args[N]'s String() form, and an unclosed
// trailing `{` is copied through verbatim.
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
