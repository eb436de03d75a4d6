// Package vm implements Gobol's stack-based bytecode virtual machine: a
// linear fetch-decode-execute loop over a compiler.Module, an eval
// stack, a global binding table, and a stack of call frames for
// user-defined function invocations. Runtime errors (division by zero,
// array bounds, an unresolved builtin) are recorded as Warning-severity
// diagnostics in the same diag.Bag shape the parser and analyzer use,
// and halt execution cleanly — they are never Go panics that
// cross this package's boundary, with one documented exception: an eval
// stack underflow, which indicates a compiler defect rather than a
// malformed source program, and is recovered into a diagnostic at the top
// of Run rather than propagated.
package vm

import (
	"fmt"

	"github.com/zhanghaoxvan/gobol/pkg/builtins"
	"github.com/zhanghaoxvan/gobol/pkg/compiler"
	"github.com/zhanghaoxvan/gobol/pkg/diag"
	"github.com/zhanghaoxvan/gobol/pkg/runtime"
	"github.com/zhanghaoxvan/gobol/pkg/token"
)

// frame is one user-function call's local binding table plus the pc to
// resume at in the caller once RET runs.
type frame struct {
	locals   map[string]runtime.Value
	returnPC int
}

// VM executes one compiler.Module to completion.
type VM struct {
	module *compiler.Module
	reg    *builtins.Registry

	stack   []runtime.Value
	globals map[string]runtime.Value
	frames  []*frame
	pc      int

	bag diag.Bag
}

// New constructs a VM over mod, wired to the default builtin registry.
func New(mod *compiler.Module) *VM {
	return &VM{
		module:  mod,
		reg:     builtins.LoadDefault(),
		globals: map[string]runtime.Value{},
	}
}

// Run executes the module from its first instruction until HALT, RET with
// an empty frame stack, or a fatal runtime condition. It always returns,
// never leaves goroutines or I/O pending, and reports every diagnostic
// recorded along the way.
func (vm *VM) Run() []diag.Diagnostic {
	defer func() {
		if r := recover(); r != nil {
			vm.bag.Errorf(token.Pos{}, "internal: %v", r)
		}
	}()

	for {
		if vm.pc >= len(vm.module.Instructions) {
			return vm.bag.All()
		}
		instr := vm.module.Instructions[vm.pc]
		halted, err := vm.step(instr)
		if err != nil {
			vm.bag.Add(diag.Warning, token.Pos{}, "%s", err)
			return vm.bag.All()
		}
		if halted {
			return vm.bag.All()
		}
	}
}

func (vm *VM) push(v runtime.Value) { vm.stack = append(vm.stack, v) }

func (vm *VM) pop() runtime.Value {
	n := len(vm.stack)
	v := vm.stack[n-1]
	vm.stack = vm.stack[:n-1]
	return v
}

func (vm *VM) currentFrame() *frame {
	if len(vm.frames) == 0 {
		return nil
	}
	return vm.frames[len(vm.frames)-1]
}

func (vm *VM) loadName(name string) runtime.Value {
	if f := vm.currentFrame(); f != nil {
		if v, ok := f.locals[name]; ok {
			return v
		}
	}
	if v, ok := vm.globals[name]; ok {
		return v
	}
	return runtime.NoneValue{}
}

func (vm *VM) storeLocal(name string, v runtime.Value) {
	f := vm.currentFrame()
	if f == nil {
		vm.globals[name] = v
		return
	}
	f.locals[name] = v
}

func (vm *VM) storeGlobal(name string, v runtime.Value) {
	vm.globals[name] = v
}

func popInt(v runtime.Value) (int64, error) {
	switch x := v.(type) {
	case runtime.IntValue:
		return x.Val, nil
	case runtime.FloatValue:
		return int64(x.Val), nil
	default:
		return 0, fmt.Errorf("Runtime Error: expected an int, got %s", v.Kind())
	}
}
