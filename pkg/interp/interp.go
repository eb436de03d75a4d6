// Package interp implements Gobol's tree-walking interpreter,
// the alternative evaluation path to pkg/vm/pkg/compiler's bytecode
// pipeline. It walks the *ast.Program directly via the ast.Visitor
// contract, using the same runtime.Value representation and the same
// builtins.Registry the VM calls through, so a program's observable
// behavior is identical across both paths except for the documented
// divergences: print's trailing newline, ranges with a negative step, and
// && / ||, which short-circuit here while the VM evaluates both operands.
package interp

import (
	"github.com/zhanghaoxvan/gobol/pkg/ast"
	"github.com/zhanghaoxvan/gobol/pkg/builtins"
	"github.com/zhanghaoxvan/gobol/pkg/diag"
	"github.com/zhanghaoxvan/gobol/pkg/token"
)

// Interpreter evaluates one *ast.Program to completion, or until a runtime
// error halts it. It is reusable across multiple Run calls against the
// same environment, which is what lets cmd/gobol's REPL keep one
// Interpreter alive for an entire session.
type Interpreter struct {
	env   *env
	funcs map[string]*ast.Function
	reg   *builtins.Registry

	bag diag.Bag
}

// New constructs an Interpreter with an empty global scope, wired to the
// default builtin registry.
func New() *Interpreter {
	return &Interpreter{
		env:   newEnv(),
		funcs: map[string]*ast.Function{},
		reg:   builtins.LoadDefault(),
	}
}

// Run executes every top-level statement in prog in order against this
// Interpreter's environment, returning every diagnostic recorded. A halt
// partway through (a runtime error) still returns normally with the
// diagnostics gathered so far, matching the VM's Run contract.
func (it *Interpreter) Run(prog *ast.Program) []diag.Diagnostic {
	for _, stmt := range prog.Body {
		if fn, ok := stmt.(*ast.Function); ok {
			it.funcs[fn.Name] = fn
		}
	}
	for _, stmt := range prog.Body {
		if _, ok := stmt.(*ast.Function); ok {
			continue
		}
		if err := stmt.Accept(it); err != nil {
			it.bag.Add(diag.Warning, token.Pos{}, "%s", err)
			break
		}
	}
	return it.bag.All()
}
