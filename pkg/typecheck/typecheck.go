// Package typecheck implements Gobol's semantic analyzer: name
// resolution against pkg/symbols' scope stack, plus the static type rules
// that catch a class of runtime errors before the compiler or interpreter
// ever sees the tree. Analysis is best-effort: every problem is recorded in
// a diag.Bag and the walk continues, so one bad statement never hides the
// next ten.
package typecheck

import (
	"github.com/zhanghaoxvan/gobol/pkg/ast"
	"github.com/zhanghaoxvan/gobol/pkg/builtins"
	"github.com/zhanghaoxvan/gobol/pkg/diag"
	"github.com/zhanghaoxvan/gobol/pkg/symbols"
	"github.com/zhanghaoxvan/gobol/pkg/token"
)

// FuncSig is a user-defined function's call signature, recorded during the
// first pass so forward references between top-level functions resolve.
type FuncSig struct {
	ParamTypes []string
	ReturnType string
}

// Analyzer walks a Program and accumulates diagnostics. It implements
// ast.Visitor for statement-level traversal; expression typing is done by
// a dedicated internal type switch (typeOf) rather than through Visitor,
// since Visitor's contract returns only an error, not a value.
type Analyzer struct {
	table     *symbols.Table
	bag       diag.Bag
	registry  *builtins.Registry
	imports   map[string]bool
	funcs     map[string]FuncSig
	loopDepth int

	inFunction bool
	returnType string
	sawReturn  bool
}

// New constructs an Analyzer backed by the default builtin-module registry.
func New() *Analyzer {
	return &Analyzer{
		table:    symbols.NewTable(),
		registry: builtins.LoadDefault(),
		imports:  map[string]bool{},
		funcs:    map[string]FuncSig{},
	}
}

// Analyze runs the full two-pass analysis and returns every diagnostic
// recorded, in recording order.
func Analyze(prog *ast.Program) []diag.Diagnostic {
	a := New()
	a.run(prog)
	return a.bag.All()
}

// CheckProgram runs analysis over one more Program against this Analyzer's
// existing scope 0, so declarations from earlier calls stay resolvable
// (the REPL's accumulate-across-lines contract). Each call starts
// from a fresh diagnostic bag: diagnostics never pile up across lines.
func (a *Analyzer) CheckProgram(prog *ast.Program) []diag.Diagnostic {
	a.bag = diag.Bag{}
	a.run(prog)
	return a.bag.All()
}

// HasError reports whether the last Analyze-equivalent run recorded an
// Error-severity diagnostic. Exposed on Analyzer for callers that construct
// one directly instead of using the Analyze convenience function.
func (a *Analyzer) HasError() bool { return a.bag.HasErrors() }

// Diagnostics returns every diagnostic this Analyzer has recorded so far.
func (a *Analyzer) Diagnostics() []diag.Diagnostic { return a.bag.All() }

func (a *Analyzer) run(prog *ast.Program) {
	// Pass 1: register every top-level function's signature so calls made
	// before a later definition in the same file still resolve.
	for _, stmt := range prog.Body {
		if fn, ok := stmt.(*ast.Function); ok {
			a.declareFunctionSignature(fn)
		}
	}
	// Pass 2: check every statement, including global declarations.
	for _, stmt := range prog.Body {
		a.checkStatement(stmt)
	}
}

func (a *Analyzer) declareFunctionSignature(fn *ast.Function) {
	sig := FuncSig{ReturnType: "none"}
	for _, p := range fn.Params {
		sig.ParamTypes = append(sig.ParamTypes, typeExprName(p.Type))
	}
	if fn.ReturnType != nil {
		sig.ReturnType = typeExprName(fn.ReturnType)
	}
	if _, exists := a.funcs[fn.Name]; exists {
		a.bag.Errorf(fn.Pos(), "function %q is already declared", fn.Name)
		return
	}
	a.funcs[fn.Name] = sig
	sym := &symbols.Symbol{Name: fn.Name, Kind: symbols.KindFunction, DataType: sig.ReturnType}
	if err := a.table.DefineGlobal(sym); err != nil {
		a.bag.Errorf(fn.Pos(), "%s", err)
	}
}

// typeExprName reduces a TypeExpr to the bare element-type name used for
// type-compatibility checks; callers that care about array-ness consult the
// TypeExpr directly.
func typeExprName(t ast.TypeExpr) string {
	switch x := t.(type) {
	case *ast.NamedType:
		return x.Name
	case *ast.ArrayType:
		return x.ElementName
	default:
		return "int"
	}
}

func isArrayTypeExpr(t ast.TypeExpr) bool {
	_, ok := t.(*ast.ArrayType)
	return ok
}

func (a *Analyzer) errf(pos token.Pos, format string, args ...any) {
	a.bag.Errorf(pos, format, args...)
}
