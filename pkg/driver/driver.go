// Package driver wires the lexer, parser, semantic analyzer, and the two
// evaluators (pkg/compiler+pkg/vm, or pkg/interp) into the handful of
// pipelines cmd/gobol and the package's own tests drive a source file
// through. It holds no state of its own —
// Parse and RunSource take source bytes, Check, RunVM and RunInterp take
// a parsed program, and every function returns diagnostics, so the
// pipelines are trivially reusable from a test harness.
package driver

import (
	"github.com/zhanghaoxvan/gobol/pkg/ast"
	"github.com/zhanghaoxvan/gobol/pkg/compiler"
	"github.com/zhanghaoxvan/gobol/pkg/diag"
	"github.com/zhanghaoxvan/gobol/pkg/interp"
	"github.com/zhanghaoxvan/gobol/pkg/lexer"
	"github.com/zhanghaoxvan/gobol/pkg/parser"
	"github.com/zhanghaoxvan/gobol/pkg/typecheck"
	"github.com/zhanghaoxvan/gobol/pkg/vm"
)

// Parse lexes and parses src, returning the AST and every parse-time
// diagnostic. Callers should stop before Check/Run if any diagnostic here
// has Error severity; the parser's panic-mode recovery means Program is
// still a best-effort tree even when diagnostics are non-empty.
func Parse(src []byte) (*ast.Program, []diag.Diagnostic) {
	toks := lexer.Tokenize(src)
	return parser.Parse(toks)
}

// Check runs the semantic analyzer over prog and returns its diagnostics,
// without compiling or executing anything (the `gobol check` subcommand).
func Check(prog *ast.Program) []diag.Diagnostic {
	return typecheck.Analyze(prog)
}

// RunVM compiles prog to bytecode and executes it on the stack VM, the
// normative execution path.
func RunVM(prog *ast.Program) []diag.Diagnostic {
	mod := compiler.Compile(prog)
	return vm.New(mod).Run()
}

// RunInterp walks prog directly with the tree-walking interpreter, the
// alternative path `gobol run --interp` and the parity tests in
// pkg/driver's own test file exercise.
func RunInterp(prog *ast.Program) []diag.Diagnostic {
	return interp.New().Run(prog)
}

// Result bundles every diagnostic channel a full source-to-execution run
// can produce, in the order they were produced, so a caller can report
// them uniformly regardless of which stage stopped the pipeline.
type Result struct {
	ParseDiagnostics   []diag.Diagnostic
	CheckDiagnostics   []diag.Diagnostic
	RuntimeDiagnostics []diag.Diagnostic
}

// hasError reports whether any diagnostic in ds carries Error severity.
func hasError(ds []diag.Diagnostic) bool {
	for _, d := range ds {
		if d.Severity == diag.Error {
			return true
		}
	}
	return false
}

// RunSource drives src through the full pipeline: parse, check, then
// execute on either the VM (useInterp=false) or the interpreter
// (useInterp=true). It stops at the first stage that reports an Error
// diagnostic, leaving later Result fields empty.
func RunSource(src []byte, useInterp bool) Result {
	var res Result

	prog, pdiags := Parse(src)
	res.ParseDiagnostics = pdiags
	if hasError(pdiags) {
		return res
	}

	cdiags := Check(prog)
	res.CheckDiagnostics = cdiags
	if hasError(cdiags) {
		return res
	}

	if useInterp {
		res.RuntimeDiagnostics = RunInterp(prog)
	} else {
		res.RuntimeDiagnostics = RunVM(prog)
	}
	return res
}

// HasError reports whether any stage in res recorded an Error-severity
// diagnostic (runtime errors are always Warning-severity, so
// this never looks at RuntimeDiagnostics; it is provided for callers that
// want one pass/fail signal for parsing and checking).
func (r Result) HasError() bool {
	return hasError(r.ParseDiagnostics) || hasError(r.CheckDiagnostics)
}

// All returns every diagnostic across every stage, in pipeline order.
func (r Result) All() []diag.Diagnostic {
	all := make([]diag.Diagnostic, 0, len(r.ParseDiagnostics)+len(r.CheckDiagnostics)+len(r.RuntimeDiagnostics))
	all = append(all, r.ParseDiagnostics...)
	all = append(all, r.CheckDiagnostics...)
	all = append(all, r.RuntimeDiagnostics...)
	return all
}
