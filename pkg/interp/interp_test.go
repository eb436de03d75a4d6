package interp

import (
	"testing"

	"github.com/zhanghaoxvan/gobol/pkg/ast"
	"github.com/zhanghaoxvan/gobol/pkg/diag"
	"github.com/zhanghaoxvan/gobol/pkg/lexer"
	"github.com/zhanghaoxvan/gobol/pkg/parser"
	"github.com/zhanghaoxvan/gobol/pkg/runtime"
	"github.com/zhanghaoxvan/gobol/pkg/typecheck"
)

func runSource(t *testing.T, src string) *Interpreter {
	t.Helper()
	toks := lexer.Tokenize([]byte(src))
	prog, pdiags := parser.Parse(toks)
	if len(pdiags) > 0 {
		t.Fatalf("unexpected parse diagnostics: %v", pdiags)
	}
	if tdiags := typecheck.Analyze(prog); len(tdiags) > 0 {
		t.Fatalf("unexpected typecheck diagnostics: %v", tdiags)
	}
	it := New()
	rdiags := it.Run(prog)
	for _, d := range rdiags {
		if d.Severity == diag.Error {
			t.Fatalf("unexpected runtime error: %v", rdiags)
		}
	}
	return it
}

func globalOf(it *Interpreter, name string) runtime.Value {
	v, _ := it.env.get(name)
	return v
}

func TestArithmeticWideningAndPrecedence(t *testing.T) {
	it := runSource(t, "var x = 1 + 2 * 3\n")
	got := globalOf(it, "x")
	want := runtime.IntValue{Val: 7}
	if got != want {
		t.Fatalf("x = %v, want %v", got, want)
	}
}

func TestWhileLoopWithBreakAndContinue(t *testing.T) {
	src := `var total = 0
var i = 0
while i < 10 {
    i = i + 1
    if i == 3 {
        continue
    }
    if i == 7 {
        break
    }
    total = total + i
}
`
	it := runSource(t, src)
	got := globalOf(it, "total").(runtime.IntValue).Val
	if got != 18 {
		t.Fatalf("total = %d, want 18", got)
	}
}

func TestForLoopOverRangeAccumulates(t *testing.T) {
	src := `var total = 0
for i in range(0, 5) {
    total = total + i
}
`
	it := runSource(t, src)
	got := globalOf(it, "total").(runtime.IntValue).Val
	if got != 10 {
		t.Fatalf("total = %d, want 10", got)
	}
}

func TestRecursiveFunctionCall(t *testing.T) {
	src := `func fact(n: int): int {
    if n <= 1 {
        return 1
    }
    return n * fact(n - 1)
}
var x = fact(5)
`
	it := runSource(t, src)
	got := globalOf(it, "x").(runtime.IntValue).Val
	if got != 120 {
		t.Fatalf("x = %d, want 120", got)
	}
}

func TestFunctionCannotSeeCallersLocals(t *testing.T) {
	src := `func readsSecret(): int {
    return secret
}
func caller(): int {
    var secret = 42
    return readsSecret()
}
`
	toks := lexer.Tokenize([]byte(src))
	prog, pdiags := parser.Parse(toks)
	if len(pdiags) > 0 {
		t.Fatalf("unexpected parse diagnostics: %v", pdiags)
	}
	it := New()
	for _, stmt := range prog.Body {
		if fn, ok := stmt.(*ast.Function); ok {
			it.funcs[fn.Name] = fn
		}
	}
	_, err := it.callFunction(it.funcs["caller"], nil)
	if err == nil {
		t.Fatal("expected readsSecret to fail to resolve secret, since functions cannot see a caller's locals")
	}
}

func TestArrayAllocationGetAndSet(t *testing.T) {
	src := `var a: int[3] = 0
a[0] = 10
a[1] = a[0] + 5
`
	it := runSource(t, src)
	arr := globalOf(it, "a").(runtime.ArrayValue)
	if arr.Elements[0].(runtime.IntValue).Val != 10 {
		t.Fatalf("a[0] = %v, want 10", arr.Elements[0])
	}
	if arr.Elements[1].(runtime.IntValue).Val != 15 {
		t.Fatalf("a[1] = %v, want 15", arr.Elements[1])
	}
}

func TestFormatStringSubstitution(t *testing.T) {
	src := `var name = "gobol"
var msg = @"hello, {name}!"
`
	it := runSource(t, src)
	got := globalOf(it, "msg").(runtime.StrValue).Val
	if got != "hello, gobol!" {
		t.Fatalf("msg = %q, want %q", got, "hello, gobol!")
	}
}

func TestBareBuiltinCallDispatchesWithoutImport(t *testing.T) {
	src := `var n = len("hello")
print("hi")
`
	it := runSource(t, src)
	got := globalOf(it, "n").(runtime.IntValue).Val
	if got != 5 {
		t.Fatalf("n = %d, want 5", got)
	}
}

func TestDivisionByZeroIsARuntimeWarning(t *testing.T) {
	toks := lexer.Tokenize([]byte("var x = 1 / 0\n"))
	prog, pdiags := parser.Parse(toks)
	if len(pdiags) > 0 {
		t.Fatalf("unexpected parse diagnostics: %v", pdiags)
	}
	it := New()
	diags := it.Run(prog)
	if len(diags) != 1 || diags[0].Severity != diag.Warning {
		t.Fatalf("expected exactly one warning-severity diagnostic, got %v", diags)
	}
}

func TestShortCircuitAndOr(t *testing.T) {
	src := `func explode(): bool {
    return 1 / 0 == 0
}
var a = false && explode()
var b = true || explode()
`
	it := runSource(t, src)
	if globalOf(it, "a").(runtime.BoolValue).Val {
		t.Fatal("expected a to be false")
	}
	if !globalOf(it, "b").(runtime.BoolValue).Val {
		t.Fatal("expected b to be true")
	}
}
