package typecheck

import (
	"testing"

	"github.com/zhanghaoxvan/gobol/pkg/lexer"
	"github.com/zhanghaoxvan/gobol/pkg/parser"
)

func analyzeSource(t *testing.T, src string) (diagsLen int, hasError bool) {
	t.Helper()
	toks := lexer.Tokenize([]byte(src))
	prog, pdiags := parser.Parse(toks)
	if len(pdiags) > 0 {
		t.Fatalf("unexpected parse diagnostics: %v", pdiags)
	}
	a := New()
	a.run(prog)
	return len(a.Diagnostics()), a.HasError()
}

func TestValidProgramHasNoDiagnostics(t *testing.T) {
	src := `import io
func add(a: int, b: int): int {
    return a + b
}
func main() {
    var x = add(1, 2)
    io.print(@"sum is {x}")
}
`
	n, hasErr := analyzeSource(t, src)
	if hasErr {
		t.Fatalf("expected no errors, got %d diagnostics", n)
	}
}

func TestTypeMismatchInDeclarationIsReported(t *testing.T) {
	_, hasErr := analyzeSource(t, "var x: int = \"oops\"\n")
	if !hasErr {
		t.Fatal("expected a type-mismatch diagnostic")
	}
}

func TestBreakOutsideLoopIsReported(t *testing.T) {
	_, hasErr := analyzeSource(t, "break\n")
	if !hasErr {
		t.Fatal("expected a break-outside-loop diagnostic")
	}
}

func TestBreakInsideLoopIsFine(t *testing.T) {
	_, hasErr := analyzeSource(t, "for i in range(0, 3) {\n    break\n}\n")
	if hasErr {
		t.Fatal("expected no diagnostics for break inside a for loop")
	}
}

func TestUndefinedNameIsReported(t *testing.T) {
	_, hasErr := analyzeSource(t, "var x = y + 1\n")
	if !hasErr {
		t.Fatal("expected an undefined-name diagnostic")
	}
}

func TestIntWidensToFloatInDeclaration(t *testing.T) {
	_, hasErr := analyzeSource(t, "var x: float = 3\n")
	if hasErr {
		t.Fatal("expected int-to-float widening to be accepted")
	}
}

func TestArrayIndexTypeChecking(t *testing.T) {
	src := "var a: int[3] = 0\nvar first = a[0]\n"
	_, hasErr := analyzeSource(t, src)
	if hasErr {
		t.Fatal("expected valid array indexing to pass")
	}
}

func TestUnimportedModuleCallIsReported(t *testing.T) {
	_, hasErr := analyzeSource(t, "io.print(@\"hi\")\n")
	if !hasErr {
		t.Fatal("expected an unimported-module diagnostic")
	}
}

func TestBarePrintResolvesAgainstBuiltins(t *testing.T) {
	_, hasErr := analyzeSource(t, "print(\"hi\")\n")
	if hasErr {
		t.Fatal("expected a bare print(...) call to resolve against __builtins__")
	}
}

func TestBareLenResolvesAgainstBuiltins(t *testing.T) {
	src := "var a: int[3]\nvar n: int = len(a)\n"
	_, hasErr := analyzeSource(t, src)
	if hasErr {
		t.Fatal("expected a bare len(...) call to resolve against __builtins__")
	}
}

func TestMissingReturnInNonNoneFunctionIsReported(t *testing.T) {
	src := `func f(): int {
    var x = 1
}
`
	_, hasErr := analyzeSource(t, src)
	if !hasErr {
		t.Fatal("expected a missing-return diagnostic for a non-none function with no return statement")
	}
}

func TestReturnInsideIfSatisfiesMissingReturnCheck(t *testing.T) {
	src := `func f(x: int): int {
    if x > 0 {
        return x
    }
    return 0
}
`
	_, hasErr := analyzeSource(t, src)
	if hasErr {
		t.Fatal("expected a function with a return statement to pass the missing-return check")
	}
}
