package driver

import "testing"

func TestRunSourceVMAndInterpAgree(t *testing.T) {
	src := []byte(`func fib(n: int): int {
    if n <= 1 {
        return n
    }
    return fib(n - 1) + fib(n - 2)
}
var x = fib(10)
`)
	vmRes := RunSource(src, false)
	if vmRes.HasError() {
		t.Fatalf("unexpected diagnostics from the VM path: %v", vmRes.All())
	}
	interpRes := RunSource(src, true)
	if interpRes.HasError() {
		t.Fatalf("unexpected diagnostics from the interpreter path: %v", interpRes.All())
	}
	if len(vmRes.RuntimeDiagnostics) != 0 || len(interpRes.RuntimeDiagnostics) != 0 {
		t.Fatalf("unexpected runtime diagnostics: vm=%v interp=%v", vmRes.RuntimeDiagnostics, interpRes.RuntimeDiagnostics)
	}
}

func TestRunSourceStopsAtParseError(t *testing.T) {
	res := RunSource([]byte("var x = (1 +\n"), false)
	if !hasError(res.ParseDiagnostics) {
		t.Fatalf("expected a parse error, got %v", res.ParseDiagnostics)
	}
	if res.CheckDiagnostics != nil || res.RuntimeDiagnostics != nil {
		t.Fatalf("expected the pipeline to stop after parsing, got check=%v runtime=%v", res.CheckDiagnostics, res.RuntimeDiagnostics)
	}
}

func TestRunSourceStopsAtTypeError(t *testing.T) {
	res := RunSource([]byte("var x: int = \"not an int\"\n"), false)
	if hasError(res.ParseDiagnostics) {
		t.Fatalf("unexpected parse diagnostics: %v", res.ParseDiagnostics)
	}
	if !hasError(res.CheckDiagnostics) {
		t.Fatalf("expected a type error, got %v", res.CheckDiagnostics)
	}
	if res.RuntimeDiagnostics != nil {
		t.Fatalf("expected the pipeline to stop before execution, got %v", res.RuntimeDiagnostics)
	}
}

func TestCheckOnlyNeverExecutes(t *testing.T) {
	prog, pdiags := Parse([]byte("var x = 1 / 0\n"))
	if hasError(pdiags) {
		t.Fatalf("unexpected parse diagnostics: %v", pdiags)
	}
	if diags := Check(prog); hasError(diags) {
		t.Fatalf("unexpected check diagnostics: %v", diags)
	}
	// Check never runs the VM or interpreter, so the division by zero
	// above is never evaluated and never produces a diagnostic here.
}
