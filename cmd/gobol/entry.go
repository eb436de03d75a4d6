package main

import (
	"fmt"
	"os"

	"github.com/zhanghaoxvan/gobol/pkg/diag"
	"github.com/zhanghaoxvan/gobol/pkg/driver"
)

// runCommand implements `gobol run [--interp] <file>` and the bare
// `gobol <file>` form it is sugar for (CLI surface).
func runCommand(args []string) int {
	useInterp := false
	var file string
	for _, a := range args {
		if a == "--interp" {
			useInterp = true
			continue
		}
		file = a
	}
	if file == "" {
		fmt.Fprintln(os.Stderr, "gobol run requires a source file")
		return 1
	}

	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", file, err)
		return 1
	}

	res := driver.RunSource(src, useInterp)
	printDiagnostics(file, res.All())
	if res.HasError() {
		return 1
	}
	return 0
}

// checkCommand implements `gobol check <file>`: lex, parse, and analyze
// only, never executing the program.
func checkCommand(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "gobol check requires exactly one source file")
		return 1
	}
	file := args[0]

	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", file, err)
		return 1
	}

	prog, pdiags := driver.Parse(src)
	printDiagnostics(file, pdiags)
	if hasErrorSeverity(pdiags) {
		return 1
	}

	cdiags := driver.Check(prog)
	printDiagnostics(file, cdiags)
	if hasErrorSeverity(cdiags) {
		return 1
	}
	fmt.Fprintln(os.Stdout, "check: ok")
	return 0
}

func hasErrorSeverity(ds []diag.Diagnostic) bool {
	for _, d := range ds {
		if d.Severity == diag.Error {
			return true
		}
	}
	return false
}

func printDiagnostics(file string, ds []diag.Diagnostic) {
	for _, d := range ds {
		fmt.Fprintf(os.Stderr, "%s:%d:%d: %s: %s\n", file, d.Pos.Line, d.Pos.Column, d.Severity, d.Message)
	}
}
