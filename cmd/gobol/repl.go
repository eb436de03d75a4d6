package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lmorg/readline"

	"github.com/zhanghaoxvan/gobol/pkg/driver"
	"github.com/zhanghaoxvan/gobol/pkg/interp"
	"github.com/zhanghaoxvan/gobol/pkg/typecheck"
)

// replCommand runs an interactive read-eval-print loop over the
// tree-walking interpreter: one Analyzer and one Interpreter
// live for the whole session, so a `var` declared on one line is still
// resolvable on the next — scope 0 is never popped, matching
// pkg/symbols.Table's global-scope lifecycle.
func replCommand(args []string) int {
	if len(args) > 0 {
		fmt.Fprintln(os.Stderr, "gobol repl does not take arguments")
		return 1
	}

	an := typecheck.New()
	it := interp.New()

	rline := readline.NewInstance()
	rline.SetPrompt("gobol> ")

	for {
		line, err := rline.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0
			}
			fmt.Fprintf(os.Stderr, "readline: %v\n", err)
			return 1
		}
		if line == "" {
			continue
		}

		prog, pdiags := driver.Parse([]byte(line))
		if printDiagnostics("<repl>", pdiags); hasErrorSeverity(pdiags) {
			continue
		}

		cdiags := an.CheckProgram(prog)
		if printDiagnostics("<repl>", cdiags); hasErrorSeverity(cdiags) {
			continue
		}

		rdiags := it.Run(prog)
		printDiagnostics("<repl>", rdiags)
	}
}
