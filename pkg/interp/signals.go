package interp

import "github.com/zhanghaoxvan/gobol/pkg/runtime"

// breakSignal and continueSignal unwind a tree-walking loop execution by
// riding Statement.Accept's error return: VisitWhile/VisitFor
// catch their own loop's signal and swallow it, while returnSignal keeps
// unwinding past any enclosing loop until callFunction catches it. Grounded on the break/continue/return sentinel
// pattern used by interpreter_signals.go-style tree-walkers.
type breakSignal struct{}

func (breakSignal) Error() string { return "break" }

type continueSignal struct{}

func (continueSignal) Error() string { return "continue" }

type returnSignal struct {
	value runtime.Value
}

func (returnSignal) Error() string { return "return" }
