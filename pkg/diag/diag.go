// Package diag defines the shared diagnostic shape the parser, the
// semantic analyzer, and the runtime error channels all use to
// report problems without aborting the pipeline stage they occur in.
package diag

import (
	"fmt"

	"github.com/zhanghaoxvan/gobol/pkg/token"
)

// Severity distinguishes the two diagnostic levels: Error, which stops
// the pipeline after the stage that reports it, and Warning.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Diagnostic is one accumulated message with a best-effort source location.
type Diagnostic struct {
	Severity Severity
	Pos      token.Pos
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s: %s", "<source>", d.Pos.Line, d.Pos.Column, d.Severity, d.Message)
}

// Bag accumulates diagnostics across a full pass (parse or analysis) so
// errors never abort the pass early — callers keep going and surface as
// much structure as possible, in its best-effort contract.
type Bag struct {
	items []Diagnostic
}

func (b *Bag) Add(severity Severity, pos token.Pos, format string, args ...any) {
	b.items = append(b.items, Diagnostic{Severity: severity, Pos: pos, Message: fmt.Sprintf(format, args...)})
}

func (b *Bag) Errorf(pos token.Pos, format string, args ...any) {
	b.Add(Error, pos, format, args...)
}

// HasErrors reports whether any Error-severity diagnostic was recorded.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// All returns every diagnostic recorded, in recording order.
func (b *Bag) All() []Diagnostic {
	return b.items
}
