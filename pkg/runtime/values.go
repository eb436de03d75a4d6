// Package runtime defines Gobol's runtime value representation: the
// tagged union every evaluator (tree-walking interpreter and bytecode VM
// alike) pushes onto its stack and binds to names. It is deliberately a
// small cut of the kind of value-kind lattice a tagged-union runtime
// value models for a much larger language — Gobol has no
// structs, interfaces, unions, or concurrency primitives, so its Value
// interface carries only the eight kinds Gobol actually needs.
package runtime

import "fmt"

// Kind identifies a Value's runtime category.
type Kind int

const (
	KindNone Kind = iota
	KindInt
	KindFloat
	KindBool
	KindStr
	KindArray
	KindFunction
	KindRange
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindStr:
		return "str"
	case KindArray:
		return "array"
	case KindFunction:
		return "function"
	case KindRange:
		return "range"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behavior for every runtime value variant.
type Value interface {
	Kind() Kind
	String() string
}

//-----------------------------------------------------------------------------
// None
//-----------------------------------------------------------------------------

// NoneValue is equal only to itself.
type NoneValue struct{}

func (NoneValue) Kind() Kind      { return KindNone }
func (NoneValue) String() string  { return "none" }

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type IntValue struct{ Val int64 }

func (v IntValue) Kind() Kind     { return KindInt }
func (v IntValue) String() string { return fmt.Sprintf("%d", v.Val) }

type FloatValue struct{ Val float64 }

func (v FloatValue) Kind() Kind     { return KindFloat }
func (v FloatValue) String() string { return fmt.Sprintf("%g", v.Val) }

type BoolValue struct{ Val bool }

func (v BoolValue) Kind() Kind { return KindBool }
func (v BoolValue) String() string {
	if v.Val {
		return "true"
	}
	return "false"
}

type StrValue struct{ Val string }

func (v StrValue) Kind() Kind     { return KindStr }
func (v StrValue) String() string { return v.Val }

//-----------------------------------------------------------------------------
// Array
//-----------------------------------------------------------------------------

// ArrayValue is a fixed-size, ordered sequence. Arrays are passed by value
// on the eval stack: cloning is the caller's job, not this
// type's — Clone exists precisely so ARRAY_SET can mutate a private copy
// without aliasing the variable it was loaded from.
type ArrayValue struct {
	Elements []Value
}

func (v ArrayValue) Kind() Kind { return KindArray }
func (v ArrayValue) String() string {
	s := "["
	for i, e := range v.Elements {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + "]"
}

// Clone returns a shallow copy of the array with its own backing slice so
// mutating the clone never mutates v.
func (v ArrayValue) Clone() ArrayValue {
	cp := make([]Value, len(v.Elements))
	copy(cp, v.Elements)
	return ArrayValue{Elements: cp}
}

//-----------------------------------------------------------------------------
// Function
//-----------------------------------------------------------------------------

// FunctionValue names a top-level function. There are no closures beyond
// top-level functions, so a FunctionValue needs no
// captured-environment field — BodyEntry is the bytecode pc the compiler
// recorded for it, or -1 when only the interpreter path is in use.
type FunctionValue struct {
	Name       string
	Params     []string
	BodyEntry  int
}

func (v FunctionValue) Kind() Kind     { return KindFunction }
func (v FunctionValue) String() string { return fmt.Sprintf("<function %s>", v.Name) }

//-----------------------------------------------------------------------------
// Range
//-----------------------------------------------------------------------------

// RangeValue is the interpreter's first-class representation of a `for`
// iterable; the compiled `for` loop instead keeps its end and step in
// hidden named slots (see pkg/compiler's emitFor).
type RangeValue struct {
	Start, End, Step int64
}

func (v RangeValue) Kind() Kind { return KindRange }
func (v RangeValue) String() string {
	return fmt.Sprintf("range(%d, %d, %d)", v.Start, v.End, v.Step)
}

//-----------------------------------------------------------------------------
// Shared predicates
//-----------------------------------------------------------------------------

// Truthy implements the JMP_FALSE falsiness rule: None is
// false; numeric zero is false; Bool is itself; empty Str/Array is false.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case NoneValue:
		return false
	case IntValue:
		return x.Val != 0
	case FloatValue:
		return x.Val != 0
	case BoolValue:
		return x.Val
	case StrValue:
		return x.Val != ""
	case ArrayValue:
		return len(x.Elements) > 0
	default:
		return true
	}
}

// IsNumeric reports whether v is an Int or a Float.
func IsNumeric(v Value) bool {
	switch v.(type) {
	case IntValue, FloatValue:
		return true
	default:
		return false
	}
}

// AsFloat widens a numeric value to float64. Callers must check IsNumeric
// first.
func AsFloat(v Value) float64 {
	switch x := v.(type) {
	case IntValue:
		return float64(x.Val)
	case FloatValue:
		return x.Val
	default:
		return 0
	}
}

// ZeroValueFor returns the default element value for an array of the given
// element type name, in its ALLOC_ARRAY semantics.
func ZeroValueFor(elementTypeName string) Value {
	switch elementTypeName {
	case "float":
		return FloatValue{Val: 0}
	case "bool":
		return BoolValue{Val: false}
	case "str":
		return StrValue{Val: ""}
	default:
		return IntValue{Val: 0}
	}
}
