package builtins

import (
	"testing"

	"github.com/zhanghaoxvan/gobol/pkg/runtime"
)

func TestLoadDefaultDeclaresCoreModules(t *testing.T) {
	r := LoadDefault()
	if _, ok := r.Lookup("__builtins__", "len"); !ok {
		t.Fatal("expected __builtins__.len to be declared")
	}
	if _, ok := r.Lookup("io", "print"); !ok {
		t.Fatal("expected io.print to be declared")
	}
	if _, ok := r.Lookup("io", "missing"); ok {
		t.Fatal("did not expect io.missing to be declared")
	}
}

func TestCallLenOnArrayAndString(t *testing.T) {
	r := LoadDefault()
	v, err := r.Call("__builtins__", "len", []runtime.Value{runtime.StrValue{Val: "abc"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(runtime.IntValue).Val != 3 {
		t.Fatalf("got %v, want 3", v)
	}

	arr := runtime.ArrayValue{Elements: []runtime.Value{runtime.IntValue{Val: 1}, runtime.IntValue{Val: 2}}}
	v, err = r.Call("__builtins__", "len", []runtime.Value{arr})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(runtime.IntValue).Val != 2 {
		t.Fatalf("got %v, want 2", v)
	}
}

func TestCallUnknownFunctionErrors(t *testing.T) {
	r := LoadDefault()
	if _, err := r.Call("io", "nope", nil); err == nil {
		t.Fatal("expected an error calling an unwired function")
	}
}

func TestIntConversionFromString(t *testing.T) {
	r := LoadDefault()
	v, err := r.Call("__builtins__", "int", []runtime.Value{runtime.StrValue{Val: " 42 "}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(runtime.IntValue).Val != 42 {
		t.Fatalf("got %v, want 42", v)
	}
}
