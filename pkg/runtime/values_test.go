package runtime

import "testing"

func TestTruthy(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{NoneValue{}, false},
		{IntValue{Val: 0}, false},
		{IntValue{Val: 1}, true},
		{FloatValue{Val: 0}, false},
		{BoolValue{Val: false}, false},
		{BoolValue{Val: true}, true},
		{StrValue{Val: ""}, false},
		{StrValue{Val: "x"}, true},
		{ArrayValue{Elements: nil}, false},
		{ArrayValue{Elements: []Value{IntValue{Val: 1}}}, true},
	}
	for _, c := range cases {
		if got := Truthy(c.v); got != c.want {
			t.Errorf("Truthy(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestArrayCloneIsIndependent(t *testing.T) {
	a := ArrayValue{Elements: []Value{IntValue{Val: 1}, IntValue{Val: 2}}}
	b := a.Clone()
	b.Elements[0] = IntValue{Val: 99}
	if a.Elements[0].(IntValue).Val != 1 {
		t.Fatalf("mutating clone affected original: %v", a)
	}
}

func TestAsFloatWidening(t *testing.T) {
	if AsFloat(IntValue{Val: 3}) != 3.0 {
		t.Fatal("int widening failed")
	}
	if AsFloat(FloatValue{Val: 3.5}) != 3.5 {
		t.Fatal("float passthrough failed")
	}
}
