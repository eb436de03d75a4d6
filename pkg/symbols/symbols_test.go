package symbols

import "testing"

func TestDefineAndResolveAcrossScopes(t *testing.T) {
	tbl := NewTable()
	if err := tbl.Define(&Symbol{Name: "x", Kind: KindVariable, DataType: "int"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tbl.Push()
	if _, ok := tbl.Resolve("x"); !ok {
		t.Fatal("expected to resolve outer-scope symbol from nested scope")
	}
	if err := tbl.Define(&Symbol{Name: "x", Kind: KindVariable, DataType: "str"}); err != nil {
		t.Fatalf("shadowing an outer scope should be allowed: %v", err)
	}
	shadowed, _ := tbl.Resolve("x")
	if shadowed.DataType != "str" {
		t.Fatalf("expected inner shadow to win, got %v", shadowed.DataType)
	}
	tbl.Pop()

	outer, _ := tbl.Resolve("x")
	if outer.DataType != "int" {
		t.Fatalf("expected outer binding restored after Pop, got %v", outer.DataType)
	}
}

func TestDefineRejectsDuplicateInSameScope(t *testing.T) {
	tbl := NewTable()
	if err := tbl.Define(&Symbol{Name: "x", Kind: KindVariable}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tbl.Define(&Symbol{Name: "x", Kind: KindVariable}); err == nil {
		t.Fatal("expected a duplicate-definition error")
	}
}

func TestPopGlobalScopePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Pop on the global scope to panic")
		}
	}()
	tbl := NewTable()
	tbl.Pop()
}

func TestResolveQualifiedModuleMember(t *testing.T) {
	tbl := NewTable()
	sym := &Symbol{Name: QualifiedKey("io", "print"), Kind: KindFunction, ModuleName: "io"}
	if err := tbl.DefineGlobal(sym); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := tbl.ResolveQualified("io", "print")
	if !ok || got.ModuleName != "io" {
		t.Fatalf("expected to resolve io.print, got %v ok=%v", got, ok)
	}
}
