package expr

import "testing"

func TestTotalOrderKindPrecedence(t *testing.T) {
	a := mustSymbol(t, "a")
	x, _ := VariableDot("x")
	w := Dot()
	f := variadicHead(t, "f")
	op := mustOp(t, f, a)

	if !Less(a, x) {
		t.Error("Symbol should sort before Variable")
	}
	if !Less(x, w) {
		t.Error("Variable should sort before Wildcard")
	}
	if !Less(w, op) {
		t.Error("Wildcard should sort before Operation")
	}
}

func TestCompareAnyRejectsNonExpression(t *testing.T) {
	a := mustSymbol(t, "a")
	if _, err := CompareAny(a, 42); err == nil || !IsComparisonError(err) {
		t.Fatalf("CompareAny against a non-Expression should be a ComparisonError, got %v", err)
	}
}

func TestWildcardBoundaryErrors(t *testing.T) {
	if _, err := NewWildcard(-1, false); err == nil || !IsValueError(err) {
		t.Fatalf("negative min_count should be a ValueError, got %v", err)
	}
	if _, err := NewWildcard(0, true); err == nil || !IsValueError(err) {
		t.Fatalf("fixed-size wildcard of min_count 0 should be a ValueError, got %v", err)
	}
}

func TestSymbolWildcardRejectsInvalidClassName(t *testing.T) {
	if _, err := NewSymbolWildcard("not a class!"); err == nil || !IsTypeError(err) {
		t.Fatalf("invalid class name should be a TypeError, got %v", err)
	}
	if _, err := NewSymbolWildcard(""); err != nil {
		t.Fatalf("empty class name (any symbol) should be accepted, got %v", err)
	}
}

func TestFixedArityOperationRejectsWrongCount(t *testing.T) {
	bin, err := NewOperation("bin", Binary)
	if err != nil {
		t.Fatal(err)
	}
	a := mustSymbol(t, "a")
	if _, err := NewOperationExpr(bin, []Expression{a}); err == nil || !IsValueError(err) {
		t.Fatalf("binary operator given one operand should be a ValueError, got %v", err)
	}
}

func TestHashConsistentWithEqual(t *testing.T) {
	fc := variadicHead(t, "f_c", Commutative())
	a, b := mustSymbol(t, "a"), mustSymbol(t, "b")

	e1 := mustOp(t, fc, b, a)
	e2 := mustOp(t, fc, a, b)
	if !e1.Equal(e2) {
		t.Fatal("commutative operands should normalize to the same expression")
	}
	if Hash(e1) != Hash(e2) {
		t.Fatalf("equal expressions must hash identically: %d vs %d", Hash(e1), Hash(e2))
	}

	f := variadicHead(t, "f")
	e3 := mustOp(t, f, a, b)
	e4 := mustOp(t, f, b, a)
	if Hash(e3) == Hash(e4) {
		t.Fatal("differently-ordered non-commutative operands should (overwhelmingly) hash differently")
	}
}
