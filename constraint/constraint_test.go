package constraint

import (
	"testing"

	"termmatch/expr"
)

func TestFuncCheckAndVariables(t *testing.T) {
	calls := 0
	c := New("positive", []string{"x"}, func(s expr.Substitution) bool {
		calls++
		v, ok := s["x"]
		if !ok {
			return false
		}
		e, ok := v.AsSingle()
		if !ok {
			return false
		}
		sym, ok := e.(expr.Symbol)
		return ok && sym.Name == "a"
	})

	if got := c.Variables(); len(got) != 1 || got[0] != "x" {
		t.Fatalf("Variables() = %v, want [x]", got)
	}

	a, err := expr.NewSymbol("a")
	if err != nil {
		t.Fatal(err)
	}
	s, ok := expr.NewSubstitution().TryAdd("x", expr.Single(a))
	if !ok {
		t.Fatal("TryAdd failed")
	}
	if !c.Check(s) {
		t.Fatal("expected constraint to accept x=a")
	}
	if calls != 1 {
		t.Fatalf("predicate called %d times, want 1", calls)
	}
}

func TestCombineIsConjunctionAndFlattens(t *testing.T) {
	trueC := New("t", nil, func(expr.Substitution) bool { return true })
	falseC := New("f", nil, func(expr.Substitution) bool { return false })

	allTrue := Combine(trueC, trueC)
	if !allTrue.Check(expr.NewSubstitution()) {
		t.Fatal("conjunction of two true constraints should be true")
	}

	mixed := Combine(trueC, falseC)
	if mixed.Check(expr.NewSubstitution()) {
		t.Fatal("conjunction including a false constraint should be false")
	}

	nested := Combine(Combine(trueC, trueC), falseC)
	if nested.Check(expr.NewSubstitution()) {
		t.Fatal("nested combination containing a false constraint should be false")
	}
}

func TestCombineDeduplicatesRepeatedEntries(t *testing.T) {
	c := New("c", []string{"x"}, func(expr.Substitution) bool { return true })
	combined := Combine(c, c, c)
	if combined != expr.Constraint(c) {
		t.Fatalf("combining a constraint with itself should return it unchanged, got %v", combined)
	}
}

func TestCombineOfNothingIsNil(t *testing.T) {
	if got := Combine(); got != nil {
		t.Fatalf("Combine() = %v, want nil", got)
	}
}
