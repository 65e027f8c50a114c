package discrimination

import (
	"context"
	"testing"

	"termmatch/expr"
	"termmatch/match"
)

func mustSymbol(t *testing.T, name string) expr.Symbol {
	t.Helper()
	s, err := expr.NewSymbol(name)
	if err != nil {
		t.Fatalf("NewSymbol(%q): %v", name, err)
	}
	return s
}

func mustOp(t *testing.T, head *expr.OperationHead, operands ...expr.Expression) expr.Expression {
	t.Helper()
	e, err := expr.NewOperationExpr(head, operands)
	if err != nil {
		t.Fatalf("NewOperationExpr: %v", err)
	}
	return e
}

func variadicHead(t *testing.T, name string, opts ...expr.OperationOption) *expr.OperationHead {
	t.Helper()
	h, err := expr.NewOperation(name, expr.Variadic, opts...)
	if err != nil {
		t.Fatalf("NewOperation(%q): %v", name, err)
	}
	return h
}

// Scenario 6: ManyToOneMatcher(f(x_), f(a, y_)).match(f(a, b)) -> only the
// second pattern matches; the unary pattern can't match a 2-ary subject.
func TestScenarioSixManyToOne(t *testing.T) {
	f := variadicHead(t, "f")
	a, b := mustSymbol(t, "a"), mustSymbol(t, "b")
	x, _ := expr.VariableDot("x")
	y, _ := expr.VariableDot("y")

	p1 := mustOp(t, f, x)
	p2 := mustOp(t, f, a, y)

	net, err := NewManyToOneMatcher(p1, p2)
	if err != nil {
		t.Fatal(err)
	}

	subject := mustOp(t, f, a, b)
	var matched []int
	for r := range net.Match(subject) {
		matched = append(matched, r.Index)
	}
	if len(matched) != 1 || matched[0] != 1 {
		t.Fatalf("matched indices %v, want only index 1 (pattern f(a, y_))", matched)
	}
}

// Many-to-one equivalence: for every pattern in a set and every subject,
// {sigma : (p, sigma) in ManyToOne(P).match(s)} equals {sigma : sigma in
// match.Match(s, p)}.
func TestManyToOneEquivalence(t *testing.T) {
	f := variadicHead(t, "f")
	fc := variadicHead(t, "f_c", expr.Commutative())
	a, b, c := mustSymbol(t, "a"), mustSymbol(t, "b"), mustSymbol(t, "c")
	x, _ := expr.VariableDot("x")
	y, _ := expr.VariableStar("y")
	xc, _ := expr.VariableDot("x")
	yc, _ := expr.VariableDot("y")

	p1 := mustOp(t, f, x, y)
	p2 := mustOp(t, fc, xc, yc)

	net, err := NewManyToOneMatcher(p1, p2)
	if err != nil {
		t.Fatal(err)
	}

	subjects := []expr.Expression{
		mustOp(t, f, a, b, c),
		mustOp(t, fc, a, b),
	}

	for _, subject := range subjects {
		countByIndex := map[int]int{}
		for r := range net.Match(subject) {
			countByIndex[r.Index]++
		}
		for idx, pattern := range []expr.Expression{p1, p2} {
			oneToOneCount := 0
			for range match.Match(subject, pattern) {
				oneToOneCount++
			}
			if countByIndex[idx] != oneToOneCount {
				t.Fatalf("pattern %d: many-to-one found %d matches, one-to-one found %d", idx, countByIndex[idx], oneToOneCount)
			}
		}
	}
}

func TestAddRejectsUnsupportedFixedCommutativeWildcard(t *testing.T) {
	fc := variadicHead(t, "f_c", expr.Commutative())
	xFixed, err := expr.VariableFixed("x", 2)
	if err != nil {
		t.Fatal(err)
	}
	pattern := mustOp(t, fc, xFixed)

	n := NewNet()
	if _, err := n.Add(pattern); err == nil {
		t.Fatal("expected ErrUnsupported for a fixed-width wildcard inside a commutative operator")
	}
}

func TestMatchAllConcurrentPreservesOrder(t *testing.T) {
	f := variadicHead(t, "f")
	a, b, c := mustSymbol(t, "a"), mustSymbol(t, "b"), mustSymbol(t, "c")
	x, _ := expr.VariableDot("x")
	net, err := NewManyToOneMatcher(mustOp(t, f, x))
	if err != nil {
		t.Fatal(err)
	}
	subjects := []expr.Expression{mustOp(t, f, a), mustOp(t, f, b), mustOp(t, f, c)}
	out, err := net.MatchAllConcurrent(context.Background(), subjects, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 {
		t.Fatalf("got %d result sets, want 3", len(out))
	}
	for i, rs := range out {
		if len(rs) != 1 {
			t.Fatalf("subject %d: got %d results, want 1", i, len(rs))
		}
		want := []expr.Expression{a, b, c}[i]
		if got, ok := rs[0].Subst["x"].AsSingle(); !ok || !got.Equal(want) {
			t.Fatalf("subject %d: x bound to %v, want %s", i, rs[0].Subst["x"], want)
		}
	}
}

// Two patterns with the same structural prefix share trie states: f(a, x_)
// and f(a, b) diverge only at the second operand, so the compiled trie is
// strictly smaller than the two paths laid side by side.
func TestTrieSharesCommonPrefix(t *testing.T) {
	f := variadicHead(t, "f")
	a, b := mustSymbol(t, "a"), mustSymbol(t, "b")
	x, _ := expr.VariableDot("x")

	shared, err := NewManyToOneMatcher(mustOp(t, f, a, x), mustOp(t, f, a, b))
	if err != nil {
		t.Fatal(err)
	}
	separate, err := NewManyToOneMatcher(mustOp(t, f, a, x))
	if err != nil {
		t.Fatal(err)
	}

	sharedStates := shared.Stats().States
	oneStates := separate.Stats().States
	if sharedStates >= 2*oneStates-1 {
		t.Fatalf("trie has %d states for two prefix-sharing patterns, %d for one; expected the prefix to be walked once", sharedStates, oneStates)
	}

	subject := mustOp(t, f, a, b)
	var matched []int
	for r := range shared.Match(subject) {
		matched = append(matched, r.Index)
	}
	if len(matched) != 2 {
		t.Fatalf("got matches for indices %v, want both patterns", matched)
	}
}

func TestNestedStructuralPatterns(t *testing.T) {
	f := variadicHead(t, "f")
	g := variadicHead(t, "g")
	a, b := mustSymbol(t, "a"), mustSymbol(t, "b")
	x, _ := expr.VariableDot("x")

	pattern := mustOp(t, f, mustOp(t, g, x, b), a)
	net, err := NewManyToOneMatcher(pattern)
	if err != nil {
		t.Fatal(err)
	}

	subject := mustOp(t, f, mustOp(t, g, a, b), a)
	var results []expr.Substitution
	for r := range net.Match(subject) {
		results = append(results, r.Subst)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	bound, ok := results[0]["x"].AsSingle()
	if !ok || !bound.Equal(a) {
		t.Fatalf("x bound to %v, want a", results[0]["x"])
	}

	miss := mustOp(t, f, mustOp(t, g, a, a), a)
	for range net.Match(miss) {
		t.Fatal("g(a, a) must not match g(x_, b)")
	}
}

// A commutative subtree below a shared structural prefix runs as a
// residual subproblem per accepting branch.
func TestCommutativeResidualBelowSharedPrefix(t *testing.T) {
	f := variadicHead(t, "f")
	fc := variadicHead(t, "f_c", expr.Commutative())
	a, b := mustSymbol(t, "a"), mustSymbol(t, "b")
	x, _ := expr.VariableDot("x")
	y, _ := expr.VariableDot("y")

	pattern := mustOp(t, f, a, mustOp(t, fc, x, y))
	net, err := NewManyToOneMatcher(pattern)
	if err != nil {
		t.Fatal(err)
	}

	subject := mustOp(t, f, a, mustOp(t, fc, a, b))
	count := 0
	for range net.Match(subject) {
		count++
	}
	if count != 2 {
		t.Fatalf("got %d results, want 2 (both orientations of the commutative pair)", count)
	}
}

func TestRemoveUnregistersPattern(t *testing.T) {
	f := variadicHead(t, "f")
	a := mustSymbol(t, "a")
	x, _ := expr.VariableDot("x")

	n := NewNet()
	id1, err := n.Add(mustOp(t, f, x))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := n.Add(mustOp(t, f, a)); err != nil {
		t.Fatal(err)
	}

	if !n.Remove(id1) {
		t.Fatal("Remove reported the pattern missing")
	}
	if n.Remove(id1) {
		t.Fatal("second Remove of the same id must report false")
	}
	if n.Len() != 1 {
		t.Fatalf("Len() = %d after removal, want 1", n.Len())
	}

	subject := mustOp(t, f, a)
	for r := range n.Match(subject) {
		if r.Index == 0 {
			t.Fatal("removed pattern still matched")
		}
	}
}

func TestNetRepeatedVariableConsistency(t *testing.T) {
	f := variadicHead(t, "f")
	a, b := mustSymbol(t, "a"), mustSymbol(t, "b")
	x1, _ := expr.VariableDot("x")
	x2, _ := expr.VariableDot("x")

	net, err := NewManyToOneMatcher(mustOp(t, f, x1, x2))
	if err != nil {
		t.Fatal(err)
	}

	count := 0
	for range net.Match(mustOp(t, f, a, a)) {
		count++
	}
	if count != 1 {
		t.Fatalf("f(a, a) vs f(x_, x_): got %d results, want 1", count)
	}
	for range net.Match(mustOp(t, f, a, b)) {
		t.Fatal("f(a, b) must not match f(x_, x_)")
	}
}

func TestNetConstraintVeto(t *testing.T) {
	f := variadicHead(t, "f")
	a := mustSymbol(t, "a")
	x, err := expr.VariableDot("x", rejectX{})
	if err != nil {
		t.Fatal(err)
	}
	net, err := NewManyToOneMatcher(mustOp(t, f, x))
	if err != nil {
		t.Fatal(err)
	}
	for range net.Match(mustOp(t, f, a)) {
		t.Fatal("constraint must veto the only candidate")
	}
}

type rejectX struct{}

func (rejectX) Check(expr.Substitution) bool { return false }
func (rejectX) Variables() []string          { return []string{"x"} }
