package expr

// Less reports whether a sorts before b in the canonical total order used
// to arrange a commutative operation's operands at construction time. The
// order is a pure convention internal to this package: what matters is that
// it is total and deterministic, not that it matches any particular
// mathematical ordering. Expressions of different kinds are ordered by
// Kind; within a kind, Symbol compares by (name, class), Variable by name
// alone (its inner wildcard shape is ignored for ordering purposes),
// Wildcard by (min count, fixed-ness), SymbolWildcard by class, and
// Operation by (operator name, operand count, then operands pairwise).
func Less(a, b Expression) bool {
	if a.Kind() != b.Kind() {
		return a.Kind() < b.Kind()
	}
	switch x := a.(type) {
	case Symbol:
		y := b.(Symbol)
		if x.Name != y.Name {
			return x.Name < y.Name
		}
		return x.Class < y.Class
	case Variable:
		y := b.(Variable)
		return x.Name < y.Name
	case Wildcard:
		y := b.(Wildcard)
		if x.MinCount != y.MinCount {
			return x.MinCount < y.MinCount
		}
		if x.FixedSize != y.FixedSize {
			return !x.FixedSize
		}
		return false
	case SymbolWildcard:
		y := b.(SymbolWildcard)
		return x.Class < y.Class
	case Operation:
		y := b.(Operation)
		if x.head.name != y.head.name {
			return x.head.name < y.head.name
		}
		if len(x.Operands) != len(y.Operands) {
			return len(x.Operands) < len(y.Operands)
		}
		for i := range x.Operands {
			if x.Operands[i].Equal(y.Operands[i]) {
				continue
			}
			return Less(x.Operands[i], y.Operands[i])
		}
		return false
	default:
		return false
	}
}

// CompareAny compares a against other, which must itself be an Expression;
// it exists for call sites (diagnostics, a generic sort helper) that hold
// expressions behind interface{} and want a (-1, 0, 1) comparator rather
// than the boolean Less. A non-Expression other is a ComparisonError.
func CompareAny(a Expression, other interface{}) (int, error) {
	b, ok := other.(Expression)
	if !ok {
		return 0, newComparisonError("cannot compare Expression with %T", other)
	}
	switch {
	case a.Equal(b):
		return 0, nil
	case Less(a, b):
		return -1, nil
	default:
		return 1, nil
	}
}
