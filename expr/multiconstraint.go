package expr

import "sort"

// multiConstraint is the conjunction of its parts; it backs both the
// internal constraint-merging invariant (construction collapsing an
// operation must fold the outer constraint into the surviving operand) and
// the public combinator exported by the constraint package. It lives here,
// rather than in that package, so expr's own normalization code can call it
// without importing a package that itself imports expr.
type multiConstraint struct {
	parts []Constraint
	vars  []string
}

// CombineConstraints folds cs into their conjunction, flattening any nested
// multi-constraints and dropping duplicate entries (by interface identity —
// a Constraint implementation must therefore be comparable, which in
// practice means backing it with a pointer or a small value type). A nil
// entry is ignored. Combining zero non-nil constraints yields nil;
// combining exactly one yields that constraint unchanged.
func CombineConstraints(cs ...Constraint) Constraint {
	var flat []Constraint
	seen := map[Constraint]bool{}
	var add func(Constraint)
	add = func(c Constraint) {
		if c == nil || seen[c] {
			return
		}
		if mc, ok := c.(*multiConstraint); ok {
			for _, inner := range mc.parts {
				add(inner)
			}
			return
		}
		seen[c] = true
		flat = append(flat, c)
	}
	for _, c := range cs {
		add(c)
	}
	switch len(flat) {
	case 0:
		return nil
	case 1:
		return flat[0]
	}
	varSet := map[string]struct{}{}
	for _, c := range flat {
		for _, v := range c.Variables() {
			varSet[v] = struct{}{}
		}
	}
	vars := make([]string, 0, len(varSet))
	for v := range varSet {
		vars = append(vars, v)
	}
	sort.Strings(vars)
	return &multiConstraint{parts: flat, vars: vars}
}

func (m *multiConstraint) Check(s Substitution) bool {
	for _, c := range m.parts {
		if !c.Check(s) {
			return false
		}
	}
	return true
}

func (m *multiConstraint) Variables() []string { return m.vars }

// withConstraint returns a copy of e with its constraint combined with
// extra, used when collapsing an Operation absorbs the outer constraint
// into its surviving operand.
func withConstraint(e Expression, extra Constraint) Expression {
	if extra == nil {
		return e
	}
	switch x := e.(type) {
	case Symbol:
		return x
	case Operation:
		x.constraint = CombineConstraints(x.constraint, extra)
		return x
	case Wildcard:
		x.constraint = CombineConstraints(x.constraint, extra)
		return x
	case SymbolWildcard:
		x.constraint = CombineConstraints(x.constraint, extra)
		return x
	case Variable:
		x.constraint = CombineConstraints(x.constraint, extra)
		return x
	default:
		return e
	}
}
