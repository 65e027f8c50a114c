// Package match implements one-to-one matching of a single pattern against
// a single subject expression, honoring associativity, commutativity and
// one-identity as already normalized onto both sides by the expr package,
// plus constraint evaluation once every variable a constraint inspects has
// been bound.
package match

import (
	"iter"

	"termmatch/expr"
)

// Match yields every substitution under which pattern matches subject. The
// sequence is lazy: a caller that only consumes the first result never
// pays for the rest.
func Match(subject, pattern expr.Expression) iter.Seq[expr.Substitution] {
	var constraints []expr.Constraint
	for node := range expr.Preorder(pattern, nil) {
		if c := node.Constraint(); c != nil {
			constraints = append(constraints, c)
		}
	}
	return func(yield func(expr.Substitution) bool) {
		matchOne(subject, pattern, expr.NewSubstitution(), func(s expr.Substitution) bool {
			// checkAndContinue returns true without calling its continuation
			// only when c is decidable on s and rejects it.
			for _, c := range constraints {
				if checkAndContinue(c, s, func(expr.Substitution) bool { return false }) {
					return true
				}
			}
			return yield(s)
		})
	}
}

// matchOne attempts to match a single subject expression against a single
// pattern expression under subst, invoking cont with every resulting
// substitution. It returns false as soon as cont does, to let the caller's
// range loop stop early without unwinding the whole search.
func matchOne(subject, pattern expr.Expression, subst expr.Substitution, cont func(expr.Substitution) bool) bool {
	switch p := pattern.(type) {
	case expr.Symbol:
		if s, ok := subject.(expr.Symbol); ok && s.Equal(p) {
			return cont(subst)
		}
		return true

	case expr.SymbolWildcard:
		s, ok := subject.(expr.Symbol)
		if !ok || !p.Accepts(s) {
			return true
		}
		return checkAndContinue(p.Constraint(), subst, cont)

	case expr.Wildcard:
		if !acceptsSingle(p.MinCount, p.FixedSize) {
			return true
		}
		return checkAndContinue(p.Constraint(), subst, cont)

	case expr.Variable:
		return matchVariableSingle(subject, p, subst, cont)

	case expr.Operation:
		return matchOperation(subject, p, subst, cont)
	}
	return true
}

// acceptsSingle reports whether a bare wildcard of the given shape can
// stand for exactly one subject expression, the only width a non-sequence
// position can ever offer it.
func acceptsSingle(minCount int, fixedSize bool) bool {
	if fixedSize {
		return minCount == 1
	}
	return minCount <= 1
}

func matchVariableSingle(subject expr.Expression, v expr.Variable, subst expr.Substitution, cont func(expr.Substitution) bool) bool {
	minCount, fixedSize := 0, true
	switch inner := v.Inner.(type) {
	case expr.Wildcard:
		minCount, fixedSize = inner.MinCount, inner.FixedSize
	case expr.SymbolWildcard:
		if s, ok := subject.(expr.Symbol); !ok || !inner.Accepts(s) {
			return true
		}
	}
	if _, ok := v.Inner.(expr.Wildcard); ok && !acceptsSingle(minCount, fixedSize) {
		return true
	}
	bound, ok := subst.TryAdd(v.Name, expr.Single(subject))
	if !ok {
		return true
	}
	return checkAndContinue(v.Constraint(), bound, cont)
}

func matchOperation(subject expr.Expression, p expr.Operation, subst expr.Substitution, cont func(expr.Substitution) bool) bool {
	s, ok := subject.(expr.Operation)
	if !ok || !s.Head().Equal(p.Head()) {
		return true
	}
	head, _ := p.Head().(*expr.OperationHead)

	proceed := func(bound expr.Substitution) bool {
		return checkAndContinue(p.Constraint(), bound, cont)
	}

	if head != nil && head.Commutative() {
		return matchCommutative(operands(s), operands(p), subst, proceed)
	}
	// Every non-commutative operation, associative or not, delegates operand
	// matching to the sequence matcher: a plain variadic operator's pattern
	// operands may still include sequence wildcards that need to absorb a
	// variable-width run of subject operands, exactly as an associative
	// operator's would.
	return matchSequence(operands(s), operands(p), subst, proceed)
}

func operands(o expr.Operation) []expr.Expression { return o.Operands }

// checkAndContinue evaluates c against s, treating a constraint whose
// declared variables are not all yet bound as not yet decidable and so
// passing it through — Match re-checks every constraint of the pattern
// against each complete substitution, which makes the real call once the
// rest of the variables are bound.
func checkAndContinue(c expr.Constraint, s expr.Substitution, cont func(expr.Substitution) bool) bool {
	if c == nil {
		return cont(s)
	}
	for _, name := range c.Variables() {
		if _, bound := s[name]; !bound {
			return cont(s)
		}
	}
	if !c.Check(s) {
		return true
	}
	return cont(s)
}
