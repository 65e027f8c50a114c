package match

import "termmatch/expr"

// matchSequence matches a non-commutative operator's operand list
// (associative or not) against a pattern operand list of the same operator,
// backtracking over how much of the subject a variable-width pattern item
// (a bare non-fixed wildcard, or a Variable wrapping one) consumes.
func matchSequence(subjects, patterns []expr.Expression, subst expr.Substitution, cont func(expr.Substitution) bool) bool {
	var step func(si, pi int, s expr.Substitution) bool
	step = func(si, pi int, s expr.Substitution) bool {
		if pi == len(patterns) {
			if si == len(subjects) {
				return cont(s)
			}
			return true
		}
		switch p := patterns[pi].(type) {
		case expr.Variable:
			return matchSequenceVariable(subjects, si, p, pi, s, step)
		case expr.Wildcard:
			return matchSequenceBareWildcard(subjects, si, p, pi, s, step)
		default:
			if si >= len(subjects) {
				return true
			}
			return matchOne(subjects[si], patterns[pi], s, func(next expr.Substitution) bool {
				return step(si+1, pi+1, next)
			})
		}
	}
	return step(0, 0, subst)
}

func sliceValue(items []expr.Expression) expr.Value {
	if len(items) == 1 {
		return expr.Single(items[0])
	}
	return expr.Sequence(append([]expr.Expression(nil), items...))
}

func matchSequenceVariable(subjects []expr.Expression, si int, v expr.Variable, pi int, s expr.Substitution, step func(int, int, expr.Substitution) bool) bool {
	switch inner := v.Inner.(type) {
	case expr.SymbolWildcard:
		if si >= len(subjects) {
			return true
		}
		sym, ok := subjects[si].(expr.Symbol)
		if !ok || !inner.Accepts(sym) {
			return true
		}
		bound, ok := s.TryAdd(v.Name, expr.Single(subjects[si]))
		if !ok {
			return true
		}
		return checkAndContinue(v.Constraint(), bound, func(next expr.Substitution) bool {
			return step(si+1, pi+1, next)
		})

	case expr.Wildcard:
		remaining := len(subjects) - si
		if inner.FixedSize {
			if remaining < inner.MinCount {
				return true
			}
			bound, ok := s.TryAdd(v.Name, sliceValue(subjects[si:si+inner.MinCount]))
			if !ok {
				return true
			}
			return checkAndContinue(v.Constraint(), bound, func(next expr.Substitution) bool {
				return step(si+inner.MinCount, pi+1, next)
			})
		}
		for k := inner.MinCount; k <= remaining; k++ {
			bound, ok := s.TryAdd(v.Name, sliceValue(subjects[si:si+k]))
			if !ok {
				continue
			}
			if !checkAndContinue(v.Constraint(), bound, func(next expr.Substitution) bool {
				return step(si+k, pi+1, next)
			}) {
				return false
			}
		}
		return true
	}
	return true
}

func matchSequenceBareWildcard(subjects []expr.Expression, si int, w expr.Wildcard, pi int, s expr.Substitution, step func(int, int, expr.Substitution) bool) bool {
	remaining := len(subjects) - si
	if w.FixedSize {
		if remaining < w.MinCount {
			return true
		}
		return step(si+w.MinCount, pi+1, s)
	}
	for k := w.MinCount; k <= remaining; k++ {
		if !step(si+k, pi+1, s) {
			return false
		}
	}
	return true
}
