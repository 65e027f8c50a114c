package match

import (
	"github.com/samber/lo"

	"termmatch/expr"
)

// matchCommutative matches a commutative operator's operand list against a
// pattern operand list of the same operator, treating the subject operands
// as an unordered multiset: every pattern item picks an unused subset of
// the remaining subjects rather than a contiguous run. It enumerates
// candidate subsets exhaustively; for an operator with many wildcard-typed
// operands this is combinatorial, a deliberate simplicity-over-performance
// choice appropriate to a reference matcher.
//
// Before paying for that search, it runs a constant-multiplicity check:
// a pattern asking for k copies of some literal
// constant can never match a subject multiset holding fewer than k, so
// that case is rejected up front.
func matchCommutative(subjects, patterns []expr.Expression, subst expr.Substitution, cont func(expr.Substitution) bool) bool {
	if !constantsSatisfiable(subjects, patterns) {
		return true
	}
	used := make([]bool, len(subjects))
	var step func(pi int, s expr.Substitution) bool
	step = func(pi int, s expr.Substitution) bool {
		if pi == len(patterns) {
			for _, u := range used {
				if !u {
					return true
				}
			}
			return cont(s)
		}
		switch p := patterns[pi].(type) {
		case expr.Variable:
			return matchCommutativeVariable(subjects, used, p, pi, s, step)
		case expr.Wildcard:
			return matchCommutativeBareWildcard(subjects, used, p, pi, s, step)
		default:
			for i, subj := range subjects {
				if used[i] {
					continue
				}
				used[i] = true
				stop := !matchOne(subj, patterns[pi], s, func(next expr.Substitution) bool {
					return step(pi+1, next)
				})
				used[i] = false
				if stop {
					return false
				}
			}
			return true
		}
	}
	return step(0, subst)
}

// constantsSatisfiable reports whether subjects could possibly hold enough
// literal copies of every constant operand patterns requires. It is a
// necessary, not sufficient, precondition — passing it does not guarantee a
// match, but failing it proves one is impossible without enumerating a
// single assignment.
func constantsSatisfiable(subjects, patterns []expr.Expression) bool {
	patternConstants := lo.Filter(patterns, func(e expr.Expression, _ int) bool { return e.IsConstant() })
	if len(patternConstants) == 0 {
		return true
	}
	needed := lo.CountValuesBy(patternConstants, func(e expr.Expression) string { return e.String() })
	subjectConstants := lo.Filter(subjects, func(e expr.Expression, _ int) bool { return e.IsConstant() })
	have := lo.CountValuesBy(subjectConstants, func(e expr.Expression) string { return e.String() })
	for key, n := range needed {
		if have[key] < n {
			return false
		}
	}
	return true
}

func unusedIndices(used []bool) []int {
	var out []int
	for i, u := range used {
		if !u {
			out = append(out, i)
		}
	}
	return out
}

// combinations enumerates every size-k subset of indices, each returned in
// ascending order.
func combinations(indices []int, k int) [][]int {
	var out [][]int
	if k < 0 || k > len(indices) {
		return out
	}
	var rec func(start int, cur []int)
	rec = func(start int, cur []int) {
		if len(cur) == k {
			out = append(out, append([]int(nil), cur...))
			return
		}
		for i := start; i < len(indices); i++ {
			rec(i+1, append(cur, indices[i]))
		}
	}
	rec(0, nil)
	return out
}

func matchCommutativeVariable(subjects []expr.Expression, used []bool, v expr.Variable, pi int, s expr.Substitution, step func(int, expr.Substitution) bool) bool {
	switch inner := v.Inner.(type) {
	case expr.SymbolWildcard:
		for i, subj := range subjects {
			if used[i] {
				continue
			}
			sym, ok := subj.(expr.Symbol)
			if !ok || !inner.Accepts(sym) {
				continue
			}
			used[i] = true
			bound, added := s.TryAdd(v.Name, expr.Single(subj))
			stop := false
			if added {
				stop = !checkAndContinue(v.Constraint(), bound, func(next expr.Substitution) bool {
					return step(pi+1, next)
				})
			}
			used[i] = false
			if stop {
				return false
			}
		}
		return true

	case expr.Wildcard:
		unused := unusedIndices(used)
		sizes := wildcardSizes(inner, len(unused))
		for _, k := range sizes {
			for _, combo := range combinations(unused, k) {
				items := make([]expr.Expression, k)
				for idx, ci := range combo {
					items[idx] = subjects[ci]
					used[ci] = true
				}
				val := expr.MultisetValue(items)
				if k == 1 {
					val = expr.Single(items[0])
				}
				bound, added := s.TryAdd(v.Name, val)
				stop := false
				if added {
					stop = !checkAndContinue(v.Constraint(), bound, func(next expr.Substitution) bool {
						return step(pi+1, next)
					})
				}
				for _, ci := range combo {
					used[ci] = false
				}
				if stop {
					return false
				}
			}
		}
		return true
	}
	return true
}

func matchCommutativeBareWildcard(subjects []expr.Expression, used []bool, w expr.Wildcard, pi int, s expr.Substitution, step func(int, expr.Substitution) bool) bool {
	unused := unusedIndices(used)
	for _, k := range wildcardSizes(w, len(unused)) {
		for _, combo := range combinations(unused, k) {
			for _, ci := range combo {
				used[ci] = true
			}
			stop := !step(pi+1, s)
			for _, ci := range combo {
				used[ci] = false
			}
			if stop {
				return false
			}
		}
	}
	return true
}

func wildcardSizes(w expr.Wildcard, maxAvailable int) []int {
	if w.FixedSize {
		if w.MinCount > maxAvailable {
			return nil
		}
		return []int{w.MinCount}
	}
	var sizes []int
	for k := w.MinCount; k <= maxAvailable; k++ {
		sizes = append(sizes, k)
	}
	return sizes
}
