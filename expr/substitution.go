package expr

// Value is what a Substitution binds a variable name to: either a single
// Expression, an ordered sequence of them (a non-fixed wildcard bound in a
// non-commutative context), or an unordered multiset of them (the same,
// bound inside a commutative operation). A length-one sequence binding
// produced by a sequence wildcard is represented as a single-item Value;
// IsSingle distinguishes that case from a true multi-element binding.
type Value struct {
	Items    []Expression
	Multiset bool
}

// Single wraps one Expression as a binding value.
func Single(e Expression) Value { return Value{Items: []Expression{e}} }

// Sequence wraps an ordered run of Expressions as a binding value.
func Sequence(es []Expression) Value { return Value{Items: es} }

// MultisetValue wraps an unordered run of Expressions as a binding value;
// two MultisetValue bindings are consistent regardless of element order.
func MultisetValue(es []Expression) Value { return Value{Items: es, Multiset: true} }

// IsSingle reports whether v holds exactly one Expression and is not a
// multiset. A one-element Sequence is indistinguishable from Single and
// also reports true.
func (v Value) IsSingle() bool { return len(v.Items) == 1 && !v.Multiset }

// AsSingle returns the bound Expression when IsSingle, else ok is false.
func (v Value) AsSingle() (Expression, bool) {
	if v.IsSingle() {
		return v.Items[0], true
	}
	return nil, false
}

// Equal reports whether v and other are the same binding. Multiset-kind
// values compare order- and position-independently; everything else
// compares as an ordered sequence (a single value is just a length-one
// sequence for this purpose).
func (v Value) Equal(other Value) bool {
	if v.Multiset || other.Multiset {
		return multisetEqual(v.Items, other.Items)
	}
	if len(v.Items) != len(other.Items) {
		return false
	}
	for i := range v.Items {
		if !v.Items[i].Equal(other.Items[i]) {
			return false
		}
	}
	return true
}

func multisetEqual(a, b []Expression) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, ae := range a {
		found := false
		for i, be := range b {
			if used[i] {
				continue
			}
			if ae.Equal(be) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Substitution maps variable names to bound values. It is treated as an
// immutable value: every mutating operation returns a new Substitution,
// leaving the receiver and any sibling branch built from it untouched.
type Substitution map[string]Value

// NewSubstitution returns an empty substitution.
func NewSubstitution() Substitution { return Substitution{} }

// Copy returns a shallow copy of s.
func (s Substitution) Copy() Substitution {
	out := make(Substitution, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// TryAdd returns a new substitution with name bound to value, consistent
// with any existing binding for name. ok is false, and the original s is
// returned unchanged, when name is already bound to a different value.
func (s Substitution) TryAdd(name string, value Value) (Substitution, bool) {
	if existing, bound := s[name]; bound {
		if !existing.Equal(value) {
			return s, false
		}
		return s, true
	}
	out := s.Copy()
	out[name] = value
	return out, true
}

// Merge unions s with other, succeeding iff every name the two substitutions
// share binds an equal value.
func (s Substitution) Merge(other Substitution) (Substitution, bool) {
	out := s.Copy()
	for name, value := range other {
		var ok bool
		out, ok = out.TryAdd(name, value)
		if !ok {
			return s, false
		}
	}
	return out, true
}

// Domain returns the set of bound variable names.
func (s Substitution) Domain() map[string]struct{} {
	out := make(map[string]struct{}, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}
