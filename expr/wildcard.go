package expr

import "strconv"

// Wildcard matches a sequence of subject terms whose length is at least
// MinCount, and exactly MinCount when FixedSize is set.
type Wildcard struct {
	MinCount   int
	FixedSize  bool
	constraint Constraint
}

// NewWildcard builds a raw (unnamed) wildcard. minCount must be
// non-negative, and a fixed-size wildcard must require at least one
// element — a fixed wildcard of length zero can never match anything, so
// it is rejected rather than silently accepted as dead pattern.
func NewWildcard(minCount int, fixedSize bool, c ...Constraint) (Wildcard, error) {
	if minCount < 0 {
		return Wildcard{}, newValueError("wildcard min_count must be non-negative, got %d", minCount)
	}
	if fixedSize && minCount == 0 {
		return Wildcard{}, newValueError("a fixed-size wildcard must have min_count >= 1")
	}
	return Wildcard{MinCount: minCount, FixedSize: fixedSize, constraint: firstConstraint(c)}, nil
}

// Dot matches exactly one subject term.
func Dot(c ...Constraint) Wildcard {
	w, _ := NewWildcard(1, true, c...)
	return w
}

// Plus matches one or more subject terms.
func Plus(c ...Constraint) Wildcard {
	w, _ := NewWildcard(1, false, c...)
	return w
}

// Star matches zero or more subject terms.
func Star(c ...Constraint) Wildcard {
	w, _ := NewWildcard(0, false, c...)
	return w
}

func firstConstraint(c []Constraint) Constraint {
	if len(c) == 0 {
		return nil
	}
	return c[0]
}

func (w Wildcard) Kind() Kind             { return KindWildcard }
func (w Wildcard) Head() Head             { return nil }
func (w Wildcard) Constraint() Constraint { return w.constraint }
func (w Wildcard) IsConstant() bool       { return false }
func (w Wildcard) IsSyntactic() bool      { return w.FixedSize }
func (w Wildcard) IsLinear() bool         { return true }
func (w Wildcard) children() []Expression { return nil }

func (w Wildcard) Symbols() map[string]int   { return map[string]int{} }
func (w Wildcard) Variables() map[string]int { return map[string]int{} }

func (w Wildcard) Equal(other Expression) bool {
	o, ok := other.(Wildcard)
	return ok && o.MinCount == w.MinCount && o.FixedSize == w.FixedSize
}

func (w Wildcard) String() string {
	switch {
	case w.MinCount == 1 && w.FixedSize:
		return "_"
	case w.MinCount == 1 && !w.FixedSize:
		return "__"
	case w.MinCount == 0 && !w.FixedSize:
		return "___"
	default:
		if w.FixedSize {
			return "_{fixed," + strconv.Itoa(w.MinCount) + "}"
		}
		return "_{min," + strconv.Itoa(w.MinCount) + "}"
	}
}

func (w Wildcard) WithoutConstraints() Expression {
	w.constraint = nil
	return w
}

func (w Wildcard) WithRenamedVars(map[string]string) Expression { return w }

// WildcardShape reports the (min count, fixed-size) shape of a Wildcard, a
// SymbolWildcard (always a fixed width of 1), or a Variable wrapping
// either; ok is false for any other expression kind.
func WildcardShape(e Expression) (minCount int, fixedSize bool, ok bool) {
	switch x := e.(type) {
	case Wildcard:
		return x.MinCount, x.FixedSize, true
	case SymbolWildcard:
		return 1, true, true
	case Variable:
		return WildcardShape(x.Inner)
	default:
		return 0, false, false
	}
}
