package expr

// Constraint is an opaque boolean predicate over a Substitution. It is the
// contract the expression algebra depends on (Operation, Wildcard,
// SymbolWildcard and Variable may each carry one). The combinator that
// builds composite constraints, CombineConstraints, lives in this package
// too, because normalization merges constraints; the constraint package
// re-exports it as Combine.
//
// Variables reports the set of variable names the predicate inspects, so a
// matcher can schedule the check for as soon as — and never before — all
// of those names are bound.
type Constraint interface {
	Check(s Substitution) bool
	Variables() []string
}
