// Package constraint provides ways to build expr.Constraint values: a
// named wrapper around a plain predicate function, and a combinator that
// folds several constraints into their conjunction.
package constraint

import "termmatch/expr"

// Func adapts a predicate and its declared variable names into an
// expr.Constraint. The variables list is what a matcher uses to schedule
// the check for no earlier than the point at which every one of them is
// bound; a predicate that reads a variable missing from this list risks
// being evaluated against a substitution that doesn't bind it yet.
type Func struct {
	name      string
	vars      []string
	predicate func(expr.Substitution) bool
}

// New builds a named Constraint backed by predicate, guarding every
// variable in vars.
func New(name string, vars []string, predicate func(expr.Substitution) bool) *Func {
	return &Func{name: name, vars: append([]string(nil), vars...), predicate: predicate}
}

// Check evaluates the wrapped predicate. A panic inside predicate is not
// recovered here; it propagates to whoever called Check.
func (f *Func) Check(s expr.Substitution) bool { return f.predicate(s) }

// Variables reports the variable names this constraint depends on.
func (f *Func) Variables() []string { return f.vars }

// Name is the constraint's declared label, surfaced by diagnostics when
// reporting which guard rejected a candidate match.
func (f *Func) Name() string { return f.name }

func (f *Func) String() string { return f.name }

// Combine folds cs into their conjunction; it is a thin public alias over
// expr.CombineConstraints, which must live inside the expr package itself
// so that expression construction (collapsing a one-identity operation
// absorbs the outer constraint into its surviving operand) can invoke the
// same merge logic without expr importing this package back.
func Combine(cs ...expr.Constraint) expr.Constraint {
	return expr.CombineConstraints(cs...)
}
