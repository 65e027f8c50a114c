package expr

import (
	"sort"
	"strings"
)

// Operation applies an operator to an ordered list of operands. Building one
// normalizes it against the operator's declared properties: associative
// flattening, one-identity collapse, and commutative sorting all happen
// inside NewOperationExpr, so an Operation value is always already in
// canonical form.
type Operation struct {
	head       *OperationHead
	Operands   []Expression
	constraint Constraint
}

// NewOperationExpr builds an Operation for head over operands, applying
// arity validation and then, in order, associative flattening, one-identity
// collapse and commutative sorting. A one-identity collapse returns the
// surviving operand directly (not wrapped in an Operation), absorbing any
// constraint passed here into that operand.
func NewOperationExpr(head *OperationHead, operands []Expression, cs ...Constraint) (Expression, error) {
	if head == nil {
		return nil, newValueError("operation head must not be nil")
	}
	if !head.arity.accepts(len(operands)) {
		return nil, newValueError("operator %q accepts %s arity, got %d operand(s)", head.name, head.arity, len(operands))
	}

	flat := operands
	outer := firstConstraint(cs)
	if head.associative {
		var absorbed Constraint
		flat, absorbed = flattenAssociative(head, operands)
		outer = CombineConstraints(outer, absorbed)
	}

	if head.oneIdentity && len(flat) == 1 && collapsibleSingleton(flat[0]) {
		return withConstraint(flat[0], outer), nil
	}

	if head.commutative {
		sorted := make([]Expression, len(flat))
		copy(sorted, flat)
		sort.SliceStable(sorted, func(i, j int) bool { return Less(sorted[i], sorted[j]) })
		flat = sorted
	}

	if err := checkLinearConflict(flat); err != nil {
		return nil, err
	}

	return Operation{head: head, Operands: flat, constraint: outer}, nil
}

// collapsibleSingleton reports whether a lone operand may replace its
// one-identity operation. A sequence-shaped wildcard (or a variable
// wrapping one) stays wrapped: its width is not fixed at one, so the
// application does not denote a single operand.
func collapsibleSingleton(e Expression) bool {
	minCount, fixedSize, isWildcard := WildcardShape(e)
	if !isWildcard {
		return true
	}
	return fixedSize && minCount == 1
}

// flattenAssociative splices the operands of any direct child built from
// the same operator identity into operands. A spliced child's constraint
// cannot stay attached to a node that no longer exists, so it is handed
// back for the parent to absorb; children are already normalized, so one
// pass flattens arbitrarily deep chains of the same operator.
func flattenAssociative(head *OperationHead, operands []Expression) ([]Expression, Constraint) {
	out := make([]Expression, 0, len(operands))
	var absorbed Constraint
	for _, op := range operands {
		if inner, ok := op.(Operation); ok && inner.head == head {
			out = append(out, inner.Operands...)
			absorbed = CombineConstraints(absorbed, inner.constraint)
		} else {
			out = append(out, op)
		}
	}
	return out, absorbed
}

// checkLinearConflict rejects an operation whose direct operands bind the
// same variable name to two differently-shaped wildcards — "x" wrapping a
// Dot in one operand and a Plus in another — refusing it at construction
// time.
func checkLinearConflict(operands []Expression) error {
	seen := map[string]Variable{}
	for _, op := range operands {
		v, ok := op.(Variable)
		if !ok {
			continue
		}
		if prev, exists := seen[v.Name]; exists {
			if !sameWildcardShape(prev.Inner, v.Inner) {
				return newValueError("variable %q is used with inconsistent wildcard shapes in the same operation", v.Name)
			}
		} else {
			seen[v.Name] = v
		}
	}
	return nil
}

func sameWildcardShape(a, b Expression) bool {
	switch x := a.(type) {
	case Wildcard:
		y, ok := b.(Wildcard)
		return ok && x.MinCount == y.MinCount && x.FixedSize == y.FixedSize
	case SymbolWildcard:
		y, ok := b.(SymbolWildcard)
		return ok && x.Class == y.Class
	default:
		return false
	}
}

func (o Operation) Kind() Kind             { return KindOperation }
func (o Operation) Head() Head             { return o.head }
func (o Operation) Constraint() Constraint { return o.constraint }

func (o Operation) IsConstant() bool {
	for _, op := range o.Operands {
		if !op.IsConstant() {
			return false
		}
	}
	return true
}

// IsSyntactic reports whether o can be matched by plain structural
// recursion. Any associative or commutative operator needs the sequence or
// commutative matcher's bookkeeping regardless of how "flat" a particular
// instance looks, so it is never syntactic, even with zero wildcard
// operands.
func (o Operation) IsSyntactic() bool {
	if o.head.associative || o.head.commutative {
		return false
	}
	for _, op := range o.Operands {
		if !op.IsSyntactic() {
			return false
		}
	}
	return true
}

func (o Operation) IsLinear() bool {
	counts := map[string]int{}
	countVariables(counts, o)
	for _, n := range counts {
		if n > 1 {
			return false
		}
	}
	return true
}

func (o Operation) children() []Expression { return o.Operands }

func (o Operation) Symbols() map[string]int {
	out := map[string]int{}
	countSymbols(out, o)
	return out
}

func (o Operation) Variables() map[string]int {
	out := map[string]int{}
	countVariables(out, o)
	return out
}

func (o Operation) Equal(other Expression) bool {
	oo, ok := other.(Operation)
	if !ok || oo.head != o.head || len(oo.Operands) != len(o.Operands) {
		return false
	}
	for i := range o.Operands {
		if !o.Operands[i].Equal(oo.Operands[i]) {
			return false
		}
	}
	return true
}

func (o Operation) String() string {
	parts := make([]string, len(o.Operands))
	for i, op := range o.Operands {
		parts[i] = op.String()
	}
	if o.head.infix && len(parts) == 2 {
		return parts[0] + " " + o.head.name + " " + parts[1]
	}
	return o.head.name + "(" + strings.Join(parts, ", ") + ")"
}

// WithoutConstraints strips o's own constraint and recurses into every
// operand. Normalization (flattening, one-identity collapse, sorting) does
// not need to re-run: stripping constraints can only ever make two
// previously-distinct operands compare equal under commutative sort order,
// never change their relative order, so the existing operand order stays
// canonical.
func (o Operation) WithoutConstraints() Expression {
	stripped := make([]Expression, len(o.Operands))
	for i, op := range o.Operands {
		stripped[i] = op.WithoutConstraints()
	}
	o.Operands = stripped
	o.constraint = nil
	return o
}

// WithRenamedVars recurses into every operand, renaming any Variable it
// finds. A rename can change a Variable's position in the canonical order
// (which sorts variables by name), so a commutative operator's operands are
// re-sorted afterward to stay in normal form.
func (o Operation) WithRenamedVars(renaming map[string]string) Expression {
	renamed := make([]Expression, len(o.Operands))
	for i, op := range o.Operands {
		renamed[i] = op.WithRenamedVars(renaming)
	}
	if o.head.commutative {
		sort.SliceStable(renamed, func(i, j int) bool { return Less(renamed[i], renamed[j]) })
	}
	o.Operands = renamed
	return o
}
