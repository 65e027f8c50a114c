package expr

// Variable binds the sequence matched by its inner wildcard under Name.
// Inner must be a Wildcard or a SymbolWildcard — wrapping a Symbol or
// another Variable is a construction error.
type Variable struct {
	Name       string
	Inner      Expression
	constraint Constraint
}

// NewVariable wraps inner (a Wildcard or SymbolWildcard) under name.
func NewVariable(name string, inner Expression, c ...Constraint) (Variable, error) {
	if name == "" {
		return Variable{}, newValueError("variable name must not be empty")
	}
	switch inner.(type) {
	case Wildcard, SymbolWildcard:
	default:
		return Variable{}, newValueError("variable %q must wrap a wildcard, got %s", name, inner.Kind())
	}
	return Variable{Name: name, Inner: inner, constraint: firstConstraint(c)}, nil
}

// VariableDot wraps a dot wildcard (matches exactly one term) under name.
func VariableDot(name string, c ...Constraint) (Variable, error) {
	return NewVariable(name, Dot(), c...)
}

// VariablePlus wraps a plus wildcard (one or more terms) under name.
func VariablePlus(name string, c ...Constraint) (Variable, error) {
	return NewVariable(name, Plus(), c...)
}

// VariableStar wraps a star wildcard (zero or more terms) under name.
func VariableStar(name string, c ...Constraint) (Variable, error) {
	return NewVariable(name, Star(), c...)
}

// VariableFixed wraps a fixed-length wildcard of exactly count terms under
// name.
func VariableFixed(name string, count int, c ...Constraint) (Variable, error) {
	w, err := NewWildcard(count, true, c...)
	if err != nil {
		return Variable{}, err
	}
	return NewVariable(name, w)
}

// VariableSymbol wraps a SymbolWildcard under name.
func VariableSymbol(name, class string, c ...Constraint) (Variable, error) {
	w, err := NewSymbolWildcard(class, c...)
	if err != nil {
		return Variable{}, err
	}
	return NewVariable(name, w)
}

func (v Variable) Kind() Kind             { return KindVariable }
func (v Variable) Head() Head             { return nil }
func (v Variable) Constraint() Constraint { return v.constraint }
func (v Variable) IsConstant() bool       { return false }
func (v Variable) IsSyntactic() bool      { return v.Inner.IsSyntactic() }
func (v Variable) IsLinear() bool         { return true }
func (v Variable) children() []Expression { return []Expression{v.Inner} }

func (v Variable) Symbols() map[string]int { return map[string]int{} }

func (v Variable) Variables() map[string]int {
	out := map[string]int{}
	countVariables(out, v)
	return out
}

func (v Variable) Equal(other Expression) bool {
	o, ok := other.(Variable)
	return ok && o.Name == v.Name && o.Inner.Equal(v.Inner)
}

func (v Variable) String() string { return v.Name + v.Inner.String() }

func (v Variable) WithoutConstraints() Expression {
	v.constraint = nil
	v.Inner = v.Inner.WithoutConstraints()
	return v
}

func (v Variable) WithRenamedVars(renaming map[string]string) Expression {
	if newName, ok := renaming[v.Name]; ok {
		v.Name = newName
	}
	v.Inner = v.Inner.WithRenamedVars(renaming)
	return v
}

// innerWildcard extracts the shared shape (min count, fixed-ness) of a
// Variable's inner wildcard, normalizing the SymbolWildcard case (always
// length exactly one) to the same (min, fixed) view the sequence and
// commutative matchers reason about.
func innerWildcard(e Expression) (minCount int, fixedSize bool) {
	switch x := e.(type) {
	case Wildcard:
		return x.MinCount, x.FixedSize
	case SymbolWildcard:
		return 1, true
	case Variable:
		return innerWildcard(x.Inner)
	}
	return 0, false
}
