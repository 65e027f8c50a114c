package expr

// SymbolWildcard matches a single Symbol belonging to a user-declared
// class. An empty Class matches any Symbol, regardless of that Symbol's
// own declared class.
type SymbolWildcard struct {
	Class      string
	constraint Constraint
}

// NewSymbolWildcard builds a SymbolWildcard for the given class. class may
// be empty ("matches any symbol"); anything else must be a valid
// identifier-like name, mirroring the "class must be a type" check of the
// system this library generalizes — there, a wildcard had to name an
// actual Python class, so a nonsense token is rejected here too.
func NewSymbolWildcard(class string, c ...Constraint) (SymbolWildcard, error) {
	if class != "" && !identOK(class) {
		return SymbolWildcard{}, newTypeError("symbol wildcard class %q is not a valid class name", class)
	}
	return SymbolWildcard{Class: class, constraint: firstConstraint(c)}, nil
}

func (w SymbolWildcard) Kind() Kind             { return KindSymbolWildcard }
func (w SymbolWildcard) Head() Head             { return nil }
func (w SymbolWildcard) Constraint() Constraint { return w.constraint }
func (w SymbolWildcard) IsConstant() bool       { return false }
func (w SymbolWildcard) IsSyntactic() bool      { return true }
func (w SymbolWildcard) IsLinear() bool         { return true }
func (w SymbolWildcard) children() []Expression { return nil }

func (w SymbolWildcard) Symbols() map[string]int   { return map[string]int{} }
func (w SymbolWildcard) Variables() map[string]int { return map[string]int{} }

func (w SymbolWildcard) Equal(other Expression) bool {
	o, ok := other.(SymbolWildcard)
	return ok && o.Class == w.Class
}

// Accepts reports whether s belongs to this wildcard's declared class.
func (w SymbolWildcard) Accepts(s Symbol) bool {
	return w.Class == "" || s.Class == w.Class
}

func (w SymbolWildcard) String() string {
	if w.Class == "" {
		return "_s"
	}
	return "_s_" + w.Class
}

func (w SymbolWildcard) WithoutConstraints() Expression {
	w.constraint = nil
	return w
}

func (w SymbolWildcard) WithRenamedVars(map[string]string) Expression { return w }
