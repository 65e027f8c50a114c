package expr

// Symbol is an atomic constant, optionally tagged with a user-declared
// class used by SymbolWildcard to match a subtype of symbols rather than
// one exact name.
type Symbol struct {
	Name  string
	Class string
}

// NewSymbol builds a plain Symbol with no declared class.
func NewSymbol(name string) (Symbol, error) {
	return NewClassedSymbol(name, "")
}

// NewClassedSymbol builds a Symbol tagged with class, so that a
// SymbolWildcard declared for that class will accept it. An empty class is
// the default "no declared subtype".
func NewClassedSymbol(name, class string) (Symbol, error) {
	if name == "" {
		return Symbol{}, newValueError("symbol name must not be empty")
	}
	return Symbol{Name: name, Class: class}, nil
}

func (s Symbol) Kind() Kind               { return KindSymbol }
func (s Symbol) Head() Head               { return symbolHead{name: s.Name, class: s.Class} }
func (s Symbol) Constraint() Constraint    { return nil }
func (s Symbol) IsConstant() bool         { return true }
func (s Symbol) IsSyntactic() bool        { return true }
func (s Symbol) IsLinear() bool           { return true }
func (s Symbol) children() []Expression   { return nil }

func (s Symbol) Symbols() map[string]int {
	out := map[string]int{}
	countSymbols(out, s)
	return out
}

func (s Symbol) Variables() map[string]int { return map[string]int{} }

func (s Symbol) Equal(other Expression) bool {
	o, ok := other.(Symbol)
	return ok && o.Name == s.Name && o.Class == s.Class
}

func (s Symbol) String() string { return s.Name }

func (s Symbol) WithoutConstraints() Expression { return s }

func (s Symbol) WithRenamedVars(map[string]string) Expression { return s }
