package discrimination

import (
	"termmatch/expr"
	"termmatch/match"
)

type instKind uint8

const (
	// instSymbol matches one exact Symbol node.
	instSymbol instKind = iota
	// instOperation matches an Operation node by operator identity and
	// operand count, then descends into its operands.
	instOperation
	// instAnySingle consumes one whole subject subtree without binding it.
	instAnySingle
	// instAnyFixed consumes width consecutive sibling subtrees without
	// binding them.
	instAnyFixed
	// instSymClass consumes one Symbol node of the given class.
	instSymClass
	// instBindSingle consumes one subtree and binds it under name.
	instBindSingle
	// instBindFixed consumes width sibling subtrees and binds them as an
	// ordered sequence under name.
	instBindFixed
	// instBindSymbol consumes one Symbol node of the given class and binds
	// it under name.
	instBindSymbol
	// instResidual consumes one subtree by running the one-to-one matcher
	// against the stored non-syntactic subpattern.
	instResidual
)

type instruction struct {
	kind  instKind
	name  string
	class string
	head  *expr.OperationHead
	argc  int
	width int
	sub   expr.Expression
}

// sameEdge reports whether two instructions denote the same trie edge and
// may therefore share a state. Residual instructions never share: their
// subpatterns may differ in constraints, which Expression.Equal does not
// compare, so each one keeps a private edge.
func sameEdge(a, b instruction) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case instSymbol:
		return a.name == b.name && a.class == b.class
	case instOperation:
		return a.head == b.head && a.argc == b.argc
	case instAnySingle:
		return true
	case instAnyFixed:
		return a.width == b.width
	case instSymClass:
		return a.class == b.class
	case instBindSingle:
		return a.name == b.name
	case instBindFixed:
		return a.name == b.name && a.width == b.width
	case instBindSymbol:
		return a.name == b.name && a.class == b.class
	default:
		return false
	}
}

// operandWidth is the exact number of subject operands a syntactic pattern
// operand consumes: the declared width for a fixed-size wildcard, one for
// everything else.
func operandWidth(e expr.Expression) int {
	if minCount, fixedSize, ok := expr.WildcardShape(e); ok && fixedSize {
		return minCount
	}
	return 1
}

// compilePattern renders pattern as the instruction sequence its trie path
// is built from. Residualization happens at the deepest subtree the trie
// cannot express structurally — an associative or commutative operation, a
// non-fixed-size wildcard, or an operation holding one as a direct operand
// (its subject-side operand count is not static) — so every structural
// prefix above an embedded subproblem is still shared across patterns.
func compilePattern(pattern expr.Expression) []instruction {
	return compileInto(pattern, nil)
}

func compileInto(e expr.Expression, out []instruction) []instruction {
	switch x := e.(type) {
	case expr.Symbol:
		return append(out, instruction{kind: instSymbol, name: x.Name, class: x.Class})
	case expr.SymbolWildcard:
		return append(out, instruction{kind: instSymClass, class: x.Class})
	case expr.Wildcard:
		if x.FixedSize {
			if x.MinCount == 1 {
				return append(out, instruction{kind: instAnySingle})
			}
			return append(out, instruction{kind: instAnyFixed, width: x.MinCount})
		}
	case expr.Variable:
		switch inner := x.Inner.(type) {
		case expr.SymbolWildcard:
			return append(out, instruction{kind: instBindSymbol, name: x.Name, class: inner.Class})
		case expr.Wildcard:
			if inner.FixedSize {
				if inner.MinCount == 1 {
					return append(out, instruction{kind: instBindSingle, name: x.Name})
				}
				return append(out, instruction{kind: instBindFixed, name: x.Name, width: inner.MinCount})
			}
		}
	case expr.Operation:
		head, _ := x.Head().(*expr.OperationHead)
		if head != nil && !head.Associative() && !head.Commutative() && staticOperandWidths(x) {
			argc := 0
			for _, op := range x.Operands {
				argc += operandWidth(op)
			}
			out = append(out, instruction{kind: instOperation, head: head, argc: argc})
			for _, op := range x.Operands {
				out = compileInto(op, out)
			}
			return out
		}
	}
	return append(out, instruction{kind: instResidual, sub: e})
}

// staticOperandWidths reports whether every direct operand of o consumes a
// statically known number of subject operands, the precondition for
// compiling o to an exact operand-count edge.
func staticOperandWidths(o expr.Operation) bool {
	for _, op := range o.Operands {
		if _, fixedSize, ok := expr.WildcardShape(op); ok && !fixedSize {
			return false
		}
	}
	return true
}

type acceptEntry struct {
	seq         int
	constraints []expr.Constraint
}

type trieEdge struct {
	inst instruction
	next *trieNode
}

type trieNode struct {
	edges   []trieEdge
	accepts []acceptEntry
}

func (t *trieNode) insert(insts []instruction, acc acceptEntry) {
	node := t
	for _, inst := range insts {
		var next *trieNode
		if inst.kind != instResidual {
			for _, e := range node.edges {
				if sameEdge(e.inst, inst) {
					next = e.next
					break
				}
			}
		}
		if next == nil {
			next = &trieNode{}
			node.edges = append(node.edges, trieEdge{inst: inst, next: next})
		}
		node = next
	}
	node.accepts = append(node.accepts, acc)
}

func (t *trieNode) countStates() int {
	n := 1
	for _, e := range t.edges {
		n += e.next.countStates()
	}
	return n
}

// flatterm is a subject rendered as its preorder node sequence plus, per
// position, the index just past that node's subtree — the O(1) "skip this
// subtree" jump the wildcard and residual instructions rely on.
type flatterm struct {
	nodes []expr.Expression
	skip  []int
}

func flatten(subject expr.Expression) *flatterm {
	ft := &flatterm{}
	var walk func(e expr.Expression)
	walk = func(e expr.Expression) {
		idx := len(ft.nodes)
		ft.nodes = append(ft.nodes, e)
		ft.skip = append(ft.skip, 0)
		if op, ok := e.(expr.Operation); ok {
			for _, child := range op.Operands {
				walk(child)
			}
		}
		ft.skip[idx] = len(ft.nodes)
	}
	walk(subject)
	return ft
}

// skipN resolves the position just past width consecutive sibling subtrees
// starting at pos; ok is false when fewer subtrees remain.
func (ft *flatterm) skipN(pos, width int) (int, bool) {
	for i := 0; i < width; i++ {
		if pos >= len(ft.nodes) {
			return 0, false
		}
		pos = ft.skip[pos]
	}
	return pos, true
}

// run walks the trie against ft starting at pos under s, calling emit for
// every accept entry reached with the whole subject consumed. It returns
// false as soon as emit does, propagating early cancellation outward.
func (t *trieNode) run(ft *flatterm, pos int, s expr.Substitution, emit func(acceptEntry, expr.Substitution) bool) bool {
	if pos == len(ft.nodes) {
		for _, acc := range t.accepts {
			ok := true
			for _, c := range acc.constraints {
				if constraintDecidable(c, s) && !c.Check(s) {
					ok = false
					break
				}
			}
			if ok && !emit(acc, s) {
				return false
			}
		}
		return true
	}
	cur := ft.nodes[pos]
	for _, e := range t.edges {
		if !e.follow(ft, pos, cur, s, emit) {
			return false
		}
	}
	return true
}

func (e trieEdge) follow(ft *flatterm, pos int, cur expr.Expression, s expr.Substitution, emit func(acceptEntry, expr.Substitution) bool) bool {
	switch e.inst.kind {
	case instSymbol:
		if sym, ok := cur.(expr.Symbol); ok && sym.Name == e.inst.name && sym.Class == e.inst.class {
			return e.next.run(ft, pos+1, s, emit)
		}

	case instOperation:
		if op, ok := cur.(expr.Operation); ok && e.inst.head.Equal(op.Head()) && len(op.Operands) == e.inst.argc {
			return e.next.run(ft, pos+1, s, emit)
		}

	case instAnySingle:
		return e.next.run(ft, ft.skip[pos], s, emit)

	case instAnyFixed:
		if end, ok := ft.skipN(pos, e.inst.width); ok {
			return e.next.run(ft, end, s, emit)
		}

	case instSymClass:
		if sym, ok := cur.(expr.Symbol); ok && classAccepts(e.inst.class, sym) {
			return e.next.run(ft, pos+1, s, emit)
		}

	case instBindSingle:
		if bound, ok := s.TryAdd(e.inst.name, expr.Single(cur)); ok {
			return e.next.run(ft, ft.skip[pos], bound, emit)
		}

	case instBindFixed:
		end, ok := ft.skipN(pos, e.inst.width)
		if !ok {
			return true
		}
		items := make([]expr.Expression, 0, e.inst.width)
		for p := pos; p < end; p = ft.skip[p] {
			items = append(items, ft.nodes[p])
		}
		if bound, ok := s.TryAdd(e.inst.name, expr.Sequence(items)); ok {
			return e.next.run(ft, end, bound, emit)
		}

	case instBindSymbol:
		sym, ok := cur.(expr.Symbol)
		if !ok || !classAccepts(e.inst.class, sym) {
			return true
		}
		if bound, ok := s.TryAdd(e.inst.name, expr.Single(sym)); ok {
			return e.next.run(ft, pos+1, bound, emit)
		}

	case instResidual:
		end := ft.skip[pos]
		for m := range match.Match(cur, e.inst.sub) {
			merged, ok := s.Merge(m)
			if !ok {
				continue
			}
			if !e.next.run(ft, end, merged, emit) {
				return false
			}
		}
	}
	return true
}

func classAccepts(class string, s expr.Symbol) bool {
	return class == "" || s.Class == class
}
