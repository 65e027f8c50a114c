// Package discrimination implements many-to-one matching: a Net compiles a
// batch of registered patterns into a trie over each pattern's preorder
// trace, so that matching a subject walks prefixes common to many patterns
// once instead of re-running the one-to-one matcher once per pattern.
//
// A pattern's trace is its preorder traversal rendered as instructions:
// exact symbol and operator labels for the syntactic parts, subtree-
// consuming slots for fixed-size wildcards and the variables wrapping
// them. The first node at which a pattern stops being syntactic — an
// associative or commutative operation, or an operation with a sequence
// wildcard among its direct operands — becomes a residual instruction
// holding that subtree; matching a residual delegates
// to the one-to-one matcher and the walk resumes past the consumed
// subject subtree. Residual edges are never shared between patterns: the
// subproblems they encode have no common prefix structure left to exploit.
package discrimination

import (
	"context"
	"iter"
	"sync"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"termmatch/expr"
	"termmatch/internal/parallel"
)

// ErrUnsupported is the cause wrapped into the error Add returns for a
// pattern this Net cannot register.
var ErrUnsupported = errors.New("pattern unsupported by discrimination net")

type registration struct {
	id      uuid.UUID
	index   int
	pattern expr.Expression
}

// Net is a many-to-one matcher. The zero value is not usable; construct one
// with NewNet. A Net is safe for concurrent use: registrations are guarded
// by a lock, and the compiled trie is rebuilt under that lock after a
// mutation, then walked read-only by any number of Match calls.
type Net struct {
	mu      sync.Mutex
	id      uuid.UUID
	entries *treemap.Map // int insertion sequence -> *registration
	byID    map[uuid.UUID]int
	nextSeq int
	root    *trieNode
	live    map[int]*registration
	dirty   bool
}

// NewNet returns an empty Net, stamped with a fresh identity for
// diagnostics output.
func NewNet() *Net {
	return &Net{
		id:      uuid.New(),
		entries: treemap.NewWithIntComparator(),
		byID:    make(map[uuid.UUID]int),
		root:    &trieNode{},
		live:    map[int]*registration{},
	}
}

// NewManyToOneMatcher builds a Net preloaded with patterns, in order. It is
// a convenience constructor for the common case of compiling a fixed batch
// of patterns once; Net.Add/Remove remain available afterward for callers
// that need to mutate the registered set.
func NewManyToOneMatcher(patterns ...expr.Expression) (*Net, error) {
	n := NewNet()
	for _, p := range patterns {
		if _, err := n.Add(p); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// ID is the identity stamped on this Net at construction.
func (n *Net) ID() uuid.UUID { return n.id }

// Add registers pattern and returns the ID it can later be removed or
// reported by. It fails with ErrUnsupported when pattern contains a
// commutative operation with a fixed-size wildcard operand of width greater
// than one: such an operand needs to consume an exact-size, order-
// independent subset of the subject's remaining operands, bookkeeping the
// commutative residual matcher cannot represent.
func (n *Net) Add(pattern expr.Expression) (uuid.UUID, error) {
	if err := checkSupported(pattern); err != nil {
		return uuid.Nil, err
	}
	id := uuid.New()
	n.mu.Lock()
	defer n.mu.Unlock()
	seq := n.nextSeq
	n.nextSeq++
	n.entries.Put(seq, &registration{id: id, index: seq, pattern: pattern})
	n.byID[id] = seq
	n.dirty = true
	return id, nil
}

// Remove unregisters the pattern added under id, reporting whether it was
// present.
func (n *Net) Remove(id uuid.UUID) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	seq, ok := n.byID[id]
	if !ok {
		return false
	}
	n.entries.Remove(seq)
	delete(n.byID, id)
	n.dirty = true
	return true
}

// Len reports the number of registered patterns.
func (n *Net) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.entries.Size()
}

// compiled returns the current trie root and the live registration table,
// rebuilding both when a registration changed since the last call. The
// returned trie is never mutated again: a later Add/Remove builds a fresh
// one, so an in-flight Match keeps walking the snapshot it started with.
func (n *Net) compiled() (*trieNode, map[int]*registration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.dirty {
		root := &trieNode{}
		live := make(map[int]*registration, n.entries.Size())
		for _, v := range n.entries.Values() {
			reg := v.(*registration)
			root.insert(compilePattern(reg.pattern), acceptEntry{
				seq:         reg.index,
				constraints: collectConstraints(reg.pattern),
			})
			live[reg.index] = reg
		}
		n.root, n.live, n.dirty = root, live, false
	}
	return n.root, n.live
}

func (n *Net) registrations() []*registration {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]*registration, 0, n.entries.Size())
	for _, v := range n.entries.Values() {
		out = append(out, v.(*registration))
	}
	return out
}

// Result pairs a matched pattern's ID with the substitution it matched
// under.
type Result struct {
	PatternID uuid.UUID
	Index     int
	Subst     expr.Substitution
}

// Match matches subject against every registered pattern, yielding one
// Result per successful substitution. The sequence is lazy and, for a
// given Net, deterministic; its order follows the trie walk rather than
// pattern registration order, which callers must not rely on.
func (n *Net) Match(subject expr.Expression) func(yield func(Result) bool) {
	root, live := n.compiled()
	ft := flatten(subject)
	return func(yield func(Result) bool) {
		root.run(ft, 0, expr.NewSubstitution(), func(acc acceptEntry, s expr.Substitution) bool {
			reg, ok := live[acc.seq]
			if !ok {
				return true
			}
			return yield(Result{PatternID: reg.id, Index: reg.index, Subst: s})
		})
	}
}

// MatchIndexed matches subject against every registered pattern, yielding
// each pattern's insertion index paired with the substitution it matched
// under. It is the iter.Seq2 rendition of Match for callers that only care
// about a pattern's position among those passed to NewManyToOneMatcher.
func (n *Net) MatchIndexed(subject expr.Expression) iter.Seq2[int, expr.Substitution] {
	return func(yield func(int, expr.Substitution) bool) {
		for r := range n.Match(subject) {
			if !yield(r.Index, r.Subst) {
				return
			}
		}
	}
}

// MatchAllConcurrent matches each of subjects against every registered
// pattern, running up to limit subjects concurrently (limit <= 0 means
// unbounded), and returns the results in the same order as subjects.
func (n *Net) MatchAllConcurrent(ctx context.Context, subjects []expr.Expression, limit int) ([][]Result, error) {
	n.compiled()
	return parallel.MapBounded(ctx, limit, subjects, func(_ context.Context, subject expr.Expression) ([]Result, error) {
		var out []Result
		for r := range n.Match(subject) {
			out = append(out, r)
		}
		return out, nil
	})
}

// Stats reports the number of registered patterns, the size of the compiled
// trie, and how many patterns are commutative, associative or carry a
// constraint — a cheap summary for a diagnostics dump.
type Stats struct {
	Patterns    int
	States      int
	Commutative int
	Associative int
	Constrained int
}

// Stats summarizes n's current registrations and compiled trie.
func (n *Net) Stats() Stats {
	root, _ := n.compiled()
	entries := n.registrations()
	s := Stats{Patterns: len(entries), States: root.countStates()}
	for _, reg := range entries {
		if len(collectConstraints(reg.pattern)) > 0 {
			s.Constrained++
		}
		op, ok := reg.pattern.(expr.Operation)
		if !ok {
			continue
		}
		head, ok := op.Head().(*expr.OperationHead)
		if !ok {
			continue
		}
		if head.Commutative() {
			s.Commutative++
		}
		if head.Associative() {
			s.Associative++
		}
	}
	return s
}

func checkSupported(pattern expr.Expression) error {
	for node := range expr.Preorder(pattern, nil) {
		op, ok := node.(expr.Operation)
		if !ok {
			continue
		}
		head, ok := op.Head().(*expr.OperationHead)
		if !ok || !head.Commutative() {
			continue
		}
		for _, operand := range op.Operands {
			minCount, fixedSize, isWildcard := expr.WildcardShape(operand)
			if isWildcard && fixedSize && minCount > 1 {
				return errors.Wrapf(ErrUnsupported,
					"operator %q: fixed-size wildcard of width %d in a commutative operand position",
					head.Name(), minCount)
			}
		}
	}
	return nil
}

// collectConstraints gathers every constraint appearing anywhere in
// pattern. The trie evaluates them at accept time, when every variable the
// pattern binds is bound; a constraint naming a variable the pattern never
// binds stays undecidable and is skipped, per the rule that a constraint
// is never called before all its declared variables exist.
func collectConstraints(pattern expr.Expression) []expr.Constraint {
	var out []expr.Constraint
	for node := range expr.Preorder(pattern, nil) {
		if c := node.Constraint(); c != nil {
			out = append(out, c)
		}
	}
	return out
}

func constraintDecidable(c expr.Constraint, s expr.Substitution) bool {
	for _, name := range c.Variables() {
		if _, bound := s[name]; !bound {
			return false
		}
	}
	return true
}
