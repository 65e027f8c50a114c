package expr

import (
	"fmt"
	"iter"
	"strings"
)

// Preorder walks e depth-first, root before children, yielding each visited
// subexpression paired with its position path (the sequence of child
// indices from e down to it; the root's own path is empty). A Variable's
// wrapped wildcard is visited as a single pseudo-child at index 0, since
// children() reports it that way.
//
// When predicate is non-nil, only subexpressions for which it returns true
// are yielded, but the walk still descends into the children of a rejected
// node — the predicate filters what is reported, not what is visited.
func Preorder(e Expression, predicate func(Expression) bool) iter.Seq2[Expression, []int] {
	return func(yield func(Expression, []int) bool) {
		var walk func(node Expression, path []int) bool
		walk = func(node Expression, path []int) bool {
			if predicate == nil || predicate(node) {
				if !yield(node, path) {
					return false
				}
			}
			for i, child := range node.children() {
				childPath := append(append([]int(nil), path...), i)
				if !walk(child, childPath) {
					return false
				}
			}
			return true
		}
		walk(e, []int{})
	}
}

// At resolves a position path against e, descending one child index at a
// time. An empty path returns e itself. A path component beyond the number
// of children at that depth is an IndexError.
func At(e Expression, path ...int) (Expression, error) {
	cur := e
	for depth, idx := range path {
		kids := cur.children()
		if idx < 0 || idx >= len(kids) {
			return nil, newIndexError("position %s has no expression at depth %d (index %d, %d child(ren))",
				pathString(path), depth, idx, len(kids))
		}
		cur = kids[idx]
	}
	return cur, nil
}

func pathString(path []int) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = fmt.Sprintf("%d", p)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
