package songfilter

import "github.com/samber/lo"

// optimize applies the rewrites in §4.5, recursively and idempotently:
// nested Ands flatten into their parent, a single-child And is unwrapped
// unless it is the root, Not(Not(x)) collapses to x, and equivalent
// children of an And are merged. Children retain their first-occurrence
// order — this never sorts.
func optimize(n Node, isRoot bool) Node {
	switch v := n.(type) {
	case *Not:
		child := optimize(v.Child, false)
		if inner, ok := child.(*Not); ok {
			return inner.Child
		}
		return &Not{Child: child}

	case *And:
		optimizedChildren := make([]Node, len(v.Children))
		for i, c := range v.Children {
			optimizedChildren[i] = optimize(c, false)
		}

		flat := lo.FlatMap(optimizedChildren, func(c Node, _ int) []Node {
			if nested, ok := c.(*And); ok {
				return nested.Children
			}
			return []Node{c}
		})

		deduped := make([]Node, 0, len(flat))
		for _, c := range flat {
			if !lo.SomeBy(deduped, func(d Node) bool { return d.equal(c) }) {
				deduped = append(deduped, c)
			}
		}

		if !isRoot && len(deduped) == 1 {
			return deduped[0]
		}
		return &And{Children: deduped}

	default:
		return n
	}
}
