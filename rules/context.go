package rules

import (
	"github.com/uir-sat/uirsat/lang"
	"github.com/uir-sat/uirsat/unionfind"
)

// ContextSimplification collapses WithContext(ctx, WithContext(ctx,
// x)) into WithContext(ctx, x) when the two context ids are exactly
// the same id (no canonicalization involved): re-wrapping with the
// identical context value adds nothing.
type ContextSimplification[D any] struct{}

func (ContextSimplification[D]) Name() string { return "context-simplification" }

func (ContextSimplification[D]) Apply(g EGraph[D]) {
	type match struct {
		id     unionfind.Id
		target unionfind.Id
	}
	var matches []match

	for _, ic := range sortedClasses[D](g) {
		id, class := ic.id, ic.class
		for _, n := range class.Nodes {
			if n.Op != lang.WithContext {
				continue
			}
			ctx, inner := n.Kids[0], n.Kids[1]

			innerClass, err := g.GetClass(g.Find(inner))
			if err != nil {
				continue
			}
			for _, in := range innerClass.Nodes {
				if in.Op == lang.WithContext && in.Kids[0] == ctx {
					matches = append(matches, match{id, inner})
				}
			}
		}
	}

	for _, m := range matches {
		g.Union(m.id, m.target)
	}
}

// UniversalSemanticOptimization covers the broader, analysis-blind
// "same context, whatever form it canonicalizes to" case that
// ContextSimplification's id-equality check misses: it compares the
// two contexts' canonical roots rather than their raw ids, so it also
// catches WithContext(ctx1, WithContext(ctx2, x)) once ctx1 and ctx2
// have been unioned together. It is kept as a separate rule, not
// merged into ContextSimplification, because both forms are exercised
// independently: id-identical rewrites converge before any union
// happens to bring two distinct context ids into the same class.
type UniversalSemanticOptimization[D any] struct{}

func (UniversalSemanticOptimization[D]) Name() string {
	return "universal-semantic-optimization"
}

func (UniversalSemanticOptimization[D]) Apply(g EGraph[D]) {
	type match struct {
		id     unionfind.Id
		target unionfind.Id
	}
	var matches []match

	for _, ic := range sortedClasses[D](g) {
		id, class := ic.id, ic.class
		for _, n := range class.Nodes {
			if n.Op != lang.WithContext {
				continue
			}
			ctxRoot := g.Find(n.Kids[0])
			innerRoot := g.Find(n.Kids[1])

			innerClass, err := g.GetClass(innerRoot)
			if err != nil {
				continue
			}
			for _, in := range innerClass.Nodes {
				if in.Op == lang.WithContext && g.Find(in.Kids[0]) == ctxRoot {
					matches = append(matches, match{id, n.Kids[1]})
				}
			}
		}
	}

	for _, m := range matches {
		g.Union(m.id, m.target)
	}
}
